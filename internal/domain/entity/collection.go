package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignedDocument documento que el operario actual debe completar.
type AssignedDocument struct {
	HeaderID        int64     `json:"headerId"`
	DocumentNo      string    `json:"documentNo"`
	DocumentType    string    `json:"documentType"`
	DocumentDate    time.Time `json:"documentDate"`
	CustomerCode    string    `json:"customerCode"`
	CustomerName    string    `json:"customerName"`
	SourceWarehouse string    `json:"sourceWarehouse"`
	TargetWarehouse string    `json:"targetWarehouse"`
	IsCompleted     bool      `json:"isCompleted"`
}

// AssignedLine línea confirmada por el servidor con su cantidad planificada.
type AssignedLine struct {
	ID        int64           `json:"id"`
	HeaderID  int64           `json:"headerId"`
	StockCode string          `json:"stockCode"`
	StockName string          `json:"stockName"`
	YapKod    string          `json:"yapKod,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ImportLine enlace del ERP entre una línea del documento (LineID) y sus rutas.
type ImportLine struct {
	ID        int64  `json:"id"`
	LineID    int64  `json:"lineId"`
	HeaderID  int64  `json:"headerId"`
	StockCode string `json:"stockCode"`
}

// Route un evento de recolección (un escaneo aceptado).
type Route struct {
	ID             int64           `json:"id"`
	ImportLineID   int64           `json:"importLineId"`
	ScannedBarcode string          `json:"scannedBarcode"`
	StockCode      string          `json:"stockCode"`
	Quantity       decimal.Decimal `json:"quantity"`
	SerialNo       string          `json:"serialNo,omitempty"`
	SerialNo2      string          `json:"serialNo2,omitempty"`
	LotNo          string          `json:"lotNo,omitempty"`
	BatchNo        string          `json:"batchNo,omitempty"`
	SourceCellCode string          `json:"sourceCellCode,omitempty"`
	TargetCellCode string          `json:"targetCellCode,omitempty"`
	PackageID      *int64          `json:"packageId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CollectedBarcodeItem rutas ya recolectadas agrupadas por línea de importación.
type CollectedBarcodeItem struct {
	ImportLine ImportLine `json:"importLine"`
	Routes     []Route    `json:"routes"`
}

// AddRouteRequest petición de creación de ruta correlacionada con el id de servidor de la línea.
type AddRouteRequest struct {
	HeaderID       int64           `json:"headerId"`
	LineID         int64           `json:"lineId"`
	StockCode      string          `json:"stockCode"`
	Barcode        string          `json:"barcode"`
	Quantity       decimal.Decimal `json:"quantity"`
	SerialNo       string          `json:"serialNo,omitempty"`
	SerialNo2      string          `json:"serialNo2,omitempty"`
	LotNo          string          `json:"lotNo,omitempty"`
	BatchNo        string          `json:"batchNo,omitempty"`
	SourceCellCode string          `json:"sourceCellCode,omitempty"`
	TargetCellCode string          `json:"targetCellCode,omitempty"`
}
