package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateRequest documento completo que se envía en un único POST .../generate.
// Lines y LineSerials son paralelos y se correlacionan por ClientKey/ClientGuid,
// nunca por índice: los ids del servidor no existen hasta que el ERP acepta el documento.
type GenerateRequest struct {
	Header        GenerateHeader       `json:"header"`
	Lines         []GenerateLine       `json:"lines"`
	LineSerials   []GenerateLineSerial `json:"lineSerials"`
	TerminalLines []TerminalLine       `json:"terminalLines"`
}

// GenerateHeader cabecera del documento.
type GenerateHeader struct {
	BranchCode      string    `json:"branchCode"`
	DocumentType    string    `json:"documentType"`
	DocumentDate    time.Time `json:"documentDate"`
	PlannedDate     time.Time `json:"plannedDate"`
	SourceWarehouse string    `json:"sourceWarehouse"`
	TargetWarehouse string    `json:"targetWarehouse"`
	CustomerCode    string    `json:"customerCode"`
	Description     string    `json:"description"`
	Type            int       `json:"type"` // 1 = libre, 0 = ligado a orden
	IsCompleted     bool      `json:"isCompleted"`
}

// GenerateLine una línea por ítem seleccionado.
type GenerateLine struct {
	ClientKey   string          `json:"clientKey"`
	ClientGuid  string          `json:"clientGuid"`
	StockCode   string          `json:"stockCode"`
	StockName   string          `json:"stockName,omitempty"`
	YapKod      string          `json:"yapKod,omitempty"`
	YapAcik     string          `json:"yapAcik,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	OrderID     int64           `json:"orderId"`
	ErpOrderNo  string          `json:"erpOrderNo,omitempty"`
	ErpOrderID  int64           `json:"erpOrderId,omitempty"`
	Description string          `json:"description,omitempty"`
}

// GenerateLineSerial fila de serie/lote de una línea. Lote y partida ocupan los huecos fijos
// serialNo3 y serialNo4.
type GenerateLineSerial struct {
	LineClientKey  string          `json:"lineClientKey"`
	LineGroupGuid  string          `json:"lineGroupGuid"`
	Quantity       decimal.Decimal `json:"quantity"`
	SerialNo       string          `json:"serialNo,omitempty"`
	SerialNo2      string          `json:"serialNo2,omitempty"`
	SerialNo3      string          `json:"serialNo3,omitempty"`
	SerialNo4      string          `json:"serialNo4,omitempty"`
	ConfigCode     string          `json:"configCode,omitempty"`
	SourceCellCode string          `json:"sourceCellCode,omitempty"`
	TargetCellCode string          `json:"targetCellCode,omitempty"`
}

// TerminalLine asignación del documento a un operario de terminal.
type TerminalLine struct {
	TerminalUserID int64 `json:"terminalUserId"`
}

// GenerateResult respuesta del ERP al crear el documento.
type GenerateResult struct {
	HeaderID   int64  `json:"headerId"`
	DocumentNo string `json:"documentNo"`
}
