package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderHeader cabecera de una orden del ERP para una contraparte.
type OrderHeader struct {
	OrderID      int64     `json:"orderId"`
	OrderNo      string    `json:"siparisNo"`
	CustomerCode string    `json:"customerCode"`
	CustomerName string    `json:"customerName"`
	BranchCode   string    `json:"branchCode"`
	OrderDate    time.Time `json:"orderDate"`
}

// OrderLine línea planificable de una orden. Es una foto inmutable del ERP:
// se vuelve a pedir, nunca se modifica localmente.
type OrderLine struct {
	OrderID            int64           `json:"orderId"`
	OrderLineID        int64           `json:"orderLineId"`
	OrderNo            string          `json:"siparisNo"`
	StockCode          string          `json:"stockCode"`
	StockName          string          `json:"stockName"`
	YapKod             string          `json:"yapKod,omitempty"`
	YapAcik            string          `json:"yapAcik,omitempty"`
	Unit               string          `json:"unit,omitempty"`
	SourceWarehouse    string          `json:"sourceWarehouse,omitempty"`
	OrderedQty         decimal.Decimal `json:"orderedQty"`
	DeliveredQty       decimal.Decimal `json:"deliveredQty"`
	RemainingForImport decimal.Decimal `json:"remainingForImport"` // ordered - delivered - ya asignado
}
