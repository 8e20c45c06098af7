package entity

import "github.com/shopspring/decimal"

// Candidate es algo que el operario puede seleccionar: una línea de orden (modo orden)
// o un ítem de stock libre sin orden (modo libre).
type Candidate struct {
	FromOrder          bool             `json:"fromOrder"`
	OrderID            int64            `json:"orderId"`
	OrderLineID        int64            `json:"orderLineId,omitempty"`
	OrderNo            string           `json:"siparisNo,omitempty"`
	StockCode          string           `json:"stockCode"`
	StockName          string           `json:"stockName"`
	YapKod             string           `json:"yapKod,omitempty"`
	YapAcik            string           `json:"yapAcik,omitempty"`
	Unit               string           `json:"unit,omitempty"`
	SourceWarehouse    string           `json:"sourceWarehouse,omitempty"`
	RemainingForImport *decimal.Decimal `json:"remainingForImport,omitempty"`
}

// CandidateFromOrderLine construye un candidato en modo orden.
func CandidateFromOrderLine(l OrderLine) Candidate {
	remaining := l.RemainingForImport
	return Candidate{
		FromOrder:          true,
		OrderID:            l.OrderID,
		OrderLineID:        l.OrderLineID,
		OrderNo:            l.OrderNo,
		StockCode:          l.StockCode,
		StockName:          l.StockName,
		YapKod:             l.YapKod,
		YapAcik:            l.YapAcik,
		Unit:               l.Unit,
		SourceWarehouse:    l.SourceWarehouse,
		RemainingForImport: &remaining,
	}
}

// CandidateFromStock construye un candidato en modo libre.
func CandidateFromStock(s StockRecord) Candidate {
	return Candidate{
		StockCode: s.StockCode,
		StockName: s.StockName,
		YapKod:    s.YapKod,
		Unit:      s.Unit,
	}
}

// Key clave de identidad: "<siparisNo>-<stockCode>" en modo orden, "stock-<stockCode>" en modo libre.
func (c Candidate) Key() string {
	if c.FromOrder {
		return c.OrderNo + "-" + c.StockCode
	}
	return "stock-" + c.StockCode
}

// SelectedItem candidato elegido con cantidad y atributos de lote/serie editables.
// Estar presente en el SelectionSet ES estar seleccionado; IsSelected siempre vale true.
type SelectedItem struct {
	ID string `json:"id"`
	Candidate
	TransferQuantity decimal.Decimal `json:"transferQuantity"`
	IsSelected       bool            `json:"isSelected"`
	SerialNo         string          `json:"serialNo,omitempty"`
	SerialNo2        string          `json:"serialNo2,omitempty"`
	LotNo            string          `json:"lotNo,omitempty"`
	BatchNo          string          `json:"batchNo,omitempty"`
	ConfigCode       string          `json:"configCode,omitempty"`
	SourceCellCode   string          `json:"sourceCellCode,omitempty"`
	TargetCellCode   string          `json:"targetCellCode,omitempty"`
}
