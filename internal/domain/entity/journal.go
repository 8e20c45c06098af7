package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados de un escaneo registrados en el diario.
const (
	ScanOutcomeAccepted        = "accepted"
	ScanOutcomeMatched         = "matched" // escaneo sin cantidad: solo identificación
	ScanOutcomeStockNotFound   = "stock_not_found"
	ScanOutcomeNotInOrder      = "not_in_order"
	ScanOutcomeInvalidQuantity = "invalid_quantity"
	ScanOutcomeRemoteError     = "remote_error"
)

// ScanEvent entrada del diario de escaneos de un documento.
type ScanEvent struct {
	ID           string
	DocumentType string
	HeaderID     int64
	OperatorID   string
	Barcode      string
	StockCode    string
	LineID       int64
	Quantity     decimal.Decimal
	Outcome      string
	Message      string
	CreatedAt    time.Time
}

// GeneratedDocument registro local de un documento aceptado por el ERP, con sus claves de correlación.
type GeneratedDocument struct {
	ID           string
	DocumentType string
	HeaderID     int64
	DocumentNo   string
	OperatorID   string
	CustomerCode string
	CreatedAt    time.Time
	Lines        []GeneratedLine
}

// GeneratedLine claves de correlación de una línea enviada.
type GeneratedLine struct {
	ClientKey  string
	ClientGuid string
	StockCode  string
	Quantity   decimal.Decimal
}
