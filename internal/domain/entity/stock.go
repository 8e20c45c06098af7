package entity

// StockRecord ficha de stock resuelta por el ERP a partir de un código de barras o una búsqueda.
type StockRecord struct {
	StockID   int64  `json:"stockId"`
	StockCode string `json:"stockCode"`
	StockName string `json:"stockName"`
	Barcode   string `json:"barcode,omitempty"`
	Unit      string `json:"unit,omitempty"`
	YapKod    string `json:"yapKod,omitempty"`
}
