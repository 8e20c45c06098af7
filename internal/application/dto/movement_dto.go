package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

// RawQuantity cantidad tal como la tecleó el operario. Acepta número JSON o texto
// ("2,5" en terminales con configuración regional turca); la interpreta movement.ParseQuantity.
type RawQuantity string

// UnmarshalJSON acepta 2.5, "2,5", "" y null.
func (q *RawQuantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*q = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = RawQuantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*q = RawQuantity(n.String())
	return nil
}

// ── Selección ─────────────────────────────────────────────────────────────────

// SetQuantityRequest cantidad para un candidato: > 0 lo inserta o actualiza; 0, vacío o
// no numérico lo quita.
type SetQuantityRequest struct {
	Candidate entity.Candidate `json:"candidate"`
	Quantity  RawQuantity      `json:"quantity"`
}

// UpdateDetailRequest atributo de lote/serie de un ítem ya seleccionado.
type UpdateDetailRequest struct {
	Field movement.DetailField `json:"field"`
	Value string               `json:"value"`
}

// SelectionResponse estado de la selección tras una operación.
type SelectionResponse struct {
	Selected *bool                 `json:"selected,omitempty"`
	Count    int                   `json:"count"`
	Items    []entity.SelectedItem `json:"items"`
}

// NewSelectionResponse arma la respuesta; selected nil cuando la operación no lo define.
func NewSelectionResponse(items []entity.SelectedItem, selected *bool) SelectionResponse {
	if items == nil {
		items = []entity.SelectedItem{}
	}
	return SelectionResponse{Selected: selected, Count: len(items), Items: items}
}

// ── Documentos ────────────────────────────────────────────────────────────────

// GenerateDocumentRequest formulario de cabecera; las líneas salen de la selección del operario.
type GenerateDocumentRequest struct {
	movement.HeaderForm
}

// GeneratedDocumentResponse entrada del historial local.
type GeneratedDocumentResponse struct {
	ID           string                  `json:"id"`
	DocumentType string                  `json:"documentType"`
	HeaderID     int64                   `json:"headerId"`
	DocumentNo   string                  `json:"documentNo"`
	OperatorID   string                  `json:"operatorId"`
	CustomerCode string                  `json:"customerCode,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	Lines        []GeneratedLineResponse `json:"lines,omitempty"`
}

// GeneratedLineResponse claves de correlación de una línea enviada.
type GeneratedLineResponse struct {
	ClientKey  string          `json:"clientKey"`
	ClientGuid string          `json:"clientGuid"`
	StockCode  string          `json:"stockCode"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ToGeneratedDocumentResponse mapea la entidad.
func ToGeneratedDocumentResponse(d *entity.GeneratedDocument) GeneratedDocumentResponse {
	out := GeneratedDocumentResponse{
		ID:           d.ID,
		DocumentType: d.DocumentType,
		HeaderID:     d.HeaderID,
		DocumentNo:   d.DocumentNo,
		OperatorID:   d.OperatorID,
		CustomerCode: d.CustomerCode,
		CreatedAt:    d.CreatedAt,
	}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, GeneratedLineResponse{
			ClientKey: l.ClientKey, ClientGuid: l.ClientGuid, StockCode: l.StockCode, Quantity: l.Quantity,
		})
	}
	return out
}

// GeneratedDocumentListResponse página del historial.
type GeneratedDocumentListResponse struct {
	Items []GeneratedDocumentResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}

// ── Recolección ───────────────────────────────────────────────────────────────

// ScanRequest código leído, sin cantidad.
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// CollectRequest código leído con cantidad y atributos de lote opcionales.
type CollectRequest struct {
	Barcode  string      `json:"barcode"`
	Quantity RawQuantity `json:"quantity"`
	movement.LotDetails
}

// ScanEventResponse entrada del diario de escaneos.
type ScanEventResponse struct {
	ID         string          `json:"id"`
	OperatorID string          `json:"operatorId"`
	Barcode    string          `json:"barcode"`
	StockCode  string          `json:"stockCode,omitempty"`
	LineID     int64           `json:"lineId,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Outcome    string          `json:"outcome"`
	Message    string          `json:"message,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToScanEventResponses mapea el diario.
func ToScanEventResponses(events []*entity.ScanEvent) []ScanEventResponse {
	out := make([]ScanEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ScanEventResponse{
			ID: e.ID, OperatorID: e.OperatorID, Barcode: e.Barcode, StockCode: e.StockCode,
			LineID: e.LineID, Quantity: e.Quantity, Outcome: e.Outcome, Message: e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
