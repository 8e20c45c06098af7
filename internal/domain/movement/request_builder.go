package movement

import (
	"github.com/google/uuid"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// IDGenerator genera identificadores de correlación.
type IDGenerator func() string

// RequestBuilder transforma un SelectionSet y la cabecera en un GenerateRequest.
// No tiene efectos secundarios salvo generar ids de correlación y nunca falla:
// una selección vacía produce lines/lineSerials vacíos (el ERP la rechazará).
type RequestBuilder struct {
	newID             IDGenerator
	placeholderUserID int64
}

// NewRequestBuilder construye el builder. newID nil usa UUID v4.
// placeholderUserID se asigna en terminalLines cuando no hay operarios elegidos.
func NewRequestBuilder(newID IDGenerator, placeholderUserID int64) *RequestBuilder {
	if newID == nil {
		newID = uuid.NewString
	}
	return &RequestBuilder{newID: newID, placeholderUserID: placeholderUserID}
}

// Build arma el documento completo.
func (b *RequestBuilder) Build(rule DocumentRule, form HeaderForm, items []entity.SelectedItem) entity.GenerateRequest {
	req := entity.GenerateRequest{
		Header:        b.header(rule, form, items),
		Lines:         make([]entity.GenerateLine, 0, len(items)),
		LineSerials:   make([]entity.GenerateLineSerial, 0, len(items)),
		TerminalLines: b.terminalLines(form.OperatorIDs),
	}
	for _, it := range items {
		// Hoy el grupo de línea es 1:1 con la línea, pero ambos ids son independientes.
		clientKey := b.newID()
		clientGuid := b.newID()

		line := entity.GenerateLine{
			ClientKey:  clientKey,
			ClientGuid: clientGuid,
			StockCode:  it.StockCode,
			StockName:  it.StockName,
			YapKod:     it.YapKod,
			YapAcik:    it.YapAcik,
			Unit:       it.Unit,
			Quantity:   it.TransferQuantity,
		}
		if it.FromOrder {
			line.OrderID = it.OrderID
			line.ErpOrderNo = it.OrderNo
			line.ErpOrderID = it.OrderLineID
		}
		req.Lines = append(req.Lines, line)

		req.LineSerials = append(req.LineSerials, entity.GenerateLineSerial{
			LineClientKey:  clientKey,
			LineGroupGuid:  clientGuid,
			Quantity:       it.TransferQuantity,
			SerialNo:       it.SerialNo,
			SerialNo2:      it.SerialNo2,
			SerialNo3:      it.LotNo,
			SerialNo4:      it.BatchNo,
			ConfigCode:     it.ConfigCode,
			SourceCellCode: it.SourceCellCode,
			TargetCellCode: it.TargetCellCode,
		})
	}
	return req
}

func (b *RequestBuilder) header(rule DocumentRule, form HeaderForm, items []entity.SelectedItem) entity.GenerateHeader {
	h := entity.GenerateHeader{
		BranchCode:      form.BranchCode,
		DocumentType:    rule.Type,
		DocumentDate:    form.DocumentDate,
		PlannedDate:     form.PlannedDate,
		SourceWarehouse: form.SourceWarehouse,
		TargetWarehouse: form.TargetWarehouse,
		CustomerCode:    form.CustomerCode,
		Description:     form.Description,
		IsCompleted:     rule.CompletedAtCreation,
	}
	if form.Free {
		h.Type = 1
	}
	if rule.SourceFromFirstItem && !form.Free && len(items) > 0 && items[0].SourceWarehouse != "" {
		h.SourceWarehouse = items[0].SourceWarehouse
	}
	if rule.BlankTargetWarehouse {
		h.TargetWarehouse = ""
	}
	if rule.FreeModeWithoutCustomer && form.Free {
		h.CustomerCode = ""
	}
	return h
}

// terminalLines: una entrada por operario asignado (sin duplicados), o el marcador de sistema.
func (b *RequestBuilder) terminalLines(operatorIDs []int64) []entity.TerminalLine {
	out := make([]entity.TerminalLine, 0, len(operatorIDs))
	seen := make(map[int64]struct{}, len(operatorIDs))
	for _, id := range operatorIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, entity.TerminalLine{TerminalUserID: id})
	}
	if len(out) == 0 {
		out = append(out, entity.TerminalLine{TerminalUserID: b.placeholderUserID})
	}
	return out
}
