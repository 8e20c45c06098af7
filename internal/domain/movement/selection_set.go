package movement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// DetailField atributo de lote/serie editable de un ítem seleccionado.
type DetailField string

const (
	DetailSerialNo       DetailField = "serialNo"
	DetailSerialNo2      DetailField = "serialNo2"
	DetailLotNo          DetailField = "lotNo"
	DetailBatchNo        DetailField = "batchNo"
	DetailConfigCode     DetailField = "configCode"
	DetailSourceCellCode DetailField = "sourceCellCode"
	DetailTargetCellCode DetailField = "targetCellCode"
)

// SelectionSet colección de ítems elegidos, en orden de inserción.
//
// La pertenencia al conjunto ES la selección: no existe un estado "seleccionado con cantidad 0"
// alcanzable por SetQuantity. Toda alta/baja pasa por upsert/Remove.
// No es seguro para uso concurrente; el caso de uso lo protege.
type SelectionSet struct {
	items []entity.SelectedItem
}

// NewSelectionSet crea un conjunto vacío.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{}
}

func (s *SelectionSet) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Toggle quita el ítem si ya estaba; si no, lo inserta con la cantidad sembrada
// (restante por importar en modo orden, cero en modo libre). Devuelve si quedó seleccionado.
func (s *SelectionSet) Toggle(c entity.Candidate) bool {
	id := c.Key()
	if s.indexOf(id) >= 0 {
		s.Remove(id)
		return false
	}
	qty := decimal.Zero
	if c.FromOrder && c.RemainingForImport != nil {
		qty = *c.RemainingForImport
	}
	s.upsert(c, qty)
	return true
}

// SetQuantity inserta o actualiza la cantidad si raw es un número mayor que cero;
// en cualquier otro caso (0, vacío, no numérico) elimina el ítem. Devuelve si quedó presente.
func (s *SelectionSet) SetQuantity(c entity.Candidate, raw string) bool {
	qty, ok := ParseQuantity(raw)
	if !ok {
		s.Remove(c.Key())
		return false
	}
	s.upsert(c, qty)
	return true
}

func (s *SelectionSet) upsert(c entity.Candidate, qty decimal.Decimal) {
	id := c.Key()
	if i := s.indexOf(id); i >= 0 {
		s.items[i].TransferQuantity = qty
		return
	}
	s.items = append(s.items, entity.SelectedItem{
		ID:               id,
		Candidate:        c,
		TransferQuantity: qty,
		IsSelected:       true,
	})
}

// UpdateDetail fija un atributo de lote/serie. Es un no-op si el ítem no está seleccionado.
func (s *SelectionSet) UpdateDetail(id string, field DetailField, value string) error {
	i := s.indexOf(id)
	if i < 0 {
		if !field.valid() {
			return &domain.ValidationError{Field: string(field), Reason: "campo desconocido"}
		}
		return nil
	}
	it := &s.items[i]
	switch field {
	case DetailSerialNo:
		it.SerialNo = value
	case DetailSerialNo2:
		it.SerialNo2 = value
	case DetailLotNo:
		it.LotNo = value
	case DetailBatchNo:
		it.BatchNo = value
	case DetailConfigCode:
		it.ConfigCode = value
	case DetailSourceCellCode:
		it.SourceCellCode = value
	case DetailTargetCellCode:
		it.TargetCellCode = value
	default:
		return &domain.ValidationError{Field: string(field), Reason: "campo desconocido"}
	}
	return nil
}

func (f DetailField) valid() bool {
	switch f {
	case DetailSerialNo, DetailSerialNo2, DetailLotNo, DetailBatchNo,
		DetailConfigCode, DetailSourceCellCode, DetailTargetCellCode:
		return true
	}
	return false
}

// Remove elimina el ítem; quitar un id ausente no es un error.
func (s *SelectionSet) Remove(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// Get devuelve una copia del ítem.
func (s *SelectionSet) Get(id string) (entity.SelectedItem, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.SelectedItem{}, false
	}
	return s.items[i], true
}

// Items devuelve una copia de los ítems en orden de inserción.
func (s *SelectionSet) Items() []entity.SelectedItem {
	out := make([]entity.SelectedItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len número de ítems seleccionados.
func (s *SelectionSet) Len() int { return len(s.items) }

// Clear vacía el conjunto.
func (s *SelectionSet) Clear() { s.items = nil }
