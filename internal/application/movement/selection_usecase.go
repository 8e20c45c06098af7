package movement

import (
	"sync"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

type selectionKey struct {
	operatorID string
	docType    string
}

// SelectionUseCase guarda en memoria un SelectionSet por operario y tipo de documento.
// Nada se persiste hasta que GenerateUseCase envía el documento.
type SelectionUseCase struct {
	mu   sync.Mutex
	sets map[selectionKey]*movement.SelectionSet
}

// NewSelectionUseCase construye el caso de uso.
func NewSelectionUseCase() *SelectionUseCase {
	return &SelectionUseCase{sets: make(map[selectionKey]*movement.SelectionSet)}
}

// with ejecuta fn con el conjunto del operario bajo el lock.
func (uc *SelectionUseCase) with(operatorID, docType string, fn func(s *movement.SelectionSet) error) error {
	if _, err := movement.RuleFor(docType); err != nil {
		return err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	k := selectionKey{operatorID: operatorID, docType: docType}
	s := uc.sets[k]
	if s == nil {
		s = movement.NewSelectionSet()
		uc.sets[k] = s
	}
	err := fn(s)
	if s.Len() == 0 {
		delete(uc.sets, k)
	}
	return err
}

// Toggle alta/baja del candidato. Devuelve si quedó seleccionado y la selección resultante.
func (uc *SelectionUseCase) Toggle(operatorID, docType string, c entity.Candidate) (bool, []entity.SelectedItem, error) {
	var selected bool
	var items []entity.SelectedItem
	err := uc.with(operatorID, docType, func(s *movement.SelectionSet) error {
		selected = s.Toggle(c)
		items = s.Items()
		return nil
	})
	return selected, items, err
}

// SetQuantity fija la cantidad tecleada; 0, vacío o no numérico quita el ítem.
func (uc *SelectionUseCase) SetQuantity(operatorID, docType string, c entity.Candidate, raw string) (bool, []entity.SelectedItem, error) {
	var present bool
	var items []entity.SelectedItem
	err := uc.with(operatorID, docType, func(s *movement.SelectionSet) error {
		present = s.SetQuantity(c, raw)
		items = s.Items()
		return nil
	})
	return present, items, err
}

// UpdateDetail fija un atributo de lote/serie de un ítem ya seleccionado.
func (uc *SelectionUseCase) UpdateDetail(operatorID, docType, id string, field movement.DetailField, value string) ([]entity.SelectedItem, error) {
	var items []entity.SelectedItem
	err := uc.with(operatorID, docType, func(s *movement.SelectionSet) error {
		if err := s.UpdateDetail(id, field, value); err != nil {
			return err
		}
		items = s.Items()
		return nil
	})
	return items, err
}

// Remove quita el ítem; un id ausente no es error.
func (uc *SelectionUseCase) Remove(operatorID, docType, id string) ([]entity.SelectedItem, error) {
	var items []entity.SelectedItem
	err := uc.with(operatorID, docType, func(s *movement.SelectionSet) error {
		s.Remove(id)
		items = s.Items()
		return nil
	})
	return items, err
}

// List ítems seleccionados en orden de inserción.
func (uc *SelectionUseCase) List(operatorID, docType string) ([]entity.SelectedItem, error) {
	var items []entity.SelectedItem
	err := uc.with(operatorID, docType, func(s *movement.SelectionSet) error {
		items = s.Items()
		return nil
	})
	return items, err
}

// Clear vacía la selección del operario.
func (uc *SelectionUseCase) Clear(operatorID, docType string) error {
	return uc.with(operatorID, docType, func(s *movement.SelectionSet) error {
		s.Clear()
		return nil
	})
}
