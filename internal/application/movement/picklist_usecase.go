package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// PickListUseCase genera la hoja de recolección (PDF) de un documento asignado.
type PickListUseCase struct {
	collection *CollectionUseCase
	generator  PickListGenerator
	now        func() time.Time
}

// NewPickListUseCase construye el caso de uso.
func NewPickListUseCase(collection *CollectionUseCase, generator PickListGenerator) *PickListUseCase {
	return &PickListUseCase{collection: collection, generator: generator, now: time.Now}
}

// Generate busca el documento entre los asignados, refresca su progreso y genera el PDF.
func (uc *PickListUseCase) Generate(ctx context.Context, docType string, headerID int64) ([]byte, error) {
	docs, err := uc.collection.AssignedDocuments(ctx, docType)
	if err != nil {
		return nil, err
	}
	var doc *entity.AssignedDocument
	for i := range docs {
		if docs[i].HeaderID == headerID {
			doc = &docs[i]
			break
		}
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	progress, err := uc.collection.Progress(ctx, docType, headerID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GeneratePickList(ctx, PickListData{
		Document:    *doc,
		Progress:    progress,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("generar hoja de recolección: %w", err)
	}
	return pdf, nil
}
