package movement

import (
	"context"
	"time"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
	"github.com/jhoicas/depo-terminal/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de documentos generados atado a esa tx. Cabecera y claves de línea se guardan juntas o nada.
type TxRunner interface {
	RunGenerated(ctx context.Context, fn func(docs repository.GeneratedDocumentRepository) error) error
}

// CatalogInvalidator caché de catálogos a invalidar cuando el ERP acepta un documento
// (el restante por importar de la contraparte cambió).
type CatalogInvalidator interface {
	Invalidate(docType, customerCode string)
}

// Recorder métricas del motor. NopRecorder sirve cuando las métricas están desactivadas.
type Recorder interface {
	ScanOutcome(docType, outcome string)
	DocumentGenerated(docType string)
}

// NopRecorder no registra nada.
type NopRecorder struct{}

func (NopRecorder) ScanOutcome(string, string) {}
func (NopRecorder) DocumentGenerated(string)   {}

// PickListData lo necesario para imprimir la hoja de recolección de un documento.
type PickListData struct {
	Document    entity.AssignedDocument
	Progress    movement.Progress
	GeneratedAt time.Time
}

// PickListGenerator puerto de salida para el PDF de la hoja de recolección.
type PickListGenerator interface {
	GeneratePickList(ctx context.Context, data PickListData) ([]byte, error)
}
