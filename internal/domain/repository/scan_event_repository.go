package repository

import (
	"context"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// ScanEventRepository define el puerto de persistencia del diario de escaneos (DIP).
// El diario es solo de auditoría: el ERP sigue siendo la fuente de verdad de las rutas.
type ScanEventRepository interface {
	Record(ctx context.Context, ev *entity.ScanEvent) error
	ListByDocument(ctx context.Context, headerID int64, limit, offset int) ([]*entity.ScanEvent, error)
}
