package repository

import (
	"context"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// GeneratedDocumentRepository registro local de documentos aceptados por el ERP
// con sus claves de correlación (clientKey/clientGuid) por línea.
type GeneratedDocumentRepository interface {
	Create(ctx context.Context, doc *entity.GeneratedDocument) error
	CreateLines(ctx context.Context, documentID string, lines []entity.GeneratedLine) error
	GetByHeaderID(ctx context.Context, headerID int64) (*entity.GeneratedDocument, error)
	ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]*entity.GeneratedDocument, error)
}
