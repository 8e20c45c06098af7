package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/repository"
)

var _ repository.GeneratedDocumentRepository = (*GeneratedDocumentRepo)(nil)

// GeneratedDocumentRepo registro de documentos generados sobre PostgreSQL.
type GeneratedDocumentRepo struct {
	q Querier
}

// NewGeneratedDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGeneratedDocumentRepository(q Querier) *GeneratedDocumentRepo {
	return &GeneratedDocumentRepo{q: q}
}

// Create persiste la cabecera. (document_type, header_id) es único.
func (r *GeneratedDocumentRepo) Create(ctx context.Context, doc *entity.GeneratedDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO generated_documents (id, document_type, header_id, document_no, operator_id, customer_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.DocumentType, doc.HeaderID, doc.DocumentNo, doc.OperatorID, nullable(doc.CustomerCode), doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("documento %s/%d: %w", doc.DocumentType, doc.HeaderID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create generated document: %w", err)
	}
	return nil
}

// CreateLines copia las claves de correlación de las líneas con COPY.
func (r *GeneratedDocumentRepo) CreateLines(ctx context.Context, documentID string, lines []entity.GeneratedLine) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, []any{documentID, i + 1, l.ClientKey, l.ClientGuid, l.StockCode, l.Quantity})
	}
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"generated_document_lines"},
		[]string{"document_id", "position", "client_key", "client_guid", "stock_code", "quantity"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy generated lines: %w", err)
	}
	return nil
}

// GetByHeaderID documento y líneas por id de cabecera del ERP. nil si no existe.
func (r *GeneratedDocumentRepo) GetByHeaderID(ctx context.Context, headerID int64) (*entity.GeneratedDocument, error) {
	query := `
		SELECT id, document_type, header_id, document_no, operator_id, COALESCE(customer_code, ''), created_at
		FROM generated_documents WHERE header_id = $1
		ORDER BY created_at DESC LIMIT 1`
	var d entity.GeneratedDocument
	err := r.q.QueryRow(ctx, query, headerID).Scan(
		&d.ID, &d.DocumentType, &d.HeaderID, &d.DocumentNo, &d.OperatorID, &d.CustomerCode, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get generated document: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT client_key, client_guid, stock_code, quantity
		FROM generated_document_lines WHERE document_id = $1 ORDER BY position`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("list generated lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.GeneratedLine, error) {
		var l entity.GeneratedLine
		err := row.Scan(&l.ClientKey, &l.ClientGuid, &l.StockCode, &l.Quantity)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan generated lines: %w", err)
	}
	d.Lines = lines
	return &d, nil
}

// ListByOperator documentos generados por el operario, más recientes primero (sin líneas).
func (r *GeneratedDocumentRepo) ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]*entity.GeneratedDocument, error) {
	limit, offset = pageBounds(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, document_type, header_id, document_no, operator_id, COALESCE(customer_code, ''), created_at
		FROM generated_documents WHERE operator_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, operatorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list generated documents: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.GeneratedDocument, 0)
	for rows.Next() {
		var d entity.GeneratedDocument
		if err := rows.Scan(&d.ID, &d.DocumentType, &d.HeaderID, &d.DocumentNo, &d.OperatorID, &d.CustomerCode, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("generated document: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
