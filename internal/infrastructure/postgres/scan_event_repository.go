package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/repository"
)

var _ repository.ScanEventRepository = (*ScanEventRepo)(nil)

// ScanEventRepo diario de escaneos sobre PostgreSQL (usable con pool o tx).
type ScanEventRepo struct {
	q Querier
}

// NewScanEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScanEventRepository(q Querier) *ScanEventRepo {
	return &ScanEventRepo{q: q}
}

// Record agrega un evento al diario.
func (r *ScanEventRepo) Record(ctx context.Context, ev *entity.ScanEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	var lineID *int64
	if ev.LineID != 0 {
		lineID = &ev.LineID
	}
	query := `
		INSERT INTO scan_events (id, document_type, header_id, operator_id, barcode, stock_code, line_id, quantity, outcome, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		ev.ID, ev.DocumentType, ev.HeaderID, ev.OperatorID, ev.Barcode,
		nullable(ev.StockCode), lineID, ev.Quantity, ev.Outcome, nullable(ev.Message), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record scan event: %w", err)
	}
	return nil
}

// ListByDocument eventos del documento, más recientes primero.
func (r *ScanEventRepo) ListByDocument(ctx context.Context, headerID int64, limit, offset int) ([]*entity.ScanEvent, error) {
	limit, offset = pageBounds(limit, offset)
	query := `
		SELECT id, document_type, header_id, operator_id, barcode, stock_code, line_id, quantity, outcome, message, created_at
		FROM scan_events
		WHERE header_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, headerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list scan events: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.ScanEvent, 0)
	for rows.Next() {
		var ev entity.ScanEvent
		var stockCode, message *string
		var lineID *int64
		if err := rows.Scan(
			&ev.ID, &ev.DocumentType, &ev.HeaderID, &ev.OperatorID, &ev.Barcode,
			&stockCode, &lineID, &ev.Quantity, &ev.Outcome, &message, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if stockCode != nil {
			ev.StockCode = *stockCode
		}
		if message != nil {
			ev.Message = *message
		}
		if lineID != nil {
			ev.LineID = *lineID
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}
