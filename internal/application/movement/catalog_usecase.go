package movement

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

// CatalogUseCase expone órdenes y stock libre como candidatos seleccionables.
type CatalogUseCase struct {
	reader ports.CatalogReader
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(reader ports.CatalogReader) *CatalogUseCase {
	return &CatalogUseCase{reader: reader}
}

// OrderHeaders cabeceras de órdenes de la contraparte.
func (uc *CatalogUseCase) OrderHeaders(ctx context.Context, docType, customerCode string) ([]entity.OrderHeader, error) {
	if _, err := movement.RuleFor(docType); err != nil {
		return nil, err
	}
	if strings.TrimSpace(customerCode) == "" {
		return nil, &domain.ValidationError{Field: "customerCode", Reason: "obligatorio"}
	}
	headers, err := uc.reader.ListOrderHeaders(ctx, docType, customerCode)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	return headers, nil
}

// OrderCandidates líneas de orden como candidatos. orderNo vacío devuelve todas las órdenes
// de la contraparte.
func (uc *CatalogUseCase) OrderCandidates(ctx context.Context, docType, customerCode, orderNo string) ([]entity.Candidate, error) {
	if _, err := movement.RuleFor(docType); err != nil {
		return nil, err
	}
	if strings.TrimSpace(customerCode) == "" {
		return nil, &domain.ValidationError{Field: "customerCode", Reason: "obligatorio"}
	}
	lines, err := uc.reader.ListOrderLines(ctx, docType, customerCode)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de orden: %w", err)
	}
	out := make([]entity.Candidate, 0, len(lines))
	for _, l := range lines {
		if orderNo != "" && l.OrderNo != orderNo {
			continue
		}
		out = append(out, entity.CandidateFromOrderLine(l))
	}
	return out, nil
}

// StockCandidates búsqueda de stock libre (modo sin orden).
func (uc *CatalogUseCase) StockCandidates(ctx context.Context, query string) ([]entity.Candidate, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, &domain.ValidationError{Field: "query", Reason: "obligatorio"}
	}
	records, err := uc.reader.SearchStock(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("buscar stock: %w", err)
	}
	out := make([]entity.Candidate, 0, len(records))
	for _, r := range records {
		out = append(out, entity.CandidateFromStock(r))
	}
	return out, nil
}
