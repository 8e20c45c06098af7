package movement_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/repository"
)

// ── ERPGateway ────────────────────────────────────────────────────────────────

type MockGateway struct {
	mock.Mock
}

var _ ports.ERPGateway = (*MockGateway)(nil)

func (m *MockGateway) ListOrderHeaders(ctx context.Context, docType, customerCode string) ([]entity.OrderHeader, error) {
	args := m.Called(ctx, docType, customerCode)
	return args.Get(0).([]entity.OrderHeader), args.Error(1)
}

func (m *MockGateway) ListOrderLines(ctx context.Context, docType, customerCode string) ([]entity.OrderLine, error) {
	args := m.Called(ctx, docType, customerCode)
	return args.Get(0).([]entity.OrderLine), args.Error(1)
}

func (m *MockGateway) SearchStock(ctx context.Context, query string) ([]entity.StockRecord, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]entity.StockRecord), args.Error(1)
}

func (m *MockGateway) LookupStockByBarcode(ctx context.Context, barcode string) ([]entity.StockRecord, error) {
	args := m.Called(ctx, barcode)
	return args.Get(0).([]entity.StockRecord), args.Error(1)
}

func (m *MockGateway) GenerateDocument(ctx context.Context, docType string, req entity.GenerateRequest) (entity.GenerateResult, error) {
	args := m.Called(ctx, docType, req)
	return args.Get(0).(entity.GenerateResult), args.Error(1)
}

func (m *MockGateway) ListAssignedDocuments(ctx context.Context, docType string) ([]entity.AssignedDocument, error) {
	args := m.Called(ctx, docType)
	return args.Get(0).([]entity.AssignedDocument), args.Error(1)
}

func (m *MockGateway) ListAssignedLines(ctx context.Context, docType string, headerID int64) ([]entity.AssignedLine, error) {
	args := m.Called(ctx, docType, headerID)
	return args.Get(0).([]entity.AssignedLine), args.Error(1)
}

func (m *MockGateway) ListCollectedBarcodes(ctx context.Context, docType string, headerID int64) ([]entity.CollectedBarcodeItem, error) {
	args := m.Called(ctx, docType, headerID)
	return args.Get(0).([]entity.CollectedBarcodeItem), args.Error(1)
}

func (m *MockGateway) AddRoute(ctx context.Context, docType string, req entity.AddRouteRequest) (entity.Route, error) {
	args := m.Called(ctx, docType, req)
	return args.Get(0).(entity.Route), args.Error(1)
}

func (m *MockGateway) DeleteRoute(ctx context.Context, docType string, routeID int64) error {
	args := m.Called(ctx, docType, routeID)
	return args.Error(0)
}

func (m *MockGateway) CompleteDocument(ctx context.Context, docType string, headerID int64) error {
	args := m.Called(ctx, docType, headerID)
	return args.Error(0)
}

// ── Diario de escaneos ────────────────────────────────────────────────────────

type MockJournal struct {
	mock.Mock
}

var _ repository.ScanEventRepository = (*MockJournal)(nil)

func (m *MockJournal) Record(ctx context.Context, ev *entity.ScanEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockJournal) ListByDocument(ctx context.Context, headerID int64, limit, offset int) ([]*entity.ScanEvent, error) {
	args := m.Called(ctx, headerID, limit, offset)
	return args.Get(0).([]*entity.ScanEvent), args.Error(1)
}

// ── Registro de documentos generados (en memoria) ─────────────────────────────

type memGeneratedRepo struct {
	docs  []*entity.GeneratedDocument
	lines map[string][]entity.GeneratedLine
}

func (r *memGeneratedRepo) Create(_ context.Context, doc *entity.GeneratedDocument) error {
	r.docs = append(r.docs, doc)
	return nil
}

func (r *memGeneratedRepo) CreateLines(_ context.Context, documentID string, lines []entity.GeneratedLine) error {
	if r.lines == nil {
		r.lines = make(map[string][]entity.GeneratedLine)
	}
	r.lines[documentID] = append(r.lines[documentID], lines...)
	return nil
}

func (r *memGeneratedRepo) GetByHeaderID(_ context.Context, headerID int64) (*entity.GeneratedDocument, error) {
	for _, d := range r.docs {
		if d.HeaderID == headerID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memGeneratedRepo) ListByOperator(_ context.Context, operatorID string, _, _ int) ([]*entity.GeneratedDocument, error) {
	var out []*entity.GeneratedDocument
	for _, d := range r.docs {
		if d.OperatorID == operatorID {
			out = append(out, d)
		}
	}
	return out, nil
}

// memTxRunner ejecuta fn directamente sobre el repositorio en memoria.
type memTxRunner struct {
	repo *memGeneratedRepo
}

func (r *memTxRunner) RunGenerated(ctx context.Context, fn func(docs repository.GeneratedDocumentRepository) error) error {
	return fn(r.repo)
}

// ── Caché y métricas ──────────────────────────────────────────────────────────

type invalidation struct{ docType, customer string }

type spyCache struct {
	calls []invalidation
}

func (c *spyCache) Invalidate(docType, customerCode string) {
	c.calls = append(c.calls, invalidation{docType, customerCode})
}

type spyRecorder struct {
	outcomes  []string
	generated []string
}

func (r *spyRecorder) ScanOutcome(_, outcome string)    { r.outcomes = append(r.outcomes, outcome) }
func (r *spyRecorder) DocumentGenerated(docType string) { r.generated = append(r.generated, docType) }
