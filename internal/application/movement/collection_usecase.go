package movement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
	"github.com/jhoicas/depo-terminal/internal/domain/repository"
)

// Los documentos completados se recuerdan un tiempo para rechazar operaciones tardías
// sin volver a preguntar al ERP.
const (
	completedTTL      = 12 * time.Hour
	completedCapacity = 1024
)

type sessionKey struct {
	docType  string
	headerID int64
}

// session estado de recolección de un documento con líneas ya cargadas. busy se toma con
// TryLock durante collect/delete/complete (una operación mutante por documento); mu protege rec.
type session struct {
	busy sync.Mutex
	mu   sync.Mutex
	rec  *movement.Reconciler
}

// closed true si el documento se completó mientras alguien retenía la sesión.
func (s *session) closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.State() == movement.StateComplete
}

// CollectionUseCase flujo de recolección en planta: casa escaneos contra las líneas asignadas,
// crea rutas en el ERP y refresca el ledger tras cada mutación.
type CollectionUseCase struct {
	gateway ports.ERPGateway
	journal repository.ScanEventRepository
	metrics Recorder
	log     zerolog.Logger
	now     func() time.Time

	mu        sync.Mutex
	sessions  map[sessionKey]*session
	completed *ttlcache.Cache[sessionKey, struct{}]
}

// CollectionDeps dependencias opcionales de CollectionUseCase.
type CollectionDeps struct {
	Journal repository.ScanEventRepository
	Metrics Recorder
	Logger  zerolog.Logger
}

// NewCollectionUseCase construye el caso de uso.
func NewCollectionUseCase(gateway ports.ERPGateway, deps CollectionDeps) *CollectionUseCase {
	if deps.Metrics == nil {
		deps.Metrics = NopRecorder{}
	}
	return &CollectionUseCase{
		gateway:  gateway,
		journal:  deps.Journal,
		metrics:  deps.Metrics,
		log:      deps.Logger,
		now:      time.Now,
		sessions: make(map[sessionKey]*session),
		completed: ttlcache.New[sessionKey, struct{}](
			ttlcache.WithTTL[sessionKey, struct{}](completedTTL),
			ttlcache.WithCapacity[sessionKey, struct{}](completedCapacity),
			ttlcache.WithDisableTouchOnHit[sessionKey, struct{}](),
		),
	}
}

// CollectInput un escaneo con cantidad.
type CollectInput struct {
	OperatorID string
	DocType    string
	HeaderID   int64
	Barcode    string
	Quantity   decimal.Decimal
	Lot        movement.LotDetails
}

// ScanResult identificación de un escaneo sin cantidad.
type ScanResult struct {
	Stock    entity.StockRecord    `json:"stock"`
	Line     entity.AssignedLine   `json:"line"`
	Progress movement.LineProgress `json:"progress"`
}

// CollectResult ruta creada y progreso recalculado con el ledger recién pedido.
// Stale indica que la ruta quedó creada pero el ledger no se pudo volver a pedir:
// el progreso es el último conocido y no incluye esta lectura.
type CollectResult struct {
	Route        entity.Route          `json:"route"`
	LineProgress movement.LineProgress `json:"lineProgress"`
	Progress     movement.Progress     `json:"progress"`
	Stale        bool                  `json:"stale,omitempty"`
}

// AssignedDocuments documentos del operario para el tipo dado.
func (uc *CollectionUseCase) AssignedDocuments(ctx context.Context, docType string) ([]entity.AssignedDocument, error) {
	if _, err := collectableRule(docType); err != nil {
		return nil, err
	}
	docs, err := uc.gateway.ListAssignedDocuments(ctx, docType)
	if err != nil {
		return nil, fmt.Errorf("listar documentos asignados: %w", err)
	}
	return docs, nil
}

// Progress pide las líneas la primera vez y el ledger siempre, y devuelve la vista agregada.
func (uc *CollectionUseCase) Progress(ctx context.Context, docType string, headerID int64) (movement.Progress, error) {
	s, err := uc.open(ctx, docType, headerID)
	if err != nil {
		return movement.Progress{}, err
	}
	if s.closed() {
		return movement.Progress{}, domain.ErrDocumentCompleted
	}
	if err := uc.refreshLedger(ctx, s, docType, headerID); err != nil {
		return movement.Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Progress(), nil
}

// Scan identifica el código sin registrar cantidad: resuelve el stock y lo casa con una línea.
// Stock inexistente o fuera de la orden no altera el estado.
func (uc *CollectionUseCase) Scan(ctx context.Context, operatorID, docType string, headerID int64, barcode string) (ScanResult, error) {
	s, err := uc.open(ctx, docType, headerID)
	if err != nil {
		return ScanResult{}, err
	}
	ev := uc.event(operatorID, docType, headerID, barcode)

	stock, line, err := uc.identify(ctx, s, barcode)
	if err != nil {
		uc.finish(ctx, ev, err)
		return ScanResult{}, err
	}
	ev.StockCode, ev.LineID, ev.Outcome = stock.StockCode, line.ID, entity.ScanOutcomeMatched
	uc.finish(ctx, ev, nil)

	s.mu.Lock()
	lp := s.rec.LineProgress(line)
	s.mu.Unlock()
	return ScanResult{Stock: stock, Line: line, Progress: lp}, nil
}

// Collect registra un escaneo con cantidad. La cantidad se valida antes de cualquier llamada
// remota; el ledger se vuelve a pedir tras crear la ruta. El sobrante se señala, no se bloquea.
func (uc *CollectionUseCase) Collect(ctx context.Context, in CollectInput) (CollectResult, error) {
	ev := uc.event(in.OperatorID, in.DocType, in.HeaderID, in.Barcode)
	ev.Quantity = in.Quantity
	if err := movement.ValidateCollectQuantity(in.Quantity); err != nil {
		uc.finish(ctx, ev, err)
		return CollectResult{}, err
	}

	s, err := uc.open(ctx, in.DocType, in.HeaderID)
	if err != nil {
		return CollectResult{}, err
	}
	if !s.busy.TryLock() {
		return CollectResult{}, domain.ErrCollectInFlight
	}
	defer s.busy.Unlock()
	if s.closed() {
		return CollectResult{}, domain.ErrDocumentCompleted
	}

	stock, line, err := uc.identify(ctx, s, in.Barcode)
	if err != nil {
		uc.finish(ctx, ev, err)
		return CollectResult{}, err
	}
	ev.StockCode, ev.LineID = stock.StockCode, line.ID

	s.mu.Lock()
	req, err := s.rec.PrepareRoute(line, strings.TrimSpace(in.Barcode), in.Quantity, in.Lot)
	s.mu.Unlock()
	if err != nil {
		uc.finish(ctx, ev, err)
		return CollectResult{}, err
	}

	route, err := uc.gateway.AddRoute(ctx, in.DocType, req)
	if err != nil {
		uc.finish(ctx, ev, err)
		return CollectResult{}, fmt.Errorf("crear ruta: %w", err)
	}
	ev.Outcome = entity.ScanOutcomeAccepted
	uc.finish(ctx, ev, nil)

	// La ruta ya existe en el ERP; sin ledger nuevo se devuelve el último progreso conocido.
	stale := false
	if err := uc.refreshLedger(ctx, s, in.DocType, in.HeaderID); err != nil {
		stale = true
		uc.log.Warn().Err(err).
			Str("doc_type", in.DocType).
			Int64("header_id", in.HeaderID).
			Int64("route_id", route.ID).
			Msg("ruta creada, ledger sin refrescar")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lp := s.rec.LineProgress(line)
	if lp.Overage {
		uc.log.Warn().
			Str("doc_type", in.DocType).
			Int64("header_id", in.HeaderID).
			Int64("line_id", line.ID).
			Str("remaining", lp.Remaining.String()).
			Msg("sobre-recolección")
	}
	return CollectResult{Route: route, LineProgress: lp, Progress: s.rec.Progress(), Stale: stale}, nil
}

// DeleteRoute borra una ruta (desligándola de su paquete si lo tenía) y refresca el ledger.
func (uc *CollectionUseCase) DeleteRoute(ctx context.Context, operatorID, docType string, headerID, routeID int64) (movement.Progress, error) {
	if routeID <= 0 {
		return movement.Progress{}, &domain.ValidationError{Field: "routeId", Reason: "obligatorio"}
	}
	s, err := uc.open(ctx, docType, headerID)
	if err != nil {
		return movement.Progress{}, err
	}
	if !s.busy.TryLock() {
		return movement.Progress{}, domain.ErrCollectInFlight
	}
	defer s.busy.Unlock()
	if s.closed() {
		return movement.Progress{}, domain.ErrDocumentCompleted
	}

	if err := uc.gateway.DeleteRoute(ctx, docType, routeID); err != nil {
		return movement.Progress{}, fmt.Errorf("borrar ruta: %w", err)
	}
	uc.log.Info().
		Str("doc_type", docType).
		Int64("header_id", headerID).
		Int64("route_id", routeID).
		Str("operator", operatorID).
		Msg("ruta borrada")

	if err := uc.refreshLedger(ctx, s, docType, headerID); err != nil {
		return movement.Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Progress(), nil
}

// Complete cierra el documento en el ERP. No exige que todas las líneas estén recolectadas.
// La sesión se libera y el documento queda marcado como completado.
func (uc *CollectionUseCase) Complete(ctx context.Context, operatorID, docType string, headerID int64) error {
	k, s, err := uc.lookup(docType, headerID)
	if err != nil {
		return err
	}
	if s != nil {
		if !s.busy.TryLock() {
			return domain.ErrCollectInFlight
		}
		defer s.busy.Unlock()
		if s.closed() {
			return domain.ErrDocumentCompleted
		}
	}

	if err := uc.gateway.CompleteDocument(ctx, docType, headerID); err != nil {
		return fmt.Errorf("completar documento: %w", err)
	}

	if s != nil {
		s.mu.Lock()
		_ = s.rec.MarkComplete()
		s.rec.ApplyLedger(nil)
		s.mu.Unlock()
	}
	uc.completed.Set(k, struct{}{}, ttlcache.DefaultTTL)
	uc.mu.Lock()
	delete(uc.sessions, k)
	uc.mu.Unlock()

	uc.log.Info().
		Str("doc_type", docType).
		Int64("header_id", headerID).
		Str("operator", operatorID).
		Msg("documento completado")
	return nil
}

// ScanEvents diario de escaneos del documento.
func (uc *CollectionUseCase) ScanEvents(ctx context.Context, headerID int64, limit, offset int) ([]*entity.ScanEvent, error) {
	if uc.journal == nil {
		return []*entity.ScanEvent{}, nil
	}
	return uc.journal.ListByDocument(ctx, headerID, limit, offset)
}

// ── internos ─────────────────────────────────────────────────────────────────

func collectableRule(docType string) (movement.DocumentRule, error) {
	rule, err := movement.RuleFor(docType)
	if err != nil {
		return rule, err
	}
	if !rule.RequiresCollection() {
		return rule, &domain.ValidationError{Field: "docType", Reason: "el documento nace completo, no tiene recolección"}
	}
	return rule, nil
}

// lookup sesión abierta del documento, o nil si no hay. Un documento completado
// devuelve ErrDocumentCompleted.
func (uc *CollectionUseCase) lookup(docType string, headerID int64) (sessionKey, *session, error) {
	k := sessionKey{docType: docType, headerID: headerID}
	if _, err := collectableRule(docType); err != nil {
		return k, nil, err
	}
	if headerID <= 0 {
		return k, nil, &domain.ValidationError{Field: "headerId", Reason: "obligatorio"}
	}
	if uc.completed.Get(k) != nil {
		return k, nil, domain.ErrDocumentCompleted
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return k, uc.sessions[k], nil
}

// open devuelve la sesión del documento. La primera vez pide las líneas asignadas
// (AwaitingLines → Collecting) y solo registra la sesión si el ERP las devuelve.
func (uc *CollectionUseCase) open(ctx context.Context, docType string, headerID int64) (*session, error) {
	k, s, err := uc.lookup(docType, headerID)
	if err != nil || s != nil {
		return s, err
	}
	lines, err := uc.gateway.ListAssignedLines(ctx, docType, headerID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas asignadas: %w", err)
	}
	rec := movement.NewReconciler(headerID)
	if err := rec.LoadLines(lines); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if cur := uc.sessions[k]; cur != nil {
		return cur, nil
	}
	s = &session{rec: rec}
	uc.sessions[k] = s
	return s, nil
}

// OpenSessions número de documentos con sesión de recolección en memoria.
func (uc *CollectionUseCase) OpenSessions() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}

func (uc *CollectionUseCase) refreshLedger(ctx context.Context, s *session, docType string, headerID int64) error {
	items, err := uc.gateway.ListCollectedBarcodes(ctx, docType, headerID)
	if err != nil {
		return fmt.Errorf("listar rutas recolectadas: %w", err)
	}
	ledger := movement.BuildLedger(items)
	s.mu.Lock()
	s.rec.ApplyLedger(ledger)
	s.mu.Unlock()
	return nil
}

// identify resuelve el código de barras en el ERP y lo casa con una línea asignada.
func (uc *CollectionUseCase) identify(ctx context.Context, s *session, barcode string) (entity.StockRecord, entity.AssignedLine, error) {
	code := strings.TrimSpace(barcode)
	if code == "" {
		return entity.StockRecord{}, entity.AssignedLine{}, &domain.ValidationError{Field: "barcode", Reason: "obligatorio"}
	}
	records, err := uc.gateway.LookupStockByBarcode(ctx, code)
	if err != nil {
		return entity.StockRecord{}, entity.AssignedLine{}, fmt.Errorf("buscar código de barras: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stock, err := s.rec.ResolveStock(records)
	if err != nil {
		return entity.StockRecord{}, entity.AssignedLine{}, err
	}
	line, err := s.rec.Match(stock.StockCode)
	if err != nil {
		return stock, entity.AssignedLine{}, err
	}
	return stock, line, nil
}

func (uc *CollectionUseCase) event(operatorID, docType string, headerID int64, barcode string) *entity.ScanEvent {
	return &entity.ScanEvent{
		ID:           uuid.New().String(),
		DocumentType: docType,
		HeaderID:     headerID,
		OperatorID:   operatorID,
		Barcode:      strings.TrimSpace(barcode),
		Quantity:     decimal.Zero,
	}
}

// finish clasifica el resultado, lo registra en el diario y en métricas.
// Un fallo del diario solo se registra en el log: el ERP es la fuente de verdad.
func (uc *CollectionUseCase) finish(ctx context.Context, ev *entity.ScanEvent, err error) {
	if err != nil {
		ev.Outcome = outcomeOf(err)
		ev.Message = err.Error()
	}
	if ev.Outcome == "" {
		return
	}
	ev.CreatedAt = uc.now()
	uc.metrics.ScanOutcome(ev.DocumentType, ev.Outcome)

	logEv := uc.log.Info()
	if err != nil {
		logEv = uc.log.Warn().Err(err)
	}
	logEv.Str("doc_type", ev.DocumentType).
		Int64("header_id", ev.HeaderID).
		Str("operator", ev.OperatorID).
		Str("barcode", ev.Barcode).
		Str("outcome", ev.Outcome).
		Msg("escaneo")

	if uc.journal == nil {
		return
	}
	if jerr := uc.journal.Record(ctx, ev); jerr != nil {
		uc.log.Error().Err(jerr).Int64("header_id", ev.HeaderID).Msg("no se pudo registrar el escaneo")
	}
}

// outcomeOf "" para errores que no son resultado de un escaneo (transporte, documento cerrado).
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return entity.ScanOutcomeInvalidQuantity
	case errors.Is(err, domain.ErrStockNotFound):
		return entity.ScanOutcomeStockNotFound
	case errors.Is(err, domain.ErrStockNotInOrder):
		return entity.ScanOutcomeNotInOrder
	case domain.IsRemote(err):
		return entity.ScanOutcomeRemoteError
	}
	return ""
}
