package movement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// CollectionState estado de recolección de un documento.
type CollectionState int

const (
	StateAwaitingLines CollectionState = iota // líneas asignadas aún no cargadas
	StateCollecting                           // líneas cargadas, cero o más rutas
	StateComplete                             // terminal; solo por acción explícita
)

func (s CollectionState) String() string {
	switch s {
	case StateAwaitingLines:
		return "awaiting_lines"
	case StateCollecting:
		return "collecting"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// LotDetails atributos opcionales de lote/celda de un escaneo.
type LotDetails struct {
	SerialNo       string `json:"serialNo,omitempty"`
	SerialNo2      string `json:"serialNo2,omitempty"`
	LotNo          string `json:"lotNo,omitempty"`
	BatchNo        string `json:"batchNo,omitempty"`
	SourceCellCode string `json:"sourceCellCode,omitempty"`
	TargetCellCode string `json:"targetCellCode,omitempty"`
}

// LineProgress cantidades de una línea. Remaining puede ser negativo: la sobre-recolección
// se señala con Overage pero nunca se bloquea.
type LineProgress struct {
	Line       entity.AssignedLine `json:"line"`
	Collected  decimal.Decimal     `json:"collectedQuantity"`
	Remaining  decimal.Decimal     `json:"remainingQuantity"`
	Overage    bool                `json:"overage"`
	RouteCount int                 `json:"routeCount"`
}

// Progress vista agregada del documento.
type Progress struct {
	HeaderID            int64          `json:"headerId"`
	State               string         `json:"state"`
	Lines               []LineProgress `json:"lines"`
	TotalCollectedCount int            `json:"totalCollectedCount"`
	// AllCollected es informativo: completar nunca depende de él.
	AllCollected bool `json:"allCollected"`
}

// Reconciler máquina de estados de recolección de un documento asignado.
// Casa escaneos contra las líneas planificadas y expone cantidades recolectadas/restantes.
type Reconciler struct {
	headerID int64
	state    CollectionState
	lines    []entity.AssignedLine
	ledger   *Ledger
}

// NewReconciler crea el reconciliador en AwaitingLines.
func NewReconciler(headerID int64) *Reconciler {
	return &Reconciler{headerID: headerID, state: StateAwaitingLines, ledger: BuildLedger(nil)}
}

// HeaderID id de cabecera del documento.
func (r *Reconciler) HeaderID() int64 { return r.headerID }

// State estado actual.
func (r *Reconciler) State() CollectionState { return r.state }

// Lines líneas asignadas cargadas.
func (r *Reconciler) Lines() []entity.AssignedLine {
	out := make([]entity.AssignedLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// LoadLines carga (o recarga) las líneas asignadas y pasa a Collecting.
func (r *Reconciler) LoadLines(lines []entity.AssignedLine) error {
	if r.state == StateComplete {
		return domain.ErrDocumentCompleted
	}
	r.lines = make([]entity.AssignedLine, len(lines))
	copy(r.lines, lines)
	r.state = StateCollecting
	return nil
}

// ApplyLedger sustituye el ledger por uno recién pedido al ERP.
func (r *Reconciler) ApplyLedger(l *Ledger) {
	if l == nil {
		l = BuildLedger(nil)
	}
	r.ledger = l
}

// Ledger ledger vigente.
func (r *Reconciler) Ledger() *Ledger { return r.ledger }

func (r *Reconciler) ready() error {
	switch r.state {
	case StateAwaitingLines:
		return domain.ErrLinesNotLoaded
	case StateComplete:
		return domain.ErrDocumentCompleted
	}
	return nil
}

// ResolveStock reduce el resultado de la búsqueda por código de barras a cero o un registro.
func (r *Reconciler) ResolveStock(records []entity.StockRecord) (entity.StockRecord, error) {
	if len(records) == 0 || strings.TrimSpace(records[0].StockCode) == "" {
		return entity.StockRecord{}, domain.ErrStockNotFound
	}
	return records[0], nil
}

// Match busca la línea asignada por igualdad exacta de código de stock. Gana la primera:
// códigos repetidos entre líneas no están soportados y se ligan siempre a la primera.
func (r *Reconciler) Match(stockCode string) (entity.AssignedLine, error) {
	if err := r.ready(); err != nil {
		return entity.AssignedLine{}, err
	}
	code := strings.TrimSpace(stockCode)
	for _, l := range r.lines {
		if l.StockCode == code {
			return l, nil
		}
	}
	return entity.AssignedLine{}, domain.ErrStockNotInOrder
}

// PrepareRoute arma la petición de ruta para la línea casada.
func (r *Reconciler) PrepareRoute(line entity.AssignedLine, barcode string, qty decimal.Decimal, lot LotDetails) (entity.AddRouteRequest, error) {
	if err := r.ready(); err != nil {
		return entity.AddRouteRequest{}, err
	}
	if err := ValidateCollectQuantity(qty); err != nil {
		return entity.AddRouteRequest{}, err
	}
	return entity.AddRouteRequest{
		HeaderID:       r.headerID,
		LineID:         line.ID,
		StockCode:      line.StockCode,
		Barcode:        barcode,
		Quantity:       qty,
		SerialNo:       lot.SerialNo,
		SerialNo2:      lot.SerialNo2,
		LotNo:          lot.LotNo,
		BatchNo:        lot.BatchNo,
		SourceCellCode: lot.SourceCellCode,
		TargetCellCode: lot.TargetCellCode,
	}, nil
}

// LineProgress cantidades de una línea concreta.
func (r *Reconciler) LineProgress(line entity.AssignedLine) LineProgress {
	collected := r.ledger.CollectedQuantity(line.ID)
	remaining := line.Quantity.Sub(collected)
	return LineProgress{
		Line:       line,
		Collected:  collected,
		Remaining:  remaining,
		Overage:    remaining.IsNegative(),
		RouteCount: len(r.ledger.Routes(line.ID)),
	}
}

// Progress agrega todas las líneas.
func (r *Reconciler) Progress() Progress {
	p := Progress{
		HeaderID:            r.headerID,
		State:               r.state.String(),
		Lines:               make([]LineProgress, 0, len(r.lines)),
		TotalCollectedCount: r.ledger.TotalCollectedCount(),
		AllCollected:        len(r.lines) > 0,
	}
	for _, l := range r.lines {
		lp := r.LineProgress(l)
		if lp.Remaining.IsPositive() {
			p.AllCollected = false
		}
		p.Lines = append(p.Lines, lp)
	}
	return p
}

// MarkComplete pasa a Complete. No exige que las líneas estén recolectadas:
// completar es decisión del operario.
func (r *Reconciler) MarkComplete() error {
	if r.state == StateComplete {
		return domain.ErrDocumentCompleted
	}
	r.state = StateComplete
	return nil
}
