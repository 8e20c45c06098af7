package movement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

type lineTotals struct {
	collected decimal.Decimal
	routes    []entity.Route
}

// Ledger vista de solo lectura de lo recolectado, reconstruida desde cero en cada fetch.
// No se parchea localmente: tras crear/borrar rutas o completar hay que volver a pedirla.
type Ledger struct {
	byLine     map[int64]*lineTotals
	routeCount int
}

// BuildLedger agrupa las rutas por línea del documento y suma cantidades.
// Cada ruta se resuelve a su línea por importLineId; si ese id no aparece entre las
// líneas de importación recibidas, cuenta para la línea del ítem que la contiene.
func BuildLedger(items []entity.CollectedBarcodeItem) *Ledger {
	importToLine := make(map[int64]int64, len(items))
	for _, it := range items {
		importToLine[it.ImportLine.ID] = it.ImportLine.LineID
	}
	l := &Ledger{byLine: make(map[int64]*lineTotals, len(items))}
	for _, it := range items {
		for _, r := range it.Routes {
			lineID, ok := importToLine[r.ImportLineID]
			if !ok {
				lineID = it.ImportLine.LineID
			}
			t := l.byLine[lineID]
			if t == nil {
				t = &lineTotals{collected: decimal.Zero}
				l.byLine[lineID] = t
			}
			t.collected = t.collected.Add(r.Quantity)
			t.routes = append(t.routes, r)
			l.routeCount++
		}
	}
	return l
}

// CollectedQuantity suma de route.quantity para la línea.
func (l *Ledger) CollectedQuantity(lineID int64) decimal.Decimal {
	if l == nil {
		return decimal.Zero
	}
	if t := l.byLine[lineID]; t != nil {
		return t.collected
	}
	return decimal.Zero
}

// Routes rutas de la línea, en el orden recibido.
func (l *Ledger) Routes(lineID int64) []entity.Route {
	if l == nil {
		return nil
	}
	if t := l.byLine[lineID]; t != nil {
		out := make([]entity.Route, len(t.routes))
		copy(out, t.routes)
		return out
	}
	return nil
}

// TotalCollectedCount número total de rutas en todas las líneas (para la barra de progreso).
func (l *Ledger) TotalCollectedCount() int {
	if l == nil {
		return 0
	}
	return l.routeCount
}
