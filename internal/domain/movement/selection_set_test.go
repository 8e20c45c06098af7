package movement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

func orderCandidate(orderNo, stock string, remaining int64) entity.Candidate {
	return entity.CandidateFromOrderLine(entity.OrderLine{
		OrderID:            1,
		OrderLineID:        11,
		OrderNo:            orderNo,
		StockCode:          stock,
		StockName:          "Stock " + stock,
		OrderedQty:         decimal.NewFromInt(remaining),
		RemainingForImport: decimal.NewFromInt(remaining),
	})
}

func freeCandidate(stock string) entity.Candidate {
	return entity.CandidateFromStock(entity.StockRecord{StockCode: stock, StockName: "Stock " + stock})
}

// ──────────────────────────────────────────────────────────────────────────────
// Claves de identidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCandidateKey(t *testing.T) {
	assert.Equal(t, "SIP-1-A1", orderCandidate("SIP-1", "A1", 3).Key())
	assert.Equal(t, "stock-A1", freeCandidate("A1").Key())
}

// ──────────────────────────────────────────────────────────────────────────────
// Toggle
// ──────────────────────────────────────────────────────────────────────────────

func TestToggle_SiembraRestantePorImportarEnModoOrden(t *testing.T) {
	s := movement.NewSelectionSet()
	assert.True(t, s.Toggle(orderCandidate("SIP-1", "A1", 7)))

	it, ok := s.Get("SIP-1-A1")
	require.True(t, ok)
	assert.True(t, it.TransferQuantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, it.IsSelected)
}

func TestToggle_SiembraCeroEnModoLibre(t *testing.T) {
	s := movement.NewSelectionSet()
	s.Toggle(freeCandidate("A1"))

	it, ok := s.Get("stock-A1")
	require.True(t, ok)
	assert.True(t, it.TransferQuantity.IsZero())
}

func TestToggle_DosVecesVuelveAlEstadoPrevio(t *testing.T) {
	s := movement.NewSelectionSet()
	s.Toggle(orderCandidate("SIP-1", "B2", 1))
	before := s.Items()

	c := orderCandidate("SIP-1", "A1", 5)
	s.Toggle(c)
	s.Toggle(c)

	assert.Equal(t, before, s.Items())
}

func TestToggle_SegundoToggleDescartaEdiciones(t *testing.T) {
	s := movement.NewSelectionSet()
	c := orderCandidate("SIP-1", "A1", 5)
	s.Toggle(c)
	require.NoError(t, s.UpdateDetail(c.Key(), movement.DetailLotNo, "L-9"))
	s.SetQuantity(c, "2")

	s.Toggle(c) // baja
	s.Toggle(c) // alta de nuevo

	it, _ := s.Get(c.Key())
	assert.Empty(t, it.LotNo, "la baja descarta el lote editado")
	assert.True(t, it.TransferQuantity.Equal(decimal.NewFromInt(5)), "vuelve a sembrarse el restante")
}

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestSetQuantity_InsertaYActualiza(t *testing.T) {
	s := movement.NewSelectionSet()
	c := freeCandidate("A1")

	assert.True(t, s.SetQuantity(c, "3"))
	assert.True(t, s.SetQuantity(c, "4,5"))

	require.Equal(t, 1, s.Len(), "una sola entrada por clave")
	it, _ := s.Get(c.Key())
	assert.Equal(t, "4.5", it.TransferQuantity.String())
}

func TestSetQuantity_CeroVacioONoNumericoElimina(t *testing.T) {
	for _, raw := range []string{"0", "", "  ", "abc", "-2", "0,0"} {
		s := movement.NewSelectionSet()
		c := freeCandidate("A1")
		s.SetQuantity(c, "5")

		assert.False(t, s.SetQuantity(c, raw), "entrada %q debe eliminar", raw)
		assert.Equal(t, 0, s.Len(), "entrada %q debe eliminar", raw)
	}
}

func TestSetQuantity_CeroSobreAusenteEsNoOp(t *testing.T) {
	s := movement.NewSelectionSet()
	s.SetQuantity(freeCandidate("B2"), "1")
	before := s.Items()

	s.SetQuantity(freeCandidate("A1"), "0")

	assert.Equal(t, before, s.Items())
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateDetail / Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateDetail_FusionaCampo(t *testing.T) {
	s := movement.NewSelectionSet()
	c := freeCandidate("A1")
	s.SetQuantity(c, "1")

	require.NoError(t, s.UpdateDetail(c.Key(), movement.DetailSerialNo, "SN-1"))
	require.NoError(t, s.UpdateDetail(c.Key(), movement.DetailTargetCellCode, "R-01"))

	it, _ := s.Get(c.Key())
	assert.Equal(t, "SN-1", it.SerialNo)
	assert.Equal(t, "R-01", it.TargetCellCode)
}

func TestUpdateDetail_AusenteEsNoOp(t *testing.T) {
	s := movement.NewSelectionSet()
	assert.NoError(t, s.UpdateDetail("stock-X", movement.DetailLotNo, "L1"))
	assert.Equal(t, 0, s.Len())
}

func TestUpdateDetail_CampoDesconocido(t *testing.T) {
	s := movement.NewSelectionSet()
	c := freeCandidate("A1")
	s.SetQuantity(c, "1")

	err := s.UpdateDetail(c.Key(), movement.DetailField("color"), "rojo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove_Idempotente(t *testing.T) {
	s := movement.NewSelectionSet()
	c := freeCandidate("A1")
	s.SetQuantity(c, "1")

	s.Remove(c.Key())
	s.Remove(c.Key())

	assert.Equal(t, 0, s.Len())
}

func TestItems_ConservaOrdenDeInsercion(t *testing.T) {
	s := movement.NewSelectionSet()
	s.SetQuantity(freeCandidate("C"), "1")
	s.SetQuantity(freeCandidate("A"), "1")
	s.SetQuantity(freeCandidate("B"), "1")

	var ids []string
	for _, it := range s.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"stock-C", "stock-A", "stock-B"}, ids)
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]string{
		"5":        "5",
		" 2,5 ":    "2.5",
		"1.250,75": "1250.75",
		"0.5":      "0.5",
	}
	for raw, want := range cases {
		q, ok := movement.ParseQuantity(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, q.String(), raw)
	}
	_, ok := movement.ParseQuantity("NaN")
	assert.False(t, ok)
}
