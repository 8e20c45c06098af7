package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/scanner"
)

type fakeCollector struct {
	inputs    []appmovement.CollectInput
	collected decimal.Decimal
	stale     bool
}

var line7 = entity.AssignedLine{ID: 7, StockCode: "A1", Quantity: decimal.NewFromInt(10)}

func (f *fakeCollector) Progress(context.Context, string, int64) (movement.Progress, error) {
	return movement.Progress{HeaderID: 50, State: "collecting"}, nil
}

func (f *fakeCollector) Collect(_ context.Context, in appmovement.CollectInput) (appmovement.CollectResult, error) {
	f.inputs = append(f.inputs, in)
	if in.Barcode != "A1" {
		return appmovement.CollectResult{}, domain.ErrStockNotInOrder
	}
	if f.stale {
		return appmovement.CollectResult{Route: entity.Route{ID: 99}, Stale: true}, nil
	}
	f.collected = f.collected.Add(in.Quantity)
	remaining := line7.Quantity.Sub(f.collected)
	lp := movement.LineProgress{Line: line7, Collected: f.collected, Remaining: remaining, Overage: remaining.IsNegative()}
	return appmovement.CollectResult{
		LineProgress: lp,
		Progress:     movement.Progress{HeaderID: 50, State: "collecting", Lines: []movement.LineProgress{lp}, TotalCollectedCount: len(f.inputs)},
	}, nil
}

func TestRunCollect_LeeYRegistra(t *testing.T) {
	uc := &fakeCollector{collected: decimal.Zero}
	dev := scanner.NewWedgeDevice(strings.NewReader("3*A1\nZ9\n0*A1\n8*A1\n"))
	var out bytes.Buffer

	err := runCollect(context.Background(), dev, &out, uc, "op-1", "shipment", 50)
	require.NoError(t, err)

	require.Len(t, uc.inputs, 3, "la cantidad cero no llega al caso de uso")
	assert.Equal(t, "A1", uc.inputs[0].Barcode)
	assert.Equal(t, "3", uc.inputs[0].Quantity.String())
	assert.Equal(t, "1", uc.inputs[1].Quantity.String(), "sin cantidad vale 1")
	assert.Equal(t, "op-1", uc.inputs[0].OperatorID)

	s := out.String()
	assert.Contains(t, s, "✓ A1 +3")
	assert.Contains(t, s, "✗ Z9")
	assert.Contains(t, s, "! A1 +8", "el sobrante se marca")
	assert.Contains(t, s, "SOBRANTE")
}

func TestRunCollect_RutaRegistradaSinProgreso(t *testing.T) {
	uc := &fakeCollector{collected: decimal.Zero, stale: true}
	dev := scanner.NewWedgeDevice(strings.NewReader("2*A1\n"))
	var out bytes.Buffer

	require.NoError(t, runCollect(context.Background(), dev, &out, uc, "op-1", "shipment", 50))

	s := out.String()
	assert.Contains(t, s, "✓ A1 +2  registrada, progreso pendiente")
	assert.NotContains(t, s, "✗")
}

func TestNewRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"collect", "pick-list", "migrate"} {
		c, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}
