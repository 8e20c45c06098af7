package movement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

type generateFixture struct {
	gw        *MockGateway
	selection *appmovement.SelectionUseCase
	repo      *memGeneratedRepo
	cache     *spyCache
	metrics   *spyRecorder
	uc        *appmovement.GenerateUseCase
}

func newGenerateFixture() *generateFixture {
	f := &generateFixture{
		gw:        new(MockGateway),
		selection: appmovement.NewSelectionUseCase(),
		repo:      &memGeneratedRepo{},
		cache:     &spyCache{},
		metrics:   &spyRecorder{},
	}
	f.uc = appmovement.NewGenerateUseCase(f.gw, f.selection, movement.NewRequestBuilder(nil, 0), appmovement.GenerateDeps{
		TxRunner:  &memTxRunner{repo: f.repo},
		Generated: f.repo,
		Cache:     f.cache,
		Metrics:   f.metrics,
		Logger:    zerolog.Nop(),
	})
	return f
}

func freeTransferForm() movement.HeaderForm {
	return movement.HeaderForm{Free: true, BranchCode: "1", SourceWarehouse: "10", TargetWarehouse: "20"}
}

func stockCandidate(code string) entity.Candidate {
	return entity.CandidateFromStock(entity.StockRecord{StockCode: code, StockName: "Stock " + code})
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_AceptadoVaciaSeleccionYRegistraClaves(t *testing.T) {
	f := newGenerateFixture()
	_, _, err := f.selection.SetQuantity("op-1", entity.DocTypeTransfer, stockCandidate("A1"), "5")
	require.NoError(t, err)

	f.gw.On("GenerateDocument", mock.Anything, entity.DocTypeTransfer, mock.MatchedBy(func(req entity.GenerateRequest) bool {
		return req.Header.Type == 1 && req.Header.CustomerCode == "" &&
			len(req.Lines) == 1 && req.Lines[0].Quantity.Equal(decimal.NewFromInt(5))
	})).Return(entity.GenerateResult{HeaderID: 900, DocumentNo: "TR-900"}, nil).Once()

	res, err := f.uc.Generate(context.Background(), "op-1", entity.DocTypeTransfer, freeTransferForm())
	require.NoError(t, err)
	assert.Equal(t, int64(900), res.HeaderID)

	items, _ := f.selection.List("op-1", entity.DocTypeTransfer)
	assert.Empty(t, items, "la selección se vacía tras la aceptación")

	require.Len(t, f.repo.docs, 1)
	doc := f.repo.docs[0]
	assert.Equal(t, "TR-900", doc.DocumentNo)
	assert.Equal(t, "op-1", doc.OperatorID)
	require.Len(t, f.repo.lines[doc.ID], 1)
	assert.NotEmpty(t, f.repo.lines[doc.ID][0].ClientKey)

	assert.Equal(t, []invalidation{{entity.DocTypeTransfer, ""}}, f.cache.calls)

	history, err := f.uc.History(context.Background(), "op-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	corr, err := f.uc.Correlation(context.Background(), 900)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, corr.ID)
	_, err = f.uc.Correlation(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{entity.DocTypeTransfer}, f.metrics.generated)
	f.gw.AssertExpectations(t)
}

func TestGenerate_RechazoRemotoConservaSeleccion(t *testing.T) {
	f := newGenerateFixture()
	_, _, _ = f.selection.SetQuantity("op-1", entity.DocTypeTransfer, stockCandidate("A1"), "5")

	remote := &domain.RemoteError{Message: "Depo kapalı"}
	f.gw.On("GenerateDocument", mock.Anything, entity.DocTypeTransfer, mock.Anything).
		Return(entity.GenerateResult{}, remote).Once()

	_, err := f.uc.Generate(context.Background(), "op-1", entity.DocTypeTransfer, freeTransferForm())
	require.Error(t, err)
	assert.True(t, domain.IsRemote(err))

	items, _ := f.selection.List("op-1", entity.DocTypeTransfer)
	assert.Len(t, items, 1, "un fallo no altera la selección")
	assert.Empty(t, f.repo.docs)
	assert.Empty(t, f.cache.calls)
}

func TestGenerate_FalloDeTransporteConservaSeleccion(t *testing.T) {
	f := newGenerateFixture()
	_, _, _ = f.selection.SetQuantity("op-1", entity.DocTypeTransfer, stockCandidate("A1"), "5")

	f.gw.On("GenerateDocument", mock.Anything, entity.DocTypeTransfer, mock.Anything).
		Return(entity.GenerateResult{}, errors.Join(domain.ErrGatewayUnavailable, errors.New("timeout"))).Once()

	_, err := f.uc.Generate(context.Background(), "op-1", entity.DocTypeTransfer, freeTransferForm())
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)

	items, _ := f.selection.List("op-1", entity.DocTypeTransfer)
	assert.Len(t, items, 1)
}

func TestGenerate_SeleccionVaciaNoLlamaAlERP(t *testing.T) {
	f := newGenerateFixture()

	_, err := f.uc.Generate(context.Background(), "op-1", entity.DocTypeTransfer, freeTransferForm())
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	f.gw.AssertNotCalled(t, "GenerateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_CabeceraInvalidaNoLlamaAlERP(t *testing.T) {
	f := newGenerateFixture()
	_, _, _ = f.selection.SetQuantity("op-1", entity.DocTypeTransfer, stockCandidate("A1"), "5")

	form := freeTransferForm()
	form.TargetWarehouse = ""
	_, err := f.uc.Generate(context.Background(), "op-1", entity.DocTypeTransfer, form)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "targetWarehouse", ve.Field)
	f.gw.AssertNotCalled(t, "GenerateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_SeleccionPorOperario(t *testing.T) {
	f := newGenerateFixture()
	_, _, _ = f.selection.SetQuantity("op-1", entity.DocTypeTransfer, stockCandidate("A1"), "5")
	_, _, _ = f.selection.SetQuantity("op-2", entity.DocTypeTransfer, stockCandidate("B2"), "1")

	f.gw.On("GenerateDocument", mock.Anything, entity.DocTypeTransfer, mock.Anything).
		Return(entity.GenerateResult{HeaderID: 1}, nil).Once()

	_, err := f.uc.Generate(context.Background(), "op-1", entity.DocTypeTransfer, freeTransferForm())
	require.NoError(t, err)

	other, _ := f.selection.List("op-2", entity.DocTypeTransfer)
	assert.Len(t, other, 1, "la selección de otro operario no se toca")
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_NoEnviaNiVacia(t *testing.T) {
	f := newGenerateFixture()
	_, _, _ = f.selection.SetQuantity("op-1", entity.DocTypeShipment, stockCandidate("A1"), "2,5")

	form := movement.HeaderForm{Free: true, BranchCode: "1", SourceWarehouse: "10", TargetWarehouse: "99", CustomerCode: "C1"}
	req, err := f.uc.Preview(context.Background(), "op-1", entity.DocTypeShipment, form)
	require.NoError(t, err)

	assert.Equal(t, "", req.Header.TargetWarehouse)
	assert.False(t, req.Header.IsCompleted)
	require.Len(t, req.LineSerials, 1)
	assert.Equal(t, "2.5", req.LineSerials[0].Quantity.String())

	items, _ := f.selection.List("op-1", entity.DocTypeShipment)
	assert.Len(t, items, 1)
	f.gw.AssertNotCalled(t, "GenerateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestSelection_TipoDesconocido(t *testing.T) {
	s := appmovement.NewSelectionUseCase()
	_, err := s.List("op-1", "inventory-count")
	assert.ErrorIs(t, err, domain.ErrUnknownDocType)
}
