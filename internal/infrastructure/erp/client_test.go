package erp_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/erp"
)

type observation struct{ op, outcome string }

type spyObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (s *spyObserver) ObserveGateway(op, outcome string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs = append(s.obs, observation{op, outcome})
}

func newServer(t *testing.T, h http.HandlerFunc) (*erp.Client, *spyObserver) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	obs := &spyObserver{}
	return erp.NewClient(erp.Config{BaseURL: srv.URL + "/", BranchCode: "01", Timeout: 2 * time.Second}, obs), obs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sobre de respuesta
// ──────────────────────────────────────────────────────────────────────────────

func TestLookupStockByBarcode_DesenvuelveData(t *testing.T) {
	var gotAuth, gotBranch, gotPath string
	c, obs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBranch = r.Header.Get("X-Branch-Code")
		gotPath = r.URL.Path
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []map[string]any{{"stockCode": "A1", "stockName": "Vida M6"}},
			"message": "",
			"errors":  []any{},
		})
	})

	ctx := ports.WithBearerToken(context.Background(), "tok-123")
	recs, err := c.LookupStockByBarcode(ctx, "8690000000017")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A1", recs[0].StockCode)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "01", gotBranch)
	assert.Equal(t, "/api/stocks/by-barcode/8690000000017", gotPath)
	assert.Equal(t, []observation{{"lookup_barcode", "ok"}}, obs.obs)
}

func TestListAssignedLines_DataNulaEsListaVacia(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shipment/headers/50/lines", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": nil})
	})

	lines, err := c.ListAssignedLines(context.Background(), entity.DocTypeShipment, 50)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestSuccessFalse_EsErrorRemoto(t *testing.T) {
	c, obs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"data":    nil,
			"message": "Miktar sipariş kalanını aşıyor",
			"errors":  []any{"satır 1", map[string]string{"field": "quantity", "message": "fazla"}},
		})
	})

	_, err := c.AddRoute(context.Background(), entity.DocTypeShipment, entity.AddRouteRequest{HeaderID: 50, LineID: 7})
	require.Error(t, err)

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Miktar sipariş kalanını aşıyor", re.Message)
	assert.Equal(t, []string{"satır 1", "quantity: fazla"}, re.Errors)
	assert.NotErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Equal(t, []observation{{"add_route", "remote"}}, obs.obs)
}

func TestFalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := erp.NewClient(erp.Config{BaseURL: base, Timeout: time.Second}, nil)
	err := c.CompleteDocument(context.Background(), entity.DocTypeShipment, 50)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.False(t, domain.IsRemote(err))
}

func TestRespuestaIlegible5xx(t *testing.T) {
	c, obs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := c.ListAssignedDocuments(context.Background(), entity.DocTypeTransfer)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Equal(t, []observation{{"list_assigned", "transport"}}, obs.obs)
}

func TestNoAutorizado(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.SearchStock(context.Background(), "vida")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateDocument_EnviaPeticionCompleta(t *testing.T) {
	var got map[string]any
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transfer/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"headerId": 900, "documentNo": "TR-900"},
		})
	})

	req := entity.GenerateRequest{
		Header: entity.GenerateHeader{DocumentType: entity.DocTypeTransfer, Type: 1, SourceWarehouse: "10", TargetWarehouse: "20"},
		Lines: []entity.GenerateLine{{
			ClientKey: "k1", ClientGuid: "g1", StockCode: "A1", Quantity: decimal.NewFromInt(5),
		}},
		LineSerials:   []entity.GenerateLineSerial{{LineClientKey: "k1", LineGroupGuid: "g1", Quantity: decimal.NewFromInt(5)}},
		TerminalLines: []entity.TerminalLine{{TerminalUserID: 0}},
	}
	res, err := c.GenerateDocument(context.Background(), entity.DocTypeTransfer, req)
	require.NoError(t, err)
	assert.Equal(t, entity.GenerateResult{HeaderID: 900, DocumentNo: "TR-900"}, res)

	header := got["header"].(map[string]any)
	assert.Equal(t, float64(1), header["type"])
	assert.Len(t, got["lines"], 1)
	assert.Len(t, got["lineSerials"], 1)
	serial := got["lineSerials"].([]any)[0].(map[string]any)
	assert.Equal(t, "k1", serial["lineClientKey"])
}

func TestDeleteRoute_SinData(t *testing.T) {
	var method, path string
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "silindi"})
	})

	require.NoError(t, c.DeleteRoute(context.Background(), entity.DocTypeWarehouseOutbound, 33))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/warehouse-outbound/routes/33", path)
}
