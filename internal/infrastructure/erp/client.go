package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/depo-terminal/internal/application/ports"
	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa ERPGateway.
var _ ports.ERPGateway = (*Client)(nil)

// maxBodyBytes límite de lectura de una respuesta.
const maxBodyBytes = 8 << 20

// Observer recibe la latencia de cada llamada (operación, resultado: ok|remote|transport).
type Observer interface {
	ObserveGateway(operation, outcome string, elapsed time.Duration)
}

// Config parámetros del cliente.
type Config struct {
	BaseURL    string
	BranchCode string
	Timeout    time.Duration
}

// Client adaptador REST del ERP. Reenvía el token del operario tomado del contexto.
type Client struct {
	baseURL    string
	branchCode string
	httpClient *http.Client
	observer   Observer
}

// NewClient construye el cliente. observer puede ser nil.
func NewClient(cfg Config, observer Observer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		branchCode: cfg.BranchCode,
		httpClient: &http.Client{Timeout: timeout},
		observer:   observer,
	}
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

func (c *Client) ListOrderHeaders(ctx context.Context, docType, customerCode string) ([]entity.OrderHeader, error) {
	q := url.Values{"customerCode": {customerCode}}
	var out []entity.OrderHeader
	err := c.do(ctx, "list_order_headers", http.MethodGet, docPath(docType, "orders/headers")+"?"+q.Encode(), nil, &out)
	return nonNil(out), err
}

func (c *Client) ListOrderLines(ctx context.Context, docType, customerCode string) ([]entity.OrderLine, error) {
	q := url.Values{"customerCode": {customerCode}}
	var out []entity.OrderLine
	err := c.do(ctx, "list_order_lines", http.MethodGet, docPath(docType, "orders/lines")+"?"+q.Encode(), nil, &out)
	return nonNil(out), err
}

func (c *Client) SearchStock(ctx context.Context, query string) ([]entity.StockRecord, error) {
	q := url.Values{"q": {query}}
	var out []entity.StockRecord
	err := c.do(ctx, "search_stock", http.MethodGet, "/api/stocks/search?"+q.Encode(), nil, &out)
	return nonNil(out), err
}

func (c *Client) LookupStockByBarcode(ctx context.Context, barcode string) ([]entity.StockRecord, error) {
	var out []entity.StockRecord
	err := c.do(ctx, "lookup_barcode", http.MethodGet, "/api/stocks/by-barcode/"+url.PathEscape(barcode), nil, &out)
	return nonNil(out), err
}

// ── Documentos ────────────────────────────────────────────────────────────────

func (c *Client) GenerateDocument(ctx context.Context, docType string, req entity.GenerateRequest) (entity.GenerateResult, error) {
	var out entity.GenerateResult
	err := c.do(ctx, "generate", http.MethodPost, docPath(docType, "generate"), req, &out)
	return out, err
}

func (c *Client) ListAssignedDocuments(ctx context.Context, docType string) ([]entity.AssignedDocument, error) {
	var out []entity.AssignedDocument
	err := c.do(ctx, "list_assigned", http.MethodGet, docPath(docType, "assigned"), nil, &out)
	return nonNil(out), err
}

func (c *Client) ListAssignedLines(ctx context.Context, docType string, headerID int64) ([]entity.AssignedLine, error) {
	var out []entity.AssignedLine
	err := c.do(ctx, "list_assigned_lines", http.MethodGet, headerPath(docType, headerID, "lines"), nil, &out)
	return nonNil(out), err
}

func (c *Client) ListCollectedBarcodes(ctx context.Context, docType string, headerID int64) ([]entity.CollectedBarcodeItem, error) {
	var out []entity.CollectedBarcodeItem
	err := c.do(ctx, "list_collected", http.MethodGet, headerPath(docType, headerID, "collected-barcodes"), nil, &out)
	return nonNil(out), err
}

// ── Recolección ───────────────────────────────────────────────────────────────

func (c *Client) AddRoute(ctx context.Context, docType string, req entity.AddRouteRequest) (entity.Route, error) {
	var out entity.Route
	err := c.do(ctx, "add_route", http.MethodPost, docPath(docType, "routes"), req, &out)
	return out, err
}

func (c *Client) DeleteRoute(ctx context.Context, docType string, routeID int64) error {
	return c.do(ctx, "delete_route", http.MethodDelete, docPath(docType, "routes/"+strconv.FormatInt(routeID, 10)), nil, nil)
}

func (c *Client) CompleteDocument(ctx context.Context, docType string, headerID int64) error {
	return c.do(ctx, "complete", http.MethodPost, headerPath(docType, headerID, "complete"), nil, nil)
}

// ── Transporte ────────────────────────────────────────────────────────────────

func docPath(docType, rest string) string {
	return "/api/" + url.PathEscape(docType) + "/" + rest
}

func headerPath(docType string, headerID int64, rest string) string {
	return docPath(docType, "headers/"+strconv.FormatInt(headerID, 10)+"/"+rest)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// do ejecuta la llamada y desenvuelve el sobre. success=false devuelve *domain.RemoteError;
// red, timeout, 5xx o cuerpo ilegible envuelven domain.ErrGatewayUnavailable.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		if c.observer == nil {
			return
		}
		outcome := "ok"
		switch {
		case domain.IsRemote(err):
			outcome = "remote"
		case err != nil:
			outcome = "transport"
		}
		c.observer.ObserveGateway(op, outcome, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erp %s: serializar petición: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("erp %s: crear petición: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.branchCode != "" {
		req.Header.Set("X-Branch-Code", c.branchCode)
	}
	if token := ports.BearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erp %s: %w: %w", op, domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("erp %s: leer respuesta: %w: %w", op, domain.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("erp %s: %w", op, domain.ErrUnauthorized)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode < http.StatusBadRequest {
			return fmt.Errorf("erp %s: respuesta ilegible (status %d): %w", op, resp.StatusCode, domain.ErrGatewayUnavailable)
		}
		return &domain.RemoteError{Message: fmt.Sprintf("el ERP respondió %d", resp.StatusCode)}
	}
	if !env.Success {
		return env.remoteError()
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("erp %s: status %d: %w", op, resp.StatusCode, domain.ErrGatewayUnavailable)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("erp %s: decodificar data: %w: %w", op, domain.ErrGatewayUnavailable, err)
	}
	return nil
}

