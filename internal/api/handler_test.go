package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"inventory/m/internal/auth"
	"inventory/m/internal/database"
	"inventory/m/internal/metrics"
	"inventory/m/internal/migrations"
	"inventory/m/internal/service"
	"inventory/m/internal/store"
)

type testAPI struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "inventory.db")
	require.NoError(t, migrations.Run("sqlite", dsn))
	db, err := database.Connect("sqlite", dsn, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := metrics.New()
	svc := service.New(service.Deps{
		Store:   store.New(db),
		Hasher:  auth.Bcrypt{Cost: bcrypt.MinCost},
		Tokens:  auth.NewJWT("test-secret", time.Hour),
		Metrics: m,
	})
	srv := httptest.NewServer(New(svc, zap.NewNop(), m, Options{RequestTimeout: 5 * time.Second}).Router())
	t.Cleanup(srv.Close)
	return &testAPI{t: t, server: srv}
}

func (a *testAPI) do(method, path string, body any) (int, map[string]any) {
	a.t.Helper()
	status, raw := a.raw(method, path, body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(a.t, json.Unmarshal(raw, &out))
	}
	return status, out
}

func (a *testAPI) list(path string) []map[string]any {
	a.t.Helper()
	status, raw := a.raw(http.MethodGet, path, nil)
	require.Equal(a.t, http.StatusOK, status, string(raw))
	var out []map[string]any
	require.NoError(a.t, json.Unmarshal(raw, &out))
	return out
}

func (a *testAPI) raw(method, path string, body any) (int, []byte) {
	a.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(a.t, err)
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, a.server.URL+path, r)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

func (a *testAPI) login() {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "clerk@example.com", "password": "secret1", "username": "clerk",
	})
	require.Equal(a.t, http.StatusCreated, status, body)
	a.token = body["token"].(string)
}

func id(body map[string]any) int64 {
	return int64(body["id"].(float64))
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestAPI(t)

	status, body := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, raw := a.raw(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `inventory_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestAuthRequired(t *testing.T) {
	a := newTestAPI(t)

	status, body := a.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "missing bearer token", body["error"])

	a.token = "not-a-token"
	status, body = a.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid token", body["error"])
}

func TestAuthEndpoints(t *testing.T) {
	a := newTestAPI(t)
	a.login()

	status, body := a.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"email": "CLERK@example.com", "password": "secret1", "username": "again",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email already registered", body["error"])

	status, _ = a.do(http.MethodPost, "/api/auth/reset-password", map[string]string{"newPassword": "changed1"})
	assert.Equal(t, http.StatusOK, status)

	status, body = a.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "clerk@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", body["error"])

	status, body = a.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "clerk@example.com", "password": "changed1"})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "clerk", user["username"])
	assert.NotContains(t, user, "password")
}

func TestInventoryFlow(t *testing.T) {
	a := newTestAPI(t)
	a.login()

	status, cat := a.do(http.MethodPost, "/api/categories/create", map[string]any{"name": "Produce"})
	require.Equal(t, http.StatusCreated, status, cat)

	status, body := a.do(http.MethodPost, "/api/categories", map[string]any{"name": "Produce"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "category already exists", body["error"])

	status, prod := a.do(http.MethodPost, "/api/products", map[string]any{
		"name": "Apples", "quantity": 10, "price": 9.5, "categoryId": id(cat),
	})
	require.Equal(t, http.StatusCreated, status, prod)
	assert.Equal(t, "in_stock", prod["status"])
	assert.Equal(t, "Produce", prod["category"])

	status, budget := a.do(http.MethodPost, "/api/budgets/create", map[string]any{"name": "Groceries", "amount": 100})
	require.Equal(t, http.StatusCreated, status, budget)

	status, purchase := a.do(http.MethodPost, "/api/purchases/create", map[string]any{
		"productId": id(prod), "budgetId": id(budget), "quantity": 10, "costPrice": 5,
	})
	require.Equal(t, http.StatusCreated, status, purchase)
	assert.Equal(t, "Apples", purchase["productName"])

	status, body = a.do(http.MethodGet, fmt.Sprintf("/api/budgets/%d", id(budget)), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 50.0, body["amount"])
	assert.Len(t, body["purchases"], 1)

	status, body = a.do(http.MethodPost, "/api/purchases", map[string]any{
		"productId": id(prod), "budgetId": id(budget), "quantity": 20, "costPrice": 5,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "insufficient budget", body["error"])

	status, sale := a.do(http.MethodPost, "/api/sales/create", map[string]any{
		"purchaseId": id(purchase), "quantity": 4, "salePrice": 8, "saleDate": "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, status, sale)
	assert.Equal(t, 32.0, sale["total"])

	status, body = a.do(http.MethodGet, fmt.Sprintf("/api/purchases/%d", id(purchase)), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 6.0, body["quantity"])

	status, body = a.do(http.MethodPost, "/api/sales", map[string]any{
		"purchaseId": id(purchase), "quantity": 7, "salePrice": 8,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "not enough stock in the purchase", body["error"])

	status, rev := a.do(http.MethodGet, fmt.Sprintf("/api/revenue/%d", id(sale)), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 12.0, rev["revenue"])
	assert.Equal(t, 8.0, rev["salePrice"])
	assert.Equal(t, 5.0, rev["costPrice"])
	assert.Equal(t, "Apples", rev["productName"])

	revs := a.list("/api/revenue?month=2024-03")
	require.Len(t, revs, 1)
	assert.Equal(t, float64(id(sale)), revs[0]["saleId"])
	assert.Empty(t, a.list("/api/revenue?month=2024-04"))

	summary := a.list("/api/revenue/summary?year=2024")
	require.Len(t, summary, 12)
	assert.Equal(t, "Mar", summary[2]["month"])
	assert.Equal(t, 32.0, summary[2]["income"])
	assert.Equal(t, 20.0, summary[2]["bills"])

	status, body = a.do(http.MethodDelete, fmt.Sprintf("/api/purchases/%d", id(purchase)), nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "purchase is referenced by sales", body["error"])

	cats := a.list("/api/categories")
	require.Len(t, cats, 1)
	assert.Len(t, cats[0]["products"], 1)
}

func TestRequestErrors(t *testing.T) {
	a := newTestAPI(t)
	a.login()

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		status  int
		message string
	}{
		{"invalid id", http.MethodGet, "/api/products/abc", nil, http.StatusBadRequest, "invalid id"},
		{"missing product", http.MethodGet, "/api/products/42", nil, http.StatusNotFound, "product not found"},
		{"missing sale revenue", http.MethodGet, "/api/revenue/42", nil, http.StatusNotFound, "sale not found"},
		{"bad month", http.MethodGet, "/api/revenue?month=March", nil, http.StatusBadRequest, "month must be in YYYY-MM format"},
		{"bad year", http.MethodGet, "/api/revenue/summary?year=abc", nil, http.StatusBadRequest, "year must be a number"},
		{"delete missing category", http.MethodDelete, "/api/categories/9", nil, http.StatusNotFound, "category not found"},
		{"zero sale quantity", http.MethodPost, "/api/sales", map[string]any{"purchaseId": 1, "quantity": 0, "salePrice": 1}, http.StatusBadRequest, "sale quantity must be greater than 0"},
		{"negative budget", http.MethodPost, "/api/budgets", map[string]any{"name": "x", "amount": -5}, http.StatusBadRequest, "amount must be a positive number greater than zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := a.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body["error"])
		})
	}

	status, body := a.do(http.MethodPost, "/api/categories", `{"name":"x","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "invalid request body")
}

func TestRequestIDIsEchoed(t *testing.T) {
	a := newTestAPI(t)

	req, err := http.NewRequest(http.MethodGet, a.server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))

	resp, err = http.Get(a.server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, resp.Header.Get(requestIDHeader), 36)
}
