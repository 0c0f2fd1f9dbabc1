package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/inventorytest"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/report"
	"github.com/tair/warehouse-inventory/pkg/auth"
)

func newRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()

	store := inventorytest.NewMemoryStore()
	store.Seed(domain.Item{SKU: "HAM", Name: "Hammer", Category: "Tools", Location: "A1", StockLevel: 2, MinStock: 1, UnitPrice: decimal.RequireFromString("9.99")})

	handler := NewReportHandler(report.NewService(store, nil))
	handler.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	tokens := auth.NewTokenManager("secret", time.Hour)
	router := mux.NewRouter()
	handler.RegisterRoutes(router, middleware.NewAuthenticator(tokens, nil))

	token, err := tokens.GenerateToken("u-1", "u@example.com", auth.RoleUser)
	require.NoError(t, err)
	return router, token
}

func serve(router *mux.Router, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInventoryReportRoute(t *testing.T) {
	router, token := newRouter(t)

	rec := serve(router, "/api/reports/inventory?category=tool", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpx.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	summary := resp.Data.(map[string]interface{})["summary"].(map[string]interface{})
	assert.Equal(t, "19.98", summary["total_value"])

	rec = serve(router, "/api/reports/inventory?start_date=2026-02-01&end_date=2026-01-01", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardRoute(t *testing.T) {
	router, token := newRouter(t)

	rec := serve(router, "/api/reports/dashboard", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stock_accuracy":"98.5"`)
}

func TestExportRoute(t *testing.T) {
	router, token := newRouter(t)

	rec := serve(router, "/api/reports/export?format=csv", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="inventory-report-20260102-030405.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "SKU,Name,Category"))

	rec = serve(router, "/api/reports/export?format=xml", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
