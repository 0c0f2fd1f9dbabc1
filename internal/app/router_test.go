package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/config"
	"github.com/tair/warehouse-inventory/internal/alert"
	alerthttp "github.com/tair/warehouse-inventory/internal/alert/delivery/http"
	"github.com/tair/warehouse-inventory/internal/audit/audittest"
	audithttp "github.com/tair/warehouse-inventory/internal/audit/delivery/http"
	auditquery "github.com/tair/warehouse-inventory/internal/audit/usecase/query"
	grpcDelivery "github.com/tair/warehouse-inventory/internal/inventory/delivery/grpc"
	inventoryhttp "github.com/tair/warehouse-inventory/internal/inventory/delivery/http"
	"github.com/tair/warehouse-inventory/internal/inventory/inventorytest"
	invcommand "github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	invquery "github.com/tair/warehouse-inventory/internal/inventory/usecase/query"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/realtime"
	"github.com/tair/warehouse-inventory/internal/report"
	reporthttp "github.com/tair/warehouse-inventory/internal/report/delivery/http"
	"github.com/tair/warehouse-inventory/internal/user"
	userhttp "github.com/tair/warehouse-inventory/internal/user/delivery/http"
	usercommand "github.com/tair/warehouse-inventory/internal/user/usecase/command"
	userquery "github.com/tair/warehouse-inventory/internal/user/usecase/query"
	"github.com/tair/warehouse-inventory/internal/user/usertest"
	"github.com/tair/warehouse-inventory/pkg/auth"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type testApp struct {
	handler http.Handler
	store   *inventorytest.MemoryStore
	events  *inventorytest.RecordingSink
	users   *usertest.MemoryRepository
}

func newTestApp(t *testing.T, pingErr error) *testApp {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			ServiceName:    "inventory-test",
			AllowedOrigins: []string{"*"},
			RequestTimeout: 5 * time.Second,
		},
	}

	store := inventorytest.NewMemoryStore()
	events := &inventorytest.RecordingSink{}
	logs := audittest.NewMemoryRepository()
	users := usertest.NewMemoryRepository()
	recorder := &inventorytest.RecordingRecorder{}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authn := middleware.NewAuthenticator(tokens, user.NewStatusChecker(users))
	hooks := invcommand.NewHooks(events, recorder)

	hub := realtime.NewHub(authn, cfg.Server.AllowedOrigins)
	t.Cleanup(hub.Close)

	handlers := Handlers{
		Inventory: inventoryhttp.NewInventoryHandler(
			invcommand.NewApplyStockActionHandler(store, hooks),
			invcommand.NewCreateItemHandler(store, hooks),
			invcommand.NewUpdateItemHandler(store, hooks),
			invcommand.NewDeleteItemHandler(store, hooks),
			invcommand.NewBulkCreateHandler(store, hooks),
			invcommand.NewBulkUpdateHandler(store, hooks),
			invcommand.NewBulkStockUpdateHandler(store, hooks),
			invcommand.NewBulkDeleteHandler(store, hooks),
			invquery.NewGetItemHandler(store),
			invquery.NewListItemsHandler(store),
			invquery.NewListLowStockHandler(store),
			invquery.NewListActionsHandler(store),
			invquery.NewGetItemHistoryHandler(store),
		),
		Alerts:  alerthttp.NewAlertHandler(alert.NewEngine(store.Items())),
		Reports: reporthttp.NewReportHandler(report.NewService(store, nil)),
		Audit: audithttp.NewAuditHandler(
			auditquery.NewListAuditLogsHandler(logs),
			auditquery.NewGetAuditStatsHandler(logs),
		),
		Users: userhttp.NewUserHandler(
			usercommand.NewRegisterUserHandler(users, tokens),
			usercommand.NewLoginUserHandler(users, tokens),
			usercommand.NewUpdateProfileHandler(users),
			usercommand.NewCreateUserHandler(users, recorder),
			usercommand.NewChangeRoleHandler(users, recorder),
			usercommand.NewToggleActiveHandler(users, recorder),
			usercommand.NewDeleteUserHandler(users, recorder),
			userquery.NewGetUserHandler(users),
			userquery.NewListUsersHandler(users),
			userquery.NewGetStatsHandler(users),
		),
		Hub: hub,
	}

	monitor := grpcDelivery.NewHealthMonitor(fakePinger{err: pingErr}, 0)
	limiter := middleware.NewRateLimiter(nil, 0, 0)

	return &testApp{
		handler: ProvideRouter(cfg, handlers, authn, limiter, monitor),
		store:   store,
		events:  events,
		users:   users,
	}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestHealthReportsDatabaseState(t *testing.T) {
	healthy := newTestApp(t, nil)
	rec := healthy.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	down := newTestApp(t, errors.New("connection refused"))
	rec = down.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Database unavailable")
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t, nil)
	rec := a.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newTestApp(t, nil)

	for _, path := range []string{"/api/inventory", "/api/alerts", "/api/reports/dashboard", "/api/audit"} {
		rec := a.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminFlowThroughRouter(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	seeded, err := user.SeedAdmin(ctx, a.users, user.AdminSeed{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, seeded)
	adminToken := a.login(t, "admin@example.com", "secret123")

	rec := a.do(t, http.MethodPost, "/api/inventory", adminToken, map[string]interface{}{
		"sku":         "WID-1",
		"name":        "Widget",
		"category":    "Parts",
		"location":    "A1",
		"stock_level": 10,
		"min_stock":   5,
		"unit_price":  "2.50",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	rec = a.do(t, http.MethodPost, "/api/inventory/"+created.Data.ID+"/actions", adminToken, map[string]interface{}{
		"type":     "REMOVE_STOCK",
		"quantity": 7,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	item, ok := a.store.Item(created.Data.ID)
	require.True(t, ok)
	assert.Equal(t, 3, item.StockLevel)
	assert.NotEmpty(t, a.events.Events())

	rec = a.do(t, http.MethodGet, "/api/alerts", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "WID-1")

	rec = a.do(t, http.MethodGet, "/api/audit", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegularUserCannotReachAdminRoutes(t *testing.T) {
	a := newTestApp(t, nil)

	rec := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "clerk@example.com",
		"password": "secret123",
		"name":     "Clerk",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := a.login(t, "clerk@example.com", "secret123")

	rec = a.do(t, http.MethodGet, "/api/inventory", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodPost, "/api/inventory", token, map[string]interface{}{"sku": "X"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
