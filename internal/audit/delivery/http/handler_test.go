package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/audit/audittest"
	"github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/audit/usecase/query"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/pkg/auth"
)

func TestAuditRoutesAreAdminOnly(t *testing.T) {
	repo := audittest.NewMemoryRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.AuditLog{Action: domain.ActionCreate, ResourceType: domain.ResourceItem, UserID: "a1"}))

	tokens := auth.NewTokenManager("secret", time.Hour)
	router := mux.NewRouter()
	NewAuditHandler(query.NewListAuditLogsHandler(repo), query.NewGetAuditStatsHandler(repo)).
		RegisterRoutes(router, middleware.NewAuthenticator(tokens, nil))

	admin, err := tokens.GenerateToken("a1", "admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)
	user, err := tokens.GenerateToken("u1", "user@example.com", auth.RoleUser)
	require.NoError(t, err)

	for _, path := range []string{"/api/audit", "/api/audit/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+user)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)

		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+admin)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
