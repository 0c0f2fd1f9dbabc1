package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/user"
	userhttp "github.com/tair/warehouse-inventory/internal/user/delivery/http"
	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/internal/user/usecase/command"
	"github.com/tair/warehouse-inventory/internal/user/usecase/query"
	"github.com/tair/warehouse-inventory/internal/user/usertest"
	"github.com/tair/warehouse-inventory/pkg/auth"
)

type testServer struct {
	router *mux.Router
	repo   *usertest.MemoryRepository
	tokens *auth.TokenManager
	admin  domain.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := usertest.NewMemoryRepository()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	handler := userhttp.NewUserHandler(
		command.NewRegisterUserHandler(repo, tokens),
		command.NewLoginUserHandler(repo, tokens),
		command.NewUpdateProfileHandler(repo),
		command.NewCreateUserHandler(repo, nil),
		command.NewChangeRoleHandler(repo, nil),
		command.NewToggleActiveHandler(repo, nil),
		command.NewDeleteUserHandler(repo, nil),
		query.NewGetUserHandler(repo),
		query.NewListUsersHandler(repo),
		query.NewGetStatsHandler(repo),
	)

	router := mux.NewRouter()
	handler.RegisterRoutes(router, middleware.NewAuthenticator(tokens, user.NewStatusChecker(repo)), nil)

	admin := repo.Seed(domain.User{Email: "root@example.com", Name: "Root", Role: domain.RoleAdmin, IsActive: true})[0]
	return &testServer{router: router, repo: repo, tokens: tokens, admin: admin}
}

func (s *testServer) token(t *testing.T, u domain.User) string {
	t.Helper()
	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, httpx.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp httpx.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestRegisterLoginAndProfile(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "jane@example.com", "password": "secret1", "name": "Jane",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, resp.Success)
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, rec.Body.String(), `"password"`)

	rec, resp = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	token := data["token"].(string)

	rec, resp = s.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane@example.com", resp.Data.(map[string]interface{})["email"])

	rec, resp = s.do(t, http.MethodPut, "/api/users/me", token, map[string]string{"name": "Janet"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Janet", resp.Data.(map[string]interface{})["name"])

	rec, resp = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", resp.Error)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.token(t, s.admin)

	rec, resp := s.do(t, http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"email": "clerk@example.com", "password": "secret1", "name": "Clerk",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	clerkID := resp.Data.(map[string]interface{})["id"].(string)

	clerk, err := s.repo.FindByID(t.Context(), clerkID)
	require.NoError(t, err)
	clerkToken := s.token(t, *clerk)

	rec, resp = s.do(t, http.MethodGet, "/api/admin/users", clerkToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", resp.Error)

	rec, resp = s.do(t, http.MethodGet, "/api/admin/users?role=USER", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, page["total"])

	rec, _ = s.do(t, http.MethodPut, "/api/admin/users/"+clerkID+"/role", adminToken, map[string]string{"role": "ADMIN"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = s.do(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 2, stats["total_users"])
	assert.EqualValues(t, 2, stats["admin_count"])
	assert.EqualValues(t, 0, stats["user_count"])

	rec, resp = s.do(t, http.MethodPut, "/api/admin/users/"+clerkID+"/toggle-active", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deactivated successfully", resp.Message)

	// the deactivated account's token stops working
	rec, resp = s.do(t, http.MethodGet, "/api/users/me", clerkToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User account is inactive", resp.Error)

	rec, _ = s.do(t, http.MethodDelete, "/api/admin/users/"+s.admin.ID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/admin/users/"+clerkID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/users/"+clerkID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/users/abc", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
