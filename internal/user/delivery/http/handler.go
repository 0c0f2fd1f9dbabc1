package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/user/usecase/command"
	"github.com/tair/warehouse-inventory/internal/user/usecase/query"
)

// UserHandler handles HTTP requests for authentication and user administration
type UserHandler struct {
	// Command handlers
	registerHandler     *command.RegisterUserHandler
	loginHandler        *command.LoginUserHandler
	profileHandler      *command.UpdateProfileHandler
	createHandler       *command.CreateUserHandler
	changeRoleHandler   *command.ChangeRoleHandler
	toggleActiveHandler *command.ToggleActiveHandler
	deleteHandler       *command.DeleteUserHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler
	statsHandler   *query.GetStatsHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	profileHandler *command.UpdateProfileHandler,
	createHandler *command.CreateUserHandler,
	changeRoleHandler *command.ChangeRoleHandler,
	toggleActiveHandler *command.ToggleActiveHandler,
	deleteHandler *command.DeleteUserHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	statsHandler *query.GetStatsHandler,
) *UserHandler {
	return &UserHandler{
		registerHandler:     registerHandler,
		loginHandler:        loginHandler,
		profileHandler:      profileHandler,
		createHandler:       createHandler,
		changeRoleHandler:   changeRoleHandler,
		toggleActiveHandler: toggleActiveHandler,
		deleteHandler:       deleteHandler,
		getUserHandler:      getUserHandler,
		listHandler:         listHandler,
		statsHandler:        statsHandler,
	}
}

// RegisterRoutes registers all user routes. limit wraps the public auth routes.
func (h *UserHandler) RegisterRoutes(router *mux.Router, authn *middleware.Authenticator, limit mux.MiddlewareFunc) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	// Public routes
	router.Handle("/api/auth/register", limit(http.HandlerFunc(h.Register))).Methods("POST")
	router.Handle("/api/auth/login", limit(http.HandlerFunc(h.Login))).Methods("POST")

	// Authenticated routes
	router.Handle("/api/users/me", authn.Auth(h.GetProfile)).Methods("GET")
	router.Handle("/api/users/me", authn.Auth(h.UpdateProfile)).Methods("PUT")

	// Admin routes
	router.Handle("/api/admin/users", authn.Admin(h.ListUsers)).Methods("GET")
	router.Handle("/api/admin/users", authn.Admin(h.CreateUser)).Methods("POST")
	router.Handle("/api/admin/users/{id}", authn.Admin(h.GetUser)).Methods("GET")
	router.Handle("/api/admin/users/{id}", authn.Admin(h.DeleteUser)).Methods("DELETE")
	router.Handle("/api/admin/users/{id}/role", authn.Admin(h.ChangeRole)).Methods("PUT")
	router.Handle("/api/admin/users/{id}/toggle-active", authn.Admin(h.ToggleActive)).Methods("PUT")
	router.Handle("/api/admin/stats", authn.Admin(h.GetStats)).Methods("GET")
}

func callerID(r *http.Request) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.UserID
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req command.RegisterUserCommand
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	resp, err := h.registerHandler.Handle(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusCreated, "User registered successfully", resp)
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req command.LoginUserCommand
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Login successful", resp)
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: callerID(r)})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", user)
}

// UpdateProfile handles PUT /api/users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req command.UpdateProfileCommand
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	req.UserID = callerID(r)

	user, err := h.profileHandler.Handle(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "Profile updated successfully", user)
}

// ListUsers handles GET /api/admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := httpx.Pagination(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	page, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{
		Role:   r.URL.Query().Get("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", page)
}

// CreateUser handles POST /api/admin/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req command.CreateUserCommand
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	req.ActorID = callerID(r)

	user, err := h.createHandler.Handle(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusCreated, "User created successfully", user)
}

// GetUser handles GET /api/admin/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", user)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.deleteHandler.Handle(r.Context(), command.DeleteUserCommand{
		ActorID: callerID(r),
		UserID:  mux.Vars(r)["id"],
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "User deleted successfully", nil)
}

// ChangeRole handles PUT /api/admin/users/{id}/role
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.changeRoleHandler.Handle(r.Context(), command.ChangeRoleCommand{
		ActorID: callerID(r),
		UserID:  mux.Vars(r)["id"],
		Role:    req.Role,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "User role updated successfully", user)
}

// ToggleActive handles PUT /api/admin/users/{id}/toggle-active
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	user, err := h.toggleActiveHandler.Handle(r.Context(), command.ToggleActiveCommand{
		ActorID: callerID(r),
		UserID:  mux.Vars(r)["id"],
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	msg := "User deactivated successfully"
	if user.IsActive {
		msg = "User activated successfully"
	}
	httpx.RespondData(w, http.StatusOK, msg, user)
}

// GetStats handles GET /api/admin/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, "", stats)
}
