package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/auth"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

// ActiveChecker reports whether a user may still act. Tokens outlive
// deactivation, so the check runs on every authenticated request.
type ActiveChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// Authenticator validates bearer tokens and enforces roles
type Authenticator struct {
	tokens *auth.TokenManager
	users  ActiveChecker
}

// NewAuthenticator creates an authenticator. users may be nil.
func NewAuthenticator(tokens *auth.TokenManager, users ActiveChecker) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// WithClaims stores claims in ctx
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims of the authenticated caller
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// Authenticate validates a raw token and checks that its user is still active
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}

	if a.users != nil {
		active, err := a.users.IsActive(ctx, claims.UserID)
		if err != nil {
			logger.Warn(ctx).Err(err).Str("user_id", claims.UserID).Msg("Failed to check user status")
			return nil, apperror.Unauthorized("Invalid or expired token")
		}
		if !active {
			return nil, apperror.Unauthorized("User account is inactive")
		}
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httpx.RespondError(w, r, apperror.Unauthorized("Authorization header required"))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			httpx.RespondError(w, r, apperror.Unauthorized("Invalid authorization header format"))
			return
		}

		claims, err := a.Authenticate(r.Context(), parts[1])
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireAdmin rejects authenticated callers without the admin role
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if !claims.IsAdmin() {
			httpx.RespondError(w, r, apperror.Forbidden("Admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// Auth is RequireAuth for handler funcs
func (a *Authenticator) Auth(next http.HandlerFunc) http.Handler {
	return a.RequireAuth(next)
}

// Admin is RequireAdmin for handler funcs
func (a *Authenticator) Admin(next http.HandlerFunc) http.Handler {
	return a.RequireAdmin(next)
}
