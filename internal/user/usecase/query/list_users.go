package query

import (
	"context"
	"strings"

	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// Pagination bounds
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Role   string
	Limit  int
	Offset int
}

// UserPage is one page of users
type UserPage struct {
	Users  []domain.User `json:"users"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) (*UserPage, error) {
	role := strings.ToUpper(strings.TrimSpace(query.Role))
	if role != "" && !domain.ValidRole(role) {
		return nil, apperror.InvalidArgument("Invalid role: %s", query.Role)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	users, total, err := h.repo.FindAll(ctx, domain.UserFilter{Role: role, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return &UserPage{Users: users, Total: total, Limit: limit, Offset: offset}, nil
}
