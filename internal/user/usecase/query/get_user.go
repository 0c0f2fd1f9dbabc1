package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// GetUserQuery represents the query to get a user by ID
type GetUserQuery struct {
	ID string
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*domain.User, error) {
	if query.ID == "" {
		return nil, apperror.InvalidArgument("User ID is required")
	}
	return h.repo.FindByID(ctx, query.ID)
}
