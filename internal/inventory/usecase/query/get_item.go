package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// GetItemQuery represents the query to get an item
type GetItemQuery struct {
	ID string
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	store domain.Store
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(store domain.Store) *GetItemHandler {
	return &GetItemHandler{store: store}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(ctx context.Context, query GetItemQuery) (*domain.Item, error) {
	if query.ID == "" {
		return nil, apperror.InvalidArgument("Item ID is required")
	}
	return h.store.Items().FindByID(ctx, query.ID)
}
