package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

// ListLowStockQuery represents the query to list items at or below their reorder threshold
type ListLowStockQuery struct {
	Category string
	Location string
	Limit    int
	Offset   int
}

// ListLowStockHandler handles list low stock query
type ListLowStockHandler struct {
	store domain.Store
}

// NewListLowStockHandler creates a new list low stock handler
func NewListLowStockHandler(store domain.Store) *ListLowStockHandler {
	return &ListLowStockHandler{store: store}
}

// Handle returns low stock items ordered by stock level, then name. A zero
// limit returns every match.
func (h *ListLowStockHandler) Handle(ctx context.Context, query ListLowStockQuery) ([]domain.Item, error) {
	items, err := h.store.Items().FindLowStock(ctx, domain.ItemFilter{
		Category: query.Category,
		Location: query.Location,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}
