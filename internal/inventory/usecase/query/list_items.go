package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

// ListItemsQuery represents the query to list items
type ListItemsQuery struct {
	Search       string
	Category     string
	Location     string
	LowStockOnly bool
	SortBy       string
	SortDesc     bool
	Limit        int
	Offset       int
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	store domain.Store
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(store domain.Store) *ListItemsHandler {
	return &ListItemsHandler{store: store}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) (*Page[domain.Item], error) {
	limit, offset := normalize(query.Limit, query.Offset)

	items, total, err := h.store.Items().FindAll(ctx, domain.ItemFilter{
		Search:       query.Search,
		Category:     query.Category,
		Location:     query.Location,
		LowStockOnly: query.LowStockOnly,
		SortBy:       query.SortBy,
		SortDesc:     query.SortDesc,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}

	return &Page[domain.Item]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}
