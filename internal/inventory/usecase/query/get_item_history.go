package query

import (
	"context"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// GetItemHistoryQuery represents the query to get the action history of one item
type GetItemHistoryQuery struct {
	ItemID string
	Limit  int
	Offset int
}

// ItemHistory is an item together with a page of its actions
type ItemHistory struct {
	Item    *domain.Item         `json:"item"`
	Actions *Page[domain.Action] `json:"actions"`
}

// GetItemHistoryHandler handles get item history query
type GetItemHistoryHandler struct {
	store domain.Store
}

// NewGetItemHistoryHandler creates a new get item history handler
func NewGetItemHistoryHandler(store domain.Store) *GetItemHistoryHandler {
	return &GetItemHistoryHandler{store: store}
}

// Handle returns NotFound for unknown items rather than an empty history
func (h *GetItemHistoryHandler) Handle(ctx context.Context, query GetItemHistoryQuery) (*ItemHistory, error) {
	if query.ItemID == "" {
		return nil, apperror.InvalidArgument("Item ID is required")
	}

	item, err := h.store.Items().FindByID(ctx, query.ItemID)
	if err != nil {
		return nil, err
	}

	limit, offset := normalize(query.Limit, query.Offset)
	actions, total, err := h.store.Actions().FindAll(ctx, domain.ActionFilter{
		ItemID: query.ItemID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []domain.Action{}
	}

	return &ItemHistory{
		Item:    item,
		Actions: &Page[domain.Action]{Items: actions, Total: total, Limit: limit, Offset: offset},
	}, nil
}
