package query

import (
	"context"
	"time"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// ListActionsQuery represents the query to list stock actions
type ListActionsQuery struct {
	ItemID    string
	UserID    string
	Type      domain.ActionType
	Category  string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// ListActionsHandler handles list actions query
type ListActionsHandler struct {
	store domain.Store
}

// NewListActionsHandler creates a new list actions handler
func NewListActionsHandler(store domain.Store) *ListActionsHandler {
	return &ListActionsHandler{store: store}
}

// Handle executes the list actions query, newest first
func (h *ListActionsHandler) Handle(ctx context.Context, query ListActionsQuery) (*Page[domain.Action], error) {
	if query.Type != "" && !query.Type.Valid() {
		return nil, apperror.InvalidArgument("Invalid action type: %s", query.Type)
	}
	if query.StartDate != nil && query.EndDate != nil && query.EndDate.Before(*query.StartDate) {
		return nil, apperror.InvalidArgument("end_date must not be before start_date")
	}
	limit, offset := normalize(query.Limit, query.Offset)

	actions, total, err := h.store.Actions().FindAll(ctx, domain.ActionFilter{
		ItemID:      query.ItemID,
		UserID:      query.UserID,
		Type:        query.Type,
		Category:    query.Category,
		Location:    query.Location,
		StartDate:   query.StartDate,
		EndDate:     query.EndDate,
		IncludeItem: true,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []domain.Action{}
	}

	return &Page[domain.Action]{Items: actions, Total: total, Limit: limit, Offset: offset}, nil
}
