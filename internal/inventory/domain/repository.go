package domain

import (
	"context"
	"time"
)

// ItemFilter narrows item listings. Category and Location match case-insensitive substrings.
type ItemFilter struct {
	Search       string
	Category     string
	Location     string
	ItemIDs      []string
	LowStockOnly bool
	SortBy       string
	SortDesc     bool
	Limit        int
	Offset       int
}

// ActionFilter narrows action listings.
type ActionFilter struct {
	ItemID    string
	UserID    string
	Type      ActionType
	Category  string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	// IncludeItem loads the owning item on each action.
	IncludeItem bool
	Limit       int
	Offset      int
}

// ItemRepository defines the contract for item data access
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	CreateBatch(ctx context.Context, items []*Item) error
	FindByID(ctx context.Context, id string) (*Item, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*Item, error)
	FindBySKU(ctx context.Context, sku string) (*Item, error)
	FindExistingSKUs(ctx context.Context, skus []string) ([]string, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]Item, int64, error)
	FindLowStock(ctx context.Context, filter ItemFilter) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	UpdateStockLevel(ctx context.Context, id string, stockLevel int) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ActionRepository defines the contract for action data access
type ActionRepository interface {
	Create(ctx context.Context, action *Action) error
	FindAll(ctx context.Context, filter ActionFilter) ([]Action, int64, error)
	FindByEventID(ctx context.Context, eventID string) (*Action, error)
	DeleteByItemIDs(ctx context.Context, itemIDs []string) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Store groups the repositories that must change together
type Store interface {
	Items() ItemRepository
	Actions() ActionRepository
	// Transaction runs fn against a store bound to a single database
	// transaction. The transaction commits when fn returns nil.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
