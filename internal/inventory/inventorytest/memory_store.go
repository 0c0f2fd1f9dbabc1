// Package inventorytest provides an in-memory domain.Store for tests.
package inventorytest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

type state struct {
	items    map[string]domain.Item
	itemSeq  map[string]int
	actions  []domain.Action
	sequence int
}

func (s *state) clone() *state {
	c := &state{
		items:    make(map[string]domain.Item, len(s.items)),
		itemSeq:  make(map[string]int, len(s.itemSeq)),
		actions:  append([]domain.Action(nil), s.actions...),
		sequence: s.sequence,
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.itemSeq {
		c.itemSeq[k] = v
	}
	return c
}

// MemoryStore implements domain.Store in memory. Transactions are
// serialized and roll back to a snapshot when fn returns an error.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state
	now  func() time.Time

	failures map[string]error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		st: &state{
			items:   map[string]domain.Item{},
			itemSeq: map[string]int{},
		},
		now:      func() time.Time { return time.Now().UTC() },
		failures: map[string]error{},
	}
}

// SetClock overrides the time source used for timestamps
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn makes every call of op return err until cleared with a nil err.
// Ops are named "Items.Create", "Actions.Create" and so on.
func (s *MemoryStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *MemoryStore) failure(op string) error {
	return s.failures[op]
}

// Seed inserts items directly, bypassing hooks and actions
func (s *MemoryStore) Seed(items ...domain.Item) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	seeded := make([]domain.Item, 0, len(items))
	for _, item := range items {
		s.insertItem(&item)
		seeded = append(seeded, item)
	}
	return seeded
}

// SeedActions inserts actions directly
func (s *MemoryStore) SeedActions(actions ...domain.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, action := range actions {
		s.insertAction(&action)
	}
}

// AllActions returns every stored action in insertion order
func (s *MemoryStore) AllActions() []domain.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Action(nil), s.st.actions...)
}

// Item returns a stored item by id
func (s *MemoryStore) Item(id string) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.st.items[id]
	return item, ok
}

func (s *MemoryStore) insertItem(item *domain.Item) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if !domain.ValidID(item.ID) {
		panic(fmt.Sprintf("inventorytest: item id %q is not a uuid", item.ID))
	}
	now := s.now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}
	s.st.sequence++
	s.st.items[item.ID] = *item
	s.st.itemSeq[item.ID] = s.st.sequence
}

func (s *MemoryStore) insertAction(action *domain.Action) {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = s.now()
	}
	stored := *action
	stored.Item = nil
	s.st.actions = append(s.st.actions, stored)
}

func (s *MemoryStore) Items() domain.ItemRepository {
	return &memoryItems{s: s}
}

func (s *MemoryStore) Actions() domain.ActionRepository {
	return &memoryActions{s: s}
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

type memoryItems struct {
	s *MemoryStore
}

func (r *memoryItems) Create(ctx context.Context, item *domain.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.st.items {
		if existing.SKU == item.SKU {
			return apperror.Conflict("Item with SKU %s already exists", item.SKU)
		}
	}
	r.s.insertItem(item)
	return nil
}

func (r *memoryItems) CreateBatch(ctx context.Context, items []*domain.Item) error {
	for _, item := range items {
		if err := r.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryItems) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.FindByID"); err != nil {
		return nil, err
	}
	if !domain.ValidID(id) {
		return nil, apperror.NotFound("Item %s not found", id)
	}
	item, ok := r.s.st.items[id]
	if !ok {
		return nil, apperror.NotFound("Item %s not found", id)
	}
	return &item, nil
}

func (r *memoryItems) FindByIDForUpdate(ctx context.Context, id string) (*domain.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryItems) FindBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.st.items {
		if item.SKU == sku {
			found := item
			return &found, nil
		}
	}
	return nil, apperror.NotFound("Item with SKU %s not found", sku)
}

func (r *memoryItems) FindExistingSKUs(ctx context.Context, skus []string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[string]bool, len(skus))
	for _, sku := range skus {
		wanted[sku] = true
	}
	existing := []string{}
	for _, item := range r.s.st.items {
		if wanted[item.SKU] {
			existing = append(existing, item.SKU)
		}
	}
	sort.Strings(existing)
	return existing, nil
}

func (r *memoryItems) matching(filter domain.ItemFilter) []domain.Item {
	var ids map[string]bool
	if len(filter.ItemIDs) > 0 {
		ids = make(map[string]bool, len(filter.ItemIDs))
		for _, id := range filter.ItemIDs {
			ids[id] = true
		}
	}

	var items []domain.Item
	for _, item := range r.s.st.items {
		if filter.Search != "" && !containsFold(item.Name, filter.Search) &&
			!containsFold(item.SKU, filter.Search) && !containsFold(item.Description, filter.Search) {
			continue
		}
		if filter.Category != "" && !containsFold(item.Category, filter.Category) {
			continue
		}
		if filter.Location != "" && !containsFold(item.Location, filter.Location) {
			continue
		}
		if ids != nil && !ids[item.ID] {
			continue
		}
		if filter.LowStockOnly && item.StockLevel > item.MinStock {
			continue
		}
		items = append(items, item)
	}
	return items
}

func (r *memoryItems) FindAll(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.FindAll"); err != nil {
		return nil, 0, err
	}

	items := r.matching(filter)
	seq := r.s.st.itemSeq
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch filter.SortBy {
		case "name":
			if filter.SortDesc {
				return a.Name > b.Name
			}
			return a.Name < b.Name
		case "stock_level":
			if filter.SortDesc {
				return a.StockLevel > b.StockLevel
			}
			return a.StockLevel < b.StockLevel
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return seq[a.ID] > seq[b.ID]
		}
	})

	total := int64(len(items))
	return paginate(items, filter.Limit, filter.Offset), total, nil
}

func (r *memoryItems) FindLowStock(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.FindLowStock"); err != nil {
		return nil, err
	}

	filter.LowStockOnly = true
	items := r.matching(filter)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].StockLevel != items[j].StockLevel {
			return items[i].StockLevel < items[j].StockLevel
		}
		return items[i].Name < items[j].Name
	})
	return paginate(items, filter.Limit, filter.Offset), nil
}

func (r *memoryItems) Update(ctx context.Context, item *domain.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.Update"); err != nil {
		return err
	}
	if _, ok := r.s.st.items[item.ID]; !ok {
		return apperror.NotFound("Item %s not found", item.ID)
	}
	for id, existing := range r.s.st.items {
		if id != item.ID && existing.SKU == item.SKU {
			return apperror.Conflict("Item with SKU %s already exists", item.SKU)
		}
	}
	item.UpdatedAt = r.s.now()
	r.s.st.items[item.ID] = *item
	return nil
}

func (r *memoryItems) UpdateStockLevel(ctx context.Context, id string, stockLevel int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.UpdateStockLevel"); err != nil {
		return err
	}
	item, ok := r.s.st.items[id]
	if !ok {
		return apperror.NotFound("Item %s not found", id)
	}
	if stockLevel < 0 {
		return apperror.Internal(nil, "stock level check constraint violated")
	}
	item.StockLevel = stockLevel
	item.UpdatedAt = r.s.now()
	r.s.st.items[id] = item
	return nil
}

func (r *memoryItems) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Items.DeleteByIDs"); err != nil {
		return 0, err
	}
	var deleted int64
	for _, id := range domain.ValidIDs(ids) {
		if _, ok := r.s.st.items[id]; ok {
			delete(r.s.st.items, id)
			delete(r.s.st.itemSeq, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryItems) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.st.items)), nil
}

type memoryActions struct {
	s *MemoryStore
}

func (r *memoryActions) Create(ctx context.Context, action *domain.Action) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Actions.Create"); err != nil {
		return err
	}
	if _, ok := r.s.st.items[action.ItemID]; !ok {
		return apperror.Internal(nil, "action references unknown item %s", action.ItemID)
	}
	if action.EventID != nil {
		for _, existing := range r.s.st.actions {
			if existing.EventID != nil && *existing.EventID == *action.EventID {
				return apperror.Conflict("Event %s already applied", *action.EventID)
			}
		}
	}
	r.s.insertAction(action)
	return nil
}

func (r *memoryActions) FindAll(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Actions.FindAll"); err != nil {
		return nil, 0, err
	}

	var matched []domain.Action
	// newest first; later inserts win ties
	for i := len(r.s.st.actions) - 1; i >= 0; i-- {
		action := r.s.st.actions[i]
		if filter.ItemID != "" && action.ItemID != filter.ItemID {
			continue
		}
		if filter.UserID != "" && action.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && action.Type != filter.Type {
			continue
		}
		if filter.StartDate != nil && action.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && action.CreatedAt.After(*filter.EndDate) {
			continue
		}
		item, hasItem := r.s.st.items[action.ItemID]
		if filter.Category != "" && (!hasItem || !containsFold(item.Category, filter.Category)) {
			continue
		}
		if filter.Location != "" && (!hasItem || !containsFold(item.Location, filter.Location)) {
			continue
		}
		if filter.IncludeItem && hasItem {
			owner := item
			action.Item = &owner
		}
		matched = append(matched, action)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return paginate(matched, filter.Limit, filter.Offset), total, nil
}

func (r *memoryActions) FindByEventID(ctx context.Context, eventID string) (*domain.Action, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Actions.FindByEventID"); err != nil {
		return nil, err
	}
	for _, action := range r.s.st.actions {
		if action.EventID != nil && *action.EventID == eventID {
			found := action
			return &found, nil
		}
	}
	return nil, apperror.NotFound("No action for event %s", eventID)
}

func (r *memoryActions) DeleteByItemIDs(ctx context.Context, itemIDs []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make(map[string]bool, len(itemIDs))
	for _, id := range domain.ValidIDs(itemIDs) {
		ids[id] = true
	}
	kept := r.s.st.actions[:0:0]
	var deleted int64
	for _, action := range r.s.st.actions {
		if ids[action.ItemID] {
			deleted++
			continue
		}
		kept = append(kept, action)
	}
	r.s.st.actions = kept
	return deleted, nil
}

func (r *memoryActions) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.st.actions[:0:0]
	var deleted int64
	for _, action := range r.s.st.actions {
		if action.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, action)
	}
	r.s.st.actions = kept
	return deleted, nil
}

func (r *memoryActions) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.st.actions)), nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func paginate[T any](values []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(values) {
			return []T{}
		}
		values = values[offset:]
	}
	if limit > 0 && limit < len(values) {
		values = values[:limit]
	}
	return values
}
