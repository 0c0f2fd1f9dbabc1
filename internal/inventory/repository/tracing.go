package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// StoreWithTracing wraps a domain.Store and opens a span around every repository call
type StoreWithTracing struct {
	next domain.Store
}

// NewStoreWithTracing creates a new store with tracing
func NewStoreWithTracing(next domain.Store) *StoreWithTracing {
	return &StoreWithTracing{next: next}
}

func (s *StoreWithTracing) Items() domain.ItemRepository {
	return &itemRepositoryWithTracing{next: s.next.Items()}
}

func (s *StoreWithTracing) Actions() domain.ActionRepository {
	return &actionRepositoryWithTracing{next: s.next.Actions()}
}

// Transaction with tracing
func (s *StoreWithTracing) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	ctx, span := tracer.Start(ctx, "repository.Transaction")
	defer span.End()

	err := s.next.Transaction(ctx, func(tx domain.Store) error {
		return fn(&StoreWithTracing{next: tx})
	})
	return finish(span, err)
}

func finish(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

type itemRepositoryWithTracing struct {
	next domain.ItemRepository
}

func (r *itemRepositoryWithTracing) Create(ctx context.Context, item *domain.Item) error {
	ctx, span := tracer.Start(ctx, "repository.Item.Create",
		trace.WithAttributes(
			attribute.String("item.sku", item.SKU),
			attribute.Int("item.stock_level", item.StockLevel),
		),
	)
	defer span.End()

	if err := finish(span, r.next.Create(ctx, item)); err != nil {
		return err
	}
	span.SetAttributes(attribute.String("item.id", item.ID))
	return nil
}

func (r *itemRepositoryWithTracing) CreateBatch(ctx context.Context, items []*domain.Item) error {
	ctx, span := tracer.Start(ctx, "repository.Item.CreateBatch",
		trace.WithAttributes(attribute.Int("items.count", len(items))),
	)
	defer span.End()

	return finish(span, r.next.CreateBatch(ctx, items))
}

func (r *itemRepositoryWithTracing) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindByID",
		trace.WithAttributes(attribute.String("item.id", id)),
	)
	defer span.End()

	item, err := r.next.FindByID(ctx, id)
	return item, finish(span, err)
}

func (r *itemRepositoryWithTracing) FindByIDForUpdate(ctx context.Context, id string) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindByIDForUpdate",
		trace.WithAttributes(attribute.String("item.id", id)),
	)
	defer span.End()

	item, err := r.next.FindByIDForUpdate(ctx, id)
	if err = finish(span, err); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("item.stock_level", item.StockLevel))
	return item, nil
}

func (r *itemRepositoryWithTracing) FindBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindBySKU",
		trace.WithAttributes(attribute.String("item.sku", sku)),
	)
	defer span.End()

	item, err := r.next.FindBySKU(ctx, sku)
	return item, finish(span, err)
}

func (r *itemRepositoryWithTracing) FindExistingSKUs(ctx context.Context, skus []string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindExistingSKUs",
		trace.WithAttributes(attribute.Int("skus.count", len(skus))),
	)
	defer span.End()

	existing, err := r.next.FindExistingSKUs(ctx, skus)
	return existing, finish(span, err)
}

func (r *itemRepositoryWithTracing) FindAll(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindAll",
		trace.WithAttributes(
			attribute.String("filter.category", filter.Category),
			attribute.String("filter.location", filter.Location),
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	items, total, err := r.next.FindAll(ctx, filter)
	if err = finish(span, err); err != nil {
		return nil, 0, err
	}
	span.SetAttributes(attribute.Int64("items.total", total))
	return items, total, nil
}

func (r *itemRepositoryWithTracing) FindLowStock(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.FindLowStock")
	defer span.End()

	items, err := r.next.FindLowStock(ctx, filter)
	if err = finish(span, err); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("items.count", len(items)))
	return items, nil
}

func (r *itemRepositoryWithTracing) Update(ctx context.Context, item *domain.Item) error {
	ctx, span := tracer.Start(ctx, "repository.Item.Update",
		trace.WithAttributes(attribute.String("item.id", item.ID)),
	)
	defer span.End()

	return finish(span, r.next.Update(ctx, item))
}

func (r *itemRepositoryWithTracing) UpdateStockLevel(ctx context.Context, id string, stockLevel int) error {
	ctx, span := tracer.Start(ctx, "repository.Item.UpdateStockLevel",
		trace.WithAttributes(
			attribute.String("item.id", id),
			attribute.Int("item.stock_level", stockLevel),
		),
	)
	defer span.End()

	return finish(span, r.next.UpdateStockLevel(ctx, id, stockLevel))
}

func (r *itemRepositoryWithTracing) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.DeleteByIDs",
		trace.WithAttributes(attribute.Int("items.requested", len(ids))),
	)
	defer span.End()

	deleted, err := r.next.DeleteByIDs(ctx, ids)
	if err = finish(span, err); err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int64("items.deleted", deleted))
	return deleted, nil
}

func (r *itemRepositoryWithTracing) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Item.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	return count, finish(span, err)
}

type actionRepositoryWithTracing struct {
	next domain.ActionRepository
}

func (r *actionRepositoryWithTracing) Create(ctx context.Context, action *domain.Action) error {
	ctx, span := tracer.Start(ctx, "repository.Action.Create",
		trace.WithAttributes(
			attribute.String("action.type", string(action.Type)),
			attribute.String("action.item_id", action.ItemID),
			attribute.Int("action.quantity", action.Quantity),
		),
	)
	defer span.End()

	return finish(span, r.next.Create(ctx, action))
}

func (r *actionRepositoryWithTracing) FindAll(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Action.FindAll",
		trace.WithAttributes(
			attribute.String("filter.item_id", filter.ItemID),
			attribute.String("filter.type", string(filter.Type)),
		),
	)
	defer span.End()

	actions, total, err := r.next.FindAll(ctx, filter)
	return actions, total, finish(span, err)
}

func (r *actionRepositoryWithTracing) FindByEventID(ctx context.Context, eventID string) (*domain.Action, error) {
	ctx, span := tracer.Start(ctx, "repository.Action.FindByEventID",
		trace.WithAttributes(attribute.String("event.id", eventID)),
	)
	defer span.End()

	action, err := r.next.FindByEventID(ctx, eventID)
	return action, finish(span, err)
}

func (r *actionRepositoryWithTracing) DeleteByItemIDs(ctx context.Context, itemIDs []string) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Action.DeleteByItemIDs")
	defer span.End()

	deleted, err := r.next.DeleteByItemIDs(ctx, itemIDs)
	return deleted, finish(span, err)
}

func (r *actionRepositoryWithTracing) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Action.DeleteOlderThan",
		trace.WithAttributes(attribute.String("cutoff", cutoff.Format(time.RFC3339))),
	)
	defer span.End()

	deleted, err := r.next.DeleteOlderThan(ctx, cutoff)
	return deleted, finish(span, err)
}

func (r *actionRepositoryWithTracing) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Action.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	return count, finish(span, err)
}
