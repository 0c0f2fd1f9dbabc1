package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/inventorytest"
	"github.com/tair/warehouse-inventory/internal/notify"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

var (
	admin = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	clerk = domain.Actor{ID: "user-1", Role: domain.RoleUser}
)

type fixture struct {
	store    *inventorytest.MemoryStore
	sink     *inventorytest.RecordingSink
	recorder *inventorytest.RecordingRecorder
	hooks    Hooks
}

func newFixture() *fixture {
	f := &fixture{
		store:    inventorytest.NewMemoryStore(),
		sink:     &inventorytest.RecordingSink{},
		recorder: &inventorytest.RecordingRecorder{},
	}
	f.hooks = NewHooks(f.sink, f.recorder)
	return f
}

func (f *fixture) seed(stock, minStock int) domain.Item {
	return f.store.Seed(domain.Item{
		SKU:        fmt.Sprintf("SKU-%d-%d", stock, minStock),
		Name:       "Widget",
		Category:   "Hardware",
		Location:   "Aisle 1",
		StockLevel: stock,
		MinStock:   minStock,
		UnitPrice:  decimal.RequireFromString("2.50"),
	})[0]
}

func TestApplyStockActionScenario(t *testing.T) {
	f := newFixture()
	item := f.seed(100, 10)
	handler := NewApplyStockActionHandler(f.store, f.hooks)
	ctx := context.Background()

	res, err := handler.Handle(ctx, ApplyStockActionCommand{ItemID: item.ID, Type: domain.ActionAddStock, Quantity: 50, Actor: clerk})
	require.NoError(t, err)
	assert.Equal(t, 150, res.Item.StockLevel)

	_, err = handler.Handle(ctx, ApplyStockActionCommand{ItemID: item.ID, Type: domain.ActionRemoveStock, Quantity: 200, Actor: clerk})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))
	assert.Equal(t, "Insufficient stock. Current: 150, Requested: 200", err.Error())
	stored, _ := f.store.Item(item.ID)
	assert.Equal(t, 150, stored.StockLevel)

	res, err = handler.Handle(ctx, ApplyStockActionCommand{ItemID: item.ID, Type: domain.ActionAdjustStock, Quantity: 5, Actor: clerk})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Item.StockLevel)
	assert.Equal(t, 145, res.Action.Quantity)
	assert.Equal(t, -145, res.Action.SignedDelta())

	actions := f.store.AllActions()
	require.Len(t, actions, 2)
	assert.Equal(t, clerk.ID, actions[0].UserID)
}

func TestApplyStockActionPublishesAfterCommit(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 2)
	handler := NewApplyStockActionHandler(f.store, f.hooks)

	_, err := handler.Handle(context.Background(), ApplyStockActionCommand{
		ItemID: item.ID, Type: domain.ActionRemoveStock, Quantity: 3, Notes: "picked", Actor: admin,
	})
	require.NoError(t, err)

	events := f.sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.EventInventoryUpdate, events[0].Name)
	update := events[0].Payload.(InventoryUpdate)
	assert.Equal(t, "REMOVE_STOCK", update.Type)
	assert.Equal(t, 7, update.Item.StockLevel)
	assert.Equal(t, admin.ID, update.ActorID)

	entries := f.recorder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, auditdomain.ActionStockChange, entries[0].Action)
	assert.Equal(t, admin.ID, entries[0].UserID)
}

func TestApplyStockActionNonAdminIsNotAudited(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 2)

	_, err := NewApplyStockActionHandler(f.store, f.hooks).Handle(context.Background(), ApplyStockActionCommand{
		ItemID: item.ID, Type: domain.ActionAddStock, Quantity: 1, Actor: clerk,
	})
	require.NoError(t, err)
	assert.Empty(t, f.recorder.Entries())
	assert.Len(t, f.sink.Events(), 1)
}

func TestApplyStockActionNotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.sink.Err = errors.New("socket closed")
	item := f.seed(10, 2)

	res, err := NewApplyStockActionHandler(f.store, f.hooks).Handle(context.Background(), ApplyStockActionCommand{
		ItemID: item.ID, Type: domain.ActionAddStock, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, res.Item.StockLevel)
	assert.Equal(t, domain.SystemActorID, res.Action.UserID)
}

func TestApplyStockActionRollsBackWhenActionWriteFails(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 2)
	f.store.FailOn("Actions.Create", apperror.Internal(errors.New("disk full"), "failed to record action"))

	_, err := NewApplyStockActionHandler(f.store, f.hooks).Handle(context.Background(), ApplyStockActionCommand{
		ItemID: item.ID, Type: domain.ActionAddStock, Quantity: 5,
	})
	require.Error(t, err)

	stored, _ := f.store.Item(item.ID)
	assert.Equal(t, 10, stored.StockLevel)
	assert.Empty(t, f.sink.Events())
}

func TestApplyStockActionValidation(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 2)
	handler := NewApplyStockActionHandler(f.store, f.hooks)
	ctx := context.Background()

	_, err := handler.Handle(ctx, ApplyStockActionCommand{ItemID: "missing", Type: domain.ActionAddStock, Quantity: 1})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = handler.Handle(ctx, ApplyStockActionCommand{ItemID: item.ID, Type: "RESTOCK", Quantity: 1})
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))

	_, err = handler.Handle(ctx, ApplyStockActionCommand{ItemID: item.ID, Type: domain.ActionTransfer, Quantity: 0})
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestConcurrentRemovalsNeverGoNegative(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 0)
	handler := NewApplyStockActionHandler(f.store, f.hooks)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(context.Background(), ApplyStockActionCommand{
				ItemID: item.ID, Type: domain.ActionRemoveStock, Quantity: 1,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stored, _ := f.store.Item(item.ID)
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, stored.StockLevel)
}

func TestCreateItem(t *testing.T) {
	f := newFixture()
	handler := NewCreateItemHandler(f.store, f.hooks)
	input := ItemInput{
		SKU: " BOLT-1 ", Name: "Bolt", Category: "Hardware", Location: "A1",
		StockLevel: 12, MinStock: 4, UnitPrice: decimal.RequireFromString("0.25"),
	}

	item, err := handler.Handle(context.Background(), CreateItemCommand{Input: input, Actor: admin})
	require.NoError(t, err)
	assert.Equal(t, "BOLT-1", item.SKU)
	assert.NotEmpty(t, item.ID)

	actions := f.store.AllActions()
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionAddStock, actions[0].Type)
	assert.Equal(t, 12, actions[0].Quantity)

	_, err = handler.Handle(context.Background(), CreateItemCommand{Input: input, Actor: admin})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.Equal(t, "Item with SKU BOLT-1 already exists", err.Error())
}

func TestCreateItemValidation(t *testing.T) {
	f := newFixture()
	maxStock := 1
	_, err := NewCreateItemHandler(f.store, f.hooks).Handle(context.Background(), CreateItemCommand{
		Input: ItemInput{SKU: "X", Name: "X", Category: "C", Location: "L", MinStock: 5, MaxStock: &maxStock},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "max_stock must be greater than or equal to min_stock")
}

func TestUpdateItemChangesDescriptiveFieldsOnly(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 2)
	name := "Sprocket"
	price := decimal.RequireFromString("3.75")

	updated, err := NewUpdateItemHandler(f.store, f.hooks).Handle(context.Background(), UpdateItemCommand{
		ID:    item.ID,
		Patch: ItemPatch{Name: &name, UnitPrice: &price},
		Actor: admin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sprocket", updated.Name)
	assert.True(t, price.Equal(updated.UnitPrice))
	assert.Equal(t, 10, updated.StockLevel)
	assert.Len(t, f.recorder.Entries(), 1)
}

func TestUpdateItemRejectsEmptyPatch(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 2)

	_, err := NewUpdateItemHandler(f.store, f.hooks).Handle(context.Background(), UpdateItemCommand{ID: item.ID})
	require.Error(t, err)
	assert.Equal(t, "No fields to update", err.Error())
}

func TestDeleteItemRemovesActions(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 2)
	_, err := NewApplyStockActionHandler(f.store, f.hooks).Handle(context.Background(), ApplyStockActionCommand{
		ItemID: item.ID, Type: domain.ActionAddStock, Quantity: 1,
	})
	require.NoError(t, err)

	handler := NewDeleteItemHandler(f.store, f.hooks)
	require.NoError(t, handler.Handle(context.Background(), DeleteItemCommand{ID: item.ID, Actor: admin}))

	_, ok := f.store.Item(item.ID)
	assert.False(t, ok)
	assert.Empty(t, f.store.AllActions())

	err = handler.Handle(context.Background(), DeleteItemCommand{ID: item.ID, Actor: admin})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestApplyStockActionReplaysEventOnce(t *testing.T) {
	f := newFixture()
	item := f.seed(10, 0)
	handler := NewApplyStockActionHandler(f.store, f.hooks)
	cmd := ApplyStockActionCommand{
		ItemID: item.ID, Type: domain.ActionAddStock, Quantity: 5, Actor: clerk, Source: SourceKafka, EventID: "evt-9",
	}

	first, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, first.Action.ID, second.Action.ID)
	assert.Equal(t, 15, second.Item.StockLevel)
	assert.Len(t, f.store.AllActions(), 1)
	assert.Len(t, f.sink.Events(), 1)
}
