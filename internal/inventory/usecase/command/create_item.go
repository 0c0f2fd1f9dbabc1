package command

import (
	"context"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/metrics"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

const initialStockNote = "Initial stock"

// CreateItemCommand represents the command to create an item
type CreateItemCommand struct {
	Input ItemInput
	Actor domain.Actor
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	store domain.Store
	hooks Hooks
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(store domain.Store, hooks Hooks) *CreateItemHandler {
	return &CreateItemHandler{store: store, hooks: hooks}
}

// Handle executes the create item command. Non-zero initial stock is
// recorded as an ADD_STOCK action so the ledger always sums to the level.
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*domain.Item, error) {
	if err := cmd.Input.validate(); err != nil {
		return nil, err
	}

	item := cmd.Input.toItem()
	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		existing, err := tx.Items().FindExistingSKUs(ctx, []string{item.SKU})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperror.Conflict("Item with SKU %s already exists", item.SKU)
		}

		if err := tx.Items().Create(ctx, item); err != nil {
			return err
		}

		if item.StockLevel > 0 {
			return tx.Actions().Create(ctx, initialStockAction(item, cmd.Actor))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if item.StockLevel > 0 {
		metrics.StockMutations.WithLabelValues(string(domain.ActionAddStock), SourceHTTP).Inc()
	}

	h.hooks.publish(ctx, InventoryUpdate{Type: UpdateCreated, Item: item, ActorID: cmd.Actor.ID})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionCreate,
		ResourceType: auditdomain.ResourceItem,
		ResourceID:   item.ID,
		Changes:      item,
	})

	return item, nil
}

func initialStockAction(item *domain.Item, actor domain.Actor) *domain.Action {
	return &domain.Action{
		Type:          domain.ActionAddStock,
		Quantity:      item.StockLevel,
		PreviousLevel: 0,
		NewLevel:      item.StockLevel,
		Notes:         initialStockNote,
		ItemID:        item.ID,
		UserID:        actorID(actor),
	}
}
