package command

import (
	"context"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// DeleteItemCommand represents the command to delete an item
type DeleteItemCommand struct {
	ID    string
	Actor domain.Actor
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	store domain.Store
	hooks Hooks
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(store domain.Store, hooks Hooks) *DeleteItemHandler {
	return &DeleteItemHandler{store: store, hooks: hooks}
}

// Handle removes the item's actions and then the item in one transaction
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if cmd.ID == "" {
		return apperror.InvalidArgument("Item ID is required")
	}

	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		if _, err := tx.Items().FindByIDForUpdate(ctx, cmd.ID); err != nil {
			return err
		}
		if _, err := tx.Actions().DeleteByItemIDs(ctx, []string{cmd.ID}); err != nil {
			return err
		}
		_, err := tx.Items().DeleteByIDs(ctx, []string{cmd.ID})
		return err
	})
	if err != nil {
		return err
	}

	h.hooks.publish(ctx, InventoryUpdate{Type: UpdateDeleted, ItemIDs: []string{cmd.ID}, ActorID: cmd.Actor.ID})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionDelete,
		ResourceType: auditdomain.ResourceItem,
		ResourceID:   cmd.ID,
		Changes:      map[string]bool{"deleted": true},
	})

	return nil
}
