package command

import (
	"context"
	"errors"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// UpdateItemCommand represents the command to update an item's descriptive fields
type UpdateItemCommand struct {
	ID    string
	Patch ItemPatch
	Actor domain.Actor
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	store domain.Store
	hooks Hooks
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(store domain.Store, hooks Hooks) *UpdateItemHandler {
	return &UpdateItemHandler{store: store, hooks: hooks}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.ID == "" {
		return nil, apperror.InvalidArgument("Item ID is required")
	}
	if err := cmd.Patch.validate(); err != nil {
		if errors.Is(err, errEmptyPatch) {
			return nil, apperror.InvalidArgument("No fields to update")
		}
		return nil, err
	}

	var updated *domain.Item
	var changed []string
	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		item, err := tx.Items().FindByIDForUpdate(ctx, cmd.ID)
		if err != nil {
			return err
		}

		previousSKU := item.SKU
		changed = cmd.Patch.apply(item)
		if err := item.Validate(); err != nil {
			return err
		}

		if item.SKU != previousSKU {
			existing, err := tx.Items().FindExistingSKUs(ctx, []string{item.SKU})
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return apperror.Conflict("Item with SKU %s already exists", item.SKU)
			}
		}

		if len(changed) > 0 {
			if err := tx.Items().Update(ctx, item); err != nil {
				return err
			}
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changed) == 0 {
		return updated, nil
	}

	h.hooks.publish(ctx, InventoryUpdate{Type: UpdateEdited, Item: updated, ActorID: cmd.Actor.ID})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionUpdate,
		ResourceType: auditdomain.ResourceItem,
		ResourceID:   updated.ID,
		Changes:      cmd.Patch,
	})

	return updated, nil
}
