package command

import (
	"context"
	"fmt"
	"strings"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/validation"
)

// BulkUpdateEntry is one partial update in a bulk update batch
type BulkUpdateEntry struct {
	ID string `json:"id" validate:"required"`
	ItemPatch
}

// BulkUpdateCommand represents a batch of partial item updates
type BulkUpdateCommand struct {
	Updates []BulkUpdateEntry
	Actor   domain.Actor
}

// BulkUpdateHandler handles bulk update command
type BulkUpdateHandler struct {
	store domain.Store
	hooks Hooks
}

// NewBulkUpdateHandler creates a new bulk update handler
func NewBulkUpdateHandler(store domain.Store, hooks Hooks) *BulkUpdateHandler {
	return &BulkUpdateHandler{store: store, hooks: hooks}
}

// Handle applies every patch in one transaction. Each entry leaves an
// ADJUST_STOCK action of quantity 0 naming the fields that changed.
func (h *BulkUpdateHandler) Handle(ctx context.Context, cmd BulkUpdateCommand) ([]*domain.Item, error) {
	if err := checkBatchSize(len(cmd.Updates), MaxBulkUpdate, "Updates", "update"); err != nil {
		return nil, err
	}

	var problems batchProblems
	for i, entry := range cmd.Updates {
		if entry.ItemPatch.isEmpty() {
			if entry.ID == "" {
				problems.add(i, "id is required")
			}
			problems.add(i, "No fields to update")
			continue
		}
		if err := validation.Struct(entry); err != nil {
			problems.add(i, err.Error())
		}
	}
	if err := problems.err(); err != nil {
		return nil, err
	}

	updated := make([]*domain.Item, 0, len(cmd.Updates))
	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		for i, entry := range cmd.Updates {
			item, err := tx.Items().FindByIDForUpdate(ctx, entry.ID)
			if err != nil {
				return atEntry(i, err)
			}

			previousSKU := item.SKU
			changed := entry.ItemPatch.apply(item)
			if err := item.Validate(); err != nil {
				return atEntry(i, err)
			}
			if item.SKU != previousSKU {
				existing, err := tx.Items().FindExistingSKUs(ctx, []string{item.SKU})
				if err != nil {
					return err
				}
				if len(existing) > 0 {
					return atEntry(i, apperror.Conflict("Item with SKU %s already exists", item.SKU))
				}
			}
			if err := tx.Items().Update(ctx, item); err != nil {
				return atEntry(i, err)
			}

			action := &domain.Action{
				Type:          domain.ActionAdjustStock,
				Quantity:      0,
				PreviousLevel: item.StockLevel,
				NewLevel:      item.StockLevel,
				Notes:         bulkUpdateNote(changed),
				ItemID:        item.ID,
				UserID:        actorID(cmd.Actor),
			}
			if err := tx.Actions().Create(ctx, action); err != nil {
				return err
			}
			updated = append(updated, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(updated))
	items := make([]domain.Item, 0, len(updated))
	for _, item := range updated {
		ids = append(ids, item.ID)
		items = append(items, *item)
	}

	h.hooks.publish(ctx, InventoryUpdate{Type: UpdateBulkEdited, Items: items, ActorID: cmd.Actor.ID})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionBulkUpdate,
		ResourceType: auditdomain.ResourceBulk,
		Changes:      map[string]interface{}{"count": len(ids), "item_ids": ids, "updates": cmd.Updates},
	})

	return updated, nil
}

func bulkUpdateNote(changed []string) string {
	if len(changed) == 0 {
		return "Bulk update: no changes"
	}
	return fmt.Sprintf("Bulk update: %s", strings.Join(changed, ", "))
}
