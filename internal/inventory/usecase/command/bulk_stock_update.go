package command

import (
	"context"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/metrics"
	"github.com/tair/warehouse-inventory/pkg/validation"
)

const bulkStockNote = "Bulk stock update"

// StockUpdateEntry sets one item's stock level. Type labels the recorded
// action and defaults to ADJUST_STOCK.
type StockUpdateEntry struct {
	ID         string            `json:"id" validate:"required"`
	StockLevel *int              `json:"stock_level" validate:"required,gte=0"`
	Type       domain.ActionType `json:"type,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

// BulkStockUpdateCommand represents a batch of target stock levels
type BulkStockUpdateCommand struct {
	Updates []StockUpdateEntry
	Actor   domain.Actor
}

// BulkStockUpdateHandler handles bulk stock update command
type BulkStockUpdateHandler struct {
	store domain.Store
	hooks Hooks
}

// NewBulkStockUpdateHandler creates a new bulk stock update handler
func NewBulkStockUpdateHandler(store domain.Store, hooks Hooks) *BulkStockUpdateHandler {
	return &BulkStockUpdateHandler{store: store, hooks: hooks}
}

// Handle sets every target level in one transaction, locking each row
// before reading its current level
func (h *BulkStockUpdateHandler) Handle(ctx context.Context, cmd BulkStockUpdateCommand) ([]*domain.Item, error) {
	if err := checkBatchSize(len(cmd.Updates), MaxBulkStockUpdate, "Updates", "update"); err != nil {
		return nil, err
	}

	var problems batchProblems
	for i, entry := range cmd.Updates {
		if err := validation.Struct(entry); err != nil {
			problems.add(i, err.Error())
			continue
		}
		if entry.Type != "" && !entry.Type.Valid() {
			problems.add(i, "Invalid action type: "+string(entry.Type))
		}
	}
	if err := problems.err(); err != nil {
		return nil, err
	}

	updated := make([]*domain.Item, 0, len(cmd.Updates))
	actions := make([]*domain.Action, 0, len(cmd.Updates))
	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		for i, entry := range cmd.Updates {
			item, err := tx.Items().FindByIDForUpdate(ctx, entry.ID)
			if err != nil {
				return atEntry(i, err)
			}

			target := *entry.StockLevel
			_, recorded, err := domain.NextStockLevel(item.StockLevel, domain.ActionAdjustStock, target)
			if err != nil {
				return atEntry(i, err)
			}
			if err := tx.Items().UpdateStockLevel(ctx, item.ID, target); err != nil {
				return atEntry(i, err)
			}

			actionType := entry.Type
			if actionType == "" {
				actionType = domain.ActionAdjustStock
			}
			notes := entry.Notes
			if notes == "" {
				notes = bulkStockNote
			}
			action := &domain.Action{
				Type:          actionType,
				Quantity:      recorded,
				PreviousLevel: item.StockLevel,
				NewLevel:      target,
				Notes:         notes,
				ItemID:        item.ID,
				UserID:        actorID(cmd.Actor),
			}
			if err := tx.Actions().Create(ctx, action); err != nil {
				return err
			}

			item.StockLevel = target
			updated = append(updated, item)
			actions = append(actions, action)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(updated))
	for i, item := range updated {
		metrics.StockMutations.WithLabelValues(string(actions[i].Type), SourceBulk).Inc()
		items = append(items, *item)
	}

	h.hooks.publish(ctx, InventoryUpdate{Type: UpdateBulkStock, Items: items, ActorID: cmd.Actor.ID})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionBulkStock,
		ResourceType: auditdomain.ResourceBulk,
		Changes:      map[string]interface{}{"count": len(actions), "updates": cmd.Updates},
	})

	return updated, nil
}
