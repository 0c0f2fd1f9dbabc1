package command

import (
	"context"
	"strings"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

// BulkDeleteCommand represents a batch of item ids to delete
type BulkDeleteCommand struct {
	IDs   []string
	Actor domain.Actor
}

// BulkDeleteResult reports how many of the requested items existed
type BulkDeleteResult struct {
	Requested    int   `json:"requested_count"`
	DeletedCount int64 `json:"deleted_count"`
}

// BulkDeleteHandler handles bulk delete command
type BulkDeleteHandler struct {
	store domain.Store
	hooks Hooks
}

// NewBulkDeleteHandler creates a new bulk delete handler
func NewBulkDeleteHandler(store domain.Store, hooks Hooks) *BulkDeleteHandler {
	return &BulkDeleteHandler{store: store, hooks: hooks}
}

// Handle deletes the actions of every id and then the items in one
// transaction. Unknown ids are not an error; they are simply not counted.
func (h *BulkDeleteHandler) Handle(ctx context.Context, cmd BulkDeleteCommand) (*BulkDeleteResult, error) {
	if err := checkBatchSize(len(cmd.IDs), MaxBulkDelete, "IDs", "delete"); err != nil {
		return nil, err
	}

	var problems batchProblems
	for i, id := range cmd.IDs {
		if strings.TrimSpace(id) == "" {
			problems.add(i, "id must be a non-empty string")
		}
	}
	if err := problems.err(); err != nil {
		return nil, err
	}

	var deleted int64
	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		if _, err := tx.Actions().DeleteByItemIDs(ctx, cmd.IDs); err != nil {
			return err
		}
		n, err := tx.Items().DeleteByIDs(ctx, cmd.IDs)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &BulkDeleteResult{Requested: len(cmd.IDs), DeletedCount: deleted}

	h.hooks.publish(ctx, InventoryUpdate{Type: UpdateBulkDeleted, ItemIDs: cmd.IDs, ActorID: cmd.Actor.ID})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionBulkDelete,
		ResourceType: auditdomain.ResourceBulk,
		Changes:      map[string]interface{}{"item_ids": cmd.IDs, "deleted_count": deleted},
	})

	return result, nil
}
