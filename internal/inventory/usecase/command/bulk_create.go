package command

import (
	"context"
	"fmt"
	"strings"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/metrics"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// BulkCreateCommand represents a batch of items to create
type BulkCreateCommand struct {
	Items []ItemInput
	Actor domain.Actor
}

// BulkCreateHandler handles bulk create command
type BulkCreateHandler struct {
	store domain.Store
	hooks Hooks
}

// NewBulkCreateHandler creates a new bulk create handler
func NewBulkCreateHandler(store domain.Store, hooks Hooks) *BulkCreateHandler {
	return &BulkCreateHandler{store: store, hooks: hooks}
}

// Handle validates the whole batch and then inserts every item in one transaction
func (h *BulkCreateHandler) Handle(ctx context.Context, cmd BulkCreateCommand) ([]*domain.Item, error) {
	if err := checkBatchSize(len(cmd.Items), MaxBulkCreate, "Items", "create"); err != nil {
		return nil, err
	}

	var problems batchProblems
	items := make([]*domain.Item, 0, len(cmd.Items))
	skus := make([]string, 0, len(cmd.Items))
	firstSeen := make(map[string]int, len(cmd.Items))

	for i, input := range cmd.Items {
		if err := input.validate(); err != nil {
			problems.add(i, err.Error())
			continue
		}
		item := input.toItem()
		if first, ok := firstSeen[item.SKU]; ok {
			problems.add(i, fmt.Sprintf("Duplicate SKU %s (also used by item %d)", item.SKU, first+1))
			continue
		}
		firstSeen[item.SKU] = i
		items = append(items, item)
		skus = append(skus, item.SKU)
	}
	if err := problems.err(); err != nil {
		return nil, err
	}

	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		existing, err := tx.Items().FindExistingSKUs(ctx, skus)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperror.Conflict("SKUs already exist: %s", strings.Join(existing, ", "))
		}

		if err := tx.Items().CreateBatch(ctx, items); err != nil {
			return err
		}

		for _, item := range items {
			if item.StockLevel == 0 {
				continue
			}
			if err := tx.Actions().Create(ctx, initialStockAction(item, cmd.Actor)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.StockLevel > 0 {
			metrics.StockMutations.WithLabelValues(string(domain.ActionAddStock), SourceBulk).Inc()
		}
		created = append(created, *item)
	}

	h.hooks.publish(ctx, InventoryUpdate{Type: UpdateBulkCreated, Items: created, ActorID: cmd.Actor.ID})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionBulkCreate,
		ResourceType: auditdomain.ResourceBulk,
		Changes:      map[string]interface{}{"count": len(items), "skus": skus},
	})

	return items, nil
}
