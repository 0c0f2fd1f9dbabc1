package command

import (
	"context"
	"errors"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/metrics"
	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// Sources of stock mutations, used as a metric label
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
	SourceBulk  = "bulk"
)

// ApplyStockActionCommand represents a single stock movement. For
// ADJUST_STOCK, Quantity is the target level.
type ApplyStockActionCommand struct {
	ItemID   string
	Type     domain.ActionType
	Quantity int
	Notes    string
	Actor    domain.Actor
	Source   string
	// EventID identifies the message that requested the action. A second
	// command with the same EventID returns the first result unchanged.
	EventID  string
}

// StockActionResult is the committed outcome of a stock movement
type StockActionResult struct {
	Item   *domain.Item   `json:"item"`
	Action *domain.Action `json:"action"`
}

// ApplyStockActionHandler handles apply stock action command
type ApplyStockActionHandler struct {
	store domain.Store
	hooks Hooks
}

// NewApplyStockActionHandler creates a new apply stock action handler
func NewApplyStockActionHandler(store domain.Store, hooks Hooks) *ApplyStockActionHandler {
	return &ApplyStockActionHandler{store: store, hooks: hooks}
}

// Handle locks the item row, computes the new level and writes both the item
// and its action in one transaction
func (h *ApplyStockActionHandler) Handle(ctx context.Context, cmd ApplyStockActionCommand) (*StockActionResult, error) {
	if cmd.ItemID == "" {
		return nil, apperror.InvalidArgument("Item ID is required")
	}
	if !cmd.Type.Valid() {
		return nil, apperror.InvalidArgument("Invalid action type: %s", cmd.Type)
	}
	if cmd.Source == "" {
		cmd.Source = SourceHTTP
	}

	var (
		result   StockActionResult
		replayed bool
	)
	err := h.store.Transaction(ctx, func(tx domain.Store) error {
		item, err := tx.Items().FindByIDForUpdate(ctx, cmd.ItemID)
		if err != nil {
			return err
		}

		if cmd.EventID != "" {
			previous, err := tx.Actions().FindByEventID(ctx, cmd.EventID)
			switch {
			case err == nil:
				result = StockActionResult{Item: item, Action: previous}
				replayed = true
				return nil
			case !errors.Is(err, apperror.ErrNotFound):
				return err
			}
		}

		newLevel, recorded, err := domain.NextStockLevel(item.StockLevel, cmd.Type, cmd.Quantity)
		if err != nil {
			return err
		}

		if err := tx.Items().UpdateStockLevel(ctx, item.ID, newLevel); err != nil {
			return err
		}

		action := &domain.Action{
			Type:          cmd.Type,
			Quantity:      recorded,
			PreviousLevel: item.StockLevel,
			NewLevel:      newLevel,
			Notes:         cmd.Notes,
			ItemID:        item.ID,
			UserID:        actorID(cmd.Actor),
		}
		if cmd.EventID != "" {
			action.EventID = &cmd.EventID
		}
		if err := tx.Actions().Create(ctx, action); err != nil {
			return err
		}

		item.StockLevel = newLevel
		result = StockActionResult{Item: item, Action: action}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replayed {
		logger.Info(ctx).
			Str("item_id", result.Item.ID).
			Str("event_id", cmd.EventID).
			Msg("Stock event already applied, skipping")
		return &result, nil
	}

	metrics.StockMutations.WithLabelValues(string(cmd.Type), cmd.Source).Inc()

	logger.Info(ctx).
		Str("item_id", result.Item.ID).
		Str("type", string(cmd.Type)).
		Int("previous_level", result.Action.PreviousLevel).
		Int("new_level", result.Action.NewLevel).
		Msg("Stock action applied")

	h.hooks.publish(ctx, InventoryUpdate{
		Type:    string(cmd.Type),
		Item:    result.Item,
		ActorID: cmd.Actor.ID,
	})
	h.hooks.audit(ctx, cmd.Actor, auditdomain.Entry{
		Action:       auditdomain.ActionStockChange,
		ResourceType: auditdomain.ResourceItem,
		ResourceID:   result.Item.ID,
		Changes: map[string]interface{}{
			"type":           cmd.Type,
			"quantity":       result.Action.Quantity,
			"previous_level": result.Action.PreviousLevel,
			"new_level":      result.Action.NewLevel,
			"notes":          cmd.Notes,
		},
	})

	return &result, nil
}
