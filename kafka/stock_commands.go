package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// StockActionApplier is satisfied by *command.ApplyStockActionHandler
type StockActionApplier interface {
	Handle(ctx context.Context, cmd command.ApplyStockActionCommand) (*command.StockActionResult, error)
}

// StockActionHandler decodes stock.action.requested events and applies them
func StockActionHandler(applier StockActionApplier) EventHandler {
	return func(ctx context.Context, value []byte) error {
		var event StockActionRequestedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if event.ActorID == "" {
			return apperror.InvalidArgument("Event %s has no actor", event.EventID)
		}

		notes := event.Notes
		if notes == "" {
			notes = "Kafka event " + event.EventID
		}

		_, err := applier.Handle(ctx, command.ApplyStockActionCommand{
			ItemID:   event.ItemID,
			Type:     domain.ActionType(event.ActionType),
			Quantity: event.Quantity,
			Notes:    notes,
			Actor:    domain.Actor{ID: event.ActorID, Role: event.ActorRole},
			Source:   command.SourceKafka,
			EventID:  event.EventID,
		})
		return err
	}
}
