package domain

import (
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// NextStockLevel applies an action intent to the current stock level. For
// ADJUST_STOCK the quantity is the target level; for every other type it is
// the movement. It returns the new level and the magnitude to record on the
// Action.
func NextStockLevel(current int, actionType ActionType, quantity int) (newLevel int, recorded int, err error) {
	switch actionType {
	case ActionAddStock:
		if quantity <= 0 {
			return current, 0, apperror.InvalidArgument("Quantity must be a positive integer")
		}
		return current + quantity, quantity, nil

	case ActionRemoveStock, ActionTransfer:
		if quantity <= 0 {
			return current, 0, apperror.InvalidArgument("Quantity must be a positive integer")
		}
		if current-quantity < 0 {
			return current, 0, apperror.InsufficientStock("Insufficient stock. Current: %d, Requested: %d", current, quantity)
		}
		return current - quantity, quantity, nil

	case ActionAdjustStock:
		if quantity < 0 {
			return current, 0, apperror.InvalidArgument("Target stock level must be a non-negative integer")
		}
		return quantity, abs(quantity - current), nil

	default:
		return current, 0, apperror.InvalidArgument("Invalid action type: %s", actionType)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
