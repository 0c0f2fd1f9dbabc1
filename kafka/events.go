package kafka

import "time"

// Event types
const (
	EventTypeStockActionRequested = "stock.action.requested"
)

// Kafka topics
const (
	TopicInventoryEvents = "inventory-events"
	TopicStockCommands   = "inventory-stock-commands"
)

// Header keys
const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
)

// StockActionRequestedEvent asks the service to apply a stock action on
// behalf of another system (a scanner gateway, an ERP sync job).
type StockActionRequestedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ItemID     string    `json:"item_id"`
	ActionType string    `json:"action_type"`
	Quantity   int       `json:"quantity"`
	Notes      string    `json:"notes,omitempty"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
