package command

import (
	"context"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/notify"
)

// Event types carried in inventory:update payloads besides the stock action types
const (
	UpdateCreated     = "CREATE"
	UpdateEdited      = "UPDATE"
	UpdateDeleted     = "DELETE"
	UpdateBulkCreated = "BULK_CREATE"
	UpdateBulkEdited  = "BULK_UPDATE"
	UpdateBulkStock   = "BULK_STOCK_UPDATE"
	UpdateBulkDeleted = "BULK_DELETE"
)

// InventoryUpdate is the payload of an inventory:update event
type InventoryUpdate struct {
	Type    string        `json:"type"`
	Item    *domain.Item  `json:"item,omitempty"`
	Items   []domain.Item `json:"items,omitempty"`
	ItemIDs []string      `json:"item_ids,omitempty"`
	ActorID string        `json:"actor_id,omitempty"`
}

// Hooks run after a mutation has committed. Neither hook can fail the
// mutation: the sink is expected to be asynchronous and the recorder
// swallows its own errors.
type Hooks struct {
	Events notify.Sink
	Audit  auditdomain.Recorder
}

// NewHooks creates hooks, substituting no-ops for nil collaborators
func NewHooks(events notify.Sink, recorder auditdomain.Recorder) Hooks {
	if events == nil {
		events = notify.Discard
	}
	if recorder == nil {
		recorder = auditdomain.NopRecorder{}
	}
	return Hooks{Events: events, Audit: recorder}
}

func (h Hooks) publish(ctx context.Context, update InventoryUpdate) {
	if h.Events == nil {
		return
	}
	// errors are the sink's to log
	_ = h.Events.Publish(ctx, notify.NewEvent(notify.EventInventoryUpdate, update))
}

func (h Hooks) audit(ctx context.Context, actor domain.Actor, entry auditdomain.Entry) {
	if h.Audit == nil || !actor.IsAdmin() {
		return
	}
	entry.UserID = actor.ID
	h.Audit.Record(ctx, entry)
}

func actorID(actor domain.Actor) string {
	if actor.ID == "" {
		return domain.SystemActorID
	}
	return actor.ID
}
