package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/warehouse-inventory/pkg/logger"
)

// Event names
const (
	EventInventoryUpdate = "inventory:update"
	EventAlertsNew       = "alerts:new"
	EventAlertsUpdate    = "alerts:update"
)

// Event is a fire-and-forget notification about a state change
type Event struct {
	ID         string      `json:"id"`
	Name       string      `json:"event"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewEvent stamps a new event with an id and the current time
func NewEvent(name string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Sink receives events. Implementations must be safe for concurrent use.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, event Event) error

func (f SinkFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Discard drops every event
var Discard Sink = SinkFunc(func(context.Context, Event) error { return nil })

// Multi publishes to every sink and joins their errors
type Multi []Sink

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Async publishes on a background goroutine so callers never wait on the
// transport. Failures are logged and dropped.
type Async struct {
	next    Sink
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewAsync wraps next. Each publish gets its own deadline of timeout.
func NewAsync(next Sink, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Async{next: next, timeout: timeout}
}

// Publish always returns nil; the event is delivered in the background
func (a *Async) Publish(ctx context.Context, event Event) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		// the request context is usually cancelled by the time we run
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.next.Publish(pubCtx, event); err != nil {
			logger.WithContext(pubCtx).Warn().
				Err(err).
				Str("event", event.Name).
				Str("event_id", event.ID).
				Msg("Failed to publish notification")
		}
	}()
	return nil
}

// Close waits for in-flight publishes
func (a *Async) Close() {
	a.wg.Wait()
}
