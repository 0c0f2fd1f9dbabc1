package inventorytest

import (
	"context"
	"sync"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/internal/notify"
)

// RecordingSink keeps every published event
type RecordingSink struct {
	mu     sync.Mutex
	events []notify.Event
	Err    error
}

func (s *RecordingSink) Publish(ctx context.Context, event notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.Err
}

// Events returns a copy of the published events
func (s *RecordingSink) Events() []notify.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Event(nil), s.events...)
}

// RecordingRecorder keeps every audit entry
type RecordingRecorder struct {
	mu      sync.Mutex
	entries []auditdomain.Entry
}

func (r *RecordingRecorder) Record(ctx context.Context, entry auditdomain.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Entries returns a copy of the recorded entries
func (r *RecordingRecorder) Entries() []auditdomain.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]auditdomain.Entry(nil), r.entries...)
}
