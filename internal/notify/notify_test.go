package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for _, e := range s.events {
		names = append(names, e.Name)
	}
	return names
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventInventoryUpdate, map[string]string{"type": "ADD_STOCK"})
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventInventoryUpdate, event.Name)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestMultiPublishesToAllSinks(t *testing.T) {
	failing := &recordingSink{err: errors.New("boom")}
	ok := &recordingSink{}

	err := Multi{failing, nil, ok}.Publish(context.Background(), NewEvent(EventAlertsUpdate, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{EventAlertsUpdate}, failing.names())
	assert.Equal(t, []string{EventAlertsUpdate}, ok.names())
}

func TestAsyncSwallowsErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("transport down")}
	async := NewAsync(sink, 0)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, async.Publish(ctx, NewEvent(EventInventoryUpdate, nil)))
	cancel()
	async.Close()

	assert.Equal(t, []string{EventInventoryUpdate}, sink.names())
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Publish(context.Background(), NewEvent(EventAlertsNew, nil)))
}
