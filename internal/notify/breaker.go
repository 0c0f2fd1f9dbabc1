package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tair/warehouse-inventory/pkg/logger"
)

// ErrCircuitOpen is returned while a breaker rejects publishes
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerState is the state of a Breaker
type BreakerState string

const (
	StateClosed   BreakerState = "closed"
	StateOpen     BreakerState = "open"
	StateHalfOpen BreakerState = "half-open"
)

// halfOpenSuccesses closes a half-open breaker
const halfOpenSuccesses = 3

// Breaker guards a sink whose transport can go away, such as a Kafka
// cluster. After maxFailures consecutive failures it drops events for
// cooldown, then lets trial publishes through.
type Breaker struct {
	name        string
	next        Sink
	maxFailures int
	cooldown    time.Duration
	now         func() time.Time

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
}

// NewBreaker wraps next
func NewBreaker(name string, next Sink, maxFailures int, cooldown time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	return &Breaker{
		name:        name,
		next:        next,
		maxFailures: maxFailures,
		cooldown:    cooldown,
		now:         time.Now,
		state:       StateClosed,
	}
}

// Publish forwards to the wrapped sink unless the circuit is open
func (b *Breaker) Publish(ctx context.Context, event Event) error {
	if !b.allow() {
		return fmt.Errorf("%w for %s", ErrCircuitOpen, b.name)
	}

	err := b.next.Publish(ctx, event)
	b.record(err)
	return err
}

// State returns the current state
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		b.state = StateHalfOpen
		b.successes = 0
		logger.Logger.Info().Str("circuit", b.name).Msg("Circuit breaker half-open")
	}
	return b.state != StateOpen
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.maxFailures {
			if b.state != StateOpen {
				logger.Logger.Error().
					Err(err).
					Str("circuit", b.name).
					Int("failures", b.failures).
					Msg("Circuit breaker opened")
			}
			b.state = StateOpen
			b.openedAt = b.now()
		}
		return
	}

	switch b.state {
	case StateHalfOpen:
		b.successes++
		if b.successes >= halfOpenSuccesses {
			b.state = StateClosed
			b.failures = 0
			logger.Logger.Info().Str("circuit", b.name).Msg("Circuit breaker closed")
		}
	case StateClosed:
		b.failures = 0
	}
}
