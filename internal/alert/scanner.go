package alert

import (
	"context"
	"sync"
	"time"

	"github.com/tair/warehouse-inventory/internal/metrics"
	"github.com/tair/warehouse-inventory/internal/notify"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// Scanner periodically re-evaluates alerts, refreshes the low-stock gauge
// and announces alerts that appeared or escalated since the previous scan.
type Scanner struct {
	engine   *Engine
	sink     notify.Sink
	interval time.Duration

	mu       sync.Mutex
	previous map[string]Severity
}

// NewScanner creates a scanner. A zero interval disables Run.
func NewScanner(engine *Engine, sink notify.Sink, interval time.Duration) *Scanner {
	if sink == nil {
		sink = notify.Discard
	}
	return &Scanner{engine: engine, sink: sink, interval: interval}
}

// Run scans on every tick until ctx is cancelled
func (s *Scanner) Run(ctx context.Context) {
	if s.interval <= 0 {
		logger.Info(ctx).Msg("Alert scanner disabled")
		return
	}

	logger.Info(ctx).Dur("interval", s.interval).Msg("Alert scanner started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scanAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx).Msg("Alert scanner stopped")
			return
		case <-ticker.C:
			s.scanAndLog(ctx)
		}
	}
}

func (s *Scanner) scanAndLog(ctx context.Context) {
	if _, err := s.Scan(ctx); err != nil {
		logger.Error(ctx).Err(err).Msg("Alert scan failed")
	}
}

// Scan runs one evaluation and returns the alerts that are new. A scan that
// starts while another is running is skipped.
func (s *Scanner) Scan(ctx context.Context) ([]Alert, error) {
	if !s.mu.TryLock() {
		logger.Debug(ctx).Msg("Alert scan already running, skipping")
		return nil, nil
	}
	defer s.mu.Unlock()

	alerts, err := s.engine.CurrentAlerts(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[Severity]int, len(Severities))
	current := make(map[string]Severity, len(alerts))
	fresh := []Alert{}
	for _, a := range alerts {
		counts[a.Severity]++
		current[a.ItemID] = a.Severity
		if before, seen := s.previous[a.ItemID]; !seen || a.Severity.rank() < before.rank() {
			fresh = append(fresh, a)
		}
	}
	for _, severity := range Severities {
		metrics.LowStockItems.WithLabelValues(string(severity)).Set(float64(counts[severity]))
	}
	s.previous = current

	s.publish(ctx, notify.EventAlertsUpdate, alerts)
	if len(fresh) > 0 {
		s.publish(ctx, notify.EventAlertsNew, fresh)
	}

	logger.Debug(ctx).
		Int("alerts", len(alerts)).
		Int("new", len(fresh)).
		Msg("Alert scan complete")
	return fresh, nil
}

func (s *Scanner) publish(ctx context.Context, name string, alerts []Alert) {
	payload := map[string]interface{}{"alerts": alerts, "count": len(alerts)}
	if err := s.sink.Publish(ctx, notify.NewEvent(name, payload)); err != nil {
		logger.Warn(ctx).Err(err).Str("event", name).Msg("Failed to publish alerts")
	}
}
