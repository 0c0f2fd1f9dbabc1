package audit

import (
	"context"
	"time"

	"github.com/tair/warehouse-inventory/internal/audit/domain"
	inventorydomain "github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// SweepConfig sets how long records are kept. A zero retention keeps
// that kind of record forever.
type SweepConfig struct {
	AuditRetention  time.Duration
	ActionRetention time.Duration
	Interval        time.Duration
}

// SweepResult reports what one sweep removed
type SweepResult struct {
	AuditLogs int64
	Actions   int64
}

// Sweeper prunes audit logs and, when configured, old stock actions
type Sweeper struct {
	logs    domain.Repository
	actions inventorydomain.ActionRepository
	cfg     SweepConfig
	now     func() time.Time
}

// NewSweeper creates a retention sweeper. actions may be nil.
func NewSweeper(logs domain.Repository, actions inventorydomain.ActionRepository, cfg SweepConfig) *Sweeper {
	return &Sweeper{logs: logs, actions: actions, cfg: cfg, now: time.Now}
}

// Run sweeps on every interval until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	if s.cfg.Interval <= 0 {
		logger.Info(ctx).Msg("Retention sweeper disabled")
		return
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := s.Sweep(ctx)
			if err != nil {
				logger.Error(ctx).Err(err).Msg("Retention sweep failed")
				continue
			}
			logger.Info(ctx).
				Int64("audit_logs", result.AuditLogs).
				Int64("actions", result.Actions).
				Msg("Retention sweep complete")
		}
	}
}

// Sweep deletes everything older than its retention
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult
	now := s.now()

	if s.cfg.AuditRetention > 0 {
		n, err := s.logs.DeleteOlderThan(ctx, now.Add(-s.cfg.AuditRetention))
		if err != nil {
			return result, err
		}
		result.AuditLogs = n
	}

	if s.actions != nil && s.cfg.ActionRetention > 0 {
		n, err := s.actions.DeleteOlderThan(ctx, now.Add(-s.cfg.ActionRetention))
		if err != nil {
			return result, err
		}
		result.Actions = n
	}

	return result, nil
}
