package alert

import (
	"context"
	"sort"
	"time"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// ItemSource is the read side the engine needs. ItemRepository satisfies it.
type ItemSource interface {
	FindLowStock(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
}

// Statistics counts current alerts along several dimensions
type Statistics struct {
	Total      int              `json:"total"`
	BySeverity map[Severity]int `json:"by_severity"`
	ByCategory map[string]int   `json:"by_category"`
	ByLocation map[string]int   `json:"by_location"`
}

// MonitorCounts sums each bucket of a MonitorReport
type MonitorCounts struct {
	Low        int `json:"low"`
	Critical   int `json:"critical"`
	OutOfStock int `json:"out_of_stock"`
	Total      int `json:"total"`
}

// MonitorReport splits current alerts into operational buckets
type MonitorReport struct {
	Low        []Alert       `json:"low"`
	Critical   []Alert       `json:"critical"`
	OutOfStock []Alert       `json:"out_of_stock"`
	Counts     MonitorCounts `json:"counts"`
	CheckedAt  time.Time     `json:"checked_at"`
}

// Engine derives alerts from committed item state. Nothing is cached, so
// every call reflects the latest commit.
type Engine struct {
	items ItemSource
	now   func() time.Time
}

// NewEngine creates an alert engine over items
func NewEngine(items ItemSource) *Engine {
	return &Engine{items: items, now: time.Now}
}

// CurrentAlerts returns every alert, most urgent first
func (e *Engine) CurrentAlerts(ctx context.Context) ([]Alert, error) {
	return e.load(ctx, domain.ItemFilter{})
}

// BySeverity returns the alerts of one severity
func (e *Engine) BySeverity(ctx context.Context, severity Severity) ([]Alert, error) {
	if severity.rank() == len(Severities) {
		return nil, apperror.InvalidArgument("Invalid severity: %s", severity)
	}

	alerts, err := e.load(ctx, domain.ItemFilter{})
	if err != nil {
		return nil, err
	}

	matched := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.Severity == severity {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// ByCategory matches category as a case-insensitive substring
func (e *Engine) ByCategory(ctx context.Context, category string) ([]Alert, error) {
	return e.load(ctx, domain.ItemFilter{Category: category})
}

// ByLocation matches location as a case-insensitive substring
func (e *Engine) ByLocation(ctx context.Context, location string) ([]Alert, error) {
	return e.load(ctx, domain.ItemFilter{Location: location})
}

// Statistics counts current alerts by severity, category and location
func (e *Engine) Statistics(ctx context.Context) (*Statistics, error) {
	alerts, err := e.CurrentAlerts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		Total:      len(alerts),
		BySeverity: make(map[Severity]int, len(Severities)),
		ByCategory: make(map[string]int),
		ByLocation: make(map[string]int),
	}
	for _, s := range Severities {
		stats.BySeverity[s] = 0
	}
	for _, a := range alerts {
		stats.BySeverity[a.Severity]++
		stats.ByCategory[a.Category]++
		stats.ByLocation[a.Location]++
	}
	return stats, nil
}

// Monitor buckets current alerts for dashboards
func (e *Engine) Monitor(ctx context.Context) (*MonitorReport, error) {
	alerts, err := e.CurrentAlerts(ctx)
	if err != nil {
		return nil, err
	}

	report := &MonitorReport{
		Low:        []Alert{},
		Critical:   []Alert{},
		OutOfStock: []Alert{},
		CheckedAt:  e.now().UTC(),
	}
	for _, a := range alerts {
		switch a.Severity {
		case SeverityOutOfStock:
			report.OutOfStock = append(report.OutOfStock, a)
		case SeverityCritical:
			report.Critical = append(report.Critical, a)
		default:
			report.Low = append(report.Low, a)
		}
	}
	report.Counts = MonitorCounts{
		Low:        len(report.Low),
		Critical:   len(report.Critical),
		OutOfStock: len(report.OutOfStock),
		Total:      len(alerts),
	}
	return report, nil
}

func (e *Engine) load(ctx context.Context, filter domain.ItemFilter) ([]Alert, error) {
	items, err := e.items.FindLowStock(ctx, filter)
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(items))
	for _, item := range items {
		if a, ok := FromItem(item); ok {
			alerts = append(alerts, a)
		}
	}

	// items arrive ordered by stock level; keep that order within a severity
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.rank() < alerts[j].Severity.rank()
	})
	return alerts, nil
}
