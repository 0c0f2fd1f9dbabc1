package report

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// RecentActionLimit caps the actions attached to an inventory report
const RecentActionLimit = 100

// Service builds reports from the committed store state
type Service struct {
	store domain.Store
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a report service. rng drives the simulated value trend.
func NewService(store domain.Store, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{store: store, now: time.Now, rng: rng}
}

// GenerateInventoryReport returns item rows, their summary and the most
// recent matching actions
func (s *Service) GenerateInventoryReport(ctx context.Context, f Filter) (*InventoryReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	items, err := s.items(ctx, f)
	if err != nil {
		return nil, err
	}
	actions, _, err := s.store.Actions().FindAll(ctx, actionFilter(f, RecentActionLimit))
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []domain.Action{}
	}

	rows := Rows(items)
	return &InventoryReport{
		Summary:       Summarize(rows),
		Items:         rows,
		RecentActions: actions,
		Filter:        f,
		GeneratedAt:   s.now().UTC(),
	}, nil
}

// CalculateInventoryMetrics ranks categories and locations by value and
// adds 30-day action and movement trends
func (s *Service) CalculateInventoryMetrics(ctx context.Context, f Filter) (*InventoryMetrics, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	items, err := s.items(ctx, f)
	if err != nil {
		return nil, err
	}
	now := s.now()
	recent, err := s.trendActions(ctx, f, now)
	if err != nil {
		return nil, err
	}

	rows := Rows(items)
	return &InventoryMetrics{
		Summary:       Summarize(rows),
		TopCategories: RankBreakdowns(rows, ByCategory),
		TopLocations:  RankBreakdowns(rows, ByLocation),
		ActionTrend:   DailyActionCounts(recent, now, TrendDays),
		MovementTrend: DailyMovements(recent, now, TrendDays),
		GeneratedAt:   now.UTC(),
	}, nil
}

// CalculateDashboardMetrics assembles the dashboard
func (s *Service) CalculateDashboardMetrics(ctx context.Context, f Filter) (*DashboardMetrics, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	items, err := s.items(ctx, f)
	if err != nil {
		return nil, err
	}
	countFilter := actionFilter(f, 1)
	countFilter.IncludeItem = false
	_, totalActions, err := s.store.Actions().FindAll(ctx, countFilter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	recent, err := s.trendActions(ctx, f, now)
	if err != nil {
		return nil, err
	}

	rows := Rows(items)
	summary := Summarize(rows)

	s.mu.Lock()
	valueTrend := SimulatedValueTrend(summary.TotalValue, now, TrendDays, s.rng)
	s.mu.Unlock()

	return &DashboardMetrics{
		Overview: Overview{
			TotalItems:      summary.TotalItems,
			TotalValue:      summary.TotalValue,
			TotalCategories: summary.CategoryCount,
			TotalLocations:  summary.LocationCount,
			TotalActions:    totalActions,
		},
		Alerts: AlertCounts{
			Critical: summary.OutOfStockCount,
			Warning:  summary.LowStockCount - summary.OutOfStockCount,
			Total:    summary.LowStockCount,
		},
		Performance: Performance{
			StockTurnover:     len(recent),
			AverageStockLevel: AverageStockLevel(rows),
			StockAccuracy:     StockAccuracy,
			TopMovingItems:    TopMovingItems(recent),
		},
		Trends: Trends{
			StockMovements: DailyMovements(recent, now, TrendDays),
			ValueChanges:   valueTrend,
		},
		GeneratedAt: now.UTC(),
	}, nil
}

func validate(f Filter) error {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return apperror.InvalidArgument("end_date must not be before start_date")
	}
	return nil
}

func (s *Service) items(ctx context.Context, f Filter) ([]domain.Item, error) {
	filter := domain.ItemFilter{
		Category: f.Category,
		Location: f.Location,
		SortBy:   "name",
	}
	if f.ItemID != "" {
		filter.ItemIDs = []string{f.ItemID}
	}

	items, _, err := s.store.Items().FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// trendActions loads the actions of the trend window ending at now
func (s *Service) trendActions(ctx context.Context, f Filter, now time.Time) ([]domain.Action, error) {
	start := WindowStart(now, TrendDays)
	filter := actionFilter(Filter{Category: f.Category, Location: f.Location, ItemID: f.ItemID, StartDate: &start}, 0)

	actions, _, err := s.store.Actions().FindAll(ctx, filter)
	return actions, err
}

func actionFilter(f Filter, limit int) domain.ActionFilter {
	return domain.ActionFilter{
		ItemID:      f.ItemID,
		Category:    f.Category,
		Location:    f.Location,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		IncludeItem: true,
		Limit:       limit,
	}
}
