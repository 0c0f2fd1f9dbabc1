package report

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/inventorytest"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

var reportNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, []domain.Item) {
	t.Helper()

	store := inventorytest.NewMemoryStore()
	items := store.Seed(
		domain.Item{SKU: "HAM", Name: "Hammer", Category: "Tools", Location: "Aisle 1", StockLevel: 10, MinStock: 2, UnitPrice: price("12.50")},
		domain.Item{SKU: "NAIL", Name: "Nails", Category: "Hardware", Location: "Aisle 2", StockLevel: 0, MinStock: 100, UnitPrice: price("0.05")},
		domain.Item{SKU: "SAW", Name: "Saw", Category: "Tools", Location: "Aisle 2", StockLevel: 3, MinStock: 4, UnitPrice: price("20.00")},
	)
	store.SeedActions(
		domain.Action{ItemID: items[0].ID, Type: domain.ActionAddStock, Quantity: 10, PreviousLevel: 0, NewLevel: 10, UserID: "u", CreatedAt: reportNow.Add(-48 * time.Hour)},
		domain.Action{ItemID: items[1].ID, Type: domain.ActionRemoveStock, Quantity: 5, PreviousLevel: 5, NewLevel: 0, UserID: "u", CreatedAt: reportNow.Add(-time.Hour)},
		domain.Action{ItemID: items[2].ID, Type: domain.ActionAdjustStock, Quantity: 2, PreviousLevel: 5, NewLevel: 3, UserID: "u", CreatedAt: reportNow.AddDate(0, 0, -60)},
	)

	svc := NewService(store, rand.New(rand.NewSource(1)))
	svc.now = func() time.Time { return reportNow }
	return svc, items
}

func TestGenerateInventoryReport(t *testing.T) {
	svc, items := newService(t)
	ctx := context.Background()

	rep, err := svc.GenerateInventoryReport(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Summary.TotalItems)
	assert.True(t, rep.Summary.TotalValue.Equal(price("185")), rep.Summary.TotalValue.String())
	assert.Equal(t, 2, rep.Summary.LowStockCount)
	require.Len(t, rep.Items, 3)
	assert.Equal(t, "Hammer", rep.Items[0].Name)
	assert.Equal(t, StatusOutOfStock, rep.Items[1].Status)
	require.Len(t, rep.RecentActions, 3)
	assert.Equal(t, items[1].ID, rep.RecentActions[0].ItemID)
	require.NotNil(t, rep.RecentActions[0].Item)

	rep, err = svc.GenerateInventoryReport(ctx, Filter{Category: "tool", Location: "aisle 2"})
	require.NoError(t, err)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "SAW", rep.Items[0].SKU)
	assert.Len(t, rep.RecentActions, 1)

	start := reportNow.AddDate(0, 0, -7)
	rep, err = svc.GenerateInventoryReport(ctx, Filter{StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, rep.Items, 3)
	assert.Len(t, rep.RecentActions, 2)

	rep, err = svc.GenerateInventoryReport(ctx, Filter{ItemID: items[0].ID})
	require.NoError(t, err)
	require.Len(t, rep.Items, 1)
	assert.Len(t, rep.RecentActions, 1)
}

func TestReportRejectsInvertedDateRange(t *testing.T) {
	svc, _ := newService(t)
	start := reportNow
	end := reportNow.Add(-time.Hour)

	_, err := svc.GenerateInventoryReport(context.Background(), Filter{StartDate: &start, EndDate: &end})
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestCalculateInventoryMetrics(t *testing.T) {
	svc, _ := newService(t)

	m, err := svc.CalculateInventoryMetrics(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, m.TopCategories, 2)
	assert.Equal(t, "Tools", m.TopCategories[0].Name)
	assert.True(t, m.TopCategories[0].TotalValue.Equal(price("185")))
	require.Len(t, m.TopLocations, 2)
	assert.Equal(t, "Aisle 1", m.TopLocations[0].Name)

	require.Len(t, m.ActionTrend, TrendDays)
	assert.Equal(t, DailyCount{Date: "2026-03-15", Count: 1}, m.ActionTrend[29])
	assert.Equal(t, DailyCount{Date: "2026-03-13", Count: 1}, m.ActionTrend[27])
	assert.Equal(t, 5, m.MovementTrend[29].StockOut)
}

func TestCalculateDashboardMetrics(t *testing.T) {
	svc, _ := newService(t)

	d, err := svc.CalculateDashboardMetrics(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.Overview.TotalActions)
	assert.Equal(t, 2, d.Overview.TotalCategories)
	assert.Equal(t, AlertCounts{Critical: 1, Warning: 1, Total: 2}, d.Alerts)
	assert.Equal(t, 2, d.Performance.StockTurnover)
	assert.Equal(t, "4.33", d.Performance.AverageStockLevel.String())
	assert.True(t, d.Performance.StockAccuracy.Equal(StockAccuracy))
	require.Len(t, d.Performance.TopMovingItems, 2)

	require.Len(t, d.Trends.ValueChanges, TrendDays)
	assert.True(t, d.Trends.ValueChanges[TrendDays-1].Value.Equal(d.Overview.TotalValue))
	assert.Len(t, d.Trends.StockMovements, TrendDays)
}
