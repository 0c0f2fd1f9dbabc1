package report

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, StatusOutOfStock, StockStatus(0, 5))
	assert.Equal(t, StatusOutOfStock, StockStatus(0, 0))
	assert.Equal(t, StatusLowStock, StockStatus(3, 5))
	assert.Equal(t, StatusLowStock, StockStatus(1, 8))
	assert.Equal(t, StatusNormal, StockStatus(6, 5))
	assert.Equal(t, StatusNormal, StockStatus(2, 0))
}

func TestSummarizeUsesExactDecimals(t *testing.T) {
	items := make([]domain.Item, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, domain.Item{
			SKU: fmt.Sprintf("SKU-%d", i), Category: fmt.Sprintf("C%d", i%3), Location: "L",
			StockLevel: 1, MinStock: 0, UnitPrice: price("0.10"),
		})
	}
	items[0].StockLevel = 0
	items[0].MinStock = 2
	items[1].MinStock = 3

	s := Summarize(Rows(items))
	assert.Equal(t, 1000, s.TotalItems)
	assert.Equal(t, 999, s.TotalStock)
	assert.True(t, s.TotalValue.Equal(price("99.9")), s.TotalValue.String())
	assert.Equal(t, 2, s.LowStockCount)
	assert.Equal(t, 1, s.OutOfStockCount)
	assert.Equal(t, 3, s.CategoryCount)
	assert.Equal(t, 1, s.LocationCount)
}

func TestRankBreakdownsKeepsTopTenByValue(t *testing.T) {
	var rows []ItemRow
	for i := 0; i < 12; i++ {
		rows = append(rows, ItemRow{
			Category:   fmt.Sprintf("cat-%02d", i),
			StockLevel: 1,
			TotalValue: decimal.NewFromInt(int64(i)),
			Status:     StatusNormal,
		})
	}
	rows = append(rows, ItemRow{Category: "cat-00", StockLevel: 2, TotalValue: decimal.NewFromInt(100), Status: StatusLowStock})

	ranked := RankBreakdowns(rows, ByCategory)
	require.Len(t, ranked, 10)
	assert.Equal(t, "cat-00", ranked[0].Name)
	assert.Equal(t, 2, ranked[0].ItemCount)
	assert.Equal(t, 3, ranked[0].TotalStock)
	assert.Equal(t, 1, ranked[0].LowStockCount)
	assert.Equal(t, "cat-11", ranked[1].Name)
	assert.Equal(t, "cat-03", ranked[9].Name)
}

func TestDailySeriesAreZeroFilledUTCDays(t *testing.T) {
	end := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	actions := []domain.Action{
		{ItemID: "a", Type: domain.ActionAddStock, PreviousLevel: 0, NewLevel: 5, CreatedAt: end.Add(-time.Hour)},
		{ItemID: "a", Type: domain.ActionAdjustStock, PreviousLevel: 10, NewLevel: 4, CreatedAt: end.Add(-20 * time.Hour)},
		{ItemID: "b", Type: domain.ActionRemoveStock, PreviousLevel: 4, NewLevel: 1, CreatedAt: end.Add(-22 * time.Hour)},
		{ItemID: "b", Type: domain.ActionAddStock, PreviousLevel: 0, NewLevel: 9, CreatedAt: end.AddDate(0, 0, -40)},
	}

	counts := DailyActionCounts(actions, end, TrendDays)
	require.Len(t, counts, TrendDays)
	assert.Equal(t, "2026-02-14", counts[0].Date)
	assert.Equal(t, DailyCount{Date: "2026-03-15", Count: 1}, counts[29])
	assert.Equal(t, DailyCount{Date: "2026-03-14", Count: 2}, counts[28])
	assert.Equal(t, 0, counts[0].Count)

	moves := DailyMovements(actions, end, TrendDays)
	require.Len(t, moves, TrendDays)
	assert.Equal(t, DailyMovement{Date: "2026-03-15", StockIn: 5, StockOut: 0, Net: 5}, moves[29])
	assert.Equal(t, DailyMovement{Date: "2026-03-14", StockIn: 0, StockOut: 9, Net: -9}, moves[28])

	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), WindowStart(end, TrendDays))
}

func TestTopMovingItems(t *testing.T) {
	item := &domain.Item{SKU: "BOLT", Name: "Bolt"}
	actions := []domain.Action{
		{ItemID: "a", Item: item, PreviousLevel: 0, NewLevel: 10},
		{ItemID: "a", Item: item, PreviousLevel: 10, NewLevel: 7},
		{ItemID: "a", Item: item, PreviousLevel: 7, NewLevel: 9},
		{ItemID: "b", PreviousLevel: 5, NewLevel: 0},
	}

	top := TopMovingItems(actions)
	require.Len(t, top, 2)
	assert.Equal(t, MovingItem{ItemID: "a", SKU: "BOLT", Name: "Bolt", ActionCount: 3, NetChange: 9}, top[0])
	assert.Equal(t, -5, top[1].NetChange)
}

func TestAverageStockLevel(t *testing.T) {
	assert.True(t, AverageStockLevel(nil).IsZero())
	avg := AverageStockLevel([]ItemRow{{StockLevel: 1}, {StockLevel: 2}, {StockLevel: 2}})
	assert.Equal(t, "1.67", avg.String())
}

func TestSimulatedValueTrend(t *testing.T) {
	current := price("1000.00")
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	series := SimulatedValueTrend(current, end, TrendDays, rand.New(rand.NewSource(7)))
	require.Len(t, series, TrendDays)
	assert.True(t, series[len(series)-1].Value.Equal(current))
	assert.Equal(t, "2026-03-15", series[len(series)-1].Date)

	low, high := price("950"), price("1050")
	for _, p := range series {
		assert.True(t, p.Value.GreaterThanOrEqual(low) && p.Value.LessThanOrEqual(high), p.Value.String())
	}

	again := SimulatedValueTrend(current, end, TrendDays, rand.New(rand.NewSource(7)))
	assert.Equal(t, series, again)
}
