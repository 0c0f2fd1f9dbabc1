package report

import (
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-inventory/internal/alert"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

const (
	dateKey  = "2006-01-02"
	topLimit = 10
)

// StockStatus applies the alert thresholds without the critical tier
func StockStatus(stockLevel, minStock int) string {
	severity, ok := alert.Classify(stockLevel, minStock)
	switch {
	case !ok:
		return StatusNormal
	case severity == alert.SeverityOutOfStock:
		return StatusOutOfStock
	default:
		return StatusLowStock
	}
}

// Rows converts items into report rows
func Rows(items []domain.Item) []ItemRow {
	rows := make([]ItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, ItemRow{
			ID:         item.ID,
			SKU:        item.SKU,
			Name:       item.Name,
			Category:   item.Category,
			Location:   item.Location,
			StockLevel: item.StockLevel,
			MinStock:   item.MinStock,
			MaxStock:   item.MaxStock,
			UnitPrice:  item.UnitPrice,
			TotalValue: item.TotalValue(),
			Status:     StockStatus(item.StockLevel, item.MinStock),
		})
	}
	return rows
}

// Summarize totals rows. Money is summed in exact decimal arithmetic.
func Summarize(rows []ItemRow) Summary {
	categories := make(map[string]struct{})
	locations := make(map[string]struct{})
	s := Summary{TotalItems: len(rows), TotalValue: decimal.Zero}

	for _, row := range rows {
		s.TotalStock += row.StockLevel
		s.TotalValue = s.TotalValue.Add(row.TotalValue)
		switch row.Status {
		case StatusOutOfStock:
			s.OutOfStockCount++
			s.LowStockCount++
		case StatusLowStock:
			s.LowStockCount++
		}
		categories[row.Category] = struct{}{}
		locations[row.Location] = struct{}{}
	}

	s.CategoryCount = len(categories)
	s.LocationCount = len(locations)
	return s
}

// RankBreakdowns groups rows by key and returns the ten most valuable groups
func RankBreakdowns(rows []ItemRow, key func(ItemRow) string) []Breakdown {
	groups := make(map[string]*Breakdown)
	for _, row := range rows {
		name := key(row)
		b, ok := groups[name]
		if !ok {
			b = &Breakdown{Name: name, TotalValue: decimal.Zero}
			groups[name] = b
		}
		b.ItemCount++
		b.TotalStock += row.StockLevel
		b.TotalValue = b.TotalValue.Add(row.TotalValue)
		if row.Status != StatusNormal {
			b.LowStockCount++
		}
	}

	ranked := make([]Breakdown, 0, len(groups))
	for _, b := range groups {
		ranked = append(ranked, *b)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].TotalValue.Cmp(ranked[j].TotalValue); c != 0 {
			return c > 0
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topLimit {
		ranked = ranked[:topLimit]
	}
	return ranked
}

// ByCategory keys rows by category
func ByCategory(row ItemRow) string { return row.Category }

// ByLocation keys rows by location
func ByLocation(row ItemRow) string { return row.Location }

// dayKeys returns the UTC date keys of the days-long window ending on end
func dayKeys(end time.Time, days int) []string {
	end = end.UTC()
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	keys := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		keys = append(keys, last.AddDate(0, 0, -i).Format(dateKey))
	}
	return keys
}

// WindowStart is the first instant of the days-long window ending on end
func WindowStart(end time.Time, days int) time.Time {
	end = end.UTC()
	return time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}

// DailyActionCounts buckets actions by UTC day. Every day of the window is
// present; actions outside it are ignored.
func DailyActionCounts(actions []domain.Action, end time.Time, days int) []DailyCount {
	keys := dayKeys(end, days)
	counts := make(map[string]int, days)
	for _, a := range actions {
		counts[a.CreatedAt.UTC().Format(dateKey)]++
	}

	series := make([]DailyCount, 0, days)
	for _, k := range keys {
		series = append(series, DailyCount{Date: k, Count: counts[k]})
	}
	return series
}

// DailyMovements sums stock in and out per UTC day from each action's
// signed movement, so adjustments count in whichever direction they went.
func DailyMovements(actions []domain.Action, end time.Time, days int) []DailyMovement {
	keys := dayKeys(end, days)
	byDay := make(map[string]*DailyMovement, days)
	for _, k := range keys {
		byDay[k] = &DailyMovement{Date: k}
	}

	for _, a := range actions {
		m, ok := byDay[a.CreatedAt.UTC().Format(dateKey)]
		if !ok {
			continue
		}
		if delta := a.SignedDelta(); delta >= 0 {
			m.StockIn += delta
		} else {
			m.StockOut -= delta
		}
	}

	series := make([]DailyMovement, 0, days)
	for _, k := range keys {
		m := byDay[k]
		m.Net = m.StockIn - m.StockOut
		series = append(series, *m)
	}
	return series
}

// TopMovingItems ranks items by action count and reports their net change
func TopMovingItems(actions []domain.Action) []MovingItem {
	byItem := make(map[string]*MovingItem)
	for _, a := range actions {
		m, ok := byItem[a.ItemID]
		if !ok {
			m = &MovingItem{ItemID: a.ItemID}
			if a.Item != nil {
				m.SKU = a.Item.SKU
				m.Name = a.Item.Name
			}
			byItem[a.ItemID] = m
		}
		m.ActionCount++
		m.NetChange += a.SignedDelta()
	}

	ranked := make([]MovingItem, 0, len(byItem))
	for _, m := range byItem {
		ranked = append(ranked, *m)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ActionCount != ranked[j].ActionCount {
			return ranked[i].ActionCount > ranked[j].ActionCount
		}
		if ranked[i].SKU != ranked[j].SKU {
			return ranked[i].SKU < ranked[j].SKU
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})
	if len(ranked) > topLimit {
		ranked = ranked[:topLimit]
	}
	return ranked
}

// AverageStockLevel is the mean stock level rounded to two places
func AverageStockLevel(rows []ItemRow) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	total := 0
	for _, row := range rows {
		total += row.StockLevel
	}
	return decimal.NewFromInt(int64(total)).
		DivRound(decimal.NewFromInt(int64(len(rows))), 2)
}

// SimulatedValueTrend jitters current by up to 5% either way for every day
// but the last, which is current itself.
func SimulatedValueTrend(current decimal.Decimal, end time.Time, days int, rng *rand.Rand) []ValuePoint {
	keys := dayKeys(end, days)
	series := make([]ValuePoint, 0, days)
	for i, k := range keys {
		value := current
		if i < len(keys)-1 {
			factor := decimal.NewFromFloat(1 + (rng.Float64()*0.1 - 0.05))
			value = current.Mul(factor).Round(2)
		}
		series = append(series, ValuePoint{Date: k, Value: value})
	}
	return series
}
