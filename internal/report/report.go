package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

// Stock statuses shown on report rows
const (
	StatusNormal     = "normal"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// StockAccuracy is a fixed figure. There is no cycle-count data to derive it from.
var StockAccuracy = decimal.RequireFromString("98.5")

// TrendDays is the length of every trend series
const TrendDays = 30

// Filter narrows every report. All fields are optional and combine freely.
type Filter struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Category  string     `json:"category,omitempty"`
	Location  string     `json:"location,omitempty"`
	ItemID    string     `json:"item_id,omitempty"`
}

// Summary holds the totals shared by reports and metrics
type Summary struct {
	TotalItems      int             `json:"total_items"`
	TotalStock      int             `json:"total_stock"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	CategoryCount   int             `json:"category_count"`
	LocationCount   int             `json:"location_count"`
}

// ItemRow is one item on an inventory report
type ItemRow struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Location   string          `json:"location"`
	StockLevel int             `json:"stock_level"`
	MinStock   int             `json:"min_stock"`
	MaxStock   *int            `json:"max_stock,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	Status     string          `json:"status"`
}

// InventoryReport is the exportable report
type InventoryReport struct {
	Summary       Summary         `json:"summary"`
	Items         []ItemRow       `json:"items"`
	RecentActions []domain.Action `json:"recent_actions"`
	Filter        Filter          `json:"filter"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// Breakdown aggregates the items sharing a category or a location
type Breakdown struct {
	Name          string          `json:"name"`
	ItemCount     int             `json:"item_count"`
	TotalStock    int             `json:"total_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// DailyCount is the number of actions on one UTC day
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyMovement is the stock moved in and out on one UTC day
type DailyMovement struct {
	Date     string `json:"date"`
	StockIn  int    `json:"stock_in"`
	StockOut int    `json:"stock_out"`
	Net      int    `json:"net"`
}

// MovingItem ranks an item by how often its stock changed
type MovingItem struct {
	ItemID      string `json:"item_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	ActionCount int    `json:"action_count"`
	NetChange   int    `json:"net_change"`
}

// ValuePoint is one point of the value trend
type ValuePoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// InventoryMetrics adds rankings and trends to the summary
type InventoryMetrics struct {
	Summary       Summary         `json:"summary"`
	TopCategories []Breakdown     `json:"top_categories"`
	TopLocations  []Breakdown     `json:"top_locations"`
	ActionTrend   []DailyCount    `json:"action_trend"`
	MovementTrend []DailyMovement `json:"movement_trend"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// Overview is the headline block of the dashboard
type Overview struct {
	TotalItems      int             `json:"total_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCategories int             `json:"total_categories"`
	TotalLocations  int             `json:"total_locations"`
	TotalActions    int64           `json:"total_actions"`
}

// AlertCounts splits alerting items into out-of-stock and low
type AlertCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Total    int `json:"total"`
}

// Performance holds the dashboard's operational indicators
type Performance struct {
	StockTurnover     int             `json:"stock_turnover"`
	AverageStockLevel decimal.Decimal `json:"average_stock_level"`
	StockAccuracy     decimal.Decimal `json:"stock_accuracy"`
	TopMovingItems    []MovingItem    `json:"top_moving_items"`
}

// Trends holds the dashboard's time series
type Trends struct {
	StockMovements []DailyMovement `json:"stock_movements"`
	// ValueChanges is simulated around the current value; there is no
	// historical value ledger to draw from.
	ValueChanges []ValuePoint `json:"value_changes"`
}

// DashboardMetrics feeds the operations dashboard
type DashboardMetrics struct {
	Overview    Overview    `json:"overview"`
	Alerts      AlertCounts `json:"alerts"`
	Performance Performance `json:"performance"`
	Trends      Trends      `json:"trends"`
	GeneratedAt time.Time   `json:"generated_at"`
}
