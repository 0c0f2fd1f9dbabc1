package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/audit/audittest"
	"github.com/tair/warehouse-inventory/internal/audit/domain"
	inventorydomain "github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/inventorytest"
	"github.com/tair/warehouse-inventory/internal/metrics"
)

func TestAsyncRecorderWritesAfterClose(t *testing.T) {
	repo := audittest.NewMemoryRepository()
	recorder := NewAsyncRecorder(repo, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	recorder.Record(ctx, domain.Entry{
		Action:       domain.ActionStockChange,
		ResourceType: domain.ResourceItem,
		ResourceID:   "item-1",
		UserID:       "admin-1",
		Changes:      map[string]int{"previous_level": 3, "new_level": 7},
	})
	// the request finishing must not cancel the write
	cancel()
	recorder.Close()

	logs := repo.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "item-1", logs[0].ResourceID)

	var changes map[string]int
	require.NoError(t, json.Unmarshal(logs[0].Changes, &changes))
	assert.Equal(t, 7, changes["new_level"])
}

func TestAsyncRecorderSwallowsFailures(t *testing.T) {
	repo := audittest.NewMemoryRepository()
	repo.Err = errors.New("database is down")
	recorder := NewAsyncRecorder(repo, time.Second)
	failures := metrics.AuditWrites.WithLabelValues("failure")
	before := testutil.ToFloat64(failures)

	recorder.Record(context.Background(), domain.Entry{Action: domain.ActionDelete, ResourceType: domain.ResourceItem})
	recorder.Close()

	assert.Empty(t, repo.Logs())
	assert.Equal(t, before+1, testutil.ToFloat64(failures))
}

func TestSweeperHonoursRetention(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	logs := audittest.NewMemoryRepository()
	require.NoError(t, logs.Create(ctx, &domain.AuditLog{Action: "CREATE", ResourceType: "item", CreatedAt: now.AddDate(0, 0, -100)}))
	require.NoError(t, logs.Create(ctx, &domain.AuditLog{Action: "CREATE", ResourceType: "item", CreatedAt: now.AddDate(0, 0, -10)}))

	store := inventorytest.NewMemoryStore()
	item := store.Seed(inventorydomain.Item{SKU: "S", Name: "S", StockLevel: 1})[0]
	store.SeedActions(
		inventorydomain.Action{ItemID: item.ID, Type: inventorydomain.ActionAddStock, Quantity: 1, NewLevel: 1, CreatedAt: now.AddDate(-2, 0, 0)},
		inventorydomain.Action{ItemID: item.ID, Type: inventorydomain.ActionAddStock, Quantity: 1, NewLevel: 2, CreatedAt: now.AddDate(0, -1, 0)},
	)

	sweeper := NewSweeper(logs, store.Actions(), SweepConfig{
		AuditRetention:  90 * 24 * time.Hour,
		ActionRetention: 365 * 24 * time.Hour,
	})
	sweeper.now = func() time.Time { return now }

	result, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{AuditLogs: 1, Actions: 1}, result)
	assert.Len(t, logs.Logs(), 1)
	assert.Len(t, store.AllActions(), 1)
}

func TestSweeperKeepsActionsWithoutRetention(t *testing.T) {
	store := inventorytest.NewMemoryStore()
	item := store.Seed(inventorydomain.Item{SKU: "S", Name: "S"})[0]
	store.SeedActions(inventorydomain.Action{ItemID: item.ID, CreatedAt: time.Now().AddDate(-5, 0, 0)})

	result, err := NewSweeper(audittest.NewMemoryRepository(), store.Actions(), SweepConfig{AuditRetention: time.Hour}).
		Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Actions)
	assert.Len(t, store.AllActions(), 1)
}
