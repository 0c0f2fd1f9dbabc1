package inventorytest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
)

func TestTransactionRollsBack(t *testing.T) {
	store := NewMemoryStore()
	item := store.Seed(domain.Item{SKU: "A-1", Name: "Bolt", Category: "Hardware", Location: "A", StockLevel: 5})[0]
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx domain.Store) error {
		require.NoError(t, tx.Items().UpdateStockLevel(ctx, item.ID, 1))
		return errors.New("abort")
	})
	require.Error(t, err)

	got, _ := store.Item(item.ID)
	assert.Equal(t, 5, got.StockLevel)
}

func TestFindLowStockOrdering(t *testing.T) {
	store := NewMemoryStore()
	store.Seed(
		domain.Item{SKU: "1", Name: "b", StockLevel: 3, MinStock: 5},
		domain.Item{SKU: "2", Name: "a", StockLevel: 3, MinStock: 5},
		domain.Item{SKU: "3", Name: "c", StockLevel: 0, MinStock: 5},
		domain.Item{SKU: "4", Name: "d", StockLevel: 9, MinStock: 5},
	)

	items, err := store.Items().FindLowStock(context.Background(), domain.ItemFilter{})
	require.NoError(t, err)

	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
