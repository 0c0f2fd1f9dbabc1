package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%shelf%", containsPattern("shelf"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, containsPattern(`c:\tmp`))
}

func TestItemOrder(t *testing.T) {
	assert.Equal(t, "created_at DESC", itemOrder(domain.ItemFilter{}))
	assert.Equal(t, "created_at DESC", itemOrder(domain.ItemFilter{SortBy: "name; DROP TABLE items"}))
	assert.Equal(t, "name ASC", itemOrder(domain.ItemFilter{SortBy: "name"}))
	assert.Equal(t, "stock_level DESC", itemOrder(domain.ItemFilter{SortBy: "stock_level", SortDesc: true}))
}

func TestMalformedIDsNeverReachTheDatabase(t *testing.T) {
	// a nil session panics on use, so every call below must return early
	store := NewGormStore(nil)
	ctx := context.Background()

	_, err := store.Items().FindByID(ctx, "abc")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = store.Items().FindByIDForUpdate(ctx, "1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = store.Items().UpdateStockLevel(ctx, "not-a-uuid", 3)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	deleted, err := store.Items().DeleteByIDs(ctx, []string{"abc", "missing"})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = store.Actions().DeleteByItemIDs(ctx, []string{"abc"})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	actions, total, err := store.Actions().FindAll(ctx, domain.ActionFilter{ItemID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, actions)
	assert.Zero(t, total)
}
