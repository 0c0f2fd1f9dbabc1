package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func TestNextStockLevel(t *testing.T) {
	tests := []struct {
		name         string
		current      int
		actionType   ActionType
		quantity     int
		wantLevel    int
		wantRecorded int
		wantErr      error
	}{
		{"add", 10, ActionAddStock, 5, 15, 5, nil},
		{"add zero", 10, ActionAddStock, 0, 10, 0, apperror.ErrInvalidArgument},
		{"add negative", 10, ActionAddStock, -3, 10, 0, apperror.ErrInvalidArgument},
		{"remove", 10, ActionRemoveStock, 4, 6, 4, nil},
		{"remove everything", 10, ActionRemoveStock, 10, 0, 10, nil},
		{"remove too much", 10, ActionRemoveStock, 11, 10, 0, apperror.ErrInsufficientStock},
		{"remove zero", 10, ActionRemoveStock, 0, 10, 0, apperror.ErrInvalidArgument},
		{"transfer", 10, ActionTransfer, 3, 7, 3, nil},
		{"transfer too much", 2, ActionTransfer, 3, 2, 0, apperror.ErrInsufficientStock},
		{"adjust down", 150, ActionAdjustStock, 5, 5, 145, nil},
		{"adjust up", 5, ActionAdjustStock, 20, 20, 15, nil},
		{"adjust to same", 7, ActionAdjustStock, 7, 7, 0, nil},
		{"adjust to zero", 7, ActionAdjustStock, 0, 0, 7, nil},
		{"adjust negative", 7, ActionAdjustStock, -1, 7, 0, apperror.ErrInvalidArgument},
		{"unknown type", 7, ActionType("SELL"), 1, 7, 0, apperror.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, recorded, err := NextStockLevel(tt.current, tt.actionType, tt.quantity)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantRecorded, recorded)
		})
	}
}

func TestNextStockLevelInsufficientMessage(t *testing.T) {
	_, _, err := NextStockLevel(150, ActionRemoveStock, 200)
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock. Current: 150, Requested: 200", err.Error())
}

func TestLedgerSequenceKeepsStockEqualToMovements(t *testing.T) {
	level := 0
	sum := 0
	steps := []struct {
		actionType ActionType
		quantity   int
	}{
		{ActionAddStock, 100},
		{ActionAddStock, 50},
		{ActionRemoveStock, 200},
		{ActionAdjustStock, 5},
		{ActionTransfer, 5},
		{ActionRemoveStock, 1},
		{ActionAdjustStock, 42},
	}

	for _, step := range steps {
		next, recorded, err := NextStockLevel(level, step.actionType, step.quantity)
		if err != nil {
			assert.Equal(t, level, next)
			continue
		}
		action := Action{Type: step.actionType, Quantity: recorded, PreviousLevel: level, NewLevel: next}
		assert.Equal(t, recorded, abs(action.SignedDelta()))
		sum += action.SignedDelta()
		level = next
		assert.GreaterOrEqual(t, level, 0)
	}

	assert.Equal(t, 42, level)
	assert.Equal(t, level, sum)
}
