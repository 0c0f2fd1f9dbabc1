package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStockMutationsCounter(t *testing.T) {
	counter := StockMutations.WithLabelValues("ADD_STOCK", "test")
	before := testutil.ToFloat64(counter)

	counter.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestLowStockGauge(t *testing.T) {
	LowStockItems.WithLabelValues("CRITICAL").Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(LowStockItems.WithLabelValues("CRITICAL")))
}
