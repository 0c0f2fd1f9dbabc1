package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAddsServiceField(t *testing.T) {
	var buf bytes.Buffer
	initWithWriter("inventory-service", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	Info(context.Background()).Str("sku", "SKU-1").Msg("item created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inventory-service", entry["service"])
	assert.Equal(t, "SKU-1", entry["sku"])
	assert.Equal(t, "item created", entry["message"])
	assert.NotContains(t, entry, "trace_id")
}

func TestSetLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("verbose")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestWithContextAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	initWithWriter("inventory-service", &buf)

	ctx := WithCorrelationID(context.Background(), "req-42")
	assert.Equal(t, "req-42", CorrelationID(ctx))
	assert.Equal(t, context.Background(), WithCorrelationID(context.Background(), ""))

	Warn(ctx).Msg("stock low")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "warn", entry["level"])
}
