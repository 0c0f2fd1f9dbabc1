package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("ENVIRONMENT", "")

	cfg := Load()

	assert.Equal(t, "8082", cfg.Server.HTTPPort)
	assert.Equal(t, "inventorydb", cfg.Postgres.DBName)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Minute, cfg.Alerts.ScanInterval)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("ALERT_SCAN_INTERVAL", "30s")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Alerts.ScanInterval)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 120, cfg.Redis.RateLimit)
}
