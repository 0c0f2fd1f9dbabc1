package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/warehouse-inventory/pkg/database"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres database.Config
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Tracing  TracingConfig
	Alerts   AlertConfig
	Audit    AuditConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	ServiceName     string
	Environment     string
	HTTPPort        string
	GRPCPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type LoggerConfig struct {
	Level string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	RateLimit       int
	RateLimitWindow time.Duration
	EventsChannel   string
}

type KafkaConfig struct {
	Brokers       []string
	EventsTopic   string
	CommandsTopic string
	GroupID       string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

type AlertConfig struct {
	ScanInterval time.Duration
}

type AuditConfig struct {
	Retention       time.Duration
	ActionRetention time.Duration
	SweepInterval   time.Duration
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Load reads configuration from the environment, optionally seeded by a .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Logger.Debug().Msg(".env file not found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "inventory-service"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			HTTPPort:        getEnv("HTTP_PORT", "8082"),
			GRPCPort:        getEnv("GRPC_PORT", "9092"),
			RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
			AllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Postgres: database.Config{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "inventorydb"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "change-me-in-production"),
			Expiration: getEnvAsDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			RateLimit:       getEnvAsInt("RATE_LIMIT", 120),
			RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			EventsChannel:   getEnv("REDIS_EVENTS_CHANNEL", "inventory-events"),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvAsSlice("KAFKA_BROKERS", nil),
			EventsTopic:   getEnv("KAFKA_EVENTS_TOPIC", "inventory-events"),
			CommandsTopic: getEnv("KAFKA_COMMANDS_TOPIC", "inventory-stock-commands"),
			GroupID:       getEnv("KAFKA_GROUP_ID", "inventory-service"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			Endpoint:    getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			SampleRatio: getEnvAsFloat("TRACING_SAMPLE_RATIO", 1),
		},
		Alerts: AlertConfig{
			ScanInterval: getEnvAsDuration("ALERT_SCAN_INTERVAL", 5*time.Minute),
		},
		Audit: AuditConfig{
			Retention:       getEnvAsDuration("AUDIT_RETENTION", 90*24*time.Hour),
			ActionRetention: getEnvAsDuration("ACTION_RETENTION", 0),
			SweepInterval:   getEnvAsDuration("AUDIT_SWEEP_INTERVAL", 24*time.Hour),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@warehouse.local"),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
