package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/warehouse-inventory/internal/httpx"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// RequestIDHeader carries the correlation id of a request
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for middlewares
type Config struct {
	EnableLogging   bool
	EnableTracing   bool
	EnableMetrics   bool
	EnableRecovery  bool
	EnableTimeout   bool
	TimeoutDuration time.Duration
	CORSOptions     cors.Options
	ServiceName     string
}

// DefaultConfig returns default middleware configuration
func DefaultConfig(serviceName string, allowedOrigins []string, timeout time.Duration) *Config {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Config{
		EnableLogging:   true,
		EnableTracing:   true,
		EnableMetrics:   true,
		EnableRecovery:  true,
		EnableTimeout:   timeout > 0,
		TimeoutDuration: timeout,
		CORSOptions: cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", RequestIDHeader},
			ExposedHeaders:   []string{RequestIDHeader, "Content-Disposition"},
			AllowCredentials: true,
		},
		ServiceName: serviceName,
	}
}

// Register registers all configured middlewares to the router
func Register(router *mux.Router, config *Config) {
	logger.Logger.Info().
		Bool("logging", config.EnableLogging).
		Bool("tracing", config.EnableTracing).
		Bool("metrics", config.EnableMetrics).
		Bool("recovery", config.EnableRecovery).
		Bool("timeout", config.EnableTimeout).
		Dur("timeout_duration", config.TimeoutDuration).
		Msg("Registering middlewares")

	// Recovery middleware (first - catches panics)
	if config.EnableRecovery {
		router.Use(RecoveryMiddleware)
	}

	// Tracing before logging so log lines carry the trace id
	if config.EnableTracing {
		router.Use(TracingMiddleware(config.ServiceName + "-http-request"))
	}

	router.Use(RequestIDMiddleware)

	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}

	if config.EnableMetrics {
		router.Use(MetricsMiddleware)
	}

	router.Use(SecurityHeadersMiddleware)
}

// CORS wraps the whole router so that preflight requests are answered
// before route matching
func CORS(config *Config, next http.Handler) http.Handler {
	return cors.New(config.CORSOptions).Handler(next)
}

// TracingMiddleware wraps HTTP handlers with OpenTelemetry tracing
func TracingMiddleware(operationName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operationName)
	}
}

// RecoveryMiddleware recovers from panics and returns 500 error
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(r.Context()).
					Interface("panic", err).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Panic recovered")

				httpx.RespondJSON(w, http.StatusInternalServerError, httpx.Response{
					Success: false,
					Error:   "Internal server error",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// TimeoutMiddleware sets a timeout for HTTP requests. It is applied per
// route rather than globally because it breaks websocket upgrades.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, `{"success":false,"error":"Request timeout"}`)
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)
		r.Header.Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(logger.WithCorrelationID(r.Context(), requestID)))
	})
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
