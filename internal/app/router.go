package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/warehouse-inventory/config"
	alerthttp "github.com/tair/warehouse-inventory/internal/alert/delivery/http"
	audithttp "github.com/tair/warehouse-inventory/internal/audit/delivery/http"
	"github.com/tair/warehouse-inventory/internal/httpx"
	grpcDelivery "github.com/tair/warehouse-inventory/internal/inventory/delivery/grpc"
	inventoryhttp "github.com/tair/warehouse-inventory/internal/inventory/delivery/http"
	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/realtime"
	reporthttp "github.com/tair/warehouse-inventory/internal/report/delivery/http"
	userhttp "github.com/tair/warehouse-inventory/internal/user/delivery/http"
)

// Handlers groups the HTTP delivery layer of every module
type Handlers struct {
	Inventory *inventoryhttp.InventoryHandler
	Alerts    *alerthttp.AlertHandler
	Reports   *reporthttp.ReportHandler
	Audit     *audithttp.AuditHandler
	Users     *userhttp.UserHandler
	Hub       *realtime.Hub
}

// ProvideRouter builds the HTTP handler: middlewares, every module's
// routes, docs, metrics and health, wrapped in CORS
func ProvideRouter(
	cfg *config.Config,
	handlers Handlers,
	authn *middleware.Authenticator,
	limiter *middleware.RateLimiter,
	monitor *grpcDelivery.HealthMonitor,
) http.Handler {
	router := mux.NewRouter()

	mwConfig := middleware.DefaultConfig(cfg.Server.ServiceName, cfg.Server.AllowedOrigins, cfg.Server.RequestTimeout)
	middleware.Register(router, mwConfig)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	router.HandleFunc("/health", healthHandler(monitor)).Methods("GET")

	// Swagger UI
	userhttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// API routes; the websocket endpoint is kept out of the request timeout
	api := router.NewRoute().Subrouter()
	if mwConfig.EnableTimeout {
		api.Use(middleware.TimeoutMiddleware(mwConfig.TimeoutDuration))
	}
	handlers.Users.RegisterRoutes(api, authn, limiter.Middleware)
	handlers.Inventory.RegisterRoutes(api, authn, limiter.Middleware)
	handlers.Alerts.RegisterRoutes(api, authn)
	handlers.Reports.RegisterRoutes(api, authn)
	handlers.Audit.RegisterRoutes(api, authn)

	handlers.Hub.RegisterRoutes(router)

	return middleware.CORS(mwConfig, router)
}

// Health godoc
// @Summary Health check
// @Description Reports whether the database is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,data=object{status=string}}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func healthHandler(monitor *grpcDelivery.HealthMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		healthy, _ := monitor.Healthy()
		if !healthy {
			// the periodic check may not have run yet
			healthy = monitor.Check(r.Context()) == nil
		}
		if !healthy {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, httpx.Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}
		httpx.RespondData(w, http.StatusOK, "", map[string]string{"status": "healthy"})
	}
}
