package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/logging"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/dto"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/handlers"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/middleware"
)

// Dependencies are the services the routes dispatch to.
type Dependencies struct {
	Queries   interfaces.QueryService
	Databases interfaces.DatabaseService
	History   interfaces.HistoryStore

	// Limiter guards /api/query when RateLimit.Enabled is set.
	Limiter   middleware.RateLimiter
	RateLimit config.RateLimitConfig

	BaseURL string
}

// RegisterRoutes registers all HTTP routes
func RegisterRoutes(r chi.Router, deps Dependencies) {
	log := logging.New("routes")

	query := handlers.NewQueryHandler(deps.Queries, deps.History)
	database := handlers.NewDatabaseHandler(deps.Databases)

	r.Get("/", database.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/schema", query.Schema)
		r.With(askLimiter(deps)...).Post("/query", query.Ask)
		r.Post("/execute", query.Execute)
		r.Get("/history", query.History)
		r.Delete("/history", query.ClearHistory)
		r.Post("/upload-db", database.Upload)
		r.Get("/status", database.Status)
	})

	r.Get("/heartbeat", handleHeartbeat)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs", handlers.OpenAPIHandler(deps.BaseURL))
	r.Get("/llms.txt", handlers.LLMTxtHandler(deps.Queries, deps.BaseURL))

	if deps.RateLimit.Enabled && deps.Limiter != nil {
		log.Infof("Rate limiting /api/query to %d request(s) per %s", deps.RateLimit.Requests, deps.RateLimit.Window)
	}
	log.Debugf("Routes registered")
}

func askLimiter(deps Dependencies) []func(http.Handler) http.Handler {
	if !deps.RateLimit.Enabled || deps.Limiter == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{
		middleware.RateLimitByIP(deps.Limiter, deps.RateLimit.Requests, deps.RateLimit.Window),
	}
}

func handleHeartbeat(w http.ResponseWriter, _ *http.Request) {
	handlers.NewBaseHandler("heartbeat").WriteSuccess(w, dto.HealthResponse{Success: true})
}
