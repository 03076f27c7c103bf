package router

import (
	"net/http"

	"dishpatch/internal/handler"
	"dishpatch/internal/middleware"
	"dishpatch/internal/notify"

	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	menuHandler *handler.MenuHandler,
	hub *notify.Hub,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("POST /api/orders", orderHandler.Create)
	mux.HandleFunc("GET /api/orders", orderHandler.ListByBucket)
	mux.HandleFunc("GET /api/orders/counts", orderHandler.BucketCounts)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("POST /api/orders/{id}/transition", orderHandler.Transition)

	mux.HandleFunc("GET /api/menu", menuHandler.List)
	mux.HandleFunc("POST /api/menu", menuHandler.Create)

	// Live status push for the apps.
	mux.Handle("GET /ws/orders", hub)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
