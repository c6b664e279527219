package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/atmlab/teller/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the ATM API.
//
// Routes:
//
//	POST /api/key      → atmHandler.Press
//	GET  /api/display  → atmHandler.Display
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON request bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
func NewRouter(atmHandler *ATMHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/key", atmHandler.Press)
		r.Get("/display", atmHandler.Display)
	})

	return r
}
