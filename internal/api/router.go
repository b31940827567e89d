package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vivekshiftai/integration-of-firewall/internal/api/handler"
	"github.com/vivekshiftai/integration-of-firewall/internal/api/middleware"
	"github.com/vivekshiftai/integration-of-firewall/internal/service"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(svc *service.PolicyService, saveByDefault bool) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.ContentType)

	policyHandler := handler.NewPolicyHandler(svc, saveByDefault)

	// Service info and health (outside the versioned API)
	r.Get("/", policyHandler.Info)
	r.Get("/health", policyHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", policyHandler.Health)
		r.Post("/policies/fetch", policyHandler.Fetch)
		r.Get("/policies/status", policyHandler.Status)
	})

	return r
}
