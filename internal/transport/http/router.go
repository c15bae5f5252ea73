// Package httptransport wraps the registry core in an HTTP surface. It is a
// thin layer: handlers decode, delegate to the services, and encode; every
// rule lives below.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coldchain/internal/platform/middleware"
)

// NewRouter wires the public endpoints. Mutating routes require an
// authenticated caller; reads are open.
func NewRouter(h *Handler, validator middleware.CallerValidator) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Unrestricted reads.
	r.Get("/registry/entities/{id}", h.handleGetEntity)
	r.Get("/batches/{id}", h.handleGetBatch)
	r.Get("/certificates/{id}", h.handleGetCertificate)
	r.Post("/certificates/{id}/verify", h.handleVerifySignature)
	r.Get("/audit/events", h.handleListAuditEvents)

	// Owner-gated writes; the middleware authenticates, the access
	// controller authorizes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(validator, h.logger))
		r.Post("/registry/entities", h.handleAddEntity)
		r.Post("/batches", h.handleAddBatch)
		r.Post("/certificates", h.handleIssueCertificate)
	})

	return r
}
