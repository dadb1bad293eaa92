package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/errors"
	"storefront/internal/observability"
	"storefront/internal/services"
	"storefront/internal/session"
)

type APIHandlers struct {
	storefront *services.Storefront
	sessions   *session.Store
	logger     *slog.Logger
}

func NewAPIHandlers(storefront *services.Storefront, sessions *session.Store, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		storefront: storefront,
		sessions:   sessions,
		logger:     logger,
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

// HandleStats returns the catalog analytics summary to a visitor whose
// session reached the admin dashboard.
func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	if !h.sessions.Load(r).IsAdmin() {
		errors.WriteError(w, h.logger, errors.Unauthorized("Admin login required"), requestID)
		return
	}

	summary, err := h.storefront.Analytics(r.Context())
	if err != nil {
		errors.WriteError(w, h.logger, errors.Upstream(err), requestID)
		return
	}

	errors.WriteSuccessWithHeaders(w, summary, map[string]string{
		"Cache-Control": "no-store",
	})
}
