package handlers

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"storefront/internal/models"
	"storefront/internal/ui/templates"
)

// HandleCheck probes the catalog API through its analytics endpoint and
// reports the outcome as a toast.
func (h *SSEHandlers) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.storefront.Analytics(ctx)

	sse := datastar.NewSSE(w, r)
	message := "Server Offline. Start the catalog API"
	if err == nil {
		message = "API Live! Revenue: " + models.FormatPrice(summary.Revenue)
	}
	h.fail(r, "toast", h.toast(ctx, sse, message))
}

// HandleCountdown streams a random seconds value into the countdown
// until the client disconnects or the server shuts down. Hours and
// minutes are never set.
func (h *SSEHandlers) HandleCountdown(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(h.streams, cancel)
	defer stop()

	sse := datastar.NewSSE(w, r)

	ticker := time.NewTicker(h.cfg.CountdownInterval)
	defer ticker.Stop()

	for {
		if err := h.patch(ctx, sse, templates.Seconds(rand.IntN(60))); err != nil {
			if ctx.Err() == nil {
				h.fail(r, "patch countdown", err)
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
