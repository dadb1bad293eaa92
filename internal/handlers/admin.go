package handlers

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"storefront/internal/observability"
	"storefront/internal/security"
	"storefront/internal/ui/templates"
)

func (h *SSEHandlers) HandleAdminOpen(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Load(r).OpenAdmin()
	sse := h.stream(w, r, state)
	if err := h.patchSignals(sse, adminSignals{AdminOpen: true}); err != nil {
		h.fail(r, "patch signals", err)
		return
	}
	h.fail(r, "patch admin login", h.patch(r.Context(), sse, templates.AdminLogin()))
}

func (h *SSEHandlers) HandleAdminClose(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Load(r).CloseAdmin()
	sse := h.stream(w, r, state)
	h.fail(r, "patch signals", h.patchSignals(sse, adminSignals{AdminOpen: false}))
}

// HandleAdminLogin submits the email signal to the catalog API. Only a
// successful login changes state; a rejection and an unreachable API
// both leave the login form open with a toast. Rejected logins count
// toward the per-IP limit.
func (h *SSEHandlers) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var signals pageSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.badRequest(w, r, "Invalid signals")
		return
	}

	ip := security.ClientIP(r)
	if !h.limiter.Check(ip) {
		observability.LoggerFor(ctx, h.logger).Warn("admin login rate limited", "ip", ip)
		sse := datastar.NewSSE(w, r)
		h.fail(r, "toast", h.toast(ctx, sse, "Too many login attempts"))
		return
	}

	result, err := h.storefront.Login(ctx, signals.AdminEmail)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		h.fail(r, "toast", h.toast(ctx, sse, "Server Error"))
		return
	}
	if !result.Success {
		h.limiter.Record(ip)
		sse := datastar.NewSSE(w, r)
		h.fail(r, "toast", h.toast(ctx, sse, "Login Failed"))
		return
	}

	state := h.sessions.Load(r).LoginSucceeded()
	sse := h.stream(w, r, state)
	if err := h.toast(ctx, sse, "Login Successful!"); err != nil {
		h.fail(r, "toast", err)
		return
	}
	if !state.IsAdmin() {
		// panel was closed while the login was in flight
		return
	}
	if err := h.patch(ctx, sse, templates.Spinner(templates.AdminBodyID)); err != nil {
		h.fail(r, "patch spinner", err)
		return
	}

	summary, err := h.storefront.Analytics(ctx)
	if err != nil {
		h.fail(r, "patch admin error", h.patch(ctx, sse, templates.AdminError()))
		return
	}
	h.fail(r, "patch dashboard", h.patch(ctx, sse, templates.AdminDashboard(summary)))
}
