package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"storefront/internal/config"
	"storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/observability"
	"storefront/internal/security"
	"storefront/internal/services"
	"storefront/internal/session"
	"storefront/internal/ui"
	"storefront/internal/ui/templates"
)

type SSEHandlers struct {
	streams    context.Context
	storefront *services.Storefront
	sessions   *session.Store
	limiter    *security.LoginLimiter
	cfg        config.StorefrontConfig
	logger     *slog.Logger
}

// NewSSEHandlers builds the stream handlers. Long-lived streams end when
// streams is done, which happens as soon as server shutdown begins.
func NewSSEHandlers(
	streams context.Context,
	storefront *services.Storefront,
	sessions *session.Store,
	limiter *security.LoginLimiter,
	cfg config.StorefrontConfig,
	logger *slog.Logger,
) *SSEHandlers {
	return &SSEHandlers{
		streams:    streams,
		storefront: storefront,
		sessions:   sessions,
		limiter:    limiter,
		cfg:        cfg,
		logger:     logger,
	}
}

// pageSignals are the client signals the handlers read back.
type pageSignals struct {
	Search     string `json:"search"`
	AdminEmail string `json:"adminEmail"`
}

// stream stores state in the visitor's session and opens the event
// stream. The cookie has to go out before the stream flushes headers.
func (h *SSEHandlers) stream(w http.ResponseWriter, r *http.Request, state ui.State) *datastar.ServerSentEventGenerator {
	if err := h.sessions.Save(w, r, state); err != nil {
		observability.LoggerFor(r.Context(), h.logger).Error("save ui state", "error", err)
	}
	return datastar.NewSSE(w, r)
}

func (h *SSEHandlers) patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, c templ.Component) error {
	html, err := templates.ToString(ctx, c)
	if err != nil {
		return fmt.Errorf("render fragment: %w", err)
	}
	return sse.PatchElements(html)
}

// Partial signal patches. Each leaves the other client signals, such as
// the text in the search box, as they are.
type adminSignals struct {
	AdminOpen bool `json:"adminOpen"`
}

type viewSignals struct {
	View ui.View `json:"view"`
}

func (h *SSEHandlers) patchSignals(sse *datastar.ServerSentEventGenerator, signals any) error {
	raw, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}
	return sse.PatchSignals(raw)
}

// toast shows message and schedules its dismissal on the client.
func (h *SSEHandlers) toast(ctx context.Context, sse *datastar.ServerSentEventGenerator, message string) error {
	if err := h.patch(ctx, sse, templates.Toast(message)); err != nil {
		return err
	}
	return sse.ExecuteScript(fmt.Sprintf(
		"setTimeout(() => document.getElementById('toast').classList.remove('show'), %d)",
		h.cfg.ToastDuration.Milliseconds(),
	))
}

func (h *SSEHandlers) fail(r *http.Request, msg string, err error) {
	if err == nil || r.Context().Err() != nil {
		return
	}
	observability.LoggerFor(r.Context(), h.logger).Error(msg, "error", err)
}

func (h *SSEHandlers) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	errors.WriteError(w, h.logger, errors.BadRequest(message), observability.GetRequestID(r.Context()))
}

// HandleHome fills the flash deals and category containers. The two
// loads run concurrently and each patches only its own container as soon
// as it is ready.
func (h *SSEHandlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Load(r)
	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	var mu sync.Mutex
	send := func(c templ.Component) error {
		mu.Lock()
		defer mu.Unlock()
		return h.patch(ctx, sse, c)
	}

	err := h.storefront.LoadHome(ctx,
		func(deals []models.Product, err error) error {
			if err != nil {
				return send(templates.DealsError())
			}
			if err := send(templates.ProductGrid(templates.FlashDealsGridID, deals, state.Wishlist)); err != nil {
				return err
			}
			return send(templates.StatProducts(len(deals)))
		},
		func(categories []models.Category, err error) error {
			if err != nil {
				return nil
			}
			return send(templates.CategoryGrid(categories))
		},
	)
	h.fail(r, "load home", err)
}

func (h *SSEHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var signals pageSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.badRequest(w, r, "Invalid signals")
		return
	}
	h.submit(w, r, signals.Search)
}

// HandleCategory searches by a category name, exactly as if it had been
// typed into the search box.
func (h *SSEHandlers) HandleCategory(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, r.URL.Query().Get("name"))
}

func (h *SSEHandlers) submit(w http.ResponseWriter, r *http.Request, raw string) {
	ctx := r.Context()
	state, action := h.sessions.Load(r).Submit(raw, h.cfg.AdminCode)

	switch action {
	case ui.ActionNone:
		datastar.NewSSE(w, r)
		return

	case ui.ActionOpenAdmin:
		sse := h.stream(w, r, state)
		if err := h.patchSignals(sse, adminSignals{AdminOpen: true}); err != nil {
			h.fail(r, "patch signals", err)
			return
		}
		h.fail(r, "open admin panel", h.patch(ctx, sse, templates.AdminLogin()))
		return
	}

	sse := h.stream(w, r, state)
	if err := h.patchSignals(sse, state.Signals()); err != nil {
		h.fail(r, "patch signals", err)
		return
	}
	if err := h.patch(ctx, sse, templates.Spinner(templates.SearchResultsContainerID)); err != nil {
		h.fail(r, "patch spinner", err)
		return
	}
	if err := sse.ExecuteScript("window.scrollTo({top: 0, behavior: 'smooth'})"); err != nil {
		h.fail(r, "scroll to results", err)
		return
	}

	products, err := h.storefront.Search(ctx, state.Query)
	if err != nil {
		h.fail(r, "patch search error", h.patch(ctx, sse, templates.SearchError()))
		return
	}
	if err := h.patch(ctx, sse, templates.SearchCount(state.Query, len(products))); err != nil {
		h.fail(r, "patch search count", err)
		return
	}
	h.fail(r, "patch search results", h.patch(ctx, sse, templates.SearchResults(products, state.Wishlist)))
}

func (h *SSEHandlers) HandleNavigateHome(w http.ResponseWriter, r *http.Request) {
	h.showHome(w, r, "window.scrollTo({top: 0, behavior: 'smooth'})")
}

func (h *SSEHandlers) HandleFlash(w http.ResponseWriter, r *http.Request) {
	h.showHome(w, r, "document.getElementById('flashSection').scrollIntoView({behavior: 'smooth'})")
}

func (h *SSEHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.showHome(w, r, "document.getElementById('categoriesSection').scrollIntoView({behavior: 'smooth'})")
}

func (h *SSEHandlers) showHome(w http.ResponseWriter, r *http.Request, scroll string) {
	state := h.sessions.Load(r).NavigateHome()
	sse := h.stream(w, r, state)
	if err := h.patchSignals(sse, viewSignals{View: state.View}); err != nil {
		h.fail(r, "patch signals", err)
		return
	}
	h.fail(r, "scroll", sse.ExecuteScript(scroll))
}

// HandleBuy records the click in the background and opens the product's
// affiliate link in a new tab.
func (h *SSEHandlers) HandleBuy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.URL.Query().Get("id")
	link := r.URL.Query().Get("link")

	sse := datastar.NewSSE(w, r)

	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		h.fail(r, "toast", h.toast(ctx, sse, "Invalid link"))
		return
	}

	if id != "" {
		h.storefront.TrackClick(ctx, id)
	}

	target, err := json.Marshal(u.String())
	if err != nil {
		h.fail(r, "encode link", err)
		return
	}
	if err := sse.ExecuteScript(fmt.Sprintf("window.open(%s, '_blank')", target)); err != nil {
		h.fail(r, "open link", err)
		return
	}
	h.fail(r, "toast", h.toast(ctx, sse, "Redirecting..."))
}

// HandleWishlist toggles a product's wishlist mark. The state is saved
// before anything is patched, so the button never shows a mark the
// session could not keep.
func (h *SSEHandlers) HandleWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.URL.Query().Get("id")
	if id == "" {
		h.badRequest(w, r, "Missing product id")
		return
	}

	state, active, err := h.sessions.Load(r).ToggleWishlist(id)
	if stderrors.Is(err, ui.ErrWishlistFull) {
		h.fail(r, "toast", h.toast(ctx, datastar.NewSSE(w, r), "Wishlist is full"))
		return
	}
	if err := h.sessions.Save(w, r, state); err != nil {
		observability.LoggerFor(ctx, h.logger).Error("save wishlist", "error", err, "product_id", id)
		h.fail(r, "toast", h.toast(ctx, datastar.NewSSE(w, r), "Could not save wishlist"))
		return
	}
	sse := datastar.NewSSE(w, r)

	// one patch per container, a missing container only drops its own patch
	for _, scope := range templates.WishlistScopes {
		if err := h.patch(ctx, sse, templates.WishlistButton(scope, id, active)); err != nil {
			h.fail(r, "patch wishlist button", err)
			return
		}
	}
	message := "Removed"
	if active {
		message = "Added!"
	}
	h.fail(r, "toast", h.toast(ctx, sse, message))
}
