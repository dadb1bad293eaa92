package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/observability"
	"storefront/internal/security"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/internal/session"
	"storefront/internal/ui"
	"storefront/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

// handlePage serves the page shell. Every full load starts the visitor
// from a fresh UI state.
func handlePage(sessions *session.Store, cfg config.StorefrontConfig, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		state := ui.NewState()
		if err := sessions.Save(w, r, state); err != nil {
			observability.LoggerFor(ctx, logger).Error("reset ui state", "error", err)
		}

		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		page := templates.Page(templates.PageData{
			SiteName:        cfg.SiteName,
			ScrollThreshold: cfg.ScrollThreshold,
			Particles:       templates.NewParticles(cfg.ParticleCount, rng),
			State:           state,
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := page.Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

// newHandler wires the storefront behind the middleware chain. Background
// workers and long-lived streams end when ctx is done.
func newHandler(ctx context.Context, cfg *config.Config, storefront *services.Storefront, logger *slog.Logger) http.Handler {
	sessions := session.NewStore(cfg.Security.SessionSecret, cfg.Security.CookieSecure)

	loginLimiter := security.NewLoginLimiter(cfg.Security.LoginMaxAttempts, cfg.Security.LoginWindow)
	go loginLimiter.Run(ctx)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)
	go rateLimiter.Run(ctx)

	srv := server.NewServer(
		handlers.NewAPIHandlers(storefront, sessions, logger),
		handlers.NewSSEHandlers(ctx, storefront, sessions, loginLimiter, cfg.Storefront, logger),
		logger,
		&server.TemplateHandlers{Page: handlePage(sessions, cfg.Storefront, logger)},
	)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"api_base_url", cfg.API.BaseURL,
		"address", cfg.Address(),
	)

	// no client timeout: upstream calls end with the request context
	httpClient := &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	catalogClient := catalog.NewClient(cfg.API.BaseURL, httpClient, logger)
	storefront := services.NewStorefront(catalogClient, logger)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)
	httpServer.Handler = newHandler(gracefulServer.Context(), cfg, storefront, logger)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("waiting for click tracking")
		return storefront.WaitForTracking(ctx)
	})
	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		httpClient.CloseIdleConnections()
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
