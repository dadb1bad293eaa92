package server

import (
	"log/slog"
	"net/http"

	"storefront/internal/handlers"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Page http.HandlerFunc
}

func NewServer(
	apiHandlers *handlers.APIHandlers,
	sseHandlers *handlers.SSEHandlers,
	logger *slog.Logger,
	templateHandlers *TemplateHandlers,
) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: apiHandlers,
		sseHandlers: sseHandlers,
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Page and JSON routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Page)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// View controller
	s.mux.HandleFunc("GET /sse/home", s.sseHandlers.HandleHome)
	s.mux.HandleFunc("POST /sse/search", s.sseHandlers.HandleSearch)
	s.mux.HandleFunc("GET /sse/category", s.sseHandlers.HandleCategory)
	s.mux.HandleFunc("POST /sse/navigate-home", s.sseHandlers.HandleNavigateHome)
	s.mux.HandleFunc("GET /sse/flash", s.sseHandlers.HandleFlash)
	s.mux.HandleFunc("GET /sse/categories", s.sseHandlers.HandleCategories)
	s.mux.HandleFunc("POST /sse/buy", s.sseHandlers.HandleBuy)
	s.mux.HandleFunc("POST /sse/wishlist", s.sseHandlers.HandleWishlist)

	// Admin panel
	s.mux.HandleFunc("POST /sse/admin/open", s.sseHandlers.HandleAdminOpen)
	s.mux.HandleFunc("POST /sse/admin/login", s.sseHandlers.HandleAdminLogin)
	s.mux.HandleFunc("POST /sse/admin/close", s.sseHandlers.HandleAdminClose)

	// Effects and diagnostics
	s.mux.HandleFunc("GET /sse/check", s.sseHandlers.HandleCheck)
	s.mux.HandleFunc("GET /sse/countdown", s.sseHandlers.HandleCountdown)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
