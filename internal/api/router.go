package api

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/jumpigames/newsletter/internal/api/handler"
	"github.com/jumpigames/newsletter/internal/api/middleware"
	"github.com/jumpigames/newsletter/internal/services/auth"
	"github.com/jumpigames/newsletter/internal/services/broadcast"
	"github.com/jumpigames/newsletter/internal/services/newsletter"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger               *slog.Logger
	Sessions             *scs.SessionManager
	AuthService          *auth.Service
	NewsletterController *newsletter.Controller
	BroadcastService     *broadcast.Service

	// AllowedOrigins enables credentialed CORS for these origins
	AllowedOrigins []string
	// StaticDir, when set, is served at the root for the signup widget
	StaticDir string
	// TrustProxy honours X-Forwarded-For and X-Forwarded-Proto
	TrustProxy bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	adminHandler := handler.NewAdminHandler(cfg.AuthService)
	newsletterHandler := handler.NewNewsletterHandler(cfg.NewsletterController)
	broadcastHandler := handler.NewBroadcastHandler(cfg.BroadcastService)

	// Create middleware
	requireAdmin := middleware.RequireAdmin(cfg.AuthService)
	cfg.Sessions.ErrorFunc = handler.SessionErrorFunc

	// API subrouter; sessions are loaded for every API call
	api := r.PathPrefix("/api").Subrouter()
	api.Use(cfg.Sessions.LoadAndSave)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/newsletter/subscribe", newsletterHandler.Subscribe).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", adminHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/admin/check-auth", adminHandler.CheckAuth).Methods(http.MethodGet)
	api.HandleFunc("/admin/logout", adminHandler.Logout).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(requireAdmin)
	admin.HandleFunc("/subscribers", newsletterHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/stats", newsletterHandler.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/send-update", broadcastHandler.SendUpdate).Methods(http.MethodPost)

	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir))).Methods(http.MethodGet, http.MethodHead)
	}

	// Outermost first: proxy headers, recovery, logging, CORS
	var h http.Handler = r
	h = cors(cfg.AllowedOrigins)(h)
	h = middleware.Logging(cfg.Logger)(h)
	h = middleware.Recovery(cfg.Logger)(h)
	if cfg.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}
	return h
}

// cors allows the signup widget and admin page to call the API with cookies
func cors(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	)
}
