package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/nba-player-analytics/internal/http/handlers"
	"github.com/preston-bernstein/nba-player-analytics/internal/http/middleware"
	"github.com/preston-bernstein/nba-player-analytics/internal/metrics"
)

// RouterConfig collects what NewRouter mounts. Admin and MCP are optional.
type RouterConfig struct {
	Handler        *handlers.Handler
	Admin          *handlers.AdminHandler
	MCP            nethttp.Handler
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers HTTP routes on a chi router wrapped in CORS and request logging.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	h := cfg.Handler
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodDelete, nethttp.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "Mcp-Session-Id"},
		ExposedHeaders:   []string{"X-Request-ID", "Mcp-Session-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Middleware(cfg.Logger, cfg.Recorder))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.Players)
		r.Get("/summary", h.Summary)
		r.Get("/compare", h.Compare)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Player)
			r.Get("/similar", h.Similar)
			r.Get("/projection", h.Projection)
			r.Get("/points-model", h.PointsModel)
		})
	})
	r.Get("/projections", h.Projections)
	r.Get("/clusters", h.Clusters)
	r.Get("/similarity/presets", h.Presets)

	if cfg.Admin != nil {
		r.Post("/admin/roster/reload", cfg.Admin.ReloadRoster)
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
	}
	return r
}
