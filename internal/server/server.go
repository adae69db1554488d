package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/config"
	httpserver "github.com/preston-bernstein/nba-player-analytics/internal/http"
	"github.com/preston-bernstein/nba-player-analytics/internal/http/handlers"
	"github.com/preston-bernstein/nba-player-analytics/internal/logging"
	"github.com/preston-bernstein/nba-player-analytics/internal/mcptools"
	"github.com/preston-bernstein/nba-player-analytics/internal/metrics"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
	"github.com/preston-bernstein/nba-player-analytics/internal/store"
)

// Version is reported in logs and by the MCP server. Set with -ldflags at build time.
var Version = "dev"

var metricsSetup = metrics.Setup

type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	store          *store.MemoryStore
	playersService *players.Service
	provider       providers.RosterProvider
	providerCloser io.Closer
	httpServer     httpServer
	metricsServer  httpServer
	metricsStop    func(context.Context) error
}

// New constructs a server for the configured roster source. The roster itself
// is fetched by Run, so /ready reports 503 until the first load succeeds.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	provider, closer, err := newProviderFactory(logger, recorder).build(ctx, cfg.Roster)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}

	srv := newServerWithProvider(cfg, logger, provider, recorder)
	srv.providerCloser = closer
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

// newServerWithProvider wires everything below the provider. provider is used as-is.
func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.RosterProvider, recorder *metrics.Recorder) *Server {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	memoryStore, playerSvc := buildServices(cfg.Analytics, recorder)
	httpSrv := buildHTTPServer(cfg, playerSvc, provider, logger, recorder)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		store:          memoryStore,
		playersService: playerSvc,
		provider:       provider,
		httpServer:     httpSrv,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *players.Service, provider providers.RosterProvider, httpSrv httpServer) *Server {
	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        metrics.NewRecorder(),
		playersService: svc,
		provider:       provider,
		httpServer:     httpSrv,
	}
}

func buildServices(cfg config.AnalyticsConfig, recorder *metrics.Recorder) (*store.MemoryStore, *players.Service) {
	memoryStore := store.NewMemoryStore()
	svc := players.NewService(memoryStore,
		players.WithRecorder(recorder),
		players.WithDefaults(players.Defaults{
			Preset:            cfg.Preset,
			NeighborCount:     cfg.NeighborCount,
			ClusterCount:      cfg.ClusterCount,
			MaxIterations:     cfg.ClusterMaxIterations,
			ProjectionWorkers: cfg.ProjectionWorkers,
		}),
		players.WithClusterSeed(cfg.ClusterSeed),
	)
	return memoryStore, svc
}

func buildHTTPServer(cfg config.Config, svc *players.Service, provider providers.RosterProvider, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	routes := httpserver.RouterConfig{
		Handler:        handlers.NewHandler(svc, logger),
		Logger:         logger,
		Recorder:       recorder,
		AllowedOrigins: cfg.CORSOrigins,
	}
	// Admin routes are only mounted when a token is configured.
	if cfg.AdminToken != "" {
		routes.Admin = handlers.NewAdminHandler(svc, provider, cfg.AdminToken, logger, recorder)
	}
	if cfg.MCPEnabled {
		mcpServer, _ := mcptools.NewServer(svc, logger, Version)
		routes.MCP = mcptools.NewHandler(mcpServer)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(routes),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP server, loads the roster, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.loadInitialRoster(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// loadInitialRoster leaves the server running but not ready on failure; an
// admin reload can still install a roster later.
func (s *Server) loadInitialRoster(ctx context.Context) {
	if s.provider == nil || s.playersService == nil {
		return
	}
	if _, err := loadRoster(ctx, s.provider, s.playersService, s.metrics, s.logger); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logging.Error(s.logger, "initial roster load failed", err)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.providerCloser != nil {
		if err := s.providerCloser.Close(); err != nil {
			logging.Warn(s.logger, "roster source close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
