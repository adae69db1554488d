package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/http/requestutil"
	"github.com/preston-bernstein/nba-player-analytics/internal/logging"
	"github.com/preston-bernstein/nba-player-analytics/internal/metrics"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	svc      *players.Service
	provider providers.RosterProvider
	source   string
	token    string
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin route.
func NewAdminHandler(svc *players.Service, provider providers.RosterProvider, token string, logger *slog.Logger, recorder *metrics.Recorder) *AdminHandler {
	return &AdminHandler{
		svc:      svc,
		provider: provider,
		source:   providers.NameOf(provider, "provider"),
		token:    token,
		logger:   logger,
		recorder: recorder,
	}
}

// ReloadRoster re-fetches the roster and swaps the pool.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) ReloadRoster(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.provider == nil || h.svc == nil {
		writeError(w, r, http.StatusServiceUnavailable, "roster source not configured", logger)
		return
	}

	records, err := h.provider.FetchRoster(r.Context())
	if err != nil {
		logging.Warn(logger, "admin roster fetch failed",
			slog.String(logging.FieldSource, h.source),
			slog.Any("err", err),
		)
		writeError(w, r, http.StatusBadGateway, "failed to load roster", logger)
		return
	}
	if err := h.svc.ReplacePlayers(records); err != nil {
		logging.Warn(logger, "admin roster rejected",
			slog.String(logging.FieldSource, h.source),
			slog.Int(logging.FieldCount, len(records)),
			slog.Any("err", err),
		)
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), logger)
		return
	}
	h.recorder.RecordRosterLoaded(h.source, len(records))

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"source":  h.source,
		"players": len(records),
	}, logger)
	logging.Info(logger, "admin roster reloaded",
		slog.String(logging.FieldSource, h.source),
		slog.Int(logging.FieldCount, len(records)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
