package handlers

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
	domainplayers "github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/logging"
)

// Handler wires HTTP routes to the players service.
type Handler struct {
	svc    *players.Service
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *players.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once a roster is loaded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.svc.Ready() {
		writeError(w, r, nethttp.StatusServiceUnavailable, "roster not loaded", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status":  "ready",
		"players": len(h.svc.Players()),
	}, h.logger)
}

// NotFound is the router's fallback.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the router's fallback for known paths.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// Players serves the filtered, sorted roster table.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	res, err := h.svc.Query(q)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, res, h.logger)
}

// Summary serves the roster aggregates.
func (h *Handler) Summary(w nethttp.ResponseWriter, r *nethttp.Request) {
	top, err := intParam(r.URL.Query(), "top", analytics.DefaultTopScorers)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.svc.Summary(top), h.logger)
}

type playerView struct {
	domainplayers.Record
	DraftSummary  string `json:"draftSummary"`
	HeightDisplay string `json:"heightDisplay"`
}

// Player serves one record.
func (h *Handler) Player(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	p, err := h.svc.PlayerByID(id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, playerView{
		Record:        p,
		DraftSummary:  p.DraftSummary(),
		HeightDisplay: p.HeightDisplay(),
	}, h.logger)
}

// Similar serves the nearest neighbors of a player.
func (h *Handler) Similar(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	q := r.URL.Query()
	k, err := intParam(q, "k", h.svc.Defaults().NeighborCount)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	res, err := h.svc.Similar(id, k, q.Get("preset"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "served similar players",
		slog.Int(logging.FieldPlayerID, id),
		slog.String(logging.FieldPreset, res.Preset),
		slog.Int(logging.FieldCount, len(res.Neighbors)),
	)
	writeJSON(w, nethttp.StatusOK, res, h.logger)
}

// Projection serves the next-season projection for a player.
func (h *Handler) Projection(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	proj, err := h.svc.Project(id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, proj, h.logger)
}

// PointsModel serves the pool-trained points prediction for a player.
func (h *Handler) PointsModel(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	pred, err := h.svc.PredictPoints(id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, pred, h.logger)
}

// Projections serves projections for the whole roster.
func (h *Handler) Projections(w nethttp.ResponseWriter, r *nethttp.Request) {
	out, err := h.svc.ProjectAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"projections": out}, h.logger)
}

// Clusters serves a k-means partition of the roster.
func (h *Handler) Clusters(w nethttp.ResponseWriter, r *nethttp.Request) {
	req, err := parseClusterRequest(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	view, err := h.svc.Cluster(req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !view.Converged {
		logging.Warn(loggerFromContext(r, h.logger), "k-means hit the iteration cap",
			slog.Int("k", view.K),
			slog.Int("iterations", view.Iterations),
		)
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

// Compare serves a head-to-head comparison of two players.
func (h *Handler) Compare(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()
	a, err := requiredIntParam(q, "a")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	b, err := requiredIntParam(q, "b")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	cmp, err := h.svc.Compare(a, b, q.Get("preset"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, cmp, h.logger)
}

// Presets lists the similarity presets.
func (h *Handler) Presets(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"default": h.svc.Defaults().Preset,
		"presets": h.svc.Presets(),
	}, h.logger)
}
