package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/http/middleware"
	"github.com/preston-bernstein/nba-player-analytics/internal/http/requestutil"
	"github.com/preston-bernstein/nba-player-analytics/internal/logging"
)

// writeJSON encodes before writing the header so an encode failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.RequestIDHeader)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps service and analytics errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err)
	}
	writeError(w, r, status, err.Error(), logger)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, players.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, players.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, analytics.ErrMissingFeature),
		errors.Is(err, analytics.ErrInsufficientData),
		errors.Is(err, analytics.ErrDegenerateFit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
