package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/logging"
	"github.com/preston-bernstein/nba-player-analytics/internal/metrics"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
)

// loadRoster fetches the pool once and installs it in the service.
func loadRoster(ctx context.Context, provider providers.RosterProvider, svc *players.Service, recorder *metrics.Recorder, logger *slog.Logger) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, rosterLoadTimeout)
	defer cancel()

	source := providers.NameOf(provider, "provider")
	start := time.Now()
	records, err := provider.FetchRoster(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch roster from %s: %w", source, err)
	}
	if err := svc.ReplacePlayers(records); err != nil {
		return 0, fmt.Errorf("install roster from %s: %w", source, err)
	}

	recorder.RecordRosterLoaded(source, len(records))
	logging.Info(logger, "roster loaded",
		logging.FieldSource, source,
		logging.FieldCount, len(records),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return len(records), nil
}
