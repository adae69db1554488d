package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/preston-bernstein/nba-player-analytics/internal/config"
	"github.com/preston-bernstein/nba-player-analytics/internal/images"
	"github.com/preston-bernstein/nba-player-analytics/internal/logging"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/csvfile"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/fixture"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/sqlite"
)

var errRosterPathRequired = errors.New("ROSTER_PATH is required for this roster source")

// sqliteOpen is swapped in tests.
var sqliteOpen = func(ctx context.Context, path string, resolver images.Resolver) (providers.RosterProvider, io.Closer, error) {
	p, err := sqlite.Open(ctx, path, resolver)
	if err != nil {
		return nil, nil, err
	}
	return p, p, nil
}

// selectProvider builds the configured roster source. The returned closer is
// nil unless the source holds a resource that must be released on shutdown.
func selectProvider(ctx context.Context, cfg config.RosterConfig, resolver images.Resolver, logger *slog.Logger) (providers.RosterProvider, io.Closer, error) {
	switch cfg.Source {
	case config.SourceFixture, "":
		return fixture.New(resolver), nil, nil
	case config.SourceCSV:
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("%s: %w", cfg.Source, errRosterPathRequired)
		}
		return csvfile.New(cfg.Path, resolver), nil, nil
	case config.SourceSQLite:
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("%s: %w", cfg.Source, errRosterPathRequired)
		}
		openCtx, cancel := context.WithTimeout(ctx, providerOpenTimeout)
		defer cancel()
		return sqliteOpen(openCtx, cfg.Path, resolver)
	default:
		logging.Warn(logger, "unknown roster source, falling back to fixture", logging.FieldSource, cfg.Source)
		return fixture.New(resolver), nil, nil
	}
}
