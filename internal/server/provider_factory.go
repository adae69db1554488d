package server

import (
	"context"
	"io"
	"log/slog"

	"github.com/preston-bernstein/nba-player-analytics/internal/config"
	"github.com/preston-bernstein/nba-player-analytics/internal/images"
	"github.com/preston-bernstein/nba-player-analytics/internal/metrics"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
)

// providerFactory assembles the roster source with the shared retry wrapper.
type providerFactory struct {
	logger   *slog.Logger
	metrics  *metrics.Recorder
	resolver images.Resolver
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics, resolver: images.NewDefaultResolver()}
}

func (f providerFactory) build(ctx context.Context, cfg config.RosterConfig) (providers.RosterProvider, io.Closer, error) {
	base, closer, err := selectProvider(ctx, cfg, f.resolver, f.logger)
	if err != nil {
		return nil, nil, err
	}
	return f.wrap(base, cfg), closer, nil
}

func (f providerFactory) wrap(base providers.RosterProvider, cfg config.RosterConfig) providers.RosterProvider {
	name := providers.NameOf(base, cfg.Source)
	return providers.NewRetryingProvider(base, f.logger, f.metrics, name, cfg.LoadAttempts, cfg.Backoff)
}
