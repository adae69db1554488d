package providers

import (
	"context"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// RosterProvider loads the full player pool from a static source.
// Implementations return records with dense IDs in source order and resolved image URLs.
type RosterProvider interface {
	FetchRoster(ctx context.Context) ([]players.Record, error)
}

// Named is implemented by providers that report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns the provider's name, or fallback when it does not report one.
func NameOf(p RosterProvider, fallback string) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
