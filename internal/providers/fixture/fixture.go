package fixture

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/images"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
	"github.com/preston-bernstein/nba-player-analytics/internal/roster"
)

// Name identifies the fixture provider in logs and metrics.
const Name = "fixture"

//go:embed data/players.csv
var playersCSV []byte

// Provider returns a static roster useful for local testing and bootstrapping.
type Provider struct {
	resolver images.Resolver
}

// New creates a fixture provider. A nil resolver uses the built-in headshot table.
func New(resolver images.Resolver) *Provider {
	if resolver == nil {
		resolver = images.NewDefaultResolver()
	}
	return &Provider{resolver: resolver}
}

func (p *Provider) Name() string {
	return Name
}

// FetchRoster parses the embedded roster on every call so callers never share records.
func (p *Provider) FetchRoster(ctx context.Context) ([]players.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := roster.Parse(bytes.NewReader(playersCSV), p.resolver)
	if err != nil {
		return nil, providers.Permanent(Name, "embedded", err)
	}
	return records, nil
}

// CSV returns a copy of the embedded roster source.
func CSV() []byte {
	return bytes.Clone(playersCSV)
}
