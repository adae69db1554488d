// Package csvfile loads the roster from a CSV file on disk.
package csvfile

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/images"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
	"github.com/preston-bernstein/nba-player-analytics/internal/roster"
)

// Name identifies the CSV provider in logs and metrics.
const Name = "csv"

// Provider re-reads the file on every fetch so a reload picks up edits.
type Provider struct {
	path     string
	resolver images.Resolver
}

// New creates a CSV file provider. A nil resolver uses the built-in headshot table.
func New(path string, resolver images.Resolver) *Provider {
	if resolver == nil {
		resolver = images.NewDefaultResolver()
	}
	return &Provider{path: path, resolver: resolver}
}

func (p *Provider) Name() string {
	return Name
}

// FetchRoster opens and parses the file. Missing files and malformed rows are
// permanent errors; other I/O failures may be retried.
func (p *Provider) FetchRoster(ctx context.Context) ([]players.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, providers.Permanent(Name, p.path, err)
		}
		return nil, providers.Temporary(Name, p.path, err)
	}
	defer f.Close()

	records, err := roster.Parse(f, p.resolver)
	if err != nil {
		var parseErr *roster.ParseError
		if errors.As(err, &parseErr) || errors.Is(err, roster.ErrMissingHeader) || errors.Is(err, roster.ErrEmptyRoster) {
			return nil, providers.Permanent(Name, p.path, err)
		}
		return nil, providers.Temporary(Name, p.path, err)
	}
	return records, nil
}
