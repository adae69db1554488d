package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// StaticProvider returns the provided records with no error.
type StaticProvider struct {
	Records []players.Record
}

func (p StaticProvider) FetchRoster(ctx context.Context) ([]players.Record, error) {
	_ = ctx
	return p.Records, nil
}

func (StaticProvider) Name() string { return "static" }

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchRoster(ctx context.Context) ([]players.Record, error) {
	return nil, p.Err
}

// SequenceProvider returns Batches in order, repeating the last one, and counts calls.
type SequenceProvider struct {
	Batches [][]players.Record
	calls   atomic.Int32
}

func (p *SequenceProvider) FetchRoster(ctx context.Context) ([]players.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := int(p.calls.Add(1)) - 1
	if len(p.Batches) == 0 {
		return nil, nil
	}
	return p.Batches[min(n, len(p.Batches)-1)], nil
}

// Calls reports how many fetches have been made.
func (p *SequenceProvider) Calls() int {
	return int(p.calls.Load())
}
