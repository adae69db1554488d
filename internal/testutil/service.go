package testutil

import (
	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
	domainplayers "github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/store"
)

// NewServiceWithPlayers builds a players service backed by an in-memory store preloaded with records.
func NewServiceWithPlayers(records []domainplayers.Record, opts ...players.Option) *players.Service {
	ms := store.NewMemoryStore()
	if len(records) > 0 {
		if err := ms.SetPlayers(records); err != nil {
			panic(err)
		}
	}
	return players.NewService(ms, opts...)
}
