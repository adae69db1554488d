package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// MemoryStore keeps a thread-safe snapshot of the player pool in memory.
// The pool is replaced wholesale on reload and never mutated in place.
type MemoryStore struct {
	mu       sync.RWMutex
	players  []players.Record
	version  uint64
	loadedAt time.Time
	now      func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// ListPlayers returns a copy of the pool in ID order.
func (s *MemoryStore) ListPlayers() []players.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]players.Record, len(s.players))
	copy(result, s.players)
	return result
}

// GetPlayer retrieves a player by ID.
func (s *MemoryStore) GetPlayer(id int) (players.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || id >= len(s.players) {
		return players.Record{}, false
	}
	return s.players[id], true
}

// Len reports the pool size.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// SetPlayers replaces the pool. IDs must be dense 0..N-1 in slice order.
func (s *MemoryStore) SetPlayers(records []players.Record) error {
	for i, r := range records {
		if r.ID != i {
			return fmt.Errorf("player %q at position %d has id %d: ids must be dense", r.Name, i, r.ID)
		}
	}
	snapshot := make([]players.Record, len(records))
	copy(snapshot, records)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = snapshot
	s.version++
	s.loadedAt = s.now()
	return nil
}

// Version increments on every successful SetPlayers.
func (s *MemoryStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LoadedAt returns when the current pool was installed, zero before the first load.
func (s *MemoryStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
