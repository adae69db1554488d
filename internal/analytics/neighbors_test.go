package analytics

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

func TestNearestNeighborsExampleScenario(t *testing.T) {
	pool := examplePool()
	for _, cfg := range Presets() {
		got, err := NearestNeighbors(pool[0], pool, 1, cfg)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", cfg.Name, err)
		}
		if len(got) != 1 || got[0].Player.ID != 1 {
			t.Fatalf("%s: expected record 1, got %+v", cfg.Name, got)
		}
		far, _ := Similarity(pool[0], pool[2], cfg)
		if got[0].Score <= far {
			t.Fatalf("%s: expected %v > %v", cfg.Name, got[0].Score, far)
		}
	}
}

func TestNearestNeighborsOrderingAndCount(t *testing.T) {
	pool := spreadPool()
	target := pool[3]
	for k := 0; k <= len(pool)+2; k++ {
		got, err := NearestNeighbors(target, pool, k, PresetProfile)
		if err != nil {
			t.Fatalf("k=%d: unexpected error %v", k, err)
		}
		want := min(k, len(pool)-1)
		if len(got) != want {
			t.Fatalf("k=%d: expected %d neighbors, got %d", k, want, len(got))
		}
		for i, n := range got {
			if n.Player.ID == target.ID {
				t.Fatalf("k=%d: target appeared in its own neighbor list", k)
			}
			if i > 0 && got[i-1].Score < n.Score {
				t.Fatalf("k=%d: scores not descending at %d", k, i)
			}
		}
	}

	outsider := record(99, 9.7, 10.8, 1.9, 14.1, 65.9)
	got, err := NearestNeighbors(outsider, pool, 3, PresetProfile)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("target outside the pool should see min(k, |pool|), got %d", len(got))
	}
	if got[0].Player.ID != 3 {
		t.Fatalf("expected closest record 3, got %d", got[0].Player.ID)
	}
}

func TestNearestNeighborsStableTies(t *testing.T) {
	target := record(0, 10, 5, 3, 20, 55)
	pool := []players.Record{
		target,
		record(4, 12, 5, 3, 20, 55),
		record(2, 12, 5, 3, 20, 55),
		record(3, 12, 5, 3, 20, 55),
	}
	got, err := NearestNeighbors(target, pool, 3, PresetDetail)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	ids := []int{got[0].Player.ID, got[1].Player.ID, got[2].Player.ID}
	if ids[0] != 4 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("ties should keep pool order, got %v", ids)
	}
}

func TestNearestNeighborsEdgeCases(t *testing.T) {
	pool := examplePool()

	if _, err := NearestNeighbors(pool[0], pool, -1, PresetProfile); !errors.Is(err, ErrInvalidNeighborCount) {
		t.Fatalf("expected invalid neighbor count, got %v", err)
	}

	got, err := NearestNeighbors(pool[0], pool[:1], 5, PresetProfile)
	if err != nil || len(got) != 0 {
		t.Fatalf("single-record pool should give empty result, got %v err=%v", got, err)
	}
	got, err = NearestNeighbors(pool[0], nil, 5, PresetProfile)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty pool should give empty result, got %v err=%v", got, err)
	}

	broken := record(5, 10, 5, 3, 20, 55)
	broken.Rebounds = players.Missing()
	if _, err := NearestNeighbors(pool[0], append(pool, broken), 2, PresetProfile); !errors.Is(err, ErrMissingFeature) {
		t.Fatalf("expected missing feature from candidate, got %v", err)
	}
	if _, err := NearestNeighbors(broken, pool, 2, PresetProfile); !errors.Is(err, ErrMissingFeature) {
		t.Fatalf("expected missing feature from target, got %v", err)
	}
}
