package analytics

import (
	"testing"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

func TestSummarize(t *testing.T) {
	pool := spreadPool()
	for i := range pool {
		pool[i].Team = []string{"DEN", "BOS", "DEN", "MIA"}[i%4]
	}
	pool[7].Points = players.Missing()

	got := Summarize(pool, 3)
	if got.TotalPlayers != len(pool) {
		t.Fatalf("expected %d players, got %d", len(pool), got.TotalPlayers)
	}
	if got.TeamCount != 3 || got.Teams[0] != "BOS" {
		t.Fatalf("unexpected teams %v", got.Teams)
	}
	if got.MissingPoints != 1 {
		t.Fatalf("expected one missing points value, got %d", got.MissingPoints)
	}
	var sum float64
	for i, r := range pool {
		if i != 7 {
			sum += r.Points.Value
		}
	}
	if !got.AveragePoints.Valid || !almostEqual(got.AveragePoints.Value, sum/9) {
		t.Fatalf("unexpected average %+v", got.AveragePoints)
	}
	if len(got.TopScorers) != 3 || got.TopScorers[0].ID != 0 || got.TopScorers[1].ID != 1 || got.TopScorers[2].ID != 2 {
		t.Fatalf("unexpected top scorers %+v", got.TopScorers)
	}
}

func TestSummarizeEmptyPool(t *testing.T) {
	got := Summarize(nil, 0)
	if got.TotalPlayers != 0 || got.AveragePoints.Valid || len(got.TopScorers) != 0 {
		t.Fatalf("unexpected empty summary %+v", got)
	}
}
