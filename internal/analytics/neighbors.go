package analytics

import (
	"cmp"
	"slices"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// Neighbor is one ranked candidate in a nearest-neighbor result.
type Neighbor struct {
	Player players.Record `json:"player"`
	Score  float64        `json:"score"`
}

// NearestNeighbors ranks pool against target and returns the k most similar
// records. The target is excluded by ID. Ties keep their pool order.
func NearestNeighbors(target players.Record, pool []players.Record, k int, cfg SimilarityConfig) ([]Neighbor, error) {
	if k < 0 {
		return nil, ErrInvalidNeighborCount
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if k == 0 {
		return []Neighbor{}, nil
	}

	origin, err := weightedVector(target, cfg)
	if err != nil {
		return nil, err
	}

	ranked := make([]Neighbor, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == target.ID {
			continue
		}
		v, err := weightedVector(candidate, cfg)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, Neighbor{
			Player: candidate,
			Score:  scoreFromDistance(combine(origin, v, cfg.Combine)),
		})
	}

	slices.SortStableFunc(ranked, func(a, b Neighbor) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}
