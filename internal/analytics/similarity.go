package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// Combine selects how per-feature differences are folded into one distance.
type Combine string

const (
	// CombineWeightedSum sums w * |a-b| / scale.
	CombineWeightedSum Combine = "weighted-sum"
	// CombineWeightedEuclidean takes sqrt(sum w * ((a-b)/scale)^2).
	CombineWeightedEuclidean Combine = "weighted-euclidean"
)

const weightTolerance = 1e-9

// Term pairs a feature with its normalizing scale and convex weight.
type Term struct {
	Feature Feature `json:"feature"`
	Scale   float64 `json:"scale"`
	Weight  float64 `json:"weight"`
}

// SimilarityConfig is a named, explicit distance definition.
type SimilarityConfig struct {
	Name    string  `json:"name"`
	Terms   []Term  `json:"terms"`
	Combine Combine `json:"combine"`
}

// Validate checks the config is usable: at least one term, positive scales,
// non-negative weights summing to 1, and a known combine mode.
func (c SimilarityConfig) Validate() error {
	if len(c.Terms) == 0 {
		return fmt.Errorf("%w: no terms", ErrInvalidConfig)
	}
	if c.Combine != CombineWeightedSum && c.Combine != CombineWeightedEuclidean {
		return fmt.Errorf("%w: unknown combine %q", ErrInvalidConfig, c.Combine)
	}
	var total float64
	for _, t := range c.Terms {
		if _, err := ParseFeature(string(t.Feature)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if !(t.Scale > 0) || math.IsInf(t.Scale, 0) {
			return fmt.Errorf("%w: scale for %s must be positive", ErrInvalidConfig, t.Feature)
		}
		if !(t.Weight >= 0) || math.IsInf(t.Weight, 0) {
			return fmt.Errorf("%w: weight for %s must be non-negative", ErrInvalidConfig, t.Feature)
		}
		total += t.Weight
	}
	if math.Abs(total-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %g, want 1", ErrInvalidConfig, total)
	}
	return nil
}

// Features lists the features the config reads, in term order.
func (c SimilarityConfig) Features() []Feature {
	out := make([]Feature, len(c.Terms))
	for i, t := range c.Terms {
		out[i] = t.Feature
	}
	return out
}

// Distance returns the combined, normalized dissimilarity between two records.
func Distance(a, b players.Record, cfg SimilarityConfig) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	return distance(a, b, cfg)
}

// Similarity converts Distance into a score in (0, 1], exactly 1 at distance 0.
func Similarity(a, b players.Record, cfg SimilarityConfig) (float64, error) {
	d, err := Distance(a, b, cfg)
	if err != nil {
		return 0, err
	}
	return scoreFromDistance(d), nil
}

func scoreFromDistance(d float64) float64 {
	return 1 / (1 + d)
}

// distance assumes cfg has already been validated.
func distance(a, b players.Record, cfg SimilarityConfig) (float64, error) {
	va, err := weightedVector(a, cfg)
	if err != nil {
		return 0, err
	}
	vb, err := weightedVector(b, cfg)
	if err != nil {
		return 0, err
	}
	return combine(va, vb, cfg.Combine), nil
}

func combine(va, vb []float64, mode Combine) float64 {
	if mode == CombineWeightedEuclidean {
		return floats.Distance(va, vb, 2)
	}
	return floats.Distance(va, vb, 1)
}

// weightedVector pre-multiplies each feature so a plain L1/L2 distance between
// two vectors equals the configured weighted, scaled distance.
func weightedVector(r players.Record, cfg SimilarityConfig) ([]float64, error) {
	out, err := vector(r, cfg.Features())
	if err != nil {
		return nil, err
	}
	for i, t := range cfg.Terms {
		k := t.Weight / t.Scale
		if cfg.Combine == CombineWeightedEuclidean {
			k = math.Sqrt(t.Weight) / t.Scale
		}
		out[i] *= k
	}
	return out, nil
}
