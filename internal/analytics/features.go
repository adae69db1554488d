// Package analytics holds the pure numerical algorithms run over a player pool:
// similarity scoring, nearest-neighbor lookup, trend projection, k-means
// clustering and a few roster aggregates. Nothing here performs I/O, logs, or
// mutates the records it is given.
package analytics

import (
	"fmt"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// Feature names a numeric statistic on a players.Record.
type Feature string

const (
	FeatureAge          Feature = "age"
	FeatureGamesPlayed  Feature = "gamesPlayed"
	FeaturePoints       Feature = "points"
	FeatureRebounds     Feature = "rebounds"
	FeatureAssists      Feature = "assists"
	FeatureNetRating    Feature = "netRating"
	FeatureOffRebPct    Feature = "offRebPct"
	FeatureDefRebPct    Feature = "defRebPct"
	FeatureUsage        Feature = "usagePct"
	FeatureTrueShooting Feature = "trueShootingPct"
	FeatureAssistPct    Feature = "assistPct"
	FeatureHeight       Feature = "height"
	FeatureWeight       Feature = "weight"
)

// DefaultFeatures is the statistical profile used for similarity and clustering.
var DefaultFeatures = []Feature{
	FeaturePoints,
	FeatureRebounds,
	FeatureAssists,
	FeatureUsage,
	FeatureTrueShooting,
}

var featureAccessors = map[Feature]func(players.Record) players.Stat{
	FeatureAge:          func(r players.Record) players.Stat { return r.Age },
	FeatureGamesPlayed:  func(r players.Record) players.Stat { return r.GamesPlayed },
	FeaturePoints:       func(r players.Record) players.Stat { return r.Points },
	FeatureRebounds:     func(r players.Record) players.Stat { return r.Rebounds },
	FeatureAssists:      func(r players.Record) players.Stat { return r.Assists },
	FeatureNetRating:    func(r players.Record) players.Stat { return r.NetRating },
	FeatureOffRebPct:    func(r players.Record) players.Stat { return r.OffRebPct },
	FeatureDefRebPct:    func(r players.Record) players.Stat { return r.DefRebPct },
	FeatureUsage:        func(r players.Record) players.Stat { return r.UsagePct },
	FeatureTrueShooting: func(r players.Record) players.Stat { return r.TrueShootingPct },
	FeatureAssistPct:    func(r players.Record) players.Stat { return r.AssistPct },
	FeatureHeight:       func(r players.Record) players.Stat { return r.Height },
	FeatureWeight:       func(r players.Record) players.Stat { return r.Weight },
}

// ParseFeature resolves a feature name.
func ParseFeature(name string) (Feature, error) {
	f := Feature(name)
	if _, ok := featureAccessors[f]; !ok {
		return "", fmt.Errorf("unknown feature %q", name)
	}
	return f, nil
}

// Stat returns the raw stat for the feature, which may be missing.
func (f Feature) Stat(r players.Record) players.Stat {
	accessor, ok := featureAccessors[f]
	if !ok {
		return players.Missing()
	}
	return accessor(r)
}

// Value returns the feature value or a MissingFeatureError when absent.
func (f Feature) Value(r players.Record) (float64, error) {
	v, ok := f.Stat(r).Float64()
	if !ok {
		return 0, &MissingFeatureError{PlayerID: r.ID, Feature: f}
	}
	return v, nil
}

// vector extracts the given features from a record in order.
func vector(r players.Record, features []Feature) ([]float64, error) {
	out := make([]float64, len(features))
	for i, f := range features {
		v, err := f.Value(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
