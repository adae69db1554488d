package players

import (
	"time"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	domainplayers "github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// CompareFeatures are the stats shown side by side on the compare page.
var CompareFeatures = []analytics.Feature{
	analytics.FeatureAge,
	analytics.FeatureGamesPlayed,
	analytics.FeaturePoints,
	analytics.FeatureRebounds,
	analytics.FeatureAssists,
	analytics.FeatureNetRating,
	analytics.FeatureUsage,
	analytics.FeatureTrueShooting,
	analytics.FeatureAssistPct,
}

// StatDelta is one row of a head-to-head comparison. Diff is A minus B and is
// missing when either side is.
type StatDelta struct {
	Feature analytics.Feature  `json:"feature"`
	A       domainplayers.Stat `json:"a"`
	B       domainplayers.Stat `json:"b"`
	Diff    domainplayers.Stat `json:"diff"`
}

// Comparison is a head-to-head view of two players.
type Comparison struct {
	A          domainplayers.Record `json:"a"`
	B          domainplayers.Record `json:"b"`
	Preset     string               `json:"preset"`
	Similarity float64              `json:"similarity"`
	Deltas     []StatDelta          `json:"deltas"`
}

// Compare scores two players against each other under the named preset.
func (s *Service) Compare(aID, bID int, preset string) (cmp Comparison, err error) {
	defer s.track("compare", time.Now(), &err)

	a, err := s.PlayerByID(aID)
	if err != nil {
		return Comparison{}, err
	}
	b, err := s.PlayerByID(bID)
	if err != nil {
		return Comparison{}, err
	}
	cfg, err := s.preset(preset)
	if err != nil {
		return Comparison{}, err
	}
	score, err := analytics.Similarity(a, b, cfg)
	if err != nil {
		return Comparison{}, classify(err)
	}

	deltas := make([]StatDelta, 0, len(CompareFeatures))
	for _, f := range CompareFeatures {
		deltas = append(deltas, statDelta(f, a, b))
	}
	return Comparison{A: a, B: b, Preset: cfg.Name, Similarity: score, Deltas: deltas}, nil
}

func statDelta(f analytics.Feature, a, b domainplayers.Record) StatDelta {
	sa, sb := f.Stat(a), f.Stat(b)
	d := StatDelta{Feature: f, A: sa, B: sb, Diff: domainplayers.Missing()}
	va, okA := sa.Float64()
	vb, okB := sb.Float64()
	if okA && okB {
		d.Diff = domainplayers.Known(va - vb)
	}
	return d
}
