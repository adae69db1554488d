package analytics

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// DefaultTopScorers is how many leaders Summarize returns when asked for none.
const DefaultTopScorers = 5

// Summary holds the headline numbers shown above the roster.
type Summary struct {
	TotalPlayers  int              `json:"totalPlayers"`
	TeamCount     int              `json:"teamCount"`
	Teams         []string         `json:"teams"`
	AveragePoints players.Stat     `json:"averagePoints"`
	MissingPoints int              `json:"missingPoints"`
	TopScorers    []players.Record `json:"topScorers"`
}

// Summarize aggregates a pool. Records without points are skipped for the
// average and the leaderboard, and counted in MissingPoints.
func Summarize(pool []players.Record, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopScorers
	}

	teams := make(map[string]struct{})
	var (
		pts     []float64
		scorers []players.Record
		missing int
	)
	for _, r := range pool {
		if r.Team != "" {
			teams[r.Team] = struct{}{}
		}
		v, ok := r.Points.Float64()
		if !ok {
			missing++
			continue
		}
		pts = append(pts, v)
		scorers = append(scorers, r)
	}

	names := make([]string, 0, len(teams))
	for t := range teams {
		names = append(names, t)
	}
	slices.Sort(names)

	slices.SortStableFunc(scorers, func(a, b players.Record) int {
		return cmp.Compare(b.Points.Value, a.Points.Value)
	})
	if len(scorers) > topN {
		scorers = scorers[:topN]
	}

	avg := players.Missing()
	if len(pts) > 0 {
		avg = players.Known(stat.Mean(pts, nil))
	}

	return Summary{
		TotalPlayers:  len(pool),
		TeamCount:     len(names),
		Teams:         names,
		AveragePoints: avg,
		MissingPoints: missing,
		TopScorers:    scorers,
	}
}
