package players

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	domainplayers "github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

const (
	SortByName = "name"
	SortByTeam = "team"
)

// Range bounds a feature. Nil ends are open. A player with the feature
// missing never satisfies a range.
type Range struct {
	Feature analytics.Feature
	Min     *float64
	Max     *float64
}

// Query filters and orders the roster table.
type Query struct {
	// Search matches a case-insensitive substring of the name.
	Search string
	// Team matches the team abbreviation exactly, ignoring case.
	Team   string
	Ranges []Range
	// SortBy is SortByName, SortByTeam or a feature name. Empty keeps ID order.
	SortBy string
	Desc   bool
	Offset int
	Limit  int
}

// QueryResult is one page of matching players plus the total match count.
type QueryResult struct {
	Total   int                    `json:"total"`
	Players []domainplayers.Record `json:"players"`
}

// Query returns the players matching q. Missing values sort last in either direction.
func (s *Service) Query(q Query) (res QueryResult, err error) {
	defer s.track("query", time.Now(), &err)

	compare, err := q.comparator()
	if err != nil {
		return QueryResult{}, err
	}
	if q.Offset < 0 || q.Limit < 0 {
		return QueryResult{}, fmt.Errorf("%w: offset and limit must be non-negative", ErrInvalidArgument)
	}
	for _, r := range q.Ranges {
		if _, err := analytics.ParseFeature(string(r.Feature)); err != nil {
			return QueryResult{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	team := strings.TrimSpace(q.Team)
	matched := make([]domainplayers.Record, 0)
	for _, p := range s.store.ListPlayers() {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if team != "" && !strings.EqualFold(p.Team, team) {
			continue
		}
		if !inRanges(p, q.Ranges) {
			continue
		}
		matched = append(matched, p)
	}
	if compare != nil {
		slices.SortStableFunc(matched, compare)
	}

	res.Total = len(matched)
	start := min(q.Offset, len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, end)
	}
	res.Players = matched[start:end]
	return res, nil
}

func inRanges(p domainplayers.Record, ranges []Range) bool {
	for _, r := range ranges {
		v, ok := r.Feature.Stat(p).Float64()
		if !ok {
			return false
		}
		if r.Min != nil && v < *r.Min {
			return false
		}
		if r.Max != nil && v > *r.Max {
			return false
		}
	}
	return true
}

func (q Query) comparator() (func(a, b domainplayers.Record) int, error) {
	dir := 1
	if q.Desc {
		dir = -1
	}
	switch q.SortBy {
	case "":
		return nil, nil
	case SortByName:
		return func(a, b domainplayers.Record) int {
			return dir * cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}, nil
	case SortByTeam:
		return func(a, b domainplayers.Record) int {
			return dir * cmp.Compare(a.Team, b.Team)
		}, nil
	}
	f, err := analytics.ParseFeature(q.SortBy)
	if err != nil {
		return nil, fmt.Errorf("%w: sort: %w", ErrInvalidArgument, err)
	}
	return func(a, b domainplayers.Record) int {
		va, okA := f.Stat(a).Float64()
		vb, okB := f.Stat(b).Float64()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return dir * cmp.Compare(va, vb)
	}, nil
}
