package players

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	domainplayers "github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

func ptr(v float64) *float64 { return &v }

func names(records []domainplayers.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func equalNames(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestQuerySearchAndTeam(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Query(Query{Search: "  CAR "})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !equalNames(names(res.Players), "Alex Caruso") {
		t.Fatalf("unexpected search result %v", names(res.Players))
	}

	res, err = svc.Query(Query{Team: "lal"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Total != 2 || !equalNames(names(res.Players), "LeBron James", "Alex Caruso") {
		t.Fatalf("unexpected team result %v", names(res.Players))
	}
}

func TestQueryRanges(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Query(Query{Ranges: []Range{
		{Feature: analytics.FeatureRebounds, Min: ptr(12)},
		{Feature: analytics.FeaturePoints, Max: ptr(16)},
	}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !equalNames(names(res.Players), "Rudy Gobert") {
		t.Fatalf("unexpected range result %v", names(res.Players))
	}

	if _, err := svc.Query(Query{Ranges: []Range{{Feature: "dunks"}}}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected unknown range feature rejected, got %v", err)
	}
}

func TestQueryRangeExcludesMissing(t *testing.T) {
	pool := samplePool()
	pool[2].Points = domainplayers.Missing()
	svc := NewService(&stubPlayerStore{items: pool})

	res, err := svc.Query(Query{Ranges: []Range{{Feature: analytics.FeaturePoints, Min: ptr(0)}}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Total != 5 {
		t.Fatalf("expected missing points excluded, got %d", res.Total)
	}
}

func TestQuerySortMissingLast(t *testing.T) {
	pool := samplePool()
	pool[4].Points = domainplayers.Missing()
	svc := NewService(&stubPlayerStore{items: pool})

	for _, desc := range []bool{false, true} {
		res, err := svc.Query(Query{SortBy: string(analytics.FeaturePoints), Desc: desc})
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		last := res.Players[len(res.Players)-1]
		if last.Name != "Alex Caruso" {
			t.Fatalf("desc=%v: expected missing value last, got %s", desc, last.Name)
		}
		first := res.Players[0].Name
		if desc && first != "LeBron James" {
			t.Fatalf("expected LeBron first descending, got %s", first)
		}
		if !desc && first != "Kyle Lowry" {
			t.Fatalf("expected Lowry first ascending, got %s", first)
		}
	}
}

func TestQuerySortByNameAndPaging(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Query(Query{SortBy: SortByName, Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Total != 6 {
		t.Fatalf("expected total before paging, got %d", res.Total)
	}
	if !equalNames(names(res.Players), "Anthony Davis", "Clint Capela") {
		t.Fatalf("unexpected page %v", names(res.Players))
	}

	res, err = svc.Query(Query{Offset: 10})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(res.Players) != 0 || res.Total != 6 {
		t.Fatalf("expected empty page past the end, got %+v", res)
	}
}

func TestQueryRejectsBadInput(t *testing.T) {
	svc, _ := newTestService()

	cases := []Query{
		{SortBy: "shoeSize"},
		{Offset: -1},
		{Limit: -5},
	}
	for _, q := range cases {
		if _, err := svc.Query(q); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected invalid argument for %+v, got %v", q, err)
		}
	}
}
