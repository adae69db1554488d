package testutil

import (
	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// SampleRecord returns a fully populated record; stats are derived from id so records differ.
func SampleRecord(id int, name, team string) players.Record {
	f := float64(id)
	return players.Record{
		ID:              id,
		Name:            name,
		Team:            team,
		Age:             players.Known(22 + f),
		Height:          players.Known(76 + f),
		Weight:          players.Known(200 + 5*f),
		College:         "None",
		Country:         "USA",
		CountryCode:     "US",
		Draft:           players.Draft{Year: players.Known(2010 + f), Round: "1", Number: "10"},
		GamesPlayed:     players.Known(70),
		Points:          players.Known(8 + 3*f),
		Rebounds:        players.Known(3 + 1.5*f),
		Assists:         players.Known(1 + f),
		NetRating:       players.Known(-2 + f),
		OffRebPct:       players.Known(3 + f/2),
		DefRebPct:       players.Known(12 + f),
		UsagePct:        players.Known(15 + 2*f + float64(id%3)),
		TrueShootingPct: players.Known(52 + f),
		AssistPct:       players.Known(8 + 2*f),
		ImageURL:        "https://example.test/" + name + ".png",
	}
}

// SamplePool returns n records with dense IDs.
func SamplePool(n int) []players.Record {
	teams := []string{"BOS", "LAL", "GSW", "MIL"}
	out := make([]players.Record, n)
	for i := range out {
		out[i] = SampleRecord(i, "Player "+string(rune('A'+i)), teams[i%len(teams)])
	}
	return out
}
