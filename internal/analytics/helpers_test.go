package analytics

import (
	"math"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

func record(id int, pts, reb, ast, usg, ts float64) players.Record {
	return players.Record{
		ID:              id,
		Name:            "Player",
		Age:             players.Known(25),
		Points:          players.Known(pts),
		Rebounds:        players.Known(reb),
		Assists:         players.Known(ast),
		UsagePct:        players.Known(usg),
		TrueShootingPct: players.Known(ts),
	}
}

// examplePool is the three-record scenario: record 1 is closer to record 0 on every axis.
func examplePool() []players.Record {
	return []players.Record{
		record(0, 10, 5, 3, 20, 55),
		record(1, 12, 6, 4, 22, 56),
		record(2, 30, 1, 1, 35, 60),
	}
}

func spreadPool() []players.Record {
	return []players.Record{
		record(0, 30.1, 7.3, 8.3, 36.0, 63.5),
		record(1, 27.0, 12.1, 5.7, 33.2, 61.0),
		record(2, 25.7, 7.3, 8.1, 31.9, 58.0),
		record(3, 9.8, 10.9, 1.9, 14.2, 65.8),
		record(4, 8.4, 9.6, 2.0, 13.0, 67.2),
		record(5, 12.6, 3.4, 6.9, 18.8, 55.4),
		record(6, 14.0, 3.1, 7.5, 20.2, 54.1),
		record(7, 5.2, 2.1, 1.3, 12.5, 51.9),
		record(8, 4.8, 2.4, 0.9, 13.4, 50.3),
		record(9, 22.3, 5.0, 4.1, 27.9, 59.5),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
