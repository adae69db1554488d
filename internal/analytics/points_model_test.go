package analytics

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

func withAge(r players.Record, age float64) players.Record {
	r.Age = players.Known(age)
	return r
}

func TestPredictPointsRecoversLinearRelationship(t *testing.T) {
	// points = 2 + 0.1*age + 0.8*usage
	pool := []players.Record{}
	inputs := [][2]float64{{22, 15}, {25, 20}, {28, 32}, {31, 18}, {24, 27}, {34, 12}}
	for i, in := range inputs {
		pts := 2 + 0.1*in[0] + 0.8*in[1]
		pool = append(pool, withAge(record(i, pts, 5, 3, in[1], 55), in[0]))
	}
	target := withAge(record(len(pool), 0, 5, 3, 25, 55), 26)
	pool = append(pool, target)

	got, err := PredictPoints(target, pool)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := 2 + 0.1*26 + 0.8*25
	if math.Abs(got.Predicted-want) > 1e-6 {
		t.Fatalf("expected %v, got %v", want, got.Predicted)
	}
	if got.TrainingRows != len(inputs) {
		t.Fatalf("target must be excluded from training, got %d rows", got.TrainingRows)
	}
	if len(got.Coefficients) != 2 || math.Abs(got.Coefficients[1]-0.8) > 1e-6 {
		t.Fatalf("unexpected coefficients %v", got.Coefficients)
	}
}

func TestPredictPointsErrors(t *testing.T) {
	pool := examplePool()
	if _, err := PredictPoints(pool[0], pool); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected insufficient data with two training rows, got %v", err)
	}

	target := pool[0]
	target.UsagePct = players.Missing()
	if _, err := PredictPoints(target, pool); !errors.Is(err, ErrMissingFeature) {
		t.Fatalf("expected missing feature for target, got %v", err)
	}

	pool = spreadPool()
	pool[4].Age = players.Missing()
	if _, err := PredictPoints(pool[0], pool); !errors.Is(err, ErrMissingFeature) {
		t.Fatalf("expected missing feature for training row, got %v", err)
	}
}

func TestPredictPointsConstantPointsHasNoR2(t *testing.T) {
	inputs := [][2]float64{{22, 15}, {25, 20}, {28, 32}, {31, 18}, {24, 27}}
	pool := []players.Record{}
	for i, in := range inputs {
		pool = append(pool, withAge(record(i, 15, 5, 3, in[1], 55), in[0]))
	}
	target := withAge(record(len(pool), 0, 5, 3, 25, 55), 26)
	pool = append(pool, target)

	got, err := PredictPoints(target, pool)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if math.Abs(got.Predicted-15) > 1e-6 {
		t.Fatalf("expected flat prediction of 15, got %v", got.Predicted)
	}
	if got.R2.Valid {
		t.Fatalf("expected undefined r2 to be missing, got %v", got.R2.Value)
	}
	if _, err := json.Marshal(got); err != nil {
		t.Fatalf("prediction must encode, got %v", err)
	}
}

func TestPredictPointsRejectsConstantInput(t *testing.T) {
	cases := []struct {
		name   string
		inputs [][2]float64
	}{
		{"same age", [][2]float64{{25, 15}, {25, 20}, {25, 32}, {25, 18}, {25, 27}}},
		{"same usage", [][2]float64{{22, 20}, {25, 20}, {28, 20}, {31, 20}, {24, 20}}},
		{"same age and usage", [][2]float64{{25, 20}, {25, 20}, {25, 20}, {25, 20}, {25, 20}}},
	}
	for _, tc := range cases {
		pool := []players.Record{}
		for i, in := range tc.inputs {
			pool = append(pool, withAge(record(i, 10+float64(i), 5, 3, in[1], 55), in[0]))
		}
		target := withAge(record(len(pool), 0, 5, 3, 25, 55), 26)
		pool = append(pool, target)

		if _, err := PredictPoints(target, pool); !errors.Is(err, ErrDegenerateFit) {
			t.Fatalf("%s: expected degenerate fit, got %v", tc.name, err)
		}
	}
}
