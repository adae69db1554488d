package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

func nanFitter(xs, ys []float64) (float64, float64, error) {
	return math.NaN(), math.NaN(), nil
}

func youngScorer() players.Record {
	r := record(3, 20, 10, 5, 25, 58)
	r.Age = players.Known(24)
	return r
}

func TestProjectPrimaryFit(t *testing.T) {
	got := Project(youngScorer())

	if got.Points.Method != MethodLinearFit {
		t.Fatalf("expected linear fit, got %s", got.Points.Method)
	}
	// Series (22,17) (23,19) (24,20): slope 1.5, evaluated at 25.
	want := (17.0+19.0+20.0)/3 + 1.5*(25-23)
	if !almostEqual(got.Points.Projected.Value, want) {
		t.Fatalf("expected %v, got %v", want, got.Points.Projected.Value)
	}
	if got.PlayerID != 3 || got.FellBack() {
		t.Fatalf("unexpected projection metadata %+v", got)
	}
	if d := got.Points.Delta(); !d.Valid || !almostEqual(d.Value, want-20) {
		t.Fatalf("unexpected delta %+v", d)
	}
}

func TestProjectFallbackForcedByNaN(t *testing.T) {
	p := NewProjector(WithFitter(nanFitter))
	got := p.Project(youngScorer())

	if got.Points.Method != MethodAgeCurve {
		t.Fatalf("expected age-curve fallback, got %s", got.Points.Method)
	}
	if !almostEqual(got.Points.Projected.Value, 21.0) {
		t.Fatalf("expected 21.0, got %v", got.Points.Projected.Value)
	}
	if !almostEqual(got.Rebounds.Projected.Value, 10.3) {
		t.Fatalf("expected 10.3 rebounds, got %v", got.Rebounds.Projected.Value)
	}
	if !almostEqual(got.Assists.Projected.Value, 5.2) {
		t.Fatalf("expected 5.2 assists, got %v", got.Assists.Projected.Value)
	}
	if !got.FellBack() {
		t.Fatalf("expected FellBack to report the fallback")
	}
}

func TestProjectFallbackDecliningAndMissingAge(t *testing.T) {
	p := NewProjector(WithFitter(func(xs, ys []float64) (float64, float64, error) {
		return 0, 0, ErrDegenerateFit
	}))

	veteran := youngScorer()
	veteran.Age = players.Known(33)
	got := p.Project(veteran)
	if !almostEqual(got.Points.Projected.Value, 19.0) {
		t.Fatalf("expected 19.0 for veteran, got %v", got.Points.Projected.Value)
	}

	unknown := youngScorer()
	unknown.Age = players.Missing()
	got = Project(unknown)
	if got.Points.Method != MethodAgeCurve || !almostEqual(got.Points.Projected.Value, 19.0) {
		t.Fatalf("missing age should take the declining branch, got %+v", got.Points)
	}
}

func TestProjectClampsAndDeterministic(t *testing.T) {
	zero := record(1, 0, 0, 0, 10, 50)
	zero.Age = players.Known(30)
	for _, p := range []Projector{NewProjector(), NewProjector(WithFitter(nanFitter))} {
		got := p.Project(zero)
		for _, sp := range []StatProjection{got.Points, got.Rebounds, got.Assists} {
			if !sp.Projected.Valid || sp.Projected.Value != 0 {
				t.Fatalf("zero stats must project to zero, got %+v", sp)
			}
		}
	}

	r := youngScorer()
	if Project(r) != Project(r) {
		t.Fatalf("projection must be deterministic")
	}
}

func TestProjectMissingCurrentValue(t *testing.T) {
	r := youngScorer()
	r.Assists = players.Missing()
	got := Project(r)
	if got.Assists.Method != MethodUnavailable || got.Assists.Projected.Valid {
		t.Fatalf("missing current value should stay missing, got %+v", got.Assists)
	}
	if got.Assists.Delta().Valid {
		t.Fatalf("delta of missing projection should be missing")
	}
}

func TestLeastSquares(t *testing.T) {
	alpha, beta, err := LeastSquares([]float64{1, 2, 3}, []float64{2, 4, 6})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !almostEqual(alpha, 0) || !almostEqual(beta, 2) {
		t.Fatalf("expected y=2x, got alpha=%v beta=%v", alpha, beta)
	}
	if _, _, err := LeastSquares([]float64{1}, []float64{1}); !errors.Is(err, ErrDegenerateFit) {
		t.Fatalf("expected degenerate fit for single point, got %v", err)
	}
}
