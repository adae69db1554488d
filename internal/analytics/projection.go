package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// Method tags which stage produced a projected value.
type Method string

const (
	MethodLinearFit   Method = "linear-fit"
	MethodAgeCurve    Method = "age-curve"
	MethodUnavailable Method = "unavailable"
)

// primeAge splits the fallback heuristic into improving and declining players.
const primeAge = 27

// Fitter fits a line through (xs, ys) and returns its intercept and slope.
type Fitter func(xs, ys []float64) (alpha, beta float64, err error)

// trendCurve describes how one stat's synthetic history and fallback ratios are built.
type trendCurve struct {
	feature   Feature
	ramp      [2]float64 // multipliers for age-2 and age-1
	improving float64
	declining float64
}

var (
	pointsCurve   = trendCurve{feature: FeaturePoints, ramp: [2]float64{0.85, 0.95}, improving: 1.05, declining: 0.95}
	reboundsCurve = trendCurve{feature: FeatureRebounds, ramp: [2]float64{0.90, 0.95}, improving: 1.03, declining: 0.97}
	assistsCurve  = trendCurve{feature: FeatureAssists, ramp: [2]float64{0.85, 0.95}, improving: 1.04, declining: 0.96}
)

// StatProjection is one projected statistic next to its current value.
type StatProjection struct {
	Current   players.Stat `json:"current"`
	Projected players.Stat `json:"projected"`
	Method    Method       `json:"method"`
}

// Delta is Projected minus Current, missing when either side is.
func (p StatProjection) Delta() players.Stat {
	if !p.Current.Valid || !p.Projected.Valid {
		return players.Missing()
	}
	return players.Known(p.Projected.Value - p.Current.Value)
}

// Projection is the one-season-ahead estimate for a player.
type Projection struct {
	PlayerID int            `json:"playerId"`
	Age      players.Stat   `json:"age"`
	Points   StatProjection `json:"points"`
	Rebounds StatProjection `json:"rebounds"`
	Assists  StatProjection `json:"assists"`
}

// FellBack reports whether any stat used the age-curve heuristic.
func (p Projection) FellBack() bool {
	return p.Points.Method == MethodAgeCurve ||
		p.Rebounds.Method == MethodAgeCurve ||
		p.Assists.Method == MethodAgeCurve
}

// Projector runs the two-stage projection: a least-squares fit over a synthetic
// three-season ramp, then a fixed age-curve ratio whenever the fit is unusable.
type Projector struct {
	fit Fitter
}

// ProjectorOption customizes a Projector.
type ProjectorOption func(*Projector)

// WithFitter replaces the least-squares fitter.
func WithFitter(f Fitter) ProjectorOption {
	return func(p *Projector) {
		if f != nil {
			p.fit = f
		}
	}
}

// NewProjector builds a Projector backed by ordinary least squares.
func NewProjector(opts ...ProjectorOption) Projector {
	p := Projector{fit: LeastSquares}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

var defaultProjector = NewProjector()

// Project projects a record with the default projector.
func Project(r players.Record) Projection {
	return defaultProjector.Project(r)
}

// Project never fails: a degenerate fit falls back to the age curve.
func (p Projector) Project(r players.Record) Projection {
	return Projection{
		PlayerID: r.ID,
		Age:      r.Age,
		Points:   p.projectStat(r, pointsCurve),
		Rebounds: p.projectStat(r, reboundsCurve),
		Assists:  p.projectStat(r, assistsCurve),
	}
}

func (p Projector) projectStat(r players.Record, curve trendCurve) StatProjection {
	current := curve.feature.Stat(r)
	out := StatProjection{Current: current, Projected: players.Missing(), Method: MethodUnavailable}
	if !current.Valid {
		return out
	}

	if v, err := p.fitTrend(r.Age, current.Value, curve); err == nil {
		out.Projected = players.Known(clampNonNegative(v))
		out.Method = MethodLinearFit
		return out
	}

	ratio := curve.declining
	if age, ok := r.Age.Float64(); ok && age < primeAge {
		ratio = curve.improving
	}
	out.Projected = players.Known(clampNonNegative(current.Value * ratio))
	out.Method = MethodAgeCurve
	return out
}

func (p Projector) fitTrend(age players.Stat, current float64, curve trendCurve) (float64, error) {
	a, ok := age.Float64()
	if !ok {
		return 0, fmt.Errorf("%w: age missing", ErrDegenerateFit)
	}
	xs := []float64{a - 2, a - 1, a}
	ys := []float64{current * curve.ramp[0], current * curve.ramp[1], current}
	if !allFinite(xs) || !allFinite(ys) {
		return 0, fmt.Errorf("%w: non-finite series", ErrDegenerateFit)
	}
	alpha, beta, err := p.fit(xs, ys)
	if err != nil {
		return 0, err
	}
	v := alpha + beta*(a+1)
	if !isFinite(v) {
		return 0, fmt.Errorf("%w: non-finite prediction", ErrDegenerateFit)
	}
	return v, nil
}

// LeastSquares is the default Fitter, a thin wrapper over gonum's simple regression.
func LeastSquares(xs, ys []float64) (float64, float64, error) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0, 0, fmt.Errorf("%w: need at least two paired points", ErrDegenerateFit)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if !isFinite(alpha) || !isFinite(beta) {
		return 0, 0, ErrDegenerateFit
	}
	return alpha, beta, nil
}

func clampNonNegative(v float64) float64 {
	return math.Max(0, v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
