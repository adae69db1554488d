package analytics

import (
	"fmt"
	"slices"

	"github.com/sajari/regression"
	"gonum.org/v1/gonum/stat"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

// minTrainingRows keeps the two-variable model over-determined.
const minTrainingRows = 3

var pointsModelInputs = []Feature{FeatureAge, FeatureUsage}

// PointsPrediction is the output of the pool-trained points model.
type PointsPrediction struct {
	PlayerID     int          `json:"playerId"`
	Predicted    float64      `json:"predicted"`
	Actual       players.Stat `json:"actual"`
	Intercept    float64      `json:"intercept"`
	Coefficients []float64    `json:"coefficients"`
	Inputs       []Feature    `json:"inputs"`
	// R2 is missing when every training row has the same points value.
	R2           players.Stat `json:"r2"`
	TrainingRows int          `json:"trainingRows"`
	Formula      string       `json:"formula"`
}

// PredictPoints fits points ~ age + usage over every other record in pool and
// evaluates the model for target. The result is clamped at zero.
func PredictPoints(target players.Record, pool []players.Record) (PointsPrediction, error) {
	query, err := vector(target, pointsModelInputs)
	if err != nil {
		return PointsPrediction{}, err
	}

	var r regression.Regression
	r.SetObserved(string(FeaturePoints))
	for i, f := range pointsModelInputs {
		r.SetVar(i, string(f))
	}

	rows := 0
	columns := make([][]float64, len(pointsModelInputs))
	for _, p := range pool {
		if p.ID == target.ID {
			continue
		}
		xs, err := vector(p, pointsModelInputs)
		if err != nil {
			return PointsPrediction{}, err
		}
		y, err := FeaturePoints.Value(p)
		if err != nil {
			return PointsPrediction{}, err
		}
		r.Train(regression.DataPoint(y, xs))
		for i, x := range xs {
			columns[i] = append(columns[i], x)
		}
		rows++
	}
	if rows < minTrainingRows {
		return PointsPrediction{}, fmt.Errorf("%w: %d rows, need %d", ErrInsufficientData, rows, minTrainingRows)
	}
	// A constant input column leaves the normal equations singular.
	for i, col := range columns {
		if v := stat.Variance(col, nil); !(v > 0) {
			return PointsPrediction{}, fmt.Errorf("%w: %s does not vary across the pool", ErrDegenerateFit, pointsModelInputs[i])
		}
	}

	if err := r.Run(); err != nil {
		return PointsPrediction{}, fmt.Errorf("%w: %v", ErrDegenerateFit, err)
	}
	predicted, err := r.Predict(query)
	if err != nil {
		return PointsPrediction{}, fmt.Errorf("%w: %v", ErrDegenerateFit, err)
	}
	coeffs := r.GetCoeffs()
	if !isFinite(predicted) || !allFinite(coeffs) {
		return PointsPrediction{}, fmt.Errorf("%w: non-finite points model", ErrDegenerateFit)
	}

	return PointsPrediction{
		PlayerID:     target.ID,
		Predicted:    clampNonNegative(predicted),
		Actual:       target.Points,
		Intercept:    coeffs[0],
		Coefficients: slices.Clone(coeffs[1:]),
		Inputs:       slices.Clone(pointsModelInputs),
		R2:           finiteStat(r.R2),
		TrainingRows: rows,
		Formula:      r.Formula,
	}, nil
}

func finiteStat(v float64) players.Stat {
	if !isFinite(v) {
		return players.Missing()
	}
	return players.Known(v)
}
