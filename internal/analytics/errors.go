package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFeature matches any MissingFeatureError via errors.Is.
	ErrMissingFeature = errors.New("missing feature")
	// ErrInvalidClusterCount matches any InvalidClusterCountError via errors.Is.
	ErrInvalidClusterCount = errors.New("invalid cluster count")
	// ErrInvalidNeighborCount is returned for a negative neighbor count.
	ErrInvalidNeighborCount = errors.New("invalid neighbor count")
	// ErrDegenerateFit signals that a regression could not produce a finite line.
	ErrDegenerateFit = errors.New("degenerate fit")
	// ErrInsufficientData is returned when a model has too few rows to train on.
	ErrInsufficientData = errors.New("insufficient training data")
	// ErrUnknownPreset is returned by PresetByName for unregistered names.
	ErrUnknownPreset = errors.New("unknown similarity preset")
	// ErrInvalidConfig is returned when a similarity configuration fails validation.
	ErrInvalidConfig = errors.New("invalid similarity config")
)

// MissingFeatureError reports a required statistic that is absent on a record.
type MissingFeatureError struct {
	PlayerID int
	Feature  Feature
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("player %d: missing feature %s", e.PlayerID, e.Feature)
}

func (e *MissingFeatureError) Unwrap() error {
	return ErrMissingFeature
}

// AsMissingFeature attempts to unwrap an error into a MissingFeatureError.
func AsMissingFeature(err error) (*MissingFeatureError, bool) {
	var mfErr *MissingFeatureError
	if errors.As(err, &mfErr) {
		return mfErr, true
	}
	return nil, false
}

// InvalidClusterCountError reports a k outside [1, pool size].
type InvalidClusterCountError struct {
	K        int
	PoolSize int
}

func (e *InvalidClusterCountError) Error() string {
	return fmt.Sprintf("cluster count %d outside [1, %d]", e.K, e.PoolSize)
}

func (e *InvalidClusterCountError) Unwrap() error {
	return ErrInvalidClusterCount
}
