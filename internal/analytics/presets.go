package analytics

import (
	"fmt"
	"strings"
)

const (
	PresetNameProfile = "profile"
	PresetNameDetail  = "detail"

	// DefaultPresetName is used when a caller does not ask for a preset.
	DefaultPresetName = PresetNameProfile
)

// PresetProfile is the roster-wide similar-players formula: squared, scaled
// differences combined as a weighted Euclidean distance.
var PresetProfile = SimilarityConfig{
	Name:    PresetNameProfile,
	Combine: CombineWeightedEuclidean,
	Terms: []Term{
		{Feature: FeaturePoints, Scale: 30, Weight: 0.3},
		{Feature: FeatureRebounds, Scale: 15, Weight: 0.2},
		{Feature: FeatureAssists, Scale: 15, Weight: 0.2},
		{Feature: FeatureUsage, Scale: 40, Weight: 0.15},
		{Feature: FeatureTrueShooting, Scale: 70, Weight: 0.15},
	},
}

// PresetDetail is the player-page formula: absolute differences combined as a
// weighted sum. Usage and true shooting are compared on their raw percentage scale.
var PresetDetail = SimilarityConfig{
	Name:    PresetNameDetail,
	Combine: CombineWeightedSum,
	Terms: []Term{
		{Feature: FeatureUsage, Scale: 1, Weight: 0.3},
		{Feature: FeatureTrueShooting, Scale: 1, Weight: 0.3},
		{Feature: FeaturePoints, Scale: 30, Weight: 0.2},
		{Feature: FeatureRebounds, Scale: 15, Weight: 0.1},
		{Feature: FeatureAssists, Scale: 10, Weight: 0.1},
	},
}

// Presets returns the registered presets in a stable order.
func Presets() []SimilarityConfig {
	return []SimilarityConfig{clonePreset(PresetProfile), clonePreset(PresetDetail)}
}

// PresetByName resolves a preset; an empty name selects DefaultPresetName.
func PresetByName(name string) (SimilarityConfig, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DefaultPresetName:
		return clonePreset(PresetProfile), nil
	case PresetNameDetail:
		return clonePreset(PresetDetail), nil
	default:
		return SimilarityConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

func clonePreset(cfg SimilarityConfig) SimilarityConfig {
	cfg.Terms = append([]Term(nil), cfg.Terms...)
	return cfg
}
