package engine

import "github.com/rotisserie/eris"

// Tier thresholds. Extracted as named values because boundary drift here is
// silent: a rule flips tier without any code path changing.
const (
	// DefaultSafeFitMin is the minimum fit for a low-selectivity rule to
	// tier as Safe.
	DefaultSafeFitMin = 0.65
	// DefaultTargetFitMin is the minimum fit for a Target tier.
	DefaultTargetFitMin = 0.45
	// DefaultAspirationalFitFloor is the minimum fit for a
	// high-selectivity rule to surface at all.
	DefaultAspirationalFitFloor = 0.25
	// DefaultMaxRecommendations caps the shortlist.
	DefaultMaxRecommendations = 3
)

// ReadinessWeights combines the category sub-scores into the composite.
type ReadinessWeights struct {
	Academic      float64 `mapstructure:"academic"`
	Financial     float64 `mapstructure:"financial"`
	Language      float64 `mapstructure:"language"`
	Timeline      float64 `mapstructure:"timeline"`
	Documentation float64 `mapstructure:"documentation"`
}

// Sum returns the total weight.
func (w ReadinessWeights) Sum() float64 {
	return w.Academic + w.Financial + w.Language + w.Timeline + w.Documentation
}

// Params are the tunable constants of one evaluation run. They are part of
// the engine's deterministic input: same profile, same snapshot, same params,
// same output.
type Params struct {
	SafeFitMin           float64          `mapstructure:"safe_fit_min"`
	TargetFitMin         float64          `mapstructure:"target_fit_min"`
	AspirationalFitFloor float64          `mapstructure:"aspirational_fit_floor"`
	MaxRecommendations   int              `mapstructure:"max_recommendations"`
	Readiness            ReadinessWeights `mapstructure:"readiness"`
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		SafeFitMin:           DefaultSafeFitMin,
		TargetFitMin:         DefaultTargetFitMin,
		AspirationalFitFloor: DefaultAspirationalFitFloor,
		MaxRecommendations:   DefaultMaxRecommendations,
		Readiness: ReadinessWeights{
			Academic:      0.30,
			Financial:     0.25,
			Language:      0.20,
			Timeline:      0.10,
			Documentation: 0.15,
		},
	}
}

// Validate checks internal consistency.
func (p Params) Validate() error {
	if p.SafeFitMin < 0 || p.SafeFitMin > 1 {
		return eris.Errorf("engine: safe_fit_min %.2f out of [0,1]", p.SafeFitMin)
	}
	if p.TargetFitMin < 0 || p.TargetFitMin > 1 {
		return eris.Errorf("engine: target_fit_min %.2f out of [0,1]", p.TargetFitMin)
	}
	if p.AspirationalFitFloor < 0 || p.AspirationalFitFloor > 1 {
		return eris.Errorf("engine: aspirational_fit_floor %.2f out of [0,1]", p.AspirationalFitFloor)
	}
	if p.TargetFitMin > p.SafeFitMin {
		return eris.Errorf("engine: target_fit_min %.2f above safe_fit_min %.2f", p.TargetFitMin, p.SafeFitMin)
	}
	if p.MaxRecommendations < 1 {
		return eris.Errorf("engine: max_recommendations %d must be >= 1", p.MaxRecommendations)
	}
	if p.Readiness.Sum() <= 0 {
		return eris.New("engine: readiness weights must sum to > 0")
	}
	return nil
}
