package config

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// weightSumTolerance bounds floating point drift when checking that group weights sum to 1.0
const weightSumTolerance = 0.001

// GroupWeights defines how much each attribute group contributes to the overall similarity
type GroupWeights struct {
	UserInfo  float64
	Behavior  float64
	Context   float64
	Solutions float64
}

// Sum returns the total of all group weights
func (w GroupWeights) Sum() float64 {
	return w.UserInfo + w.Behavior + w.Context + w.Solutions
}

// Validate checks that weights are non-negative and sum to 1.0
func (w GroupWeights) Validate() error {
	for name, v := range map[string]float64{
		"user_info": w.UserInfo,
		"behavior":  w.Behavior,
		"context":   w.Context,
		"solutions": w.Solutions,
	} {
		if v < 0 || math.IsNaN(v) {
			return goerr.Wrap(ErrInvalidWeight, "group weight must be non-negative",
				goerr.V(GroupKey, name), goerr.V(WeightKey, v))
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return goerr.Wrap(ErrWeightSum, "group weights must sum to 1.0", goerr.V("sum", w.Sum()))
	}
	return nil
}

// UserInfoWeights are sub-weights of the categorical user information fields
type UserInfoWeights struct {
	InteractionType float64
	Scenario        float64
}

// Sum returns the total of all field weights
func (w UserInfoWeights) Sum() float64 {
	return w.InteractionType + w.Scenario
}

// Validate checks that sub-weights are non-negative
func (w UserInfoWeights) Validate() error {
	if w.InteractionType < 0 || w.Scenario < 0 {
		return goerr.Wrap(ErrInvalidWeight, "user info weight must be non-negative",
			goerr.V("interaction_type", w.InteractionType), goerr.V("scenario", w.Scenario))
	}
	return nil
}

// AttributeWeight is the weight of a single indicator code
type AttributeWeight struct {
	Code   types.IndicatorCode
	Weight float64
}

// AttributeWeights is an ordered weight table. The order fixes the summation order,
// so a similarity is reproducible bit for bit across runs.
type AttributeWeights []AttributeWeight

// Codes returns the declared codes in table order
func (w AttributeWeights) Codes() []types.IndicatorCode {
	codes := make([]types.IndicatorCode, len(w))
	for i, aw := range w {
		codes[i] = aw.Code
	}
	return codes
}

// Has reports whether the code is declared in the table
func (w AttributeWeights) Has(code types.IndicatorCode) bool {
	for _, aw := range w {
		if aw.Code == code {
			return true
		}
	}
	return false
}

// Validate checks that codes are unique and non-empty and weights are non-negative
func (w AttributeWeights) Validate() error {
	seen := make(map[types.IndicatorCode]bool, len(w))
	for i, aw := range w {
		if aw.Code == "" {
			return goerr.Wrap(ErrInvalidCode, "attribute code is required", goerr.V(IndexKey, i))
		}
		if seen[aw.Code] {
			return goerr.Wrap(ErrDuplicateCode, "duplicate attribute code", goerr.V(CodeKey, aw.Code))
		}
		seen[aw.Code] = true
		if aw.Weight < 0 || math.IsNaN(aw.Weight) {
			return goerr.Wrap(ErrInvalidWeight, "attribute weight must be non-negative",
				goerr.V(CodeKey, aw.Code), goerr.V(WeightKey, aw.Weight))
		}
	}
	return nil
}

// SimilarityConfig holds every weight the similarity engine uses
type SimilarityConfig struct {
	Groups   GroupWeights
	UserInfo UserInfoWeights
	Behavior AttributeWeights
	Context  AttributeWeights
}

// Validate checks the whole similarity configuration
func (c *SimilarityConfig) Validate() error {
	if err := c.Groups.Validate(); err != nil {
		return goerr.Wrap(err, "invalid group weights")
	}
	if err := c.UserInfo.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user info weights")
	}
	if err := c.Behavior.Validate(); err != nil {
		return goerr.Wrap(err, "invalid behavior weights")
	}
	if err := c.Context.Validate(); err != nil {
		return goerr.Wrap(err, "invalid context weights")
	}
	return nil
}

// DefaultSimilarityConfig returns the weight scheme the case base was designed with
func DefaultSimilarityConfig() *SimilarityConfig {
	return &SimilarityConfig{
		Groups: GroupWeights{
			UserInfo:  0.15,
			Behavior:  0.45,
			Context:   0.30,
			Solutions: 0.10,
		},
		UserInfo: UserInfoWeights{
			InteractionType: 0.5,
			Scenario:        0.5,
		},
		Behavior: AttributeWeights{
			{Code: types.BehaviorProperDisposal, Weight: 5},
			{Code: types.BehaviorRecyclingCorrectly, Weight: 5},
			{Code: types.BehaviorPickingUpLitter, Weight: 5},
			{Code: types.BehaviorNonRecyclablesOnly, Weight: 3},
			{Code: types.BehaviorPackingOutTrash, Weight: 3},
			{Code: types.BehaviorIncorrectBinUse, Weight: 8},
			{Code: types.BehaviorTrashInRestrooms, Weight: 10},
			{Code: types.BehaviorLitteringOnGround, Weight: 10},
		},
		Context: AttributeWeights{
			{Code: types.ContextLackOfAwareness, Weight: 3},
			{Code: types.ContextConfusingGuidelines, Weight: 4},
			{Code: types.ContextOverflowingBin, Weight: 4},
			{Code: types.ContextSeasonalSpike, Weight: 3},
			{Code: types.ContextHardToFindBin, Weight: 4},
			{Code: types.ContextInsufficientBins, Weight: 4},
			{Code: types.ContextStrategicBins, Weight: 2},
		},
	}
}
