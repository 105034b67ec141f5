package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

func TestClassifier_Classify(t *testing.T) {
	testCases := []struct {
		name     string
		behavior model.Indicators
		expected types.Label
	}{
		{
			name:     "proper only is appropriate",
			behavior: model.Indicators{types.BehaviorProperDisposal: 1},
			expected: types.LabelAppropriate,
		},
		{
			name: "all proper codes is appropriate",
			behavior: model.Indicators{
				types.BehaviorProperDisposal:     1,
				types.BehaviorRecyclingCorrectly: 1,
				types.BehaviorPickingUpLitter:    1,
			},
			expected: types.LabelAppropriate,
		},
		{
			name: "proper with neutral is partially appropriate",
			behavior: model.Indicators{
				types.BehaviorProperDisposal:  1,
				types.BehaviorPackingOutTrash: 1,
			},
			expected: types.LabelPartiallyAppropriate,
		},
		{
			name:     "neutral only is partially appropriate",
			behavior: model.Indicators{types.BehaviorNonRecyclablesOnly: 1},
			expected: types.LabelPartiallyAppropriate,
		},
		{
			name:     "nothing observed falls back to partially appropriate",
			behavior: model.Indicators{},
			expected: types.LabelPartiallyAppropriate,
		},
		{
			name:     "nil indicators falls back to partially appropriate",
			behavior: nil,
			expected: types.LabelPartiallyAppropriate,
		},
		{
			name: "negative dominates proper",
			behavior: model.Indicators{
				types.BehaviorLitteringOnGround: 1,
				types.BehaviorProperDisposal:    1,
			},
			expected: types.LabelInappropriate,
		},
		{
			name: "negative dominates proper and neutral",
			behavior: model.Indicators{
				types.BehaviorIncorrectBinUse:    1,
				types.BehaviorRecyclingCorrectly: 1,
				types.BehaviorPackingOutTrash:    1,
			},
			expected: types.LabelInappropriate,
		},
		{
			name: "negative with neutral is inappropriate",
			behavior: model.Indicators{
				types.BehaviorTrashInRestrooms:   1,
				types.BehaviorNonRecyclablesOnly: 1,
			},
			expected: types.LabelInappropriate,
		},
		{
			name:     "negative only is inappropriate",
			behavior: model.Indicators{types.BehaviorTrashInRestrooms: 1},
			expected: types.LabelInappropriate,
		},
		{
			name: "zero magnitudes are not observed",
			behavior: model.Indicators{
				types.BehaviorLitteringOnGround: 0,
				types.BehaviorProperDisposal:    1,
			},
			expected: types.LabelAppropriate,
		},
		{
			name: "magnitudes above one count as present",
			behavior: model.Indicators{
				types.BehaviorPickingUpLitter: 3,
			},
			expected: types.LabelAppropriate,
		},
		{
			name: "unknown codes are ignored",
			behavior: model.Indicators{
				"XX-UNKNOWN":                 1,
				types.BehaviorProperDisposal: 1,
			},
			expected: types.LabelAppropriate,
		},
		{
			name: "negative magnitude reads as absent",
			behavior: model.Indicators{
				types.BehaviorLitteringOnGround: -1,
				types.BehaviorProperDisposal:    1,
			},
			expected: types.LabelAppropriate,
		},
	}

	classifier := model.NewClassifier(nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, classifier.Classify(tc.behavior)).Equal(tc.expected)
		})
	}
}

func TestClassifier_CustomRules(t *testing.T) {
	classifier := model.NewClassifier(&config.ClassifierRules{
		Proper:   []types.IndicatorCode{"X-GOOD"},
		Negative: []types.IndicatorCode{"X-BAD"},
	})

	gt.Value(t, classifier.Classify(model.Indicators{"X-GOOD": 1})).Equal(types.LabelAppropriate)
	gt.Value(t, classifier.Classify(model.Indicators{"X-GOOD": 1, "X-BAD": 1})).Equal(types.LabelInappropriate)
	gt.Value(t, classifier.Classify(model.Indicators{types.BehaviorProperDisposal: 1})).Equal(types.LabelPartiallyAppropriate)
}

func TestClassifier_AlwaysReturnsValidLabel(t *testing.T) {
	classifier := model.NewClassifier(nil)
	codes := types.AllBehaviorCodes()

	// every subset of the behavior codes
	for mask := 0; mask < 1<<len(codes); mask++ {
		behavior := model.Indicators{}
		for i, code := range codes {
			if mask&(1<<i) != 0 {
				behavior[code] = 1
			}
		}
		label := classifier.Classify(behavior)
		gt.Bool(t, label.IsValid()).Describef("mask=%b label=%q", mask, label).True()
	}
}
