package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// ClassifierRules declares which behavior codes belong to which semantic class
type ClassifierRules struct {
	Proper   []types.IndicatorCode
	Neutral  []types.IndicatorCode
	Negative []types.IndicatorCode
}

// Validate checks that the three flag groups are disjoint
func (r *ClassifierRules) Validate() error {
	owner := make(map[types.IndicatorCode]string)
	groups := []struct {
		name  string
		codes []types.IndicatorCode
	}{
		{"proper", r.Proper},
		{"neutral", r.Neutral},
		{"negative", r.Negative},
	}

	for _, g := range groups {
		for _, code := range g.codes {
			if code == "" {
				return goerr.Wrap(ErrInvalidCode, "classifier code is required", goerr.V(GroupKey, g.name))
			}
			if prev, ok := owner[code]; ok {
				return goerr.Wrap(ErrDuplicateCode, "classifier code belongs to more than one group",
					goerr.V(CodeKey, code), goerr.V(GroupKey, g.name), goerr.V("other_group", prev))
			}
			owner[code] = g.name
		}
	}
	return nil
}

// DefaultClassifierRules returns the flag groups of the disposal behavior codes
func DefaultClassifierRules() *ClassifierRules {
	return &ClassifierRules{
		Proper: []types.IndicatorCode{
			types.BehaviorProperDisposal,
			types.BehaviorRecyclingCorrectly,
			types.BehaviorPickingUpLitter,
		},
		Neutral: []types.IndicatorCode{
			types.BehaviorNonRecyclablesOnly,
			types.BehaviorPackingOutTrash,
		},
		Negative: []types.IndicatorCode{
			types.BehaviorIncorrectBinUse,
			types.BehaviorTrashInRestrooms,
			types.BehaviorLitteringOnGround,
		},
	}
}
