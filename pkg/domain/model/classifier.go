package model

import (
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// behaviorSignal is the presence of each flag group in an indicator set
type behaviorSignal struct {
	negative bool
	proper   bool
	neutral  bool
}

// decisionTable lists every combination of flag groups. Negative dominates,
// and without a proper behavior the result is never Appropriate.
var decisionTable = map[behaviorSignal]types.Label{
	{negative: true, proper: true, neutral: true}:    types.LabelInappropriate,
	{negative: true, proper: true, neutral: false}:   types.LabelInappropriate,
	{negative: true, proper: false, neutral: true}:   types.LabelInappropriate,
	{negative: true, proper: false, neutral: false}:  types.LabelInappropriate,
	{negative: false, proper: true, neutral: false}:  types.LabelAppropriate,
	{negative: false, proper: true, neutral: true}:   types.LabelPartiallyAppropriate,
	{negative: false, proper: false, neutral: true}:  types.LabelPartiallyAppropriate,
	{negative: false, proper: false, neutral: false}: types.LabelPartiallyAppropriate,
}

// Classifier labels disposal behavior with fixed flag-group rules
type Classifier struct {
	rules *config.ClassifierRules
}

// NewClassifier creates a Classifier. A nil rules falls back to the default flag groups.
func NewClassifier(rules *config.ClassifierRules) *Classifier {
	if rules == nil {
		rules = config.DefaultClassifierRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the label of the behavior indicators. It is total: any input,
// including nil, maps to exactly one label.
func (c *Classifier) Classify(behavior Indicators) types.Label {
	signal := behaviorSignal{
		negative: behavior.AnyOf(c.rules.Negative),
		proper:   behavior.AnyOf(c.rules.Proper),
		neutral:  behavior.AnyOf(c.rules.Neutral),
	}
	return decisionTable[signal]
}
