package model

import (
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// UserInfo holds the categorical attributes of the observed user
type UserInfo struct {
	InteractionType types.InteractionType
	Scenario        types.Scenario
}

// IsEmpty reports whether no user attribute was recorded
func (u UserInfo) IsEmpty() bool {
	return u.InteractionType == "" && u.Scenario == ""
}

// Indicators maps indicator codes to their observed magnitude (usually 0 or 1)
type Indicators map[types.IndicatorCode]int

// Get returns the magnitude of code. Absent and unknown codes read as 0, and so do
// negative magnitudes, so Get is total over any input.
func (x Indicators) Get(code types.IndicatorCode) int {
	v := x[code]
	if v < 0 {
		return 0
	}
	return v
}

// AnyOf reports whether at least one of codes has a non-zero magnitude
func (x Indicators) AnyOf(codes []types.IndicatorCode) bool {
	for _, code := range codes {
		if x.Get(code) != 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Cloning nil yields an empty map.
func (x Indicators) Clone() Indicators {
	copied := make(Indicators, len(x))
	for k, v := range x {
		copied[k] = v
	}
	return copied
}

// Solution is one UX intervention applied to a case
type Solution struct {
	Category types.SolutionCategory `json:"Category"`
	Type     string                 `json:"Type"`
}

// Case is one recorded observation: who, how they behaved, in which context and
// which interventions were applied
type Case struct {
	ID        types.CaseID
	UserInfo  UserInfo
	Behavior  Indicators
	Context   Indicators
	Solutions []Solution
}

// NewQueryCase builds a transient case to be matched against a corpus
func NewQueryCase(user UserInfo, behavior, context Indicators) *Case {
	return &Case{
		ID:       types.NewCaseID,
		UserInfo: user,
		Behavior: behavior.Clone(),
		Context:  context.Clone(),
	}
}

// Clone creates a deep copy of the case
func (c *Case) Clone() *Case {
	if c == nil {
		return nil
	}

	var solutions []Solution
	if c.Solutions != nil {
		solutions = make([]Solution, len(c.Solutions))
		copy(solutions, c.Solutions)
	}

	return &Case{
		ID:        c.ID,
		UserInfo:  c.UserInfo,
		Behavior:  c.Behavior.Clone(),
		Context:   c.Context.Clone(),
		Solutions: solutions,
	}
}

// CloneCases deep copies a corpus slice, keeping order
func CloneCases(cases []*Case) []*Case {
	copied := make([]*Case, 0, len(cases))
	for _, c := range cases {
		if c == nil {
			continue
		}
		copied = append(copied, c.Clone())
	}
	return copied
}
