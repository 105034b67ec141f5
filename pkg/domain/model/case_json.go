package model

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// caseJSON is the on-disk layout of a case, shared with the case base files
type caseJSON struct {
	CaseID    json.RawMessage `json:"CaseID,omitempty"`
	UserInfo  json.RawMessage `json:"User_Basic_Information,omitempty"`
	Problem   json.RawMessage `json:"Problem,omitempty"`
	Context   json.RawMessage `json:"Context,omitempty"`
	Solutions json.RawMessage `json:"Solutions,omitempty"`
}

type userInfoJSON struct {
	InteractionType types.InteractionType `json:"User_Interaction_Type,omitempty"`
	Scenario        types.Scenario        `json:"Scenario,omitempty"`
}

type problemJSON struct {
	DisposalBehavior Indicators `json:"Disposal_Behavior"`
}

// MarshalJSON writes the case in the case base layout
func (c Case) MarshalJSON() ([]byte, error) {
	out := struct {
		CaseID    types.CaseID `json:"CaseID"`
		UserInfo  userInfoJSON `json:"User_Basic_Information"`
		Problem   problemJSON  `json:"Problem"`
		Context   Indicators   `json:"Context"`
		Solutions []Solution   `json:"Solutions"`
	}{
		CaseID: c.ID,
		UserInfo: userInfoJSON{
			InteractionType: c.UserInfo.InteractionType,
			Scenario:        c.UserInfo.Scenario,
		},
		Problem:   problemJSON{DisposalBehavior: c.Behavior.Clone()},
		Context:   c.Context.Clone(),
		Solutions: c.Solutions,
	}
	if out.Solutions == nil {
		out.Solutions = []Solution{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a case leniently: a group that is missing or has the wrong
// shape decodes as empty instead of failing the whole record.
func (c *Case) UnmarshalJSON(data []byte) error {
	var raw caseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := Case{
		ID:       decodeCaseID(raw.CaseID),
		Behavior: Indicators{},
		Context:  Indicators{},
	}

	var user userInfoJSON
	if json.Unmarshal(raw.UserInfo, &user) == nil {
		decoded.UserInfo = UserInfo{InteractionType: user.InteractionType, Scenario: user.Scenario}
	}

	var problem problemJSON
	if json.Unmarshal(raw.Problem, &problem) == nil && problem.DisposalBehavior != nil {
		decoded.Behavior = problem.DisposalBehavior
	}

	var ctx Indicators
	if json.Unmarshal(raw.Context, &ctx) == nil && ctx != nil {
		decoded.Context = ctx
	}

	var solutions []Solution
	if json.Unmarshal(raw.Solutions, &solutions) == nil {
		decoded.Solutions = solutions
	}

	*c = decoded
	return nil
}

// decodeCaseID accepts both string and numeric identifiers
func decodeCaseID(raw json.RawMessage) types.CaseID {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return types.CaseID(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return types.CaseID(n.String())
	}
	return ""
}

// UnmarshalJSON accepts numeric and boolean magnitudes and skips anything else
func (x *Indicators) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := make(Indicators, len(raw))
	for code, value := range raw {
		var n json.Number
		if err := json.Unmarshal(value, &n); err == nil {
			if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
				decoded[types.IndicatorCode(code)] = int(i)
			} else if f, err := n.Float64(); err == nil {
				if m, ok := floatMagnitude(f); ok {
					decoded[types.IndicatorCode(code)] = m
				}
			}
			continue
		}
		var b bool
		if err := json.Unmarshal(value, &b); err == nil {
			if b {
				decoded[types.IndicatorCode(code)] = 1
			} else {
				decoded[types.IndicatorCode(code)] = 0
			}
		}
	}

	*x = decoded
	return nil
}

// floatMagnitude rounds away from zero so a fractional observation such as 0.5
// still counts as present. Values outside the int range are rejected.
func floatMagnitude(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > 0 {
		f = math.Ceil(f)
	} else {
		f = math.Floor(f)
	}
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}
