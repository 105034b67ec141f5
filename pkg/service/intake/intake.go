package intake

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// ErrInvalidInput is returned when a query case cannot be built from the input
var ErrInvalidInput = goerr.New("invalid query input")

// Params describes a query case given as command line values. Indicators are
// written as CODE or CODE=MAGNITUDE.
type Params struct {
	InteractionType string
	Scenario        string
	Behavior        []string
	Context         []string
}

// FromParams builds a query case from command line values
func FromParams(p Params) (*model.Case, error) {
	user := model.UserInfo{
		InteractionType: types.InteractionType(strings.ToUpper(strings.TrimSpace(p.InteractionType))),
		Scenario:        types.Scenario(strings.ToUpper(strings.TrimSpace(p.Scenario))),
	}

	behavior, err := parseIndicators(p.Behavior)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid behavior indicator")
	}
	factors, err := parseIndicators(p.Context)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid context indicator")
	}

	return model.NewQueryCase(user, behavior, factors), nil
}

func parseIndicators(values []string) (model.Indicators, error) {
	x := model.Indicators{}
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}

			code, magnitude, hasMagnitude := strings.Cut(item, "=")
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" {
				return nil, goerr.Wrap(ErrInvalidInput, "indicator code is empty", goerr.V("value", item))
			}

			n := 1
			if hasMagnitude {
				parsed, err := strconv.Atoi(strings.TrimSpace(magnitude))
				if err != nil || parsed < 0 {
					return nil, goerr.Wrap(ErrInvalidInput, "indicator magnitude must be a non-negative integer",
						goerr.V("value", item))
				}
				n = parsed
			}
			x[types.IndicatorCode(code)] = n
		}
	}
	return x, nil
}

// FromJSON reads one query case in the case base layout. A missing CaseID
// becomes the query sentinel.
func FromJSON(r io.Reader) (*model.Case, error) {
	var c model.Case
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidInput, err), "failed to decode query case")
	}
	if c.ID == "" {
		c.ID = types.NewCaseID
	}
	return &c, nil
}
