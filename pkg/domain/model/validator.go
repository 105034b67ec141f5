package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
)

// CaseValidator checks cases against the declared code sets. The engine itself
// tolerates anything; the validator is for strict mode and corpus checks.
type CaseValidator struct {
	cfg *config.SimilarityConfig
}

// NewCaseValidator creates a validator for the codes declared in cfg
func NewCaseValidator(cfg *config.SimilarityConfig) *CaseValidator {
	if cfg == nil {
		cfg = config.DefaultSimilarityConfig()
	}
	return &CaseValidator{cfg: cfg}
}

// ValidateCorpusCase validates a case that is stored in a corpus
func (v *CaseValidator) ValidateCorpusCase(c *Case) error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCaseID, err.Error(), goerr.V(CaseIDKey, c.ID))
	}
	if c.ID.IsNew() {
		return goerr.Wrap(ErrSentinelInCorpus, "corpus case must have its own ID", goerr.V(CaseIDKey, c.ID))
	}
	if err := v.validateAttributes(c); err != nil {
		return goerr.Wrap(err, "invalid corpus case", goerr.V(CaseIDKey, c.ID))
	}
	return nil
}

// ValidateQuery validates a query case. The ID may be the sentinel or empty.
func (v *CaseValidator) ValidateQuery(c *Case) error {
	if c.ID != "" {
		if err := c.ID.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidCaseID, err.Error(), goerr.V(CaseIDKey, c.ID))
		}
	}
	if err := v.validateAttributes(c); err != nil {
		return goerr.Wrap(err, "invalid query case")
	}
	return nil
}

func (v *CaseValidator) validateAttributes(c *Case) error {
	if !c.UserInfo.InteractionType.IsValid() {
		return goerr.Wrap(ErrInvalidUserInfo, "unknown interaction type",
			goerr.V("interaction_type", c.UserInfo.InteractionType))
	}
	if !c.UserInfo.Scenario.IsValid() {
		return goerr.Wrap(ErrInvalidUserInfo, "unknown scenario",
			goerr.V("scenario", c.UserInfo.Scenario))
	}

	if err := validateIndicators("behavior", c.Behavior, v.cfg.Behavior); err != nil {
		return err
	}
	if err := validateIndicators("context", c.Context, v.cfg.Context); err != nil {
		return err
	}

	for _, sol := range c.Solutions {
		if !sol.Category.IsValid() {
			return goerr.Wrap(ErrInvalidSolution, "unknown solution category", goerr.V(SolutionKey, sol))
		}
		if sol.Type == "" {
			return goerr.Wrap(ErrInvalidSolution, "solution type is required", goerr.V(SolutionKey, sol))
		}
	}
	return nil
}

func validateIndicators(group string, x Indicators, declared config.AttributeWeights) error {
	for code, magnitude := range x {
		if !declared.Has(code) {
			return goerr.Wrap(ErrUnknownIndicator, "indicator code is not declared",
				goerr.V(GroupKey, group), goerr.V(CodeKey, code))
		}
		if magnitude < 0 {
			return goerr.Wrap(ErrNegativeMagnitude, "negative indicator magnitude",
				goerr.V(GroupKey, group), goerr.V(CodeKey, code), goerr.V(MagnitudeKey, magnitude))
		}
	}
	return nil
}
