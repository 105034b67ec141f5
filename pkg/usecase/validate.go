package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
)

// ValidationIssue represents a single problem found in the case base
type ValidationIssue struct {
	Index   int
	CaseID  types.CaseID
	Message string
	Err     error
}

// ValidationResult holds the results of corpus validation
type ValidationResult struct {
	Total  int
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateCorpus checks every case of the case base against the declared code
// sets and reports duplicated IDs. It does NOT modify any data.
func (uc *UseCases) ValidateCorpus(ctx context.Context) (*ValidationResult, error) {
	corpus, err := uc.loadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	result := uc.validateCases(corpus)
	logging.From(ctx).Info("corpus validated",
		"cases", result.Total,
		"issues", len(result.Issues),
	)
	return result, nil
}

func (uc *UseCases) validateCases(corpus []*model.Case) *ValidationResult {
	result := &ValidationResult{Total: len(corpus)}
	seen := make(map[types.CaseID]int)

	for i, c := range corpus {
		if c == nil {
			continue
		}
		if err := uc.validator.ValidateCorpusCase(c); err != nil {
			result.AddIssue(ValidationIssue{
				Index:   i,
				CaseID:  c.ID,
				Message: err.Error(),
				Err:     err,
			})
			continue
		}
		if first, ok := seen[c.ID]; ok {
			result.AddIssue(ValidationIssue{
				Index:   i,
				CaseID:  c.ID,
				Message: "duplicated case ID",
				Err:     goerr.New("duplicated case ID", goerr.V(CaseIDKey, c.ID), goerr.V("first_index", first)),
			})
			continue
		}
		seen[c.ID] = i
	}
	return result
}

// checkCorpus fails on the first issue of the corpus
func (uc *UseCases) checkCorpus(corpus []*model.Case) error {
	result := uc.validateCases(corpus)
	if !result.HasIssues() {
		return nil
	}
	issue := result.Issues[0]
	return goerr.Wrap(errors.Join(ErrInvalidCase, issue.Err), "corpus contains invalid cases",
		goerr.V(CaseIDKey, issue.CaseID),
		goerr.V(IndexKey, issue.Index),
		goerr.V("issues", len(result.Issues)),
	)
}

// ImportCorpus copies the case base into dst, replacing whatever dst held. In
// strict mode an invalid corpus is not written.
func (uc *UseCases) ImportCorpus(ctx context.Context, dst interfaces.CaseRepository) (int, error) {
	corpus, err := uc.loadCorpus(ctx)
	if err != nil {
		return 0, err
	}
	if uc.strict {
		if err := uc.checkCorpus(corpus); err != nil {
			return 0, err
		}
	}

	if err := dst.Put(ctx, corpus); err != nil {
		return 0, goerr.Wrap(err, "failed to write corpus")
	}

	logging.From(ctx).Info("corpus imported", "cases", len(corpus))
	return len(corpus), nil
}
