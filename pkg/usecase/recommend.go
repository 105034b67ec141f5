package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
)

// Classify labels the disposal behavior of query
func (uc *UseCases) Classify(ctx context.Context, query *model.Case) (types.Label, error) {
	query = normalizeQuery(query)
	if uc.strict {
		if err := uc.validator.ValidateQuery(query); err != nil {
			return "", goerr.Wrap(errors.Join(ErrInvalidCase, err), "query rejected")
		}
	}
	return uc.classifier.Classify(query.Behavior), nil
}

// Recommend classifies query, retrieves its topK most similar corpus cases and
// ranks the solutions applied to them. topK and topN below 1 yield empty lists.
func (uc *UseCases) Recommend(ctx context.Context, query *model.Case, topK, topN int) (*model.RecommendResult, error) {
	runID := uuid.Must(uuid.NewV7()).String()
	logger := logging.From(ctx).With(RunIDKey, runID)

	query = normalizeQuery(query)
	if uc.strict {
		if err := uc.validator.ValidateQuery(query); err != nil {
			return nil, goerr.Wrap(errors.Join(ErrInvalidCase, err), "query rejected", goerr.V(RunIDKey, runID))
		}
	}

	corpus, err := uc.loadCorpus(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "recommendation aborted", goerr.V(RunIDKey, runID))
	}
	if uc.strict {
		if err := uc.checkCorpus(corpus); err != nil {
			return nil, goerr.Wrap(err, "corpus rejected", goerr.V(RunIDKey, runID))
		}
	}

	label := uc.classifier.Classify(query.Behavior)
	similar := model.Retrieve(uc.engine, query, corpus, topK)
	recommendations := model.AggregateSolutions(similar, topN)

	logger.Info("recommendation completed",
		"label", label,
		"corpus_size", len(corpus),
		"similar", len(similar),
		"recommendations", len(recommendations),
	)

	return &model.RecommendResult{
		RunID:           runID,
		Label:           label,
		Similar:         similar,
		Recommendations: recommendations,
	}, nil
}

// ListCases returns the current case base
func (uc *UseCases) ListCases(ctx context.Context) ([]*model.Case, error) {
	return uc.loadCorpus(ctx)
}

// normalizeQuery turns a nil query into an empty one and fills in the sentinel ID
func normalizeQuery(query *model.Case) *model.Case {
	if query == nil {
		return model.NewQueryCase(model.UserInfo{}, nil, nil)
	}
	if query.ID == "" {
		query = query.Clone()
		query.ID = types.NewCaseID
	}
	return query
}
