package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
)

// Defaults of the interactive recommender
const (
	DefaultTopK = 3
	DefaultTopN = 5
)

// CorpusSource provides the case base a recommendation runs against
type CorpusSource interface {
	Corpus(ctx context.Context) ([]*model.Case, error)
}

type UseCases struct {
	repo       interfaces.Repository
	source     CorpusSource
	similarity *config.SimilarityConfig
	rules      *config.ClassifierRules
	strict     bool

	engine     *model.SimilarityEngine
	classifier *model.Classifier
	validator  *model.CaseValidator
}

type Option func(*UseCases)

func WithSimilarityConfig(cfg *config.SimilarityConfig) Option {
	return func(uc *UseCases) {
		uc.similarity = cfg
	}
}

func WithClassifierRules(rules *config.ClassifierRules) Option {
	return func(uc *UseCases) {
		uc.rules = rules
	}
}

// WithStrictValidation rejects queries and corpora that do not match the declared
// code sets instead of scoring them leniently
func WithStrictValidation(strict bool) Option {
	return func(uc *UseCases) {
		uc.strict = strict
	}
}

// WithCorpusSource replaces the repository as the source of the case base used
// by recommendations, e.g. with a periodically refreshed snapshot
func WithCorpusSource(src CorpusSource) Option {
	return func(uc *UseCases) {
		uc.source = src
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.similarity == nil {
		uc.similarity = config.DefaultSimilarityConfig()
	}
	if uc.rules == nil {
		uc.rules = config.DefaultClassifierRules()
	}
	if uc.source == nil {
		uc.source = &repositorySource{repo: repo}
	}

	uc.engine = model.NewSimilarityEngine(uc.similarity)
	uc.classifier = model.NewClassifier(uc.rules)
	uc.validator = model.NewCaseValidator(uc.similarity)

	return uc
}

// repositorySource reads the corpus from the repository on every call
type repositorySource struct {
	repo interfaces.Repository
}

func (s *repositorySource) Corpus(ctx context.Context) ([]*model.Case, error) {
	if s.repo == nil {
		return nil, goerr.New("no repository configured")
	}
	return s.repo.Case().List(ctx)
}

func (uc *UseCases) loadCorpus(ctx context.Context) ([]*model.Case, error) {
	corpus, err := uc.source.Corpus(ctx)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrCorpusUnavailable, err), "failed to load corpus")
	}
	if corpus == nil {
		return nil, goerr.Wrap(ErrCorpusUnavailable, "corpus source returned no corpus")
	}
	return corpus, nil
}
