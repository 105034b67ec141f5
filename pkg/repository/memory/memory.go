package memory

import (
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	caseRepo *caseRepository
}

var _ interfaces.Repository = &Memory{}

type Option func(*Memory)

// WithCases seeds the corpus
func WithCases(cases []*model.Case) Option {
	return func(m *Memory) {
		m.caseRepo.cases = model.CloneCases(cases)
	}
}

func New(opts ...Option) *Memory {
	m := &Memory{
		caseRepo: newCaseRepository(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.caseRepo
}

func (m *Memory) Close() error {
	return nil
}
