package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
)

type caseRepository struct {
	mu sync.RWMutex
	// nil until the corpus is seeded or Put
	cases []*model.Case
}

var _ interfaces.CaseRepository = &caseRepository{}

func newCaseRepository() *caseRepository {
	return &caseRepository{}
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cases == nil {
		return nil, goerr.Wrap(interfaces.ErrCorpusNotFound, "memory corpus is not loaded")
	}
	return model.CloneCases(r.cases), nil
}

func (r *caseRepository) Put(ctx context.Context, cases []*model.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cases = model.CloneCases(cases)
	return nil
}
