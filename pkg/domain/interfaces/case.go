package interfaces

import (
	"context"

	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
)

// CaseRepository defines the interface for case base access
type CaseRepository interface {
	// List returns every case of the corpus in stored order. A corpus that does not
	// exist is an error wrapping ErrCorpusNotFound, never an empty result.
	List(ctx context.Context) ([]*model.Case, error)

	// Put replaces the whole corpus with cases, keeping their order
	Put(ctx context.Context, cases []*model.Case) error
}
