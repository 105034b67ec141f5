package file

import (
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
)

// File keeps the corpus in a local JSON file, or reads it from a directory of
// JSON files
type File struct {
	caseRepo *caseRepository
}

var _ interfaces.Repository = &File{}

type Option func(*File)

// WithMaxConcurrency limits how many files of a corpus directory are decoded at once
func WithMaxConcurrency(n int) Option {
	return func(f *File) {
		if n > 0 {
			f.caseRepo.maxConcurrency = n
		}
	}
}

func New(path string, opts ...Option) *File {
	f := &File{
		caseRepo: newCaseRepository(path),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *File) Case() interfaces.CaseRepository {
	return f.caseRepo
}

func (f *File) Close() error {
	return nil
}
