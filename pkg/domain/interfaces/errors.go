package interfaces

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrCorpusNotFound is returned when the corpus source does not exist
	ErrCorpusNotFound = goerr.New("corpus not found")
)
