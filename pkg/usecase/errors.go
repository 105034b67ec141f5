package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrCorpusUnavailable is returned when the case base cannot be loaded
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrInvalidCase is returned by strict validation
	ErrInvalidCase = errors.New("invalid case")
)

// Context keys for error values
const (
	CaseIDKey = "case_id"
	IndexKey  = "index"
	RunIDKey  = "run_id"
)
