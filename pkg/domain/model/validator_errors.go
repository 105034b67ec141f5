package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidCaseID     = goerr.New("invalid case ID")
	ErrInvalidUserInfo   = goerr.New("invalid user information")
	ErrUnknownIndicator  = goerr.New("unknown indicator code")
	ErrNegativeMagnitude = goerr.New("indicator magnitude must not be negative")
	ErrInvalidSolution   = goerr.New("invalid solution")
	ErrSentinelInCorpus  = goerr.New("query sentinel ID used by a corpus case")
)

// Context keys for error values
const (
	CaseIDKey    = "case_id"
	GroupKey     = "group"
	CodeKey      = "code"
	MagnitudeKey = "magnitude"
	SolutionKey  = "solution"
)
