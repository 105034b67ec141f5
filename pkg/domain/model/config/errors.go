package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for engine configuration
var (
	ErrInvalidWeight = goerr.New("invalid weight")
	ErrWeightSum     = goerr.New("weights do not sum to 1.0")
	ErrInvalidCode   = goerr.New("invalid indicator code")
	ErrDuplicateCode = goerr.New("duplicate indicator code")
)

// Context keys for error values
const (
	GroupKey  = "group"
	CodeKey   = "code"
	WeightKey = "weight"
	IndexKey  = "index"
)
