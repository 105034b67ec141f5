package model

import (
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// RecommendResult is the outcome of one retrieve-and-reuse run
type RecommendResult struct {
	RunID           string           `json:"RunID"`
	Label           types.Label      `json:"Label"`
	Similar         []ScoredCase     `json:"Similar"`
	Recommendations []Recommendation `json:"Recommendations"`
}
