package model

import (
	"slices"

	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// Recommendation is an intervention ranked by the similarity-weighted frequency
// with which it was applied to the retrieved cases
type Recommendation struct {
	Category types.SolutionCategory `json:"Category"`
	Type     string                 `json:"Type"`
	Score    float64                `json:"Score"`
}

// AggregateSolutions sums, for each distinct (Category, Type), the scores of the
// cases it appears in, once per occurrence. The top n are returned, highest first;
// ties keep the order in which the solutions were first seen.
func AggregateSolutions(scored []ScoredCase, n int) []Recommendation {
	if n <= 0 {
		return []Recommendation{}
	}

	index := make(map[Solution]int)
	ranked := make([]Recommendation, 0)

	for _, sc := range scored {
		if sc.Case == nil {
			continue
		}
		for _, sol := range sc.Case.Solutions {
			i, ok := index[sol]
			if !ok {
				i = len(ranked)
				index[sol] = i
				ranked = append(ranked, Recommendation{Category: sol.Category, Type: sol.Type})
			}
			ranked[i].Score += sc.Score
		}
	}

	slices.SortStableFunc(ranked, func(a, b Recommendation) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
