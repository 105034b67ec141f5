package model

import "slices"

// ScoredCase pairs a corpus case with its similarity to a query
type ScoredCase struct {
	Case  *Case   `json:"Case"`
	Score float64 `json:"Score"`
}

// Retrieve scores every corpus case against query and returns up to k cases with a
// strictly positive score, best first. Equal scores keep corpus order. The corpus
// is only read.
func Retrieve(engine *SimilarityEngine, query *Case, corpus []*Case, k int) []ScoredCase {
	if k <= 0 || len(corpus) == 0 {
		return []ScoredCase{}
	}

	scored := make([]ScoredCase, 0, len(corpus))
	for _, c := range corpus {
		if c == nil {
			continue
		}
		score := engine.Similarity(query, c)
		if score > 0 {
			scored = append(scored, ScoredCase{Case: c, Score: score})
		}
	}

	slices.SortStableFunc(scored, func(a, b ScoredCase) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
