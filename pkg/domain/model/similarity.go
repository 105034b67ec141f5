package model

import (
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
)

// SimilarityEngine compares two cases attribute group by attribute group and
// combines the group scores with fixed weights
type SimilarityEngine struct {
	cfg *config.SimilarityConfig
}

// NewSimilarityEngine creates an engine. A nil cfg falls back to the default weights.
func NewSimilarityEngine(cfg *config.SimilarityConfig) *SimilarityEngine {
	if cfg == nil {
		cfg = config.DefaultSimilarityConfig()
	}
	return &SimilarityEngine{cfg: cfg}
}

// Config returns the weights the engine was built with
func (e *SimilarityEngine) Config() *config.SimilarityConfig {
	return e.cfg
}

// Similarity returns a score in [0, 1]. Nil cases are treated as empty.
func (e *SimilarityEngine) Similarity(query, candidate *Case) float64 {
	if query == nil {
		query = &Case{}
	}
	if candidate == nil {
		candidate = &Case{}
	}

	g := e.cfg.Groups
	score := g.UserInfo*e.userInfoSimilarity(query.UserInfo, candidate.UserInfo) +
		g.Behavior*weightedVectorSimilarity(query.Behavior, candidate.Behavior, e.cfg.Behavior) +
		g.Context*weightedVectorSimilarity(query.Context, candidate.Context, e.cfg.Context) +
		g.Solutions*solutionSimilarity(query.Solutions, candidate.Solutions)

	// group weights may drift from 1.0 within the validation tolerance
	return min(max(score, 0), 1)
}

// userInfoSimilarity is the weighted share of exactly matching fields. A side
// without any user information never matches.
func (e *SimilarityEngine) userInfoSimilarity(a, b UserInfo) float64 {
	if a.IsEmpty() || b.IsEmpty() {
		return 0.0
	}

	w := e.cfg.UserInfo
	total := w.Sum()
	if total == 0 {
		return 0.0
	}

	score := 0.0
	if a.InteractionType == b.InteractionType {
		score += w.InteractionType
	}
	if a.Scenario == b.Scenario {
		score += w.Scenario
	}
	return score / total
}

// weightedVectorSimilarity computes sum(w*min(a,b)) / sum(w*max(a,b,1)) over the
// declared codes. Codes absent on both sides still add their weight to the
// denominator, and codes outside the table are ignored.
func weightedVectorSimilarity(a, b Indicators, weights config.AttributeWeights) float64 {
	numerator := 0.0
	denominator := 0.0

	for _, aw := range weights {
		va := a.Get(aw.Code)
		vb := b.Get(aw.Code)
		numerator += aw.Weight * float64(min(va, vb))
		denominator += aw.Weight * float64(max(va, vb, 1))
	}

	if denominator == 0 {
		return 0.0
	}
	return numerator / denominator
}

// solutionSimilarity is the Jaccard index of the distinct (Category, Type) pairs.
// An empty side scores 0, even against another empty side.
func solutionSimilarity(a, b []Solution) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[Solution]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[Solution]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
