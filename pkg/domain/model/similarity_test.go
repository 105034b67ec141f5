package model_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

const scoreTolerance = 1e-9

func assertScore(t *testing.T, actual, expected float64) {
	t.Helper()
	gt.Bool(t, math.Abs(actual-expected) < scoreTolerance).
		Describef("expected score %v, got %v", expected, actual).
		True()
}

func allCodes(codes []types.IndicatorCode) model.Indicators {
	x := model.Indicators{}
	for _, code := range codes {
		x[code] = 1
	}
	return x
}

func fullCase(id types.CaseID) *model.Case {
	return &model.Case{
		ID: id,
		UserInfo: model.UserInfo{
			InteractionType: types.InteractionRecreational,
			Scenario:        types.ScenarioExploringTrails,
		},
		Behavior: allCodes(types.AllBehaviorCodes()),
		Context:  allCodes(types.AllContextCodes()),
		Solutions: []model.Solution{
			{Category: types.SolutionCategoryTUX, Type: "Clear signage"},
		},
	}
}

// singleGroup puts the whole weight on one attribute group
func singleGroup(mutate func(g *config.GroupWeights)) *config.SimilarityConfig {
	cfg := config.DefaultSimilarityConfig()
	cfg.Groups = config.GroupWeights{}
	mutate(&cfg.Groups)
	return cfg
}

func TestSimilarity_SelfMatch(t *testing.T) {
	engine := model.NewSimilarityEngine(nil)
	c := fullCase("C1")
	assertScore(t, engine.Similarity(c, c), 1.0)
}

func TestSimilarity_SelfMatchWithAbsentCodes(t *testing.T) {
	// absent codes keep their weight in the denominator, so a sparse case does
	// not reach 1.0 against itself
	engine := model.NewSimilarityEngine(singleGroup(func(g *config.GroupWeights) { g.Behavior = 1.0 }))
	c := &model.Case{Behavior: model.Indicators{types.BehaviorProperDisposal: 1}}
	assertScore(t, engine.Similarity(c, c), 5.0/49.0)
}

func TestSimilarity_Symmetric(t *testing.T) {
	engine := model.NewSimilarityEngine(nil)
	pairs := []struct {
		name string
		a, b *model.Case
	}{
		{
			name: "full vs sparse",
			a:    fullCase("C1"),
			b: &model.Case{
				UserInfo: model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioPlayingSports},
				Behavior: model.Indicators{types.BehaviorLitteringOnGround: 1},
				Context:  model.Indicators{types.ContextOverflowingBin: 2},
				Solutions: []model.Solution{
					{Category: types.SolutionCategorySUX, Type: "More bins"},
					{Category: types.SolutionCategoryTUX, Type: "Clear signage"},
				},
			},
		},
		{
			name: "empty vs full",
			a:    &model.Case{},
			b:    fullCase("C2"),
		},
		{
			name: "nil vs full",
			a:    nil,
			b:    fullCase("C3"),
		},
	}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			assertScore(t, engine.Similarity(p.a, p.b), engine.Similarity(p.b, p.a))
		})
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	engine := model.NewSimilarityEngine(nil)
	cases := []*model.Case{
		nil,
		{},
		fullCase("C1"),
		{Behavior: model.Indicators{types.BehaviorProperDisposal: 7, "XX-UNKNOWN": 3}},
		{Context: model.Indicators{types.ContextStrategicBins: -4}},
		{UserInfo: model.UserInfo{Scenario: types.ScenarioObservingNature}},
	}

	for i, a := range cases {
		for j, b := range cases {
			score := engine.Similarity(a, b)
			gt.Bool(t, score >= 0 && score <= 1).Describef("pair (%d,%d) scored %v", i, j, score).True()
		}
	}
}

func TestSimilarity_NothingInCommon(t *testing.T) {
	engine := model.NewSimilarityEngine(nil)
	a := &model.Case{
		UserInfo:  model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioExploringTrails},
		Behavior:  model.Indicators{types.BehaviorProperDisposal: 1},
		Context:   model.Indicators{types.ContextOverflowingBin: 1},
		Solutions: []model.Solution{{Category: types.SolutionCategoryTUX, Type: "Signage"}},
	}
	b := &model.Case{
		UserInfo:  model.UserInfo{InteractionType: types.InteractionOperationalStaff, Scenario: types.ScenarioPlayingSports},
		Behavior:  model.Indicators{types.BehaviorLitteringOnGround: 1},
		Context:   model.Indicators{types.ContextInsufficientBins: 1},
		Solutions: []model.Solution{{Category: types.SolutionCategoryBUX, Type: "Cleanup event"}},
	}
	assertScore(t, engine.Similarity(a, b), 0.0)
}

func TestSimilarity_UserInfo(t *testing.T) {
	engine := model.NewSimilarityEngine(singleGroup(func(g *config.GroupWeights) { g.UserInfo = 1.0 }))

	testCases := []struct {
		name     string
		a, b     model.UserInfo
		expected float64
	}{
		{
			name:     "both fields match",
			a:        model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioExploringTrails},
			b:        model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioExploringTrails},
			expected: 1.0,
		},
		{
			name:     "one field matches",
			a:        model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioExploringTrails},
			b:        model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioEnjoyingPicnics},
			expected: 0.5,
		},
		{
			name:     "one side empty",
			a:        model.UserInfo{},
			b:        model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioExploringTrails},
			expected: 0.0,
		},
		{
			name:     "both sides empty",
			a:        model.UserInfo{},
			b:        model.UserInfo{},
			expected: 0.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := engine.Similarity(&model.Case{UserInfo: tc.a}, &model.Case{UserInfo: tc.b})
			assertScore(t, score, tc.expected)
		})
	}
}

func TestSimilarity_WeightedVector(t *testing.T) {
	cfg := singleGroup(func(g *config.GroupWeights) { g.Behavior = 1.0 })
	cfg.Behavior = config.AttributeWeights{
		{Code: "A", Weight: 2},
		{Code: "B", Weight: 1},
		{Code: "C", Weight: 1},
	}
	engine := model.NewSimilarityEngine(cfg)

	testCases := []struct {
		name     string
		a, b     model.Indicators
		expected float64
	}{
		{
			name:     "shared code",
			a:        model.Indicators{"A": 1},
			b:        model.Indicators{"A": 1, "B": 1},
			expected: 2.0 / 4.0,
		},
		{
			name:     "magnitudes above one",
			a:        model.Indicators{"A": 2},
			b:        model.Indicators{"A": 1},
			expected: 2.0 / 6.0,
		},
		{
			name:     "undeclared codes are ignored",
			a:        model.Indicators{"A": 1, "Z": 1},
			b:        model.Indicators{"A": 1},
			expected: 2.0 / 4.0,
		},
		{
			name:     "both empty",
			a:        model.Indicators{},
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := engine.Similarity(&model.Case{Behavior: tc.a}, &model.Case{Behavior: tc.b})
			assertScore(t, score, tc.expected)
		})
	}
}

func TestSimilarity_EmptyWeightTable(t *testing.T) {
	cfg := singleGroup(func(g *config.GroupWeights) { g.Context = 1.0 })
	cfg.Context = config.AttributeWeights{}
	engine := model.NewSimilarityEngine(cfg)

	c := &model.Case{Context: model.Indicators{types.ContextOverflowingBin: 1}}
	assertScore(t, engine.Similarity(c, c), 0.0)
}

func TestSimilarity_Solutions(t *testing.T) {
	engine := model.NewSimilarityEngine(singleGroup(func(g *config.GroupWeights) { g.Solutions = 1.0 }))
	signage := model.Solution{Category: types.SolutionCategoryTUX, Type: "Signage"}
	bins := model.Solution{Category: types.SolutionCategorySUX, Type: "More bins"}
	event := model.Solution{Category: types.SolutionCategoryBUX, Type: "Cleanup event"}

	testCases := []struct {
		name     string
		a, b     []model.Solution
		expected float64
	}{
		{name: "identical", a: []model.Solution{signage}, b: []model.Solution{signage}, expected: 1.0},
		{name: "partial overlap", a: []model.Solution{signage, bins}, b: []model.Solution{signage, event}, expected: 1.0 / 3.0},
		{name: "duplicates collapse", a: []model.Solution{signage, signage}, b: []model.Solution{signage}, expected: 1.0},
		{name: "same type different category", a: []model.Solution{signage}, b: []model.Solution{{Category: types.SolutionCategorySUX, Type: "Signage"}}, expected: 0.0},
		{name: "one side empty", a: nil, b: []model.Solution{signage}, expected: 0.0},
		{name: "both empty", a: nil, b: []model.Solution{}, expected: 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := engine.Similarity(&model.Case{Solutions: tc.a}, &model.Case{Solutions: tc.b})
			assertScore(t, score, tc.expected)
		})
	}
}

func TestSimilarity_DefaultGroupWeights(t *testing.T) {
	engine := model.NewSimilarityEngine(nil)
	a := fullCase("C1")

	// only the user group matches
	b := &model.Case{UserInfo: a.UserInfo}
	assertScore(t, engine.Similarity(a, b), 0.15)

	// user and solutions match
	b.Solutions = a.Solutions
	assertScore(t, engine.Similarity(a, b), 0.25)
}
