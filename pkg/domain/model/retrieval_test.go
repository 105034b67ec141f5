package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

func behaviorOnlyEngine() *model.SimilarityEngine {
	cfg := config.DefaultSimilarityConfig()
	cfg.Groups = config.GroupWeights{Behavior: 1.0}
	cfg.Behavior = config.AttributeWeights{
		{Code: "A", Weight: 1},
		{Code: "B", Weight: 1},
	}
	return model.NewSimilarityEngine(cfg)
}

func TestRetrieve(t *testing.T) {
	engine := behaviorOnlyEngine()
	query := &model.Case{ID: types.NewCaseID, Behavior: model.Indicators{"A": 1, "B": 1}}

	// scores: both=1.0, onlyA=0.5, onlyB=0.5, none=0
	both := &model.Case{ID: "both", Behavior: model.Indicators{"A": 1, "B": 1}}
	onlyA := &model.Case{ID: "onlyA", Behavior: model.Indicators{"A": 1}}
	onlyB := &model.Case{ID: "onlyB", Behavior: model.Indicators{"B": 1}}
	none := &model.Case{ID: "none"}
	corpus := []*model.Case{onlyA, none, both, onlyB}

	t.Run("sorted by score with corpus order on ties", func(t *testing.T) {
		result := model.Retrieve(engine, query, corpus, 10)
		gt.Array(t, result).Length(3)
		gt.Value(t, result[0].Case.ID).Equal(types.CaseID("both"))
		gt.Value(t, result[1].Case.ID).Equal(types.CaseID("onlyA"))
		gt.Value(t, result[2].Case.ID).Equal(types.CaseID("onlyB"))
		assertScore(t, result[0].Score, 1.0)
		assertScore(t, result[1].Score, 0.5)
	})

	t.Run("truncated to k", func(t *testing.T) {
		result := model.Retrieve(engine, query, corpus, 2)
		gt.Array(t, result).Length(2)
		gt.Value(t, result[1].Case.ID).Equal(types.CaseID("onlyA"))
	})

	t.Run("zero scores are excluded", func(t *testing.T) {
		for _, sc := range model.Retrieve(engine, query, corpus, 10) {
			gt.Value(t, sc.Case.ID).NotEqual(types.CaseID("none"))
		}
	})

	t.Run("non-positive k yields empty result", func(t *testing.T) {
		gt.Array(t, model.Retrieve(engine, query, corpus, 0)).Length(0)
		gt.Array(t, model.Retrieve(engine, query, corpus, -1)).Length(0)
	})

	t.Run("empty corpus yields empty result", func(t *testing.T) {
		result := model.Retrieve(engine, query, nil, 3)
		gt.Value(t, result).NotNil()
		gt.Array(t, result).Length(0)
	})

	t.Run("nil entries are skipped", func(t *testing.T) {
		result := model.Retrieve(engine, query, []*model.Case{nil, onlyA}, 3)
		gt.Array(t, result).Length(1)
	})

	t.Run("corpus is left untouched", func(t *testing.T) {
		model.Retrieve(engine, query, corpus, 1)
		gt.Value(t, corpus[0].ID).Equal(types.CaseID("onlyA"))
		gt.Value(t, corpus[1].ID).Equal(types.CaseID("none"))
		gt.Value(t, corpus[2].ID).Equal(types.CaseID("both"))
		gt.Value(t, corpus[3].ID).Equal(types.CaseID("onlyB"))
	})
}

func TestAggregateSolutions(t *testing.T) {
	signage := model.Solution{Category: types.SolutionCategoryTUX, Type: "Signage"}
	bins := model.Solution{Category: types.SolutionCategorySUX, Type: "More bins"}
	event := model.Solution{Category: types.SolutionCategoryBUX, Type: "Cleanup event"}

	t.Run("scores accumulate over retrieved cases", func(t *testing.T) {
		scored := []model.ScoredCase{
			{Case: &model.Case{ID: "C1", Solutions: []model.Solution{signage}}, Score: 0.8},
			{Case: &model.Case{ID: "C2", Solutions: []model.Solution{signage, bins}}, Score: 0.5},
		}
		result := model.AggregateSolutions(scored, 5)
		gt.Array(t, result).Length(2)
		gt.Value(t, result[0].Category).Equal(types.SolutionCategoryTUX)
		gt.Value(t, result[0].Type).Equal("Signage")
		assertScore(t, result[0].Score, 1.3)
		gt.Value(t, result[1].Type).Equal("More bins")
		assertScore(t, result[1].Score, 0.5)
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		scored := []model.ScoredCase{
			{Case: &model.Case{Solutions: []model.Solution{event, bins}}, Score: 0.4},
			{Case: &model.Case{Solutions: []model.Solution{signage}}, Score: 0.4},
		}
		result := model.AggregateSolutions(scored, 5)
		gt.Array(t, result).Length(3)
		gt.Value(t, result[0].Type).Equal("Cleanup event")
		gt.Value(t, result[1].Type).Equal("More bins")
		gt.Value(t, result[2].Type).Equal("Signage")
	})

	t.Run("repeated solution in one case counts per occurrence", func(t *testing.T) {
		scored := []model.ScoredCase{
			{Case: &model.Case{Solutions: []model.Solution{bins, bins}}, Score: 0.3},
		}
		result := model.AggregateSolutions(scored, 5)
		gt.Array(t, result).Length(1)
		assertScore(t, result[0].Score, 0.6)
	})

	t.Run("truncated to n", func(t *testing.T) {
		scored := []model.ScoredCase{
			{Case: &model.Case{Solutions: []model.Solution{signage, bins, event}}, Score: 0.9},
		}
		gt.Array(t, model.AggregateSolutions(scored, 2)).Length(2)
	})

	t.Run("non-positive n yields empty result", func(t *testing.T) {
		scored := []model.ScoredCase{
			{Case: &model.Case{Solutions: []model.Solution{signage}}, Score: 0.9},
		}
		gt.Array(t, model.AggregateSolutions(scored, 0)).Length(0)
	})

	t.Run("no solutions yields empty result", func(t *testing.T) {
		result := model.AggregateSolutions([]model.ScoredCase{{Case: &model.Case{}, Score: 1}}, 5)
		gt.Value(t, result).NotNil()
		gt.Array(t, result).Length(0)
	})
}

func TestRetrieveAndAggregate(t *testing.T) {
	engine := model.NewSimilarityEngine(nil)
	classifier := model.NewClassifier(nil)

	c1 := fullCase("C1")
	c2 := &model.Case{
		ID:       "C2",
		UserInfo: model.UserInfo{InteractionType: types.InteractionOperationalStaff, Scenario: types.ScenarioPlayingSports},
		Behavior: model.Indicators{types.BehaviorLitteringOnGround: 1},
		Context:  model.Indicators{types.ContextOverflowingBin: 1},
		Solutions: []model.Solution{
			{Category: types.SolutionCategorySUX, Type: "More bins"},
			{Category: types.SolutionCategoryTUX, Type: "Clear signage"},
		},
	}
	c3 := &model.Case{ID: "C3", Behavior: model.Indicators{}, Context: model.Indicators{}}
	corpus := []*model.Case{c2, c3, c1}

	query := c1.Clone()
	query.ID = types.NewCaseID

	gt.Value(t, classifier.Classify(query.Behavior)).Equal(types.LabelInappropriate)

	similar := model.Retrieve(engine, query, corpus, 3)
	gt.Array(t, similar).Length(2)
	gt.Value(t, similar[0].Case.ID).Equal(types.CaseID("C1"))
	assertScore(t, similar[0].Score, 1.0)
	gt.Value(t, similar[1].Case.ID).Equal(types.CaseID("C2"))

	// user 0, behavior 10/49, context 4/24, solutions 1/2
	expected := 0.45*10.0/49.0 + 0.30*4.0/24.0 + 0.10*0.5
	assertScore(t, similar[1].Score, expected)

	recommendations := model.AggregateSolutions(similar, 5)
	gt.Array(t, recommendations).Length(2)
	gt.Value(t, recommendations[0].Type).Equal("Clear signage")
	assertScore(t, recommendations[0].Score, 1.0+expected)
	gt.Value(t, recommendations[1].Type).Equal("More bins")
	assertScore(t, recommendations[1].Score, expected)
}
