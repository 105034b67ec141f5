package usecase_test

import (
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

func allOnes(codes []types.IndicatorCode) model.Indicators {
	x := model.Indicators{}
	for _, code := range codes {
		x[code] = 1
	}
	return x
}

func testCorpus() []*model.Case {
	return []*model.Case{
		{
			ID:       "C001",
			UserInfo: model.UserInfo{InteractionType: types.InteractionOperationalStaff, Scenario: types.ScenarioPlayingSports},
			Behavior: model.Indicators{types.BehaviorLitteringOnGround: 1},
			Context:  model.Indicators{types.ContextOverflowingBin: 1},
			Solutions: []model.Solution{
				{Category: types.SolutionCategorySUX, Type: "More bins"},
				{Category: types.SolutionCategoryTUX, Type: "Clear signage"},
			},
		},
		{
			ID:       "C002",
			UserInfo: model.UserInfo{InteractionType: types.InteractionRecreational, Scenario: types.ScenarioExploringTrails},
			Behavior: allOnes(types.AllBehaviorCodes()),
			Context:  allOnes(types.AllContextCodes()),
			Solutions: []model.Solution{
				{Category: types.SolutionCategoryTUX, Type: "Clear signage"},
			},
		},
		{
			ID:       "C003",
			Behavior: model.Indicators{},
			Context:  model.Indicators{},
		},
	}
}
