package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cbrecommend/pkg/cli/config"
	domainConfig "github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadEngineConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, cfg *config.EngineConfig)
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			check: func(t *testing.T, cfg *config.EngineConfig) {
				gt.Value(t, cfg.Similarity).Equal(domainConfig.DefaultSimilarityConfig())
				gt.Value(t, cfg.Classifier).Equal(domainConfig.DefaultClassifierRules())
			},
		},
		{
			name: "groups override",
			content: `
[groups]
user_info = 0.25
behavior = 0.25
context = 0.25
solutions = 0.25
`,
			check: func(t *testing.T, cfg *config.EngineConfig) {
				gt.Value(t, cfg.Similarity.Groups).Equal(domainConfig.GroupWeights{
					UserInfo: 0.25, Behavior: 0.25, Context: 0.25, Solutions: 0.25,
				})
				gt.Array(t, cfg.Similarity.Behavior).Length(8)
			},
		},
		{
			name: "weight tables and classifier",
			content: `
[user_info]
interaction_type = 1.0
scenario = 0.0

[[behavior]]
code = "PO-PD"
weight = 1.0

[[behavior]]
code = "NG-LOG"
weight = 2.0

[[context]]
code = "EF-OTB"
weight = 1.5

[classifier]
proper = ["PO-PD"]
negative = ["NG-LOG"]
`,
			check: func(t *testing.T, cfg *config.EngineConfig) {
				gt.Value(t, cfg.Similarity.UserInfo.InteractionType).Equal(1.0)
				gt.Value(t, cfg.Similarity.Behavior.Codes()).Equal([]types.IndicatorCode{"PO-PD", "NG-LOG"})
				gt.Value(t, cfg.Similarity.Context.Codes()).Equal([]types.IndicatorCode{"EF-OTB"})
				gt.Array(t, cfg.Classifier.Neutral).Length(0)
				gt.Value(t, cfg.Classifier.Negative).Equal([]types.IndicatorCode{"NG-LOG"})
			},
		},
		{
			name: "groups not summing to one",
			content: `
[groups]
behavior = 0.5
`,
			wantErr: domainConfig.ErrWeightSum,
		},
		{
			name: "duplicate behavior code",
			content: `
[[behavior]]
code = "PO-PD"
weight = 1.0

[[behavior]]
code = "PO-PD"
weight = 2.0
`,
			wantErr: domainConfig.ErrDuplicateCode,
		},
		{
			name: "classifier code not declared as behavior",
			content: `
[[behavior]]
code = "PO-PD"
weight = 1.0

[classifier]
proper = ["PO-PD", "PO-RC"]
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "unknown key",
			content: `
[groups]
user_info = 0.15
behaviour = 0.45
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "malformed TOML",
			content: "[groups\n",
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadEngineConfig(writeFile(t, tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadEngineConfig_NotFound(t *testing.T) {
	_, err := config.LoadEngineConfig(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestEngine_Configure(t *testing.T) {
	t.Run("defaults without path", func(t *testing.T) {
		cfg, err := config.NewEngineForTest("").Configure()
		gt.NoError(t, err)
		gt.Value(t, cfg.Similarity).Equal(domainConfig.DefaultSimilarityConfig())
	})

	t.Run("loads file", func(t *testing.T) {
		path := writeFile(t, "[user_info]\ninteraction_type = 0.2\nscenario = 0.8\n")
		cfg, err := config.NewEngineForTest(path).Configure()
		gt.NoError(t, err)
		gt.Value(t, cfg.Similarity.UserInfo.Scenario).Equal(0.8)
	})
}

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest("memory", "").Configure(ctx)
		gt.NoError(t, err)
		defer func() { gt.NoError(t, repo.Close()) }()
		gt.Value(t, repo.Case()).NotNil()
	})

	t.Run("file backend", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "case_base.json")
		repo, err := config.NewRepositoryForTest("file", path).Configure(ctx)
		gt.NoError(t, err)
		defer func() { gt.NoError(t, repo.Close()) }()
		gt.Value(t, repo.Case()).NotNil()
	})

	t.Run("file backend without path", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("file", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("firestore backend without project", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("firestore", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("gcs backend without bucket", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("gcs", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("redis", "").Configure(ctx)
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}

func TestRepository_FlagNames(t *testing.T) {
	var src config.Repository
	gt.Array(t, src.FlagNames()).Has("repository-backend")
	gt.Array(t, src.FlagNames()).Has("case-path")

	dst := config.NewDestinationRepository()
	gt.Array(t, dst.FlagNames()).Has("dest-repository-backend")
	gt.Array(t, dst.FlagNames()).Has("dest-gcs-bucket")
}
