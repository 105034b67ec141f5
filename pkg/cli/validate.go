package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/cli/config"
	"github.com/secmon-lab/cbrecommend/pkg/usecase"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var engineCfg config.Engine
	var repoCfg config.Repository
	var skipCorpus bool

	var flags []cli.Flag
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "skip-corpus",
		Usage:       "Validate the engine configuration only",
		Sources:     cli.EnvVars("CBRECOMMEND_SKIP_CORPUS"),
		Destination: &skipCorpus,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the engine configuration and the case base",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate the engine configuration
			engine, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"config", engineCfg,
				"behavior_codes", len(engine.Similarity.Behavior),
				"context_codes", len(engine.Similarity.Context),
			)

			if skipCorpus {
				logger.Info("Corpus check skipped")
				return nil
			}

			// Step 2: Check every corpus case against the declared code sets
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo,
				usecase.WithSimilarityConfig(engine.Similarity),
				usecase.WithClassifierRules(engine.Classifier),
			)
			result, err := uc.ValidateCorpus(ctx)
			if err != nil {
				return goerr.Wrap(err, "corpus check failed")
			}

			if result.HasIssues() {
				for _, issue := range result.Issues {
					logger.Warn("Corpus issue found",
						"index", issue.Index,
						"case_id", issue.CaseID,
						"message", issue.Message,
					)
				}

				return fmt.Errorf("corpus check found %d issue(s) in %d case(s)", len(result.Issues), result.Total)
			}

			logger.Info("Corpus check passed", "cases", result.Total)
			return nil
		},
	}
}
