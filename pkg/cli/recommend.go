package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/cli/config"
	"github.com/secmon-lab/cbrecommend/pkg/usecase"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdRecommend() *cli.Command {
	var engineCfg config.Engine
	var repoCfg config.Repository
	var query queryInput
	var output outputOptions
	var topK, topN int
	var strict bool

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "top-k",
			Aliases:     []string{"k"},
			Usage:       "Number of similar cases to retrieve",
			Value:       usecase.DefaultTopK,
			Sources:     cli.EnvVars("CBRECOMMEND_TOP_K"),
			Destination: &topK,
		},
		&cli.IntFlag{
			Name:        "top-n",
			Aliases:     []string{"n"},
			Usage:       "Number of solutions to recommend",
			Value:       usecase.DefaultTopN,
			Sources:     cli.EnvVars("CBRECOMMEND_TOP_N"),
			Destination: &topN,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Reject queries and corpus cases with undeclared codes",
			Sources:     cli.EnvVars("CBRECOMMEND_STRICT"),
			Destination: &strict,
		},
	}
	flags = append(flags, query.Flags()...)
	flags = append(flags, output.Flags()...)
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"r"},
		Usage:   "Classify a case and recommend solutions from the most similar cases",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine configuration")
			}

			p, err := output.presenter(c)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			q, err := query.Build(ctx, c, engine.Similarity)
			if err != nil {
				return goerr.Wrap(err, "failed to read query case")
			}

			uc := usecase.New(repo,
				usecase.WithSimilarityConfig(engine.Similarity),
				usecase.WithClassifierRules(engine.Classifier),
				usecase.WithStrictValidation(strict),
			)

			result, err := uc.Recommend(ctx, q, topK, topN)
			if err != nil {
				return goerr.Wrap(err, "failed to recommend")
			}

			return p.Result(result)
		},
	}
}

func cmdClassify() *cli.Command {
	var engineCfg config.Engine
	var query queryInput
	var output outputOptions
	var strict bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Reject queries with undeclared codes",
			Sources:     cli.EnvVars("CBRECOMMEND_STRICT"),
			Destination: &strict,
		},
	}
	flags = append(flags, query.Flags()...)
	flags = append(flags, output.Flags()...)
	flags = append(flags, engineCfg.Flags()...)

	return &cli.Command{
		Name:  "classify",
		Usage: "Label the disposal behavior of a case as A, PA or IA",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine configuration")
			}

			p, err := output.presenter(c)
			if err != nil {
				return err
			}

			q, err := query.Build(ctx, c, engine.Similarity)
			if err != nil {
				return goerr.Wrap(err, "failed to read query case")
			}

			uc := usecase.New(nil,
				usecase.WithSimilarityConfig(engine.Similarity),
				usecase.WithClassifierRules(engine.Classifier),
				usecase.WithStrictValidation(strict),
			)

			label, err := uc.Classify(ctx, q)
			if err != nil {
				return goerr.Wrap(err, "failed to classify")
			}
			return p.Label(label)
		},
	}
}
