package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/cli/config"
	"github.com/secmon-lab/cbrecommend/pkg/usecase"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var engineCfg config.Engine
	var srcCfg config.Repository
	dstCfg := config.NewDestinationRepository()
	var force bool

	var flags []cli.Flag
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, srcCfg.Flags()...)
	flags = append(flags, dstCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "force",
		Usage:       "Write the corpus even if some cases are invalid",
		Sources:     cli.EnvVars("CBRECOMMEND_FORCE"),
		Destination: &force,
	})

	return &cli.Command{
		Name:  "import",
		Usage: "Copy the case base from one backend to another, replacing the destination",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine configuration")
			}

			src, err := srcCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize source repository")
			}
			defer func() {
				if err := src.Close(); err != nil {
					logging.Default().Error("failed to close source repository", "error", err.Error())
				}
			}()

			dst, err := dstCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize destination repository")
			}
			defer func() {
				if err := dst.Close(); err != nil {
					logging.Default().Error("failed to close destination repository", "error", err.Error())
				}
			}()

			uc := usecase.New(src,
				usecase.WithSimilarityConfig(engine.Similarity),
				usecase.WithClassifierRules(engine.Classifier),
				usecase.WithStrictValidation(!force),
			)

			n, err := uc.ImportCorpus(ctx, dst.Case())
			if err != nil {
				return goerr.Wrap(err, "failed to import corpus",
					goerr.V("source", srcCfg), goerr.V("destination", dstCfg))
			}

			logging.Default().Info("Import completed",
				"cases", n,
				"source", srcCfg,
				"destination", dstCfg,
			)
			return nil
		},
	}
}
