package cli

import (
	"context"
	"io"

	"github.com/secmon-lab/cbrecommend/pkg/cli/config"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type runOptions struct {
	reader io.Reader
	writer io.Writer
}

// Option customizes Run
type Option func(*runOptions)

// WithReader replaces stdin for interactive and piped input
func WithReader(r io.Reader) Option {
	return func(o *runOptions) {
		o.reader = r
	}
}

// WithWriter replaces stdout for command output
func WithWriter(w io.Writer) Option {
	return func(o *runOptions) {
		o.writer = w
	}
}

func Run(ctx context.Context, args []string, version string, opts ...Option) error {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "cbrecommend",
		Usage:   "Case-based recommender of UX interventions for waste disposal behavior",
		Version: version,
		Flags:   flags,
		Reader:  o.reader,
		Writer:  o.writer,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Info("Starting cbrecommend", "logger", loggerCfg, "sentry", sentryCfg.Enabled())
			return logging.With(ctx, logging.Default()), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdRecommend(),
			cmdClassify(),
			cmdValidate(),
			cmdImport(),
			cmdServe(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
