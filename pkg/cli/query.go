package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/service/intake"
	"github.com/secmon-lab/cbrecommend/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// queryInput collects the query case from flags, a JSON document or an interactive prompt
type queryInput struct {
	params      intake.Params
	input       string
	interactive bool
}

func (q *queryInput) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "interaction-type",
			Aliases:     []string{"t"},
			Usage:       "User interaction type (RU, SIU, EP, CEU, OS, SS)",
			Category:    "Query",
			Sources:     cli.EnvVars("CBRECOMMEND_INTERACTION_TYPE"),
			Destination: &q.params.InteractionType,
		},
		&cli.StringFlag{
			Name:        "scenario",
			Aliases:     []string{"s"},
			Usage:       "Scenario (ET, EP, EIP, PS, AE, ON, RS)",
			Category:    "Query",
			Sources:     cli.EnvVars("CBRECOMMEND_SCENARIO"),
			Destination: &q.params.Scenario,
		},
		&cli.StringSliceFlag{
			Name:        "behavior",
			Aliases:     []string{"b"},
			Usage:       "Observed disposal behavior as CODE or CODE=N, repeatable or comma separated",
			Category:    "Query",
			Sources:     cli.EnvVars("CBRECOMMEND_BEHAVIOR"),
			Destination: &q.params.Behavior,
		},
		&cli.StringSliceFlag{
			Name:        "context",
			Aliases:     []string{"x"},
			Usage:       "Observed context factor as CODE or CODE=N, repeatable or comma separated",
			Category:    "Query",
			Sources:     cli.EnvVars("CBRECOMMEND_CONTEXT"),
			Destination: &q.params.Context,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Read the query case as JSON from a file, or '-' for stdin",
			Category:    "Query",
			Sources:     cli.EnvVars("CBRECOMMEND_INPUT"),
			Destination: &q.input,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Usage:       "Ask for the query case on the terminal",
			Category:    "Query",
			Destination: &q.interactive,
		},
	}
}

// Build returns the query case. --input wins over --interactive, which wins over
// the individual query flags.
func (q *queryInput) Build(ctx context.Context, c *cli.Command, sim *config.SimilarityConfig) (*model.Case, error) {
	switch {
	case q.input == "-":
		return intake.FromJSON(c.Root().Reader)

	case q.input != "":
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.Open(q.input)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open query file", goerr.V("path", q.input))
		}
		defer safe.Close(ctx, f)
		return intake.FromJSON(f)

	case q.interactive:
		return intake.NewPrompter(c.Root().Reader, c.Root().Writer, sim).Prompt(ctx)

	default:
		return intake.FromParams(q.params)
	}
}

// outputOptions selects how results are rendered
type outputOptions struct {
	format  string
	noColor bool
}

func (o *outputOptions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (text or json)",
			Value:       "text",
			Sources:     cli.EnvVars("CBRECOMMEND_FORMAT"),
			Destination: &o.format,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("CBRECOMMEND_NO_COLOR"),
			Destination: &o.noColor,
		},
	}
}

func (o *outputOptions) presenter(c *cli.Command) (presenter, error) {
	return newPresenter(o.format, c.Root().Writer, o.noColor)
}
