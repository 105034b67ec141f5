package intake

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model/config"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// Prompter collects a query case interactively, one question per line
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	cfg *config.SimilarityConfig
}

// NewPrompter creates a prompter. Indicator questions follow the order of the
// weight tables in cfg; nil means the default tables.
func NewPrompter(in io.Reader, out io.Writer, cfg *config.SimilarityConfig) *Prompter {
	if cfg == nil {
		cfg = config.DefaultSimilarityConfig()
	}
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
		cfg: cfg,
	}
}

type choice struct {
	code string
	desc string
}

// Prompt asks for user information, then for every behavior and context code
func (p *Prompter) Prompt(ctx context.Context) (*model.Case, error) {
	p.printf("=== New Case Input ===\n")

	interactionChoices := make([]choice, 0)
	for _, t := range types.AllInteractionTypes() {
		interactionChoices = append(interactionChoices, choice{code: t.String(), desc: t.Description()})
	}
	interaction, err := p.askChoice(ctx, "Select User Interaction Type:", interactionChoices)
	if err != nil {
		return nil, err
	}

	scenarioChoices := make([]choice, 0)
	for _, s := range types.AllScenarios() {
		scenarioChoices = append(scenarioChoices, choice{code: s.String(), desc: s.Description()})
	}
	scenario, err := p.askChoice(ctx, "Select Scenario:", scenarioChoices)
	if err != nil {
		return nil, err
	}

	p.printf("\n=== Disposal Behavior (y/n) ===\n")
	behavior, err := p.askIndicators(ctx, p.cfg.Behavior.Codes())
	if err != nil {
		return nil, err
	}

	p.printf("\n=== Context (y/n) ===\n")
	factors, err := p.askIndicators(ctx, p.cfg.Context.Codes())
	if err != nil {
		return nil, err
	}

	user := model.UserInfo{
		InteractionType: types.InteractionType(interaction),
		Scenario:        types.Scenario(scenario),
	}
	return model.NewQueryCase(user, behavior, factors), nil
}

func (p *Prompter) askChoice(ctx context.Context, prompt string, choices []choice) (string, error) {
	p.printf("%s\n", prompt)
	for _, c := range choices {
		p.printf("  %s: %s\n", c.code, c.desc)
	}

	for {
		p.printf("Enter code: ")
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		value := strings.ToUpper(strings.TrimSpace(line))
		for _, c := range choices {
			if c.code == value {
				return value, nil
			}
		}
		p.printf("Invalid code, try again.\n")
	}
}

func (p *Prompter) askIndicators(ctx context.Context, codes []types.IndicatorCode) (model.Indicators, error) {
	x := model.Indicators{}
	for _, code := range codes {
		label := code.String()
		if desc := code.Description(); desc != "" {
			label = fmt.Sprintf("%s (%s)", desc, code)
		}
		p.printf("%s (y/n, default n): ", label)

		line, err := p.readLine(ctx)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
			x[code] = 1
		} else {
			x[code] = 0
		}
	}
	return x, nil
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", goerr.Wrap(err, "input canceled")
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", goerr.Wrap(err, "failed to read input")
		}
		return "", goerr.Wrap(ErrInvalidInput, "input ended before the case was complete")
	}
	return p.in.Text(), nil
}

func (p *Prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
