package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
)

// presenter renders command results
type presenter interface {
	Label(label types.Label) error
	Result(result *model.RecommendResult) error
}

func newPresenter(format string, w io.Writer, noColor bool) (presenter, error) {
	switch format {
	case "text", "":
		return newTextPresenter(w, noColor), nil
	case "json":
		return &jsonPresenter{w: w}, nil
	default:
		return nil, goerr.New("unknown output format", goerr.V("format", format))
	}
}

type textPresenter struct {
	w       io.Writer
	heading *color.Color
	label   map[types.Label]*color.Color
	score   *color.Color
	muted   *color.Color
}

func newTextPresenter(w io.Writer, noColor bool) *textPresenter {
	p := &textPresenter{
		w:       w,
		heading: color.New(color.Bold),
		label: map[types.Label]*color.Color{
			types.LabelAppropriate:          color.New(color.FgGreen, color.Bold),
			types.LabelPartiallyAppropriate: color.New(color.FgYellow, color.Bold),
			types.LabelInappropriate:        color.New(color.FgRed, color.Bold),
		},
		score: color.New(color.FgCyan),
		muted: color.New(color.Faint),
	}
	if noColor {
		p.heading.DisableColor()
		p.score.DisableColor()
		p.muted.DisableColor()
		for _, c := range p.label {
			c.DisableColor()
		}
	}
	return p
}

func (p *textPresenter) labelColor(label types.Label) *color.Color {
	if c, ok := p.label[label]; ok {
		return c
	}
	return p.heading
}

func (p *textPresenter) Label(label types.Label) error {
	_, err := fmt.Fprintf(p.w, "Evaluation Outcome (A/PA/IA): %s (%s)\n",
		p.labelColor(label).Sprint(label), label.Description())
	return err
}

func (p *textPresenter) Result(result *model.RecommendResult) error {
	if err := p.Label(result.Label); err != nil {
		return err
	}

	if len(result.Similar) == 0 {
		_, err := p.muted.Fprintln(p.w, "\nNo similar cases found.")
		return err
	}

	if _, err := p.heading.Fprintln(p.w, "\nTop similar cases:"); err != nil {
		return err
	}
	for _, sc := range result.Similar {
		if _, err := fmt.Fprintf(p.w, "  Case %s  similarity=%s\n",
			sc.Case.ID, p.score.Sprintf("%.3f", sc.Score)); err != nil {
			return err
		}
	}

	if len(result.Recommendations) == 0 {
		_, err := p.muted.Fprintln(p.w, "\nNo solutions found in similar cases.")
		return err
	}

	if _, err := p.heading.Fprintln(p.w, "\nRecommended UX Solutions (TUX / SUX / BUX):"); err != nil {
		return err
	}
	for i, rec := range result.Recommendations {
		if _, err := fmt.Fprintf(p.w, "%d. %s - %s  (score=%s)\n",
			i+1, rec.Category, rec.Type, p.score.Sprintf("%.3f", rec.Score)); err != nil {
			return err
		}
	}
	return nil
}

type jsonPresenter struct {
	w io.Writer
}

func (p *jsonPresenter) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}

func (p *jsonPresenter) Label(label types.Label) error {
	return p.encode(map[string]string{"Label": string(label)})
}

func (p *jsonPresenter) Result(result *model.RecommendResult) error {
	return p.encode(result)
}
