// Package report renders the end-of-run summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"zshsetup/internal/failure"
	"zshsetup/internal/styles"
)

type Status int

const (
	OK Status = iota
	Unchanged
	Skipped
	Warn
	Failed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Unchanged:
		return "unchanged"
	case Skipped:
		return "skipped"
	case Warn:
		return "warn"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// statusStyle returns the pterm style for a status cell.
func statusStyle(s Status) *pterm.Style {
	switch s {
	case OK:
		return pterm.NewStyle(pterm.FgGreen)
	case Warn:
		return pterm.NewStyle(pterm.FgYellow)
	case Failed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case Unchanged:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

type StepResult struct {
	Step   string
	Item   string
	Status Status
	Detail string
}

type Report struct {
	Title    string
	Platform string
	Manager  string
	DryRun   bool
	// Preview marks a report of planned changes rather than applied ones.
	Preview bool
	Results []StepResult
	Err     error
}

func (r *Report) Add(step, item string, status Status, detail string) {
	r.Results = append(r.Results, StepResult{
		Step:   step,
		Item:   item,
		Status: status,
		Detail: detail,
	})
}

// Count returns how many results have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

func (r *Report) Render(w io.Writer) error {
	header := r.Title
	if r.DryRun {
		header += " (dry run, nothing was changed)"
	}
	fmt.Fprintln(w, styles.BannerStyle.Render(header))

	var info []string
	if r.Platform != "" {
		info = append(info, "platform: "+r.Platform)
	}
	if r.Manager != "" {
		info = append(info, "package manager: "+r.Manager)
	}
	if len(info) > 0 {
		fmt.Fprintln(w, styles.SubtleTextStyle.Render(strings.Join(info, "  ")))
	}

	if len(r.Results) > 0 {
		data := pterm.TableData{{"Step", "Item", "Status", "Detail"}}
		for _, res := range r.Results {
			data = append(data, []string{
				res.Step,
				res.Item,
				statusStyle(res.Status).Sprint(res.Status.String()),
				res.Detail,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("could not render summary: %w", err)
		}
		fmt.Fprintln(w, table)
	}

	fmt.Fprintln(w, r.footer())
	return nil
}

func (r *Report) footer() string {
	if r.Err != nil {
		line := fmt.Sprintf("failed: %v", r.Err)
		if step := failure.StepOf(r.Err); step != "" {
			line = fmt.Sprintf("failed at step %q: %v", step, r.Err)
		}
		return styles.ErrorStyle.Render(line)
	}
	if r.Preview {
		return styles.NormalTextStyle.Render(fmt.Sprintf("%d pending, %d up to date", r.Count(OK), r.Count(Unchanged)))
	}
	summary := fmt.Sprintf("done: %d changed, %d unchanged, %d skipped", r.Count(OK), r.Count(Unchanged), r.Count(Skipped))
	if warnings := r.Count(Warn); warnings > 0 {
		return styles.WarnStyle.Render(fmt.Sprintf("%s, %d warnings (see log)", summary, warnings))
	}
	return styles.SuccessStyle.Render(summary)
}
