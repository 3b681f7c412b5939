// Package confirm asks the user to approve destructive actions.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"zshsetup/internal/types"
)

type Question struct {
	Title  string
	Detail string
}

type Confirmer interface {
	Confirm(ctx context.Context, q Question) (bool, error)
}

// Auto approves every question. It backs --yes.
type Auto struct{}

func (Auto) Confirm(ctx context.Context, q Question) (bool, error) {
	return true, nil
}

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

// Line reads a y/N answer from In. Anything but y or yes declines,
// including end of input. A cancelled prompt leaves In with an expired read
// deadline, so Line is meant for one prompt per process.
type Line struct {
	In  io.Reader
	Out io.Writer
}

func (l Line) Confirm(ctx context.Context, q Question) (bool, error) {
	if l.Out != nil {
		if q.Detail != "" {
			fmt.Fprintln(l.Out, q.Detail)
		}
		fmt.Fprintf(l.Out, "%s [y/N]: ", strings.TrimSpace(q.Title))
	}

	answer := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(l.In).ReadString('\n')
		if err != nil && err != io.EOF {
			errs <- err
			return
		}
		answer <- line
	}()

	select {
	case <-ctx.Done():
		// Expire the pending read so the reader goroutine returns. A reader
		// without deadlines keeps it blocked until input arrives or the
		// process exits.
		if d, ok := l.In.(readDeadliner); ok {
			_ = d.SetReadDeadline(time.Now())
		}
		return false, ctx.Err()
	case err := <-errs:
		return false, err
	case line := <-answer:
		ans := strings.TrimSpace(strings.ToLower(line))
		return ans == "y" || ans == "yes", nil
	}
}

// TUI shows the confirmation as a small bubbletea program.
type TUI struct {
	In  io.Reader
	Out io.Writer
}

func (t TUI) Confirm(ctx context.Context, q Question) (bool, error) {
	m := New(types.DefaultKeys(), q)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(t.In), tea.WithOutput(t.Out))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return final.(*Model).Accepted(), nil
}

// Choose returns Auto for yes, the TUI on a terminal and Line otherwise.
func Choose(yes bool, in *os.File, out *os.File) Confirmer {
	if yes {
		return Auto{}
	}
	if isTerminal(in) && isTerminal(out) {
		return TUI{In: in, Out: out}
	}
	return Line{In: in, Out: out}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
