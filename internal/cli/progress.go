package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/submit"
)

const progressWidth = 30

type runFunc func(ctx context.Context, observe func(n, total int, r submit.Result)) (submit.Report, error)

type resultMsg struct {
	n   int
	res submit.Result
}

type doneMsg struct {
	report submit.Report
	err    error
}

type progressModel struct {
	total    int
	done     int
	results  []submit.Result
	finished bool
	stopping bool
	cancel   context.CancelFunc
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.stopping = true
			m.cancel()
		}
	case resultMsg:
		m.done = msg.n
		m.results = append(m.results, msg.res)
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	for _, r := range m.results {
		b.WriteString(resultLine(r))
		b.WriteString("\n")
	}
	if m.finished {
		return b.String()
	}

	filled := 0
	if m.total > 0 {
		filled = m.done * progressWidth / m.total
	}
	bar := Primary(strings.Repeat("█", filled)) + Silent(strings.Repeat("░", progressWidth-filled))
	b.WriteString(fmt.Sprintf("%s %d/%d", bar, m.done, m.total))
	if m.stopping {
		b.WriteString(" " + Warning("stopping after the current request..."))
	} else {
		b.WriteString(" " + Silent("ctrl+c to stop"))
	}
	b.WriteString("\n")
	return b.String()
}

// runWithProgress runs fn, showing each result as it arrives. On a
// terminal the view is a bubbletea program that cancels fn on ctrl+c;
// otherwise results are printed one line each.
func runWithProgress(ctx context.Context, w io.Writer, tty bool, total int, fn runFunc) (submit.Report, error) {
	if !tty {
		return fn(ctx, func(n, total int, r submit.Result) {
			_, _ = fmt.Fprintln(w, resultLine(r))
		})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(progressModel{total: total, cancel: cancel}, tea.WithOutput(w))
	out := make(chan doneMsg, 1)
	go func() {
		report, err := fn(ctx, func(n, total int, r submit.Result) {
			p.Send(resultMsg{n: n, res: r})
		})
		msg := doneMsg{report: report, err: err}
		out <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
	}
	res := <-out
	return res.report, res.err
}

func resultLine(r submit.Result) string {
	hours := entry.FormatHours(r.Entry.Hours)
	switch r.Status {
	case submit.StatusSubmitted:
		return fmt.Sprintf("%s %s %s %s", Success("✓"), r.Entry.Key(), hours, Silent("#"+r.RemoteID))
	case submit.StatusFailed:
		return fmt.Sprintf("%s %s %s %s", Error("✗"), r.Entry.Key(), hours, Error(errText(r.Err)))
	case submit.StatusSkipped:
		return fmt.Sprintf("%s %s %s %s", Silent("-"), r.Entry.Key(), hours, Silent("skipped"))
	default:
		return fmt.Sprintf("%s %s %s %s", Info("·"), r.Entry.Key(), hours, Silent("dry run"))
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	var se *submit.SubmissionError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}
