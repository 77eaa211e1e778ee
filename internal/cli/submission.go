package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/allocate"
	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/submit"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
	"github.com/quentinproust/teamwork-cli/internal/timetrack"
)

// fillPageSize is the number of remote entries read per request in fill mode.
const fillPageSize = 500

// saveJob is one bulk save, from the command line or the interactive shell.
type saveJob struct {
	TaskID      string
	Description string
	Start       time.Time
	Hours       decimal.Decimal
	Excluded    allocate.DateSet
	DryRun      bool
	Fill        bool
	StopOnError bool
}

// buildPlan allocates job over the configured calendar. Recorded time off
// is excluded or booked. In fill mode hours already logged remotely from
// the start date onward are booked too.
func buildPlan(ctx context.Context, cfg *config.Config, client *teamwork.Client, personID string, job saveJob) (allocate.Plan, error) {
	excluded := make(allocate.DateSet)
	for k := range job.Excluded {
		excluded[k] = struct{}{}
	}
	full, booked := cfg.Absences(cfg.HoursPerDay)
	for _, d := range full {
		excluded.Add(d)
	}

	if job.Fill {
		entries, err := client.AllTimeEntries(ctx, teamwork.TimeEntryQuery{
			PersonID: personID,
			PageSize: fillPageSize,
			From:     job.Start,
		})
		if err != nil {
			return allocate.Plan{}, fmt.Errorf("read logged hours: %w", err)
		}
		for k, h := range timetrack.LoggedByDay(entries) {
			booked[k] = booked[k].Add(h)
		}
	}

	return allocate.Allocate(allocate.Request{
		Start:       job.Start,
		TotalHours:  job.Hours,
		HoursPerDay: cfg.HoursPerDay,
		Excluded:    excluded,
		Workdays:    cfg.Workdays,
		Booked:      booked,
	})
}

// warnUnchecked reminds that entries are created from the start date
// without looking at what is already logged. Hours this machine already
// submitted in that range are named when the journal knows them.
func warnUnchecked(ctx context.Context, w io.Writer, start time.Time, j submittedHours) {
	_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf(
		"entries start on %s without checking hours already logged; use --fill to skip logged time",
		schedule.Key(start))))
	if j == nil {
		return
	}
	byDay, err := j.SubmittedHours(ctx, start)
	if err != nil || len(byDay) == 0 {
		return
	}
	total := decimal.Zero
	for _, h := range byDay {
		total = total.Add(h)
	}
	_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf(
		"the journal already holds %s submitted on %d day(s) from %s",
		entry.FormatHours(total), len(byDay), schedule.Key(start))))
}

type submittedHours interface {
	SubmittedHours(ctx context.Context, from time.Time) (map[string]decimal.Decimal, error)
}

// printPlan shows the planned entries and their total.
func printPlan(w io.Writer, plan allocate.Plan) {
	rows := make([][]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		rows = append(rows, []string{e.Key(), e.Date.Weekday().String()[:3], entry.FormatHours(e.Hours)})
	}
	_, _ = fmt.Fprintln(w, renderTable([]string{"Date", "Day", "Hours"}, rows))

	first, last := plan.Span()
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("%s over %d day(s), %s to %s",
		Primary(entry.FormatHours(plan.Total())), len(plan.Entries), schedule.Key(first), schedule.Key(last))))
}

// submitPlan sends plan with progress output and journaling, then prints
// a summary. The error is the abort cause, or the joined entry failures.
func submitPlan(ctx context.Context, w io.Writer, d runDeps, api submit.Creator, rec submit.Recorder, plan allocate.Plan, opts submit.Options) (submit.Report, error) {
	hooks := submit.Hooks{Recorder: rec, Now: d.now}

	report, err := runWithProgress(ctx, w, d.isTTY, len(plan.Entries), func(ctx context.Context, observe func(n, total int, r submit.Result)) (submit.Report, error) {
		hooks.Observe = observe
		return submit.Submit(ctx, api, plan, opts, hooks)
	})
	printSummary(w, report)
	if err != nil {
		return report, err
	}
	return report, report.Err()
}

func printSummary(w io.Writer, r submit.Report) {
	if r.DryRun {
		_, _ = fmt.Fprintf(w, "%s\n", Info(fmt.Sprintf("dry run: %d entr%s computed, nothing sent (batch %s)",
			len(r.Results), plural(len(r.Results), "y", "ies"), r.BatchID)))
		return
	}

	line := fmt.Sprintf("%d submitted", r.Submitted())
	if n := r.Failed(); n > 0 {
		line += fmt.Sprintf(", %d failed", n)
	}
	if n := r.Skipped(); n > 0 {
		line += fmt.Sprintf(", %d skipped", n)
	}
	line += fmt.Sprintf(" (batch %s)", r.BatchID)

	if r.Failed() > 0 || r.Skipped() > 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Warning(line))
		for _, se := range r.Failures() {
			_, _ = fmt.Fprintf(w, "  %s\n", Error(se.Error()))
		}
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n", Success(line))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
