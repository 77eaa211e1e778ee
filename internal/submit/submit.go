// Package submit sends an allocation plan to Teamwork, one entry at a time.
package submit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/quentinproust/teamwork-cli/internal/allocate"
	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/hashutil"
	"github.com/quentinproust/teamwork-cli/internal/logger"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

// Status is the outcome of one entry.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusDryRun    Status = "dry-run"
)

// Options control a submission run.
type Options struct {
	TaskID      string
	PersonID    string
	Description string
	StartTime   schedule.TimeOfDay
	Billable    bool

	// DryRun reports the plan without any network call.
	DryRun bool

	// StopOnError skips the remaining entries after the first failure.
	StopOnError bool
}

// SubmissionError is the failure of a single entry.
type SubmissionError struct {
	Entry entry.TimeEntry
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %s (%s): %v", e.Entry.Key(), entry.FormatHours(e.Entry.Hours), e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Result is what happened to one planned entry.
type Result struct {
	Entry    entry.TimeEntry
	Status   Status
	RemoteID string
	Err      error
}

// Creator creates time entries remotely. *teamwork.Client implements it.
type Creator interface {
	CreateTimeEntry(ctx context.Context, taskID string, in teamwork.TimeEntryInput) (teamwork.Created, error)
}

// Recorder persists results. A recorder error is logged, never fatal.
type Recorder interface {
	Record(ctx context.Context, batchID, taskID string, dryRun bool, r Result) error
}

// Hooks are optional callbacks of a run.
type Hooks struct {
	// Observe is called after each entry with its 1-based position.
	Observe  func(n, total int, r Result)
	Recorder Recorder
	Now      func() time.Time
}

// Report collects the results of a run in plan order.
type Report struct {
	BatchID string
	DryRun  bool
	Results []Result
}

func (r Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

func (r Report) Submitted() int { return r.count(StatusSubmitted) }
func (r Report) Failed() int    { return r.count(StatusFailed) }
func (r Report) Skipped() int   { return r.count(StatusSkipped) }

// Failures returns the error of each failed entry.
func (r Report) Failures() []*SubmissionError {
	var out []*SubmissionError
	for _, res := range r.Results {
		var se *SubmissionError
		if res.Status == StatusFailed && errors.As(res.Err, &se) {
			out = append(out, se)
		}
	}
	return out
}

// Err joins all entry failures, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, se := range r.Failures() {
		errs = append(errs, se)
	}
	return errors.Join(errs...)
}

// Submit issues one create request per entry of plan, in order, each
// awaited before the next. Earlier successes are never rolled back.
//
// The returned error is set only when the run was aborted: rejected
// credentials (*teamwork.AuthError) or a cancelled context. Per-entry
// failures are in the report.
func Submit(ctx context.Context, api Creator, plan allocate.Plan, opts Options, hooks Hooks) (Report, error) {
	if err := validate(opts); err != nil {
		return Report{}, err
	}
	if hooks.Now == nil {
		hooks.Now = time.Now
	}

	log := logger.Get()
	report := Report{
		BatchID: hashutil.BatchID(opts.TaskID, hooks.Now()),
		DryRun:  opts.DryRun,
		Results: make([]Result, 0, len(plan.Entries)),
	}
	total := len(plan.Entries)

	emit := func(res Result) {
		report.Results = append(report.Results, res)
		if hooks.Recorder != nil {
			if err := hooks.Recorder.Record(ctx, report.BatchID, opts.TaskID, opts.DryRun, res); err != nil {
				log.Warn().Err(err).Str("date", res.Entry.Key()).Msg("journal write failed")
			}
		}
		if hooks.Observe != nil {
			hooks.Observe(len(report.Results), total, res)
		}
	}
	skipRest := func(from int) {
		for _, e := range plan.Entries[from:] {
			emit(Result{Entry: e, Status: StatusSkipped})
		}
	}

	for i, e := range plan.Entries {
		if opts.DryRun {
			emit(Result{Entry: e, Status: StatusDryRun})
			continue
		}

		if err := ctx.Err(); err != nil {
			skipRest(i)
			return report, err
		}

		created, err := api.CreateTimeEntry(ctx, opts.TaskID, input(e, opts))
		if err == nil {
			log.Info().Str("date", e.Key()).Str("id", created.ID.String()).Msg("time entry created")
			emit(Result{Entry: e, Status: StatusSubmitted, RemoteID: created.ID.String()})
			continue
		}

		log.Warn().Err(err).Str("date", e.Key()).Msg("time entry failed")
		emit(Result{Entry: e, Status: StatusFailed, Err: &SubmissionError{Entry: e, Err: err}})

		var authErr *teamwork.AuthError
		switch {
		case errors.As(err, &authErr):
			skipRest(i + 1)
			return report, err
		case ctx.Err() != nil:
			skipRest(i + 1)
			return report, ctx.Err()
		case opts.StopOnError:
			skipRest(i + 1)
			return report, nil
		}
	}

	return report, nil
}

func validate(opts Options) error {
	if opts.TaskID == "" {
		return &allocate.InputError{Field: "task id", Reason: "is required"}
	}
	if opts.PersonID == "" && !opts.DryRun {
		return &allocate.InputError{Field: "person id", Reason: "is required"}
	}
	return nil
}

func input(e entry.TimeEntry, opts Options) teamwork.TimeEntryInput {
	h, m := e.Split()
	billable := "0"
	if opts.Billable {
		billable = "1"
	}
	return teamwork.TimeEntryInput{
		Description: opts.Description,
		PersonID:    opts.PersonID,
		Date:        e.Date.Format("20060102"),
		Time:        opts.StartTime.String(),
		Hours:       strconv.Itoa(h),
		Minutes:     strconv.Itoa(m),
		IsBillable:  billable,
	}
}
