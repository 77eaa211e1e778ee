package cli

import (
	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/allocate"
	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/submit"
)

var timeEntriesSaveCmd = LeafCommand{
	Use:   "save",
	Short: "Spread hours over working days and log one entry per day",
	Long: "Spread hours over working days from a start date and log one time entry per day. " +
		"Weekends, --exclude dates and recorded time off are skipped.",
	Example: `  teamwork time-entries save -t 123456 -s 2019-06-24 -H 104 -d "Development" --dry-run
  teamwork time-entries save -t 123456 -s monday -H 3d4h -d "Support" --exclude 2019-07-04`,
	StrFlags: []StringFlag{
		{Name: "task", Shorthand: "t", Usage: "task id"},
		{Name: "start", Shorthand: "s", Usage: "first day, e.g. 2019-06-24, today or monday"},
		{Name: "hours", Shorthand: "H", Usage: "total hours, e.g. 104, 13d or 3h30m"},
		{Name: "description", Shorthand: "d", Usage: "description of each entry"},
		{Name: "exclude", Usage: "comma separated YYYY-MM-DD days to skip"},
	},
	BoolFlags: []BoolFlag{
		{Name: "dry-run", Shorthand: "r", Usage: "show the entries without sending them"},
		{Name: "fill", Usage: "subtract hours already logged in Teamwork from each day"},
		{Name: "stop-on-error", Usage: "skip the remaining entries after the first failure"},
		{Name: "billable", Usage: "mark entries as billable"},
	},
	Required: []string{"task", "start", "hours", "description"},
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var in saveFlags
		in.task, _ = f.GetString("task")
		in.start, _ = f.GetString("start")
		in.hours, _ = f.GetString("hours")
		in.description, _ = f.GetString("description")
		in.exclude, _ = f.GetString("exclude")
		in.dryRun, _ = f.GetBool("dry-run")
		in.fill, _ = f.GetBool("fill")
		in.stopOnError, _ = f.GetBool("stop-on-error")
		in.billable, _ = f.GetBool("billable")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runTimeEntriesSave(cmd, d, in)
	},
}.Build()

type saveFlags struct {
	task        string
	start       string
	hours       string
	description string
	exclude     string
	dryRun      bool
	fill        bool
	stopOnError bool
	billable    bool
}

func runTimeEntriesSave(cmd *cobra.Command, d runDeps, in saveFlags) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	cfg, err := d.loadConfig(ctx)
	if err != nil {
		return err
	}
	job, err := parseSaveFlags(in, cfg, d)
	if err != nil {
		return err
	}
	client, err := clientFor(cfg)
	if err != nil {
		return err
	}

	// Only a real submission or fill mode needs to know who we are.
	var person string
	if !job.DryRun || job.Fill {
		if person, err = personID(ctx, client); err != nil {
			return err
		}
	}

	rec, hist, closeJournal := d.journalHooks(ctx, w)
	defer closeJournal()

	if !job.Fill {
		warnUnchecked(ctx, w, job.Start, hist)
	}

	plan, err := buildPlan(ctx, cfg, client, person, job)
	if err != nil {
		return err
	}
	printPlan(w, plan)

	_, err = submitPlan(ctx, w, d, client, rec, plan, submit.Options{
		TaskID:      job.TaskID,
		PersonID:    person,
		Description: job.Description,
		StartTime:   cfg.Start(),
		Billable:    in.billable,
		DryRun:      job.DryRun,
		StopOnError: job.StopOnError,
	})
	return err
}

// parseSaveFlags checks every flag before anything touches the network.
func parseSaveFlags(in saveFlags, cfg *config.Config, d runDeps) (saveJob, error) {
	if in.task == "" {
		return saveJob{}, &allocate.InputError{Field: "task id", Reason: "is required"}
	}
	start, err := schedule.ParseDate(in.start, d.now())
	if err != nil {
		return saveJob{}, &allocate.InputError{Field: "start date", Reason: err.Error()}
	}
	hours, err := entry.ParseHours(in.hours, cfg.HoursPerDay)
	if err != nil {
		return saveJob{}, &allocate.InputError{Field: "total hours", Reason: err.Error()}
	}
	excluded, err := allocate.ParseDateSet(in.exclude)
	if err != nil {
		return saveJob{}, err
	}
	return saveJob{
		TaskID:      in.task,
		Description: in.description,
		Start:       start,
		Hours:       hours,
		Excluded:    excluded,
		DryRun:      in.dryRun,
		Fill:        in.fill,
		StopOnError: in.stopOnError,
	}, nil
}
