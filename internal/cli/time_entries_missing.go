package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
	"github.com/quentinproust/teamwork-cli/internal/timetrack"
)

// missingPageSize is the number of remote entries read per request.
const missingPageSize = 500

var timeEntriesMissingCmd = LeafCommand{
	Use:     "missing",
	Short:   "Show working days that are not fully logged",
	Example: `  teamwork time-entries missing -s 2019-06-01
  teamwork time-entries missing -s monday -i`,
	BoolFlags: []BoolFlag{
		{Name: "included", Shorthand: "i", Usage: "include today in the report"},
	},
	StrFlags: []StringFlag{
		{Name: "since", Shorthand: "s", Usage: "first day to check"},
	},
	Required: []string{"since"},
	RunE: func(cmd *cobra.Command, args []string) error {
		since, _ := cmd.Flags().GetString("since")
		included, _ := cmd.Flags().GetBool("included")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runTimeEntriesMissing(cmd, d, since, included)
	},
}.Build()

func runTimeEntriesMissing(cmd *cobra.Command, d runDeps, sinceFlag string, includeToday bool) error {
	now := d.now()
	since, err := schedule.ParseDate(sinceFlag, now)
	if err != nil {
		return err
	}

	cfg, client, err := d.connect(cmd.Context())
	if err != nil {
		return err
	}
	cal, err := schedule.NewCalendar(cfg.Workdays, since)
	if err != nil {
		return err
	}
	person, err := personID(cmd.Context(), client)
	if err != nil {
		return err
	}
	entries, err := client.AllTimeEntries(cmd.Context(), teamwork.TimeEntryQuery{
		PersonID: person,
		PageSize: missingPageSize,
		From:     since,
	})
	if err != nil {
		return err
	}

	report := timetrack.BuildMissingReport(entries, cfg.TimesOff, cal, cfg.HoursPerDay, since, now, includeToday)
	w := cmd.OutOrStdout()
	if len(report.Gaps) == 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Success(fmt.Sprintf("all %d working day(s) since %s are fully logged",
			report.WorkingDays, schedule.Key(since))))
		return nil
	}

	rows := make([][]string, 0, len(report.Gaps))
	for _, g := range report.Gaps {
		rows = append(rows, []string{
			schedule.Key(g.Date),
			g.Date.Weekday().String()[:3],
			entry.FormatHours(g.Logged),
			entry.FormatHours(g.TimeOff),
			entry.FormatHours(g.Missing),
		})
	}
	_, _ = fmt.Fprintln(w, renderTable([]string{"Date", "Day", "Logged", "Time off", "Missing"}, rows))
	_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf("%s missing on %d of %d working day(s)",
		entry.FormatHours(report.Total), len(report.Gaps), report.WorkingDays)))
	if first, ok := report.FirstGap(); ok {
		_, _ = fmt.Fprintf(w, "%s\n", Silent(fmt.Sprintf("next save can start on %s", schedule.Key(first))))
	}
	return nil
}
