package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/stringutil"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
	"github.com/quentinproust/teamwork-cli/internal/timetrack"
)

var timeEntriesLastCmd = LeafCommand{
	Use:   "last",
	Short: "Show your most recent time entries",
	IntFlags: []IntFlag{
		{Name: "number", Shorthand: "n", Usage: "number of entries", Default: 10},
	},
	StrFlags: []StringFlag{
		{Name: "pdf", Usage: "also write the entries as a PDF timesheet to this file"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("number")
		pdf, _ := cmd.Flags().GetString("pdf")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runTimeEntriesLast(cmd, d, n, pdf)
	},
}.Build()

func runTimeEntriesLast(cmd *cobra.Command, d runDeps, n int, pdfPath string) error {
	if n <= 0 {
		return fmt.Errorf("--number must be positive, got %d", n)
	}
	_, client, err := d.connect(cmd.Context())
	if err != nil {
		return err
	}
	person, err := personID(cmd.Context(), client)
	if err != nil {
		return err
	}

	entries, err := client.TimeEntries(cmd.Context(), teamwork.TimeEntryQuery{PersonID: person, PageSize: n})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No time entries found."))
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		day := e.Date
		if t, err := e.Day(); err == nil {
			day = schedule.Key(t)
		}
		rows = append(rows, []string{
			day,
			entry.FormatHours(e.Duration()),
			e.ProjectName,
			e.TaskName,
			stringutil.Truncate(e.Description, 40),
		})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Date", "Hours", "Project", "Task", "Description"}, rows))

	if pdfPath == "" {
		return nil
	}
	if err := writeTimesheetPDF(timetrack.BuildExportData(entries, "Time entries"), pdfPath); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Success("timesheet written to "+pdfPath))
	return nil
}
