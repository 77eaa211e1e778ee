package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/journal"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/stringutil"
)

var timeEntriesJournalCmd = LeafCommand{
	Use:   "journal",
	Short: "Show entries recently sent from this machine",
	IntFlags: []IntFlag{
		{Name: "number", Shorthand: "n", Usage: "number of records", Default: 20},
	},
	StrFlags: []StringFlag{
		{Name: "batch", Shorthand: "b", Usage: "only the records of one batch"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("number")
		batch, _ := cmd.Flags().GetString("batch")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runTimeEntriesJournal(cmd, d.homeDir, n, batch)
	},
}.Build()

func runTimeEntriesJournal(cmd *cobra.Command, homeDir string, n int, batch string) error {
	j, err := journal.Open(cmd.Context(), journal.Path(homeDir))
	if err != nil {
		return err
	}
	defer j.Close()

	var records []journal.Record
	if batch != "" {
		records, err = j.Batch(cmd.Context(), batch)
	} else {
		records, err = j.Recent(cmd.Context(), n)
	}
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No submissions recorded."))
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		status := string(r.Status)
		if r.DryRun {
			status += " (dry run)"
		}
		rows = append(rows, []string{
			r.BatchID,
			r.TaskID,
			schedule.Key(r.Date),
			entry.FormatHours(r.Hours),
			status,
			r.RemoteID,
			stringutil.Truncate(r.Error, 40),
		})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Batch", "Task", "Date", "Hours", "Status", "Remote ID", "Error"}, rows))
	return nil
}
