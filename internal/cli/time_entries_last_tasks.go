package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// recentTaskEntries is how many recent entries are scanned for tasks.
const recentTaskEntries = 50

var timeEntriesLastTasksCmd = LeafCommand{
	Use:   "last-tasks",
	Short: "List the tasks you logged time on recently",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runTimeEntriesLastTasks(cmd, d)
	},
}.Build()

func runTimeEntriesLastTasks(cmd *cobra.Command, d runDeps) error {
	_, client, err := d.connect(cmd.Context())
	if err != nil {
		return err
	}
	person, err := personID(cmd.Context(), client)
	if err != nil {
		return err
	}

	tasks, err := client.RecentTasks(cmd.Context(), person, recentTaskEntries)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No recent tasks found."))
		return nil
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.ID.String(), t.Name})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Task"}, rows))
	return nil
}
