package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

var projectTasksCmd = LeafCommand{
	Use:     "tasks <project id|alias>",
	Short:   "List the open tasks of a project",
	Example: "  teamwork project tasks website",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runProjectTasks(cmd, d, args[0])
	},
}.Build()

func runProjectTasks(cmd *cobra.Command, d runDeps, ref string) error {
	cfg, client, err := d.connect(cmd.Context())
	if err != nil {
		return err
	}
	projectID := cfg.ResolveProject(ref)

	lists, err := client.TaskLists(cmd.Context(), projectID)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, l := range lists {
		tasks, err := client.Tasks(cmd.Context(), l.ID.String())
		if err != nil {
			return fmt.Errorf("task list %s: %w", l.Name, err)
		}
		for _, t := range teamwork.Flatten(tasks) {
			rows = append(rows, []string{t.ID.String(), l.Name, indentTask(t)})
		}
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No open tasks found."))
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Task list", "Task"}, rows))
	return nil
}

// indentTask prefixes sub tasks so the hierarchy stays readable.
func indentTask(t teamwork.FlatTask) string {
	if t.Depth == 0 {
		return t.Name
	}
	return strings.Repeat("  ", t.Depth-1) + "└─ " + t.Name
}
