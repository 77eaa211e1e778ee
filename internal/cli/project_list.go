package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectListCmd = LeafCommand{
	Use:   "list",
	Short: "List the projects you can log time on",
	StrFlags: []StringFlag{
		{Name: "search", Shorthand: "s", Usage: "only projects whose name matches"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runProjectList(cmd, d, search)
	},
}.Build()

func runProjectList(cmd *cobra.Command, d runDeps, search string) error {
	cfg, client, err := d.connect(cmd.Context())
	if err != nil {
		return err
	}

	projects, err := client.Projects(cmd.Context(), search)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No projects found."))
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID.String(), p.Name, cfg.AliasFor(p.ID.String())})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Project", "Alias"}, rows))
	return nil
}
