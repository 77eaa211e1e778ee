package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
)

var projectAliasCmd = LeafCommand{
	Use:     "alias",
	Short:   "Give a project a short name usable in place of its id",
	Example: "  teamwork project alias -i 123456 -n website",
	StrFlags: []StringFlag{
		{Name: "id", Shorthand: "i", Usage: "project id"},
		{Name: "name", Shorthand: "n", Usage: "alias"},
	},
	Required: []string{"id", "name"},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runProjectAlias(cmd, d.homeDir, id, name)
	},
}.Build()

func runProjectAlias(cmd *cobra.Command, homeDir, projectID, name string) error {
	cfg, err := config.Read(homeDir)
	if err != nil {
		return err
	}
	a, err := cfg.SetAlias(projectID, name)
	if err != nil {
		return err
	}
	if err := config.Write(homeDir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("project %s is now %s", Silent(a.ProjectID), Primary(a.Alias))))
	return nil
}
