package cli

import "github.com/spf13/cobra"

var projectCmd = GroupCommand{
	Use:     "project",
	Short:   "Browse projects and their tasks",
	Aliases: []string{"projects"},
	Subcommands: []*cobra.Command{
		projectListCmd,
		projectAliasCmd,
		projectTasksCmd,
	},
}.Build()
