package cli

import "github.com/spf13/cobra"

var configCmd = GroupCommand{
	Use:   "config",
	Short: "Show and change settings",
	Subcommands: []*cobra.Command{
		configShowCmd,
		configSetCmd,
	},
}.Build()
