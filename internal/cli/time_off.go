package cli

import "github.com/spf13/cobra"

var timeOffCmd = GroupCommand{
	Use:   "time-off",
	Short: "Record days off so saves skip them",
	Subcommands: []*cobra.Command{
		timeOffSaveCmd,
		timeOffListCmd,
	},
}.Build()
