package cli

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "teamwork",
	Short: "Log bulk time entries to Teamwork from the command line",
	Long: "teamwork stores your Teamwork credentials, spreads an hour count over " +
		"working days and submits one time entry per day.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		env, err := config.LoadEnv(cmd.Context())
		if err != nil {
			return err
		}
		initLogger(env.LogLevel, verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log API requests to stderr")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(timeEntriesCmd)
	rootCmd.AddCommand(timeOffCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogger(level string, verbose bool) {
	if verbose {
		level = "debug"
	}
	logger.Init(logger.Options{Level: level, Pretty: true})
}

// Execute runs the root command with styled help and errors.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd, fang.WithVersion(appVersion))
}
