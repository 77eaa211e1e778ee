package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
)

var configSetCmd = LeafCommand{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long:  "Change a setting. Valid keys: " + strings.Join(config.Keys, ", ") + ".",
	Example: `  teamwork config set hours-per-day 7.5
  teamwork config set workdays "monday to thursday"
  teamwork config set start-time 8:30
  teamwork config set region eu`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runConfigSet(cmd, d.homeDir, args[0], args[1])
	},
}.Build()

func runConfigSet(cmd *cobra.Command, homeDir, key, value string) error {
	cfg, err := config.Read(homeDir)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Write(homeDir, cfg); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("%s set to %s", Primary(key), stored)))
	return nil
}
