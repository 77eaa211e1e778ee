package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
)

var timeOffSaveCmd = LeafCommand{
	Use:   "save",
	Short: "Record a day off, or some hours off on a day",
	Example: `  teamwork time-off save -d 2019-07-04
  teamwork time-off save -d friday -H 4`,
	StrFlags: []StringFlag{
		{Name: "date", Shorthand: "d", Usage: "day off"},
	},
	IntFlags: []IntFlag{
		{Name: "hours", Shorthand: "H", Usage: "hours off", Default: 8},
	},
	Required: []string{"date"},
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		hours, _ := cmd.Flags().GetInt("hours")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runTimeOffSave(cmd, d, date, hours)
	},
}.Build()

func runTimeOffSave(cmd *cobra.Command, d runDeps, dateFlag string, hours int) error {
	day, err := schedule.ParseDate(dateFlag, d.now())
	if err != nil {
		return err
	}

	cfg, err := config.Read(d.homeDir)
	if err != nil {
		return err
	}
	t, err := cfg.AddTimeOff(day, hours)
	if err != nil {
		return err
	}
	if err := config.Write(d.homeDir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("time off saved: %s, %dh",
		Primary(t.Date), t.Hours)))
	return nil
}
