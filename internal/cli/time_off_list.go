package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
)

var timeOffListCmd = LeafCommand{
	Use:   "list",
	Short: "List recorded time off",
	IntFlags: []IntFlag{
		{Name: "year", Shorthand: "y", Usage: "year (default: current year)"},
		{Name: "month", Shorthand: "m", Usage: "month 1-12 (default: whole year)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runTimeOffList(cmd, d, year, month)
	},
}.Build()

func runTimeOffList(cmd *cobra.Command, d runDeps, year, month int) error {
	if year == 0 {
		year = d.now().Year()
	}
	if month < 0 || month > 12 {
		return fmt.Errorf("--month must be between 1 and 12, got %d", month)
	}

	cfg, err := config.Read(d.homeDir)
	if err != nil {
		return err
	}
	offs := cfg.TimesOffIn(year, time.Month(month))

	period := strconv.Itoa(year)
	if month != 0 {
		period = time.Month(month).String() + " " + period
	}
	if len(offs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("No time off in "+period+"."))
		return nil
	}

	rows := make([][]string, 0, len(offs))
	total := 0
	for _, t := range offs {
		day := ""
		if parsed, err := time.Parse(schedule.DateLayout, t.Date); err == nil {
			day = parsed.Weekday().String()[:3]
		}
		rows = append(rows, []string{t.Date, day, fmt.Sprintf("%dh", t.Hours)})
		total += t.Hours
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Date", "Day", "Hours"}, rows))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("%s: %s off on %d day(s)",
		period, Primary(fmt.Sprintf("%dh", total)), len(offs))))
	return nil
}
