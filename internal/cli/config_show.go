package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
)

var configShowCmd = LeafCommand{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runConfigShow(cmd, d)
	},
}.Build()

func runConfigShow(cmd *cobra.Command, d runDeps) error {
	cfg, err := d.loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("config:"), Text(config.Path(d.homeDir)))
	if cfg.Credentials.IsZero() {
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent("credentials:"), Warning("not set"))
	} else {
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent("company:"), Primary(cfg.Credentials.CompanyID))
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent("token:"), Text(cfg.Credentials.MaskedToken()))
	}
	for _, key := range config.Keys {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent(key+":"), Text(v))
	}
	if cfg.BaseURL != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent("base-url:"), Text(cfg.BaseURL))
	}

	if len(cfg.Aliases) > 0 {
		rows := make([][]string, 0, len(cfg.Aliases))
		for _, a := range cfg.Aliases {
			rows = append(rows, []string{a.Alias, a.ProjectID})
		}
		_, _ = fmt.Fprintln(w, renderTable([]string{"Alias", "Project"}, rows))
	}
	_, _ = fmt.Fprintf(w, "%s %d\n", Silent("times off:"), len(cfg.TimesOff))
	return nil
}
