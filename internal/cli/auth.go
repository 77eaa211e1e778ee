package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

var authCmd = LeafCommand{
	Use:   "auth",
	Short: "Store your Teamwork company id and API token",
	Long: "Store your Teamwork company id (the subdomain of your Teamwork site) and " +
		"API token in ~/.teamwork/config.json.",
	Example: "  teamwork auth -c mycompany -t twp_abc123 --verify",
	StrFlags: []StringFlag{
		{Name: "company", Shorthand: "c", Usage: "company id, e.g. mycompany for mycompany.teamwork.com"},
		{Name: "token", Shorthand: "t", Usage: "API token"},
	},
	BoolFlags: []BoolFlag{
		{Name: "verify", Usage: "check the credentials against the API before saving"},
	},
	Required: []string{"company", "token"},
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")
		token, _ := cmd.Flags().GetString("token")
		verify, _ := cmd.Flags().GetBool("verify")
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runAuth(cmd, d, company, token, verify)
	},
}.Build()

func runAuth(cmd *cobra.Command, d runDeps, company, token string, verify bool) error {
	creds := config.Credentials{
		CompanyID: strings.ToLower(strings.TrimSpace(company)),
		Token:     strings.TrimSpace(token),
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	cfg, err := config.Read(d.homeDir)
	if err != nil {
		return err
	}
	cfg.Credentials = creds

	if verify {
		me, err := verifyCredentials(cmd, d, cfg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("authenticated as %s", Primary(displayName(me)))))
	}

	if err := config.Write(d.homeDir, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Success(fmt.Sprintf("credentials saved for %s", creds.CompanyID)))
	return nil
}

// verifyCredentials calls /me.json with the credentials of cfg. Only the
// transport settings of the environment apply.
func verifyCredentials(cmd *cobra.Command, d runDeps, cfg *config.Config) (teamwork.Person, error) {
	env, err := config.LoadEnvFrom(cmd.Context(), d.lookup)
	if err != nil {
		return teamwork.Person{}, err
	}
	check := *cfg
	check.BaseURL = env.BaseURL
	check.HTTPTimeout = env.HTTPTimeout
	return teamwork.FromConfig(&check).Me(cmd.Context())
}

func displayName(p teamwork.Person) string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return "user " + p.ID.String()
	}
	return name
}
