package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/journal"
	"github.com/quentinproust/teamwork-cli/internal/logger"
	"github.com/quentinproust/teamwork-cli/internal/submit"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

// runDeps bundles all side-effects of a command for testability.
type runDeps struct {
	homeDir string
	lookup  envconfig.Lookuper
	now     func() time.Time
	pk      PromptKit
	isTTY   bool
}

func defaultDeps(cmd *cobra.Command) (runDeps, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return runDeps{}, err
	}
	tty := isTerminal(cmd.OutOrStdout()) && isTerminal(cmd.InOrStdin())
	return runDeps{
		homeDir: homeDir,
		lookup:  envconfig.OsLookuper(),
		now:     time.Now,
		pk:      NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout(), tty),
		isTTY:   tty,
	}, nil
}

// isTerminal reports whether v is a terminal file.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadConfig reads the config file with environment overrides applied.
func (d runDeps) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, _, err := config.Load(ctx, d.homeDir, d.lookup)
	return cfg, err
}

// connect loads the configuration and returns a client for its credentials.
func (d runDeps) connect(ctx context.Context) (*config.Config, *teamwork.Client, error) {
	cfg, err := d.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	client, err := clientFor(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func clientFor(cfg *config.Config) (*teamwork.Client, error) {
	if cfg.Credentials.IsZero() {
		return nil, config.ErrNoCredentials
	}
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, fmt.Errorf("stored credentials: %w", err)
	}
	return teamwork.FromConfig(cfg), nil
}

// openJournal opens the submission journal. A journal that cannot be
// opened is reported and skipped; it never blocks a submission.
func (d runDeps) openJournal(ctx context.Context, w io.Writer) *journal.Journal {
	j, err := journal.Open(ctx, journal.Path(d.homeDir))
	if err != nil {
		logger.Get().Warn().Err(err).Msg("journal unavailable")
		_, _ = fmt.Fprintf(w, "%s\n", Warning("journal unavailable, submissions will not be recorded: "+err.Error()))
		return nil
	}
	return j
}

// journalHooks returns the journal as submission recorder and history. Both
// are nil when the journal is unavailable.
func (d runDeps) journalHooks(ctx context.Context, w io.Writer) (submit.Recorder, submittedHours, func()) {
	j := d.openJournal(ctx, w)
	if j == nil {
		return nil, nil, func() {}
	}
	return j, j, func() { _ = j.Close() }
}
