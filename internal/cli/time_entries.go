package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

var timeEntriesCmd = GroupCommand{
	Use:     "time-entries",
	Short:   "Read and save time entries",
	Aliases: []string{"te"},
	Subcommands: []*cobra.Command{
		timeEntriesLastCmd,
		timeEntriesLastTasksCmd,
		timeEntriesMissingCmd,
		timeEntriesSaveCmd,
		timeEntriesJournalCmd,
	},
}.Build()

// personID returns the id of the token owner.
func personID(ctx context.Context, client *teamwork.Client) (string, error) {
	me, err := client.Me(ctx)
	if err != nil {
		return "", err
	}
	return me.ID.String(), nil
}
