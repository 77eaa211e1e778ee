package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quentinproust/teamwork-cli/internal/allocate"
	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/submit"
	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

const browseOption = "Browse projects..."

var interactiveCmd = LeafCommand{
	Use:   "interactive",
	Short: "Log time step by step",
	Long: "Ask for credentials (unless stored), a task, a start date and an hour count, " +
		"preview the entries and send them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := defaultDeps(cmd)
		if err != nil {
			return err
		}
		return runInteractive(cmd, d)
	},
}.Build()

func runInteractive(cmd *cobra.Command, d runDeps) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	cfg, err := d.loadConfig(ctx)
	if err != nil {
		return err
	}

	prompted := false
	if cfg.Credentials.IsZero() {
		creds, err := askCredentials(w, d.pk)
		if err != nil {
			return err
		}
		cfg.Credentials = creds
		prompted = true
	}

	client, err := clientFor(cfg)
	if err != nil {
		return err
	}
	me, err := client.Me(ctx)
	if err != nil {
		var authErr *teamwork.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("credentials for %s were rejected: %w", cfg.Credentials.CompanyID, err)
		}
		return err
	}
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("logged in as %s on %s",
		Primary(displayName(me)), Primary(cfg.Credentials.CompanyID))))

	if prompted {
		if err := offerToSaveCredentials(w, d, cfg.Credentials); err != nil {
			return err
		}
	}

	task, err := chooseTask(ctx, w, d.pk, client, me.ID.String())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("task: %s %s", Primary(task.Name), Silent("#"+task.ID.String()))))

	job := saveJob{TaskID: task.ID.String()}
	if job.Description, err = askText(w, d.pk, "Description"); err != nil {
		return err
	}
	if job.Start, err = askDate(w, d.pk, "Start date (YYYY-MM-DD, today, monday...)", d.now()); err != nil {
		return err
	}
	if job.Hours, err = askHours(w, d.pk, "Total hours (e.g. 104, 13d, 3h30m)", cfg.HoursPerDay); err != nil {
		return err
	}
	if job.Excluded, err = ask(w, d.pk.Prompt, "Days to skip (YYYY-MM-DD, comma separated, empty for none)", allocate.ParseDateSet); err != nil {
		return err
	}
	if job.DryRun, err = askYesNo(d.pk, "Dry run (compute the entries without sending them)?"); err != nil {
		return err
	}

	rec, hist, closeJournal := d.journalHooks(ctx, w)
	defer closeJournal()

	warnUnchecked(ctx, w, job.Start, hist)
	plan, err := buildPlan(ctx, cfg, client, me.ID.String(), job)
	if err != nil {
		return err
	}
	printPlan(w, plan)

	if !job.DryRun {
		ok, err := d.pk.Confirm(fmt.Sprintf("Send %d time entries?", len(plan.Entries)))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, Silent("Aborted, nothing was sent."))
			return nil
		}
	}

	_, err = submitPlan(ctx, w, d, client, rec, plan, submit.Options{
		TaskID:      job.TaskID,
		PersonID:    me.ID.String(),
		Description: job.Description,
		StartTime:   cfg.Start(),
		DryRun:      job.DryRun,
	})
	return err
}

func askCredentials(w io.Writer, pk PromptKit) (config.Credentials, error) {
	company, err := askText(w, pk, "Company id (the subdomain of your Teamwork site)")
	if err != nil {
		return config.Credentials{}, err
	}
	token, err := askText(w, pk, "API token")
	if err != nil {
		return config.Credentials{}, err
	}
	creds := config.Credentials{CompanyID: strings.ToLower(company), Token: token}
	if err := creds.Validate(); err != nil {
		return config.Credentials{}, err
	}
	return creds, nil
}

// offerToSaveCredentials stores verified credentials in the config file,
// leaving environment overrides out of it.
func offerToSaveCredentials(w io.Writer, d runDeps, creds config.Credentials) error {
	ok, err := askYesNo(d.pk, "Save these credentials for next time?")
	if err != nil || !ok {
		return err
	}
	stored, err := config.Read(d.homeDir)
	if err != nil {
		return err
	}
	stored.Credentials = creds
	if err := config.Write(d.homeDir, stored); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s\n", Success("credentials saved to "+config.Path(d.homeDir)))
	return nil
}

// chooseTask offers the recently used tasks, or browsing project, task
// list and task.
func chooseTask(ctx context.Context, w io.Writer, pk PromptKit, client *teamwork.Client, personID string) (teamwork.Task, error) {
	recent, err := client.RecentTasks(ctx, personID, recentTaskEntries)
	if err != nil {
		return teamwork.Task{}, err
	}

	options := make([]string, 0, len(recent)+1)
	for _, t := range recent {
		options = append(options, fmt.Sprintf("%s (#%s)", t.Name, t.ID))
	}
	options = append(options, browseOption)

	i, err := pk.Select("Task", options)
	if err != nil {
		return teamwork.Task{}, err
	}
	if i < len(recent) {
		return recent[i], nil
	}
	return browseTask(ctx, pk, client)
}

func browseTask(ctx context.Context, pk PromptKit, client *teamwork.Client) (teamwork.Task, error) {
	projects, err := client.Projects(ctx, "")
	if err != nil {
		return teamwork.Task{}, err
	}
	if len(projects) == 0 {
		return teamwork.Task{}, fmt.Errorf("no projects available")
	}
	i, err := pk.Select("Project", names(projects, func(p teamwork.Project) string { return p.Name }))
	if err != nil {
		return teamwork.Task{}, err
	}

	lists, err := client.TaskLists(ctx, projects[i].ID.String())
	if err != nil {
		return teamwork.Task{}, err
	}
	if len(lists) == 0 {
		return teamwork.Task{}, fmt.Errorf("project %s has no task lists", projects[i].Name)
	}
	i, err = pk.Select("Task list", names(lists, func(l teamwork.TaskList) string { return l.Name }))
	if err != nil {
		return teamwork.Task{}, err
	}

	tasks, err := client.Tasks(ctx, lists[i].ID.String())
	if err != nil {
		return teamwork.Task{}, err
	}
	flat := teamwork.Flatten(tasks)
	if len(flat) == 0 {
		return teamwork.Task{}, fmt.Errorf("task list %s has no open tasks", lists[i].Name)
	}
	i, err = pk.Select("Task", names(flat, indentTask))
	if err != nil {
		return teamwork.Task{}, err
	}
	return flat[i].Task, nil
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}
