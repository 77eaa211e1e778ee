package cli

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinproust/teamwork-cli/internal/allocate"
	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/journal"
	"github.com/quentinproust/teamwork-cli/internal/submit"
)

func saveArgs(start, hours string) saveFlags {
	return saveFlags{task: "555", start: start, hours: hours, description: "Development"}
}

func TestSaveDryRunMakesNoRequests(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	in := saveArgs("2019-06-24", "104")
	in.dryRun = true

	require.NoError(t, runTimeEntriesSave(cmd, d, in))

	s := out.String()
	assert.Equal(t, 0, api.requestCount())
	assert.Empty(t, api.created)
	assert.Equal(t, 13, strings.Count(s, "dry run\n"))
	assert.Contains(t, s, "2019-06-24")
	assert.Contains(t, s, "2019-07-10")
	assert.NotContains(t, s, "2019-06-29")
	assert.Contains(t, s, "104h over 13 day(s), 2019-06-24 to 2019-07-10")
	assert.Contains(t, s, "dry run: 13 entries computed, nothing sent")
	assert.Contains(t, s, "without checking hours already logged")
}

func TestSaveSubmitsEachDay(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runTimeEntriesSave(cmd, d, saveArgs("today", "20")))

	require.Len(t, api.created, 3)
	want := []struct{ date, hours string }{{"20190715", "8"}, {"20190716", "8"}, {"20190717", "4"}}
	for i, w := range want {
		assert.Equal(t, "555", api.created[i].TaskID)
		assert.Equal(t, w.date, api.created[i].Entry["date"])
		assert.Equal(t, w.hours, api.created[i].Entry["hours"])
		assert.Equal(t, "0", api.created[i].Entry["minutes"])
		assert.Equal(t, "7", api.created[i].Entry["person-id"])
		assert.Equal(t, "09:00", api.created[i].Entry["time"])
		assert.Equal(t, "Development", api.created[i].Entry["description"])
	}
	assert.Contains(t, out.String(), "3 submitted")

	j, err := journal.Open(context.Background(), journal.Path(d.homeDir))
	require.NoError(t, err)
	defer j.Close()
	records, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, submit.StatusSubmitted, records[0].Status)
	assert.Equal(t, "1003", records[0].RemoteID)
}

func TestSaveWarnsAboutJournalHistory(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	require.NoError(t, runTimeEntriesSave(cmd, d, saveArgs("2019-07-15", "16")))
	out.Reset()

	in := saveArgs("2019-07-15", "8")
	in.dryRun = true
	require.NoError(t, runTimeEntriesSave(cmd, d, in))

	assert.Contains(t, out.String(), "the journal already holds 16h submitted on 2 day(s) from 2019-07-15")
}

func TestSaveContinuesAfterFailure(t *testing.T) {
	api := newFakeTeamwork(t)
	api.failDates["20190716"] = true
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	err := runTimeEntriesSave(cmd, d, saveArgs("2019-07-15", "24"))

	require.Error(t, err)
	var se *submit.SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "2019-07-16", se.Entry.Key())
	assert.Len(t, api.created, 2)
	assert.Contains(t, out.String(), "2 submitted, 1 failed")
}

func TestSaveStopOnError(t *testing.T) {
	api := newFakeTeamwork(t)
	api.failDates["20190716"] = true
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	in := saveArgs("2019-07-15", "24")
	in.stopOnError = true

	err := runTimeEntriesSave(cmd, d, in)

	require.Error(t, err)
	assert.Len(t, api.created, 1)
	assert.Contains(t, out.String(), "1 submitted, 1 failed, 1 skipped")
}

func TestSaveSkipsTimeOff(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, _ := newTestCmd()
	require.NoError(t, runTimeOffSave(cmd, d, "2019-07-16", 8))
	require.NoError(t, runTimeOffSave(cmd, d, "2019-07-17", 4))

	require.NoError(t, runTimeEntriesSave(cmd, d, saveArgs("2019-07-15", "20")))

	require.Len(t, api.created, 3)
	assert.Equal(t, "20190715", api.created[0].Entry["date"])
	assert.Equal(t, "20190717", api.created[1].Entry["date"])
	assert.Equal(t, "4", api.created[1].Entry["hours"])
	assert.Equal(t, "20190718", api.created[2].Entry["date"])
	assert.Equal(t, "8", api.created[2].Entry["hours"])
}

func TestSaveExclude(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, _ := newTestCmd()
	in := saveArgs("2019-07-15", "16")
	in.exclude = "2019-07-15, 2019-07-16"

	require.NoError(t, runTimeEntriesSave(cmd, d, in))

	require.Len(t, api.created, 2)
	assert.Equal(t, "20190717", api.created[0].Entry["date"])
	assert.Equal(t, "20190718", api.created[1].Entry["date"])
}

func TestSaveFillSubtractsLoggedHours(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = []map[string]any{
		{"id": "1", "date": "2019-07-15T00:00:00Z", "hours": "3", "minutes": "0"},
		{"id": "2", "date": "2019-07-16T00:00:00Z", "hours": "8", "minutes": "0"},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	in := saveArgs("2019-07-15", "13")
	in.fill = true

	require.NoError(t, runTimeEntriesSave(cmd, d, in))

	require.Len(t, api.created, 2)
	assert.Equal(t, "20190715", api.created[0].Entry["date"])
	assert.Equal(t, "5", api.created[0].Entry["hours"])
	assert.Equal(t, "20190717", api.created[1].Entry["date"])
	assert.Equal(t, "8", api.created[1].Entry["hours"])
	assert.NotContains(t, out.String(), "without checking hours already logged")
}

// padEntries returns n logged entries on a day outside the tested ranges.
func padEntries(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{"id": strconv.Itoa(5000 + i), "date": "2019-06-03T00:00:00Z", "hours": "0", "minutes": "1"}
	}
	return out
}

func TestSaveFillReadsEveryPage(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = append(padEntries(fillPageSize),
		map[string]any{"id": "1", "date": "2019-07-15T00:00:00Z", "hours": "8", "minutes": "0"})
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, _ := newTestCmd()
	in := saveArgs("2019-07-15", "8")
	in.fill = true

	require.NoError(t, runTimeEntriesSave(cmd, d, in))

	require.Len(t, api.created, 1)
	assert.Equal(t, "20190716", api.created[0].Entry["date"])
}

func TestSaveRejectsInputBeforeNetwork(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))

	cases := map[string]saveFlags{
		"zero hours":   saveArgs("2019-07-15", "0"),
		"bad hours":    saveArgs("2019-07-15", "lots"),
		"overflow":     saveArgs("2019-07-15", "1d99999999999999999999h"),
		"huge hours":   saveArgs("2019-07-15", "1e12"),
		"under minute": saveArgs("2019-07-15", "0.001"),
		"bad start":    saveArgs("someday", "8"),
		"bad exclude":  {task: "555", start: "2019-07-15", hours: "8", exclude: "07/16/2019"},
		"missing task": {start: "2019-07-15", hours: "8"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			cmd, _ := newTestCmd()
			err := runTimeEntriesSave(cmd, d, in)
			assert.ErrorIs(t, err, allocate.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, api.requestCount())
}

func TestSaveFractionalDaySendsPlannedMinutes(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	require.NoError(t, runConfigSet(cmd, d.homeDir, "hours-per-day", "1.009"))
	out.Reset()

	require.NoError(t, runTimeEntriesSave(cmd, d, saveArgs("today", "3.027")))

	require.Len(t, api.created, 3)
	want := []struct{ hours, minutes string }{{"1", "1"}, {"1", "1"}, {"1", "0"}}
	for i, w := range want {
		assert.Equal(t, w.hours, api.created[i].Entry["hours"])
		assert.Equal(t, w.minutes, api.created[i].Entry["minutes"])
	}
	assert.Contains(t, out.String(), "3h 2m over 3 day(s)")
}

func TestSaveRejectedCredentials(t *testing.T) {
	api := newFakeTeamwork(t)
	api.token = "other"
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, _ := newTestCmd()

	err := runTimeEntriesSave(cmd, d, saveArgs("2019-07-15", "8"))

	assert.Error(t, err)
	assert.Empty(t, api.created)
}

func TestTimeEntriesLast(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = []map[string]any{
		{"id": "1", "date": "2019-07-12T00:00:00Z", "hours": "7", "minutes": "30",
			"project-name": "Website", "todo-item-name": "Checkout", "description": "payment form"},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	pdf := filepath.Join(t.TempDir(), "sheet.pdf")

	require.NoError(t, runTimeEntriesLast(cmd, d, 10, pdf))

	s := out.String()
	assert.Contains(t, s, "2019-07-12")
	assert.Contains(t, s, "7h 30m")
	assert.Contains(t, s, "Checkout")
	assert.Contains(t, s, "timesheet written to "+pdf)
	info, err := os.Stat(pdf)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestTimeEntriesLastEmpty(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runTimeEntriesLast(cmd, d, 10, ""))

	assert.Equal(t, "No time entries found.\n", out.String())
	assert.Error(t, runTimeEntriesLast(cmd, d, 0, ""))
}

func TestTimeEntriesLastTasks(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = []map[string]any{
		{"id": "1", "date": "2019-07-12", "todo-item-id": "100", "todo-item-name": "Checkout"},
		{"id": "2", "date": "2019-07-11", "todo-item-id": "100", "todo-item-name": "Checkout"},
		{"id": "3", "date": "2019-07-10", "todo-item-id": 200, "todo-item-name": "Support"},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runTimeEntriesLastTasks(cmd, d))

	s := out.String()
	assert.Equal(t, 1, strings.Count(s, "Checkout"))
	assert.Contains(t, s, "200")
	assert.Contains(t, s, "Support")
}

func TestTimeEntriesMissing(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = []map[string]any{
		{"id": "1", "date": "2019-07-08T00:00:00Z", "hours": "8", "minutes": "0"},
		{"id": "2", "date": "2019-07-09T00:00:00Z", "hours": "4", "minutes": "0"},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	require.NoError(t, runTimeOffSave(cmd, d, "2019-07-10", 8))
	out.Reset()

	require.NoError(t, runTimeEntriesMissing(cmd, d, "2019-07-08", false))

	s := out.String()
	assert.Contains(t, s, "20h missing on 3 of 5 working day(s)")
	assert.Contains(t, s, "next save can start on 2019-07-09")
	assert.NotContains(t, s, "2019-07-15")
}

func TestTimeEntriesMissingReadsEveryPage(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = append(padEntries(missingPageSize),
		map[string]any{"id": "1", "date": "2019-07-12T00:00:00Z", "hours": "8", "minutes": "0"})
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runTimeEntriesMissing(cmd, d, "2019-07-12", false))

	assert.Contains(t, out.String(), "all 1 working day(s) since 2019-07-12 are fully logged")
}

func TestTimeEntriesMissingIncludesToday(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = []map[string]any{
		{"id": "1", "date": "2019-07-12T00:00:00Z", "hours": "8", "minutes": "0"},
		{"id": "2", "date": "2019-07-15T00:00:00Z", "hours": "2", "minutes": "0"},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))

	cmd, out := newTestCmd()
	require.NoError(t, runTimeEntriesMissing(cmd, d, "2019-07-12", false))
	assert.Contains(t, out.String(), "all 1 working day(s) since 2019-07-12 are fully logged")

	cmd, out = newTestCmd()
	require.NoError(t, runTimeEntriesMissing(cmd, d, "2019-07-12", true))
	s := out.String()
	assert.Contains(t, s, "2019-07-15")
	assert.Contains(t, s, "6h missing on 1 of 2 working day(s)")
	assert.Contains(t, s, "next save can start on 2019-07-15")
}

func TestTimeEntriesMissingIncludedFlag(t *testing.T) {
	f := timeEntriesMissingCmd.Flags().Lookup("included")
	require.NotNil(t, f)
	assert.Equal(t, "i", f.Shorthand)
	assert.Equal(t, "false", f.DefValue)
}

func TestTimeEntriesMissingNone(t *testing.T) {
	api := newFakeTeamwork(t)
	api.entries = []map[string]any{
		{"id": "1", "date": "2019-07-12", "hours": "8", "minutes": "0"},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runTimeEntriesMissing(cmd, d, "2019-07-12", false))

	assert.Contains(t, out.String(), "all 1 working day(s) since 2019-07-12 are fully logged")
}

func TestTimeEntriesJournal(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runTimeEntriesJournal(cmd, d.homeDir, 20, ""))
	assert.Equal(t, "No submissions recorded.\n", out.String())

	in := saveArgs("2019-07-15", "8")
	in.dryRun = true
	require.NoError(t, runTimeEntriesSave(cmd, d, in))
	out.Reset()

	require.NoError(t, runTimeEntriesJournal(cmd, d.homeDir, 20, ""))

	s := out.String()
	assert.Contains(t, s, "555")
	assert.Contains(t, s, "2019-07-15")
	assert.Contains(t, s, "dry-run (dry run)")
}

func TestTimeEntriesJournalBatch(t *testing.T) {
	home := t.TempDir()
	j, err := journal.Open(context.Background(), journal.Path(home))
	require.NoError(t, err)
	day := time.Date(2019, 7, 15, 0, 0, 0, 0, time.UTC)
	res := submit.Result{Status: submit.StatusSubmitted, RemoteID: "42"}
	res.Entry.Date = day
	require.NoError(t, j.Record(context.Background(), "aaaaaaa", "555", false, res))
	res.Entry.Date = day.AddDate(0, 0, 1)
	require.NoError(t, j.Record(context.Background(), "bbbbbbb", "556", false, res))
	require.NoError(t, j.Close())
	cmd, out := newTestCmd()

	require.NoError(t, runTimeEntriesJournal(cmd, home, 20, "bbbbbbb"))

	assert.Contains(t, out.String(), "2019-07-16")
	assert.NotContains(t, out.String(), "2019-07-15")
}

func TestTimeEntriesRegisteredSubcommands(t *testing.T) {
	var names []string
	for _, c := range timeEntriesCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"last", "last-tasks", "missing", "save", "journal"}, names)
}

func TestCredentialsRequired(t *testing.T) {
	d := newTestDeps(t, newFakeTeamwork(t), PromptKit{})
	cmd, _ := newTestCmd()

	assert.ErrorIs(t, runTimeEntriesLastTasks(cmd, d), config.ErrNoCredentials)
}
