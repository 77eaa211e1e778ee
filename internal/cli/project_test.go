package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinproust/teamwork-cli/internal/config"
)

func TestProjectList(t *testing.T) {
	api := newFakeTeamwork(t)
	api.projects = []map[string]any{
		{"id": "123", "name": "Website"},
		{"id": 456, "name": "Mobile app"},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	require.NoError(t, runProjectAlias(cmd, d.homeDir, "123", "web"))
	out.Reset()

	require.NoError(t, runProjectList(cmd, d, ""))

	s := out.String()
	assert.Contains(t, s, "Website")
	assert.Contains(t, s, "web")
	assert.Contains(t, s, "456")
	assert.Contains(t, s, "Mobile app")
}

func TestProjectListSearch(t *testing.T) {
	api := newFakeTeamwork(t)
	api.projects = []map[string]any{{"id": "123", "name": "Website"}}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runProjectList(cmd, d, "nothing"))

	assert.Equal(t, "No projects found.\n", out.String())
}

func TestProjectListNoCredentials(t *testing.T) {
	api := newFakeTeamwork(t)
	d := newTestDeps(t, api, PromptKit{})
	cmd, _ := newTestCmd()

	err := runProjectList(cmd, d, "")

	assert.ErrorIs(t, err, config.ErrNoCredentials)
	assert.Equal(t, 0, api.requestCount())
}

func TestProjectAlias(t *testing.T) {
	home := t.TempDir()
	cmd, out := newTestCmd()

	require.NoError(t, runProjectAlias(cmd, home, "123", "My Website"))

	assert.Equal(t, "project 123 is now my-website\n", out.String())
	cfg, err := config.Read(home)
	require.NoError(t, err)
	assert.Equal(t, "123", cfg.ResolveProject("my-website"))
}

func TestProjectAliasInvalid(t *testing.T) {
	cmd, _ := newTestCmd()

	assert.Error(t, runProjectAlias(cmd, t.TempDir(), "123", "!!!"))
}

func TestProjectTasks(t *testing.T) {
	api := newFakeTeamwork(t)
	api.taskLists["123"] = []map[string]any{{"id": "10", "name": "Sprint 1"}}
	api.tasks["10"] = []map[string]any{
		{"id": "100", "content": "Checkout", "subTasks": []map[string]any{
			{"id": "101", "content": "Payment form"},
		}},
	}
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()
	require.NoError(t, runProjectAlias(cmd, d.homeDir, "123", "web"))
	out.Reset()

	require.NoError(t, runProjectTasks(cmd, d, "web"))

	s := out.String()
	assert.Contains(t, s, "Sprint 1")
	assert.Contains(t, s, "Checkout")
	assert.Contains(t, s, "└─ Payment form")
	assert.Contains(t, s, "101")
}

func TestProjectTasksEmpty(t *testing.T) {
	api := newFakeTeamwork(t)
	d := withCredentials(t, newTestDeps(t, api, PromptKit{}))
	cmd, out := newTestCmd()

	require.NoError(t, runProjectTasks(cmd, d, "999"))

	assert.Equal(t, "No open tasks found.\n", out.String())
}

func TestProjectRegisteredSubcommands(t *testing.T) {
	var names []string
	for _, c := range projectCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "alias", "tasks"}, names)
}
