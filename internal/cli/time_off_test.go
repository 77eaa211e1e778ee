package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinproust/teamwork-cli/internal/config"
)

func TestTimeOffSave(t *testing.T) {
	d := newTestDeps(t, nil, PromptKit{})
	cmd, out := newTestCmd()

	require.NoError(t, runTimeOffSave(cmd, d, "next friday", 4))

	assert.Equal(t, "time off saved: 2019-07-19, 4h\n", out.String())
	cfg, err := config.Read(d.homeDir)
	require.NoError(t, err)
	assert.Equal(t, []config.TimeOff{{Date: "2019-07-19", Hours: 4}}, cfg.TimesOff)
}

func TestTimeOffSaveReplacesDay(t *testing.T) {
	d := newTestDeps(t, nil, PromptKit{})
	cmd, _ := newTestCmd()

	require.NoError(t, runTimeOffSave(cmd, d, "2019-07-19", 4))
	require.NoError(t, runTimeOffSave(cmd, d, "2019-07-19", 8))

	cfg, err := config.Read(d.homeDir)
	require.NoError(t, err)
	assert.Equal(t, []config.TimeOff{{Date: "2019-07-19", Hours: 8}}, cfg.TimesOff)
}

func TestTimeOffSaveInvalid(t *testing.T) {
	d := newTestDeps(t, nil, PromptKit{})
	cmd, _ := newTestCmd()

	assert.Error(t, runTimeOffSave(cmd, d, "someday", 8))
	assert.Error(t, runTimeOffSave(cmd, d, "2019-07-19", 0))
	assert.Error(t, runTimeOffSave(cmd, d, "2019-07-19", 25))
}

func TestTimeOffList(t *testing.T) {
	d := newTestDeps(t, nil, PromptKit{})
	cmd, out := newTestCmd()
	require.NoError(t, runTimeOffSave(cmd, d, "2019-07-04", 8))
	require.NoError(t, runTimeOffSave(cmd, d, "2019-07-19", 4))
	require.NoError(t, runTimeOffSave(cmd, d, "2019-12-24", 8))
	require.NoError(t, runTimeOffSave(cmd, d, "2020-01-02", 8))
	out.Reset()

	require.NoError(t, runTimeOffList(cmd, d, 0, 7))

	s := out.String()
	assert.Contains(t, s, "2019-07-04")
	assert.Contains(t, s, "Thu")
	assert.Contains(t, s, "2019-07-19")
	assert.NotContains(t, s, "2019-12-24")
	assert.Contains(t, s, "July 2019: 12h off on 2 day(s)")

	out.Reset()
	require.NoError(t, runTimeOffList(cmd, d, 2019, 0))
	assert.Contains(t, out.String(), "2019: 20h off on 3 day(s)")
}

func TestTimeOffListEmpty(t *testing.T) {
	d := newTestDeps(t, nil, PromptKit{})
	cmd, out := newTestCmd()

	require.NoError(t, runTimeOffList(cmd, d, 2020, 2))

	assert.Equal(t, "No time off in February 2020.\n", out.String())
	assert.Error(t, runTimeOffList(cmd, d, 2020, 13))
}
