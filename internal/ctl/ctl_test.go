package ctl

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klokku/eventcal/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctlTest struct {
	t          *testing.T
	configPath string
}

func setupCtlTest(t *testing.T) *ctlTest {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("EVENTCAL_STORAGE_DRIVER", "bolt")
	t.Setenv("EVENTCAL_STORAGE_BOLT_PATH", filepath.Join(dir, "events.db"))
	t.Setenv("EVENTCAL_TIMEZONE", "UTC")
	return &ctlTest{t: t, configPath: filepath.Join(dir, "missing.yaml")}
}

func (c *ctlTest) run(args ...string) (string, error) {
	c.t.Helper()
	app := NewApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{AppName, "--config", c.configPath}, args...))
	return out.String(), err
}

func (c *ctlTest) add(date, name, typ, start, end string, extra ...string) string {
	c.t.Helper()
	args := append([]string{"add", "--date", date, "--name", name, "--type", typ, "--start", start, "--end", end}, extra...)
	out, err := c.run(args...)
	require.NoError(c.t, err)
	return strings.Fields(out)[0]
}

func TestCtl_AddAndList(t *testing.T) {
	ctl := setupCtlTest(t)

	id := ctl.add("2024-06-10", "Standup", "Work", "09:00", "09:15")
	ctl.add("2024-06-10", "Gym", "Personal", "18:00", "19:00", "--description", "leg day")

	out, err := ctl.run("list", "--date", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, id+"  09:00-09:15  [Work] Standup\n", strings.SplitAfter(out, "\n")[0])
	assert.Contains(t, out, "18:00-19:00  [Personal] Gym - leg day\n")

	out, err = ctl.run("list", "--date", "2024-06-11")
	require.NoError(t, err)
	assert.Equal(t, "no events on 2024-06-11\n", out)
}

func TestCtl_ListFilters(t *testing.T) {
	ctl := setupCtlTest(t)
	ctl.add("2024-06-10", "Standup", "Work", "09:00", "09:15")
	ctl.add("2024-06-10", "Gym", "Personal", "18:00", "19:00", "--description", "with the team")
	ctl.add("2024-06-10", "Team lunch", "Work", "12:00", "13:00")

	out, err := ctl.run("list", "--date", "2024-06-10", "--category", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "Standup")
	assert.NotContains(t, out, "Gym")

	out, err = ctl.run("list", "--date", "2024-06-10", "--search", "TEAM")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Gym")
	assert.Contains(t, lines[1], "Team lunch")

	_, err = ctl.run("list", "--date", "2024-06-10", "--category", "Holiday")
	assert.Error(t, err)
}

func TestCtl_AddRejectsInvalidEvent(t *testing.T) {
	ctl := setupCtlTest(t)
	ctl.add("2024-06-10", "Standup", "Work", "09:00", "09:15")

	_, err := ctl.run("add", "--date", "2024-06-10", "--name", "Overlap", "--type", "Work", "--start", "09:10", "--end", "09:20")
	assert.ErrorIs(t, err, event.ErrValidation)

	_, err = ctl.run("add", "--date", "2024-06-10", "--type", "Work", "--start", "10:00", "--end", "11:00")
	assert.ErrorContains(t, err, event.ReasonRequired)
}

func TestCtl_EditKeepsUnchangedFields(t *testing.T) {
	ctl := setupCtlTest(t)
	id := ctl.add("2024-06-10", "Standup", "Work", "09:00", "09:15", "--description", "daily")

	out, err := ctl.run("edit", "--date", "2024-06-10", "--id", id, "--end", "09:30")
	require.NoError(t, err)
	assert.Equal(t, id+"  09:00-09:30  [Work] Standup - daily\n", out)

	_, err = ctl.run("edit", "--date", "2024-06-10", "--id", "missing", "--name", "x")
	assert.ErrorIs(t, err, event.ErrEventNotFound)

	_, err = ctl.run("edit", "--date", "2024-06-10", "--name", "x")
	assert.ErrorContains(t, err, "missing --id")
}

func TestCtl_Delete(t *testing.T) {
	ctl := setupCtlTest(t)
	id := ctl.add("2024-06-10", "Standup", "Work", "09:00", "09:15")

	_, err := ctl.run("delete", "--date", "2024-06-10", "--id", id)
	require.NoError(t, err)
	_, err = ctl.run("delete", "--date", "2024-06-10", "--id", id)
	require.NoError(t, err, "deleting twice is a no-op")

	out, err := ctl.run("list", "--date", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, "no events on 2024-06-10\n", out)
}

func TestCtl_Grid(t *testing.T) {
	ctl := setupCtlTest(t)
	ctl.add("2024-06-10", "Standup", "Work", "09:00", "09:15")

	out, err := ctl.run("grid", "--month", "2024-06")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "June 2024", lines[0])
	assert.Equal(t, "Sun  Mon  Tue  Wed  Thu  Fri  Sat", lines[1])
	assert.Equal(t, strings.Repeat(" ", 30)+"1", lines[2])
	assert.Equal(t, "9    10*  11   12   13   14   15", lines[4])
	assert.Equal(t, "30", lines[7])

	_, err = ctl.run("grid", "--month", "June")
	assert.Error(t, err)
}

func TestCtl_Export(t *testing.T) {
	ctl := setupCtlTest(t)
	ctl.add("2024-06-10", "Standup", "Work", "09:00", "09:15")

	out, err := ctl.run("export", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Date,Name,Type,Start Time,End Time,Description\n2024-06-10,\"Standup\",\"Work\",09:00,09:15,\"\"", out)

	path := filepath.Join(t.TempDir(), "events.json")
	out, err = ctl.run("export", "--out", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var mapping map[string][]event.Event
	require.NoError(t, json.Unmarshal(raw, &mapping))
	assert.Len(t, mapping["2024-06-10"], 1)

	_, err = ctl.run("export", "--format", "pdf")
	assert.Error(t, err)
}
