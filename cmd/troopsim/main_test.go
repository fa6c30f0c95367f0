package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a small troop configuration into a temp dir.
func writeConfig(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "data", "troop.db")
	content := `
simulation:
  seed: 11
  population: 12
  capacity: 24
  families: 3
  dimension: 256
  ticks: 120
  indicators_every: 30
social:
  graph_size: 16
logging:
  level: warn
storage:
  path: ` + dbPath + "\n"
	cfgPath = filepath.Join(dir, "troop.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath, dbPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunThenIndicators(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	out, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ran 120 ticks to Day 1, 2:00 (seed 11)")
	assert.Contains(t, out, "alive:       12")
	assert.FileExists(t, dbPath)

	out, err = execute(t, "indicators", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "4 samples")
	assert.Contains(t, out, "COHESION")
}

func TestRunJSON(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, err := execute(t, "run", "--config", cfgPath, "--ticks", "60", "--json")
	require.NoError(t, err)

	var res struct {
		RunID string `json:"run_id"`
		Ticks uint64 `json:"ticks"`
		Seed  int64  `json:"seed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, uint64(60), res.Ticks)
	assert.Equal(t, int64(11), res.Seed)
	assert.NotEmpty(t, res.RunID)

	out, err = execute(t, "indicators", "--config", cfgPath, "--run", res.RunID, "--json")
	require.NoError(t, err)
	var shown struct {
		Run        string            `json:"run"`
		Indicators []json.RawMessage `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, res.RunID, shown.Run)
	assert.Len(t, shown.Indicators, 2)
}

func TestFriends(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	out, err := execute(t, "friends", "--config", cfgPath, "--ticks", "30")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	headers := 0
	for _, l := range lines {
		if strings.Contains(l, "(mean sentiment") {
			headers++
		}
	}
	assert.Equal(t, 12, headers, "one listing per being")
	assert.NoFileExists(t, dbPath, "friends does not record")
}

func TestFriendsErrors(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := execute(t, "friends", "--config", cfgPath, "--ticks", "1", "--kind", "rivals")
	assert.ErrorContains(t, err, "unknown listing")

	_, err = execute(t, "friends", "zzz-nobody", "--config", cfgPath, "--ticks", "1")
	assert.ErrorContains(t, err, "no living being")
}

func TestIndicatorsWithoutRuns(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	_, err := execute(t, "indicators", "--config", cfgPath)
	assert.ErrorContains(t, err, "no recorded runs")
}
