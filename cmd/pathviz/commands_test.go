package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/config"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeMap stores layout in a temp file and returns its path.
func writeMap(t *testing.T, layout string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte(layout), 0o644))
	return path
}

// noConfig points --config at a file that does not exist, so defaults apply.
func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "pathviz.yaml")
}

func TestSolve_Map(t *testing.T) {
	maze := writeMap(t, "S.#.G\n..#..\n.....\n")

	cases := []struct {
		name  string
		flags []string
		want  string
	}{
		{"Dijkstra", nil, "path: 9 cells, cost 80 (8.0 moves)"},
		{"AStar", []string{"--algorithm", "astar", "--weight", "1"}, "cost 80"},
		{"Diagonal", []string{"--diagonal"}, "path: 5 cells, cost 56 (5.6 moves)"},
		{"Heap", []string{"--frontier", "heap"}, "cost 80"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"--config", noConfig(t), "solve", "--map", maze}, tc.flags...)
			out, _, err := execute(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, tc.want)
			assert.Contains(t, out, "S")
		})
	}
}

func TestSolve_CornerCutting(t *testing.T) {
	squeeze := writeMap(t, "S#\n#G\n")

	out, _, err := execute(t, "--config", noConfig(t), "solve", "--map", squeeze, "--diagonal")
	require.NoError(t, err)
	assert.Contains(t, out, "no path")

	out, _, err = execute(t, "--config", noConfig(t), "solve", "--map", squeeze, "--diagonal", "--corner-cutting")
	require.NoError(t, err)
	assert.Contains(t, out, "path: 2 cells, cost 14 (1.4 moves)")
}

func TestSolve_Strict(t *testing.T) {
	walled := writeMap(t, "S#G\n")

	out, _, err := execute(t, "--config", noConfig(t), "solve", "--map", walled)
	require.NoError(t, err, "no path is a result, not a failure")
	assert.Contains(t, out, "no path")

	_, _, err = execute(t, "--config", noConfig(t), "solve", "--map", walled, "--strict")
	assert.ErrorIs(t, err, errNoPath)
}

func TestSolve_Costs(t *testing.T) {
	line := writeMap(t, "S.G\n")
	out, _, err := execute(t, "--config", noConfig(t), "solve", "--map", line, "--costs")
	require.NoError(t, err)
	assert.Contains(t, out, "S*G\n\n    0   10   20\n")
}

func TestSolve_ConfigErrors(t *testing.T) {
	line := writeMap(t, "S.G\n")

	_, _, err := execute(t, "--config", noConfig(t), "solve", "--map", line, "--algorithm", "bfs")
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "search.algorithm")

	_, _, err = execute(t, "--config", noConfig(t), "solve", "--map", line, "--weight", "11")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "--config", noConfig(t), "--log-level", "trace", "solve", "--map", line)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "--config", noConfig(t), "solve", "--map", filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}

func TestSolve_LogsToStderr(t *testing.T) {
	line := writeMap(t, "S.G\n")

	_, errOut, err := execute(t, "--config", noConfig(t), "solve", "--map", line)
	require.NoError(t, err)
	assert.Contains(t, errOut, `msg="Run started"`)
	assert.Contains(t, errOut, "outcome=path_found")

	_, errOut, err = execute(t, "--config", noConfig(t), "--log-level", "warn", "solve", "--map", line)
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestSolve_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "pathviz.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
grid: {width: 5, height: 1}
layout: {source: {x: 0, y: 0}, goal: {x: 4, y: 0}}
log: {level: error}
`), 0o644))

	out, _, err := execute(t, "--config", cfgPath, "solve")
	require.NoError(t, err)
	assert.Contains(t, out, "S***G\n")
	assert.Contains(t, out, "cost 40")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathviz.yaml")

	out, _, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	out, _, err = execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	out, _, err = execute(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	out, _, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "steps_per_second: 60")
	assert.Contains(t, out, "algorithm: dijkstra")

	other := filepath.Join(t.TempDir(), "other.yaml")
	out, _, err = execute(t, "--config", path, "config", "init", other)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+other+"\n", out)
	assert.FileExists(t, other)
}
