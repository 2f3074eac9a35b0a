package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/shuffleodds/internal/estimator"
	"github.com/lox/shuffleodds/internal/report"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestEstimateDefaultsMatchReference(t *testing.T) {
	cli, ctx := parse(t, "estimate")
	assert.Equal(t, "estimate", ctx.Command())

	p := cli.Estimate.params(0)
	assert.Equal(t, estimator.Params{
		TargetCard: 94, TopX: 10, ShuffleCount: 2, SplitCount: 3,
		Iterations: 100000, DeckSize: 99,
	}, p)
	assert.Equal(t, "text", cli.Estimate.Format)
}

func TestEstimateIsDefaultCommand(t *testing.T) {
	cli, _ := parse(t, "--top", "20", "--seed", "5")
	assert.Equal(t, 20, cli.Estimate.Top)
	assert.Equal(t, int64(5), cli.Estimate.Seed)
}

func TestLogfmtFlag(t *testing.T) {
	cli, _ := parse(t, "--logfmt", "estimate")
	assert.True(t, cli.Logfmt)

	var bad CLI
	parser, err := kong.New(&bad, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"--json-log", "estimate"})
	assert.Error(t, err)
}

func TestRunArgs(t *testing.T) {
	cli, ctx := parse(t, "run", "-c", "x.hcl", "a", "b", "--format", "json")
	assert.Equal(t, "run <scenarios>", ctx.Command())
	assert.Equal(t, []string{"a", "b"}, cli.Run.Scenarios)
	assert.Equal(t, "json", cli.Run.Format)
	assert.True(t, filepath.IsAbs(cli.Run.Config))
}

func TestRejectsUnknownFormat(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"estimate", "--format", "xml"})
	assert.Error(t, err)
}

func TestEmitJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	rows := []report.Row{{Name: "cli", Result: estimator.Result{Probability: 0.5, Iterations: 10}}}

	err := emit(&Globals{}, OutputFlags{Format: "json", Output: path}, rows, func(*report.Renderer) error {
		t.Fatal("text renderer should not be used for json")
		return nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 0.5, decoded[0]["probability"])
}

func TestEmitTextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	rows := []report.Row{{Name: "cli", Result: estimator.Result{Probability: 0.25, Iterations: 4}}}

	err := emit(&Globals{}, OutputFlags{Format: "text", Output: path}, rows, func(r *report.Renderer) error {
		return r.Results(rows)
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Probability: 0.2500")
}
