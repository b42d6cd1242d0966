package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dxtutor/internal/retrieval"
	"github.com/abhisek/dxtutor/internal/store"
)

// resetFlags restores every flag in the tree to its default so commands can
// be executed repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{"DXTUTOR_DB", "DXTUTOR_DATA", "DXTUTOR_TOP_K", "DXTUTOR_MIN_JUSTIFICATION", "DXTUTOR_LOG_LEVEL", "DXTUTOR_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_DATA_HOME", dir)
	return &cli{t: t, dbPath: filepath.Join(dir, "test.db")}
}

func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--db", c.dbPath, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandTree(t *testing.T) {
	want := []string{"assess", "attempts", "graph", "mcp", "retrieve", "scenarios", "version"}
	var got []string
	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		got = append(got, c.Name())
	}
	assert.ElementsMatch(t, want, got)
}

func TestVersion(t *testing.T) {
	out, _, err := newCLI(t).run("version")
	require.NoError(t, err)
	assert.Equal(t, "dxtutor (devel)\n", out)
}

func TestRetrieve_JSON(t *testing.T) {
	out, _, err := newCLI(t).run("retrieve", "--json", "jaw", "clicks", "a", "lot", "when", "opening")
	require.NoError(t, err)

	var hits []retrieval.Hit
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.Len(t, hits, 3)
	assert.Equal(t, "case_002", hits[0].Case.ID)
}

func TestRetrieve_Table(t *testing.T) {
	out, _, err := newCLI(t).run("retrieve", "--k", "1", "morning stiffness and muscle tenderness when chewing")
	require.NoError(t, err)
	assert.Contains(t, out, "case_001")
	assert.NotContains(t, out, "case_002")
	assert.Contains(t, out, "Top diagnosis path: icop_l3_myalgia < icop_l2_tmd < icop_l1_msk")
}

func TestRetrieve_Errors(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("retrieve")
	assert.Error(t, err)

	_, _, err = c.run("retrieve", "--scenario", "nope")
	assert.Error(t, err)

	_, _, err = c.run("retrieve", "--scenario", "demo_001", "extra note")
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("graph", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "icop_l1_msk")
	assert.Contains(t, out, "    icop_l3_disc")
	assert.Contains(t, out, "5 diagnoses, 11 features")

	out, _, err = c.run("graph", "path", "icop_l3_disc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "icop_l3_disc")
	assert.Contains(t, lines[1], "icop_l2_tmd")
	assert.Contains(t, lines[2], "icop_l1_msk")

	out, _, err = c.run("graph", "features", "icop_l3_arthralgia")
	require.NoError(t, err)
	assert.Contains(t, out, "sx_joint_tender")

	out, _, err = c.run("graph", "features", "icop_l2_tmd")
	require.NoError(t, err)
	assert.Contains(t, out, "no directly attached features")

	out, _, err = c.run("graph", "which", "sx_chewing_worse")
	require.NoError(t, err)
	assert.Contains(t, out, "icop_l3_myalgia")
	assert.Contains(t, out, "icop_l3_arthralgia")
	assert.NotContains(t, out, "icop_l3_disc")

	out, _, err = c.run("graph", "highlight", "--json", "icop_l3_myalgia")
	require.NoError(t, err)
	assert.Contains(t, out, `"edge_ids"`)

	for _, args := range [][]string{
		{"graph", "path", "nope"},
		{"graph", "features", "nope"},
		{"graph", "highlight", "nope"},
		{"graph", "which", "nope"},
	} {
		_, _, err := c.run(args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestScenarios(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "demo_001")
	assert.Contains(t, out, "3 scenarios")
	assert.NotContains(t, out, "gold:")

	out, _, err = c.run("scenarios", "--show-gold")
	require.NoError(t, err)
	assert.Contains(t, out, "gold: icop_l3_disc")
}

func TestAssessAndAttempts(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("assess",
		"--student", "s1",
		"--scenario", "demo_001",
		"--diagnosis", "icop_l3_disc",
		"--feature", "sx_clicking,sx_deviation",
		"--feature", "sx_trauma",
		"--justification", "Popping with deflection on opening after head trauma.",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "correct: icop_l3_disc")
	assert.Contains(t, out, "precision 100.0%  recall 50.0%  F1 66.7%")

	_, errOut, err := c.run("assess", "--scenario", "demo_002", "--diagnosis", "icop_l3_myalgia")
	require.Error(t, err)
	assert.Contains(t, errOut, "features")
	assert.Contains(t, errOut, "justification")

	out, _, err = c.run("attempts", "list", "--json")
	require.NoError(t, err)
	var records []store.AttemptRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "s1", records[0].StudentID)
	assert.Equal(t, []string{"sx_clicking", "sx_deviation", "sx_trauma"}, records[0].SelectedFeatures)

	out, _, err = c.run("attempts", "stats", "--student", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, "Accuracy    100.0% (1 correct)")

	out, _, err = c.run("attempts", "export")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, store.CSVHeader, rows[0])

	path := filepath.Join(t.TempDir(), "attempts.csv")
	_, errOut, err = c.run("attempts", "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Exported 1 attempts")
	assert.FileExists(t, path)
}

func TestInvalidConfigRejected(t *testing.T) {
	c := newCLI(t)
	t.Setenv("DXTUTOR_TOP_K", "0")
	_, _, err := c.run("version")
	assert.Error(t, err)
}
