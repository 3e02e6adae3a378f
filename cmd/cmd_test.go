package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/session"
)

// sandbox points every data and config location at a temp dir.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("NO_COLOR", "1")
	for _, k := range []string{
		"TACTICS_CONFIG", "TACTICS_BACKEND", "TACTICS_DB", "TACTICS_FILE",
		"TACTICS_LOG_LEVEL", "TACTICS_COLOR", "TACTICS_SNAPSHOT_KEEP",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

// resetFlags restores every flag to its default so runs don't leak into
// each other through the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tactics (devel)\n", out)
}

func TestInteractiveRoot_JSONBackend(t *testing.T) {
	dir := sandbox(t)
	file := filepath.Join(dir, "progress.json")

	out, err := execute(t, "y\n2\n6\n", "--backend", "json", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized data file with 48 themes and difficulty levels.")
	assert.Contains(t, out, "Next theme to work on: Fork")
	assert.Contains(t, out, "Updated theme: Discovered attack and its difficulty progress.")

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	var doc map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	entry := doc["themes"]["Discovered attack"]
	assert.EqualValues(t, 6, entry["success_rate"])
	assert.NotNil(t, entry["last_attempted"])
}

func TestRecordThenNext(t *testing.T) {
	sandbox(t)

	out, err := execute(t, "", "record", "--theme", "1", "--score", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated theme: Fork and its difficulty progress.")
	assert.Contains(t, out, "Current difficulty level for Fork: Easiest")

	out, err = execute(t, "", "next")
	require.NoError(t, err)
	assert.Contains(t, out, "Next theme to work on: Discovered attack")

	out, err = execute(t, "", "next", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "47 themes due")
	assert.NotContains(t, out, "Fork ")
}

func TestRecord_ByName(t *testing.T) {
	sandbox(t)
	out, err := execute(t, "", "record", "--theme", "Smothered mate", "--score", "4", "--date", "2025-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated theme: Smothered mate")

	out, err = execute(t, "", "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "Smothered mate            [Easiest 2025-01-02")
	assert.Contains(t, out, "4/10]")
}

func TestRecord_Errors(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "", "record", "--theme", "1", "--score", "11")
	assert.ErrorIs(t, err, session.ErrInvalidScore)

	_, err = execute(t, "", "record", "--theme", "99", "--score", "5")
	assert.Error(t, err)

	_, err = execute(t, "", "record", "--theme", "Windmil", "--score", "5")
	assert.ErrorIs(t, err, progress.ErrUnknownTheme)

	_, err = execute(t, "", "record", "--theme", "1", "--score", "5", "--date", "June 1")
	assert.Error(t, err)

	_, err = execute(t, "", "record", "--theme", "1")
	assert.Error(t, err, "score is required")
}

func TestHistory(t *testing.T) {
	dir := sandbox(t)

	_, err := execute(t, "", "record", "--theme", "Pin", "--score", "7")
	require.NoError(t, err)
	_, err = execute(t, "", "record", "--theme", "Fork", "--score", "3")
	require.NoError(t, err)

	out, err := execute(t, "", "history")
	require.NoError(t, err)
	pin := strings.Index(out, "Pin")
	fork := strings.Index(out, "Fork")
	require.True(t, pin > 0 && fork > 0)
	assert.Less(t, fork, pin, "newest first")
	assert.Contains(t, out, "7/10")

	out, err = execute(t, "", "history", "--theme", "Pin")
	require.NoError(t, err)
	assert.NotContains(t, out, "Fork")
	assert.Contains(t, out, "Pin: 10 attempts logged, 70% correct")

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	out, err = execute(t, "", "history", "--since", tomorrow)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet.")

	out, err = execute(t, "", "history", "--since", time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Contains(t, out, "Pin")
	assert.Contains(t, out, "Fork")

	_, err = execute(t, "", "history", "--since", "yesterday")
	assert.Error(t, err)

	_, err = execute(t, "", "history", "--backend", "json", "--file", filepath.Join(dir, "p.json"))
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "", "record", "--theme", "Pin", "--score", "9")
	require.NoError(t, err)

	out, err := execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Core Tactical Motifs")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Themes by current level")
}

func TestExportImport(t *testing.T) {
	dir := sandbox(t)
	exported := filepath.Join(dir, "export.json")

	_, err := execute(t, "", "record", "--theme", "Skewer", "--score", "8")
	require.NoError(t, err)
	out, err := execute(t, "", "export", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 48 themes")

	other := filepath.Join(dir, "other.db")
	out, err = execute(t, "", "import", exported, "--db", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 48 themes")

	out, err = execute(t, "", "themes", "--db", other)
	require.NoError(t, err)
	assert.Contains(t, out, "8/10]")
}

func TestImport_RejectsMalformed(t *testing.T) {
	dir := sandbox(t)
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"themes": {"Fork": {"success_rate": "high"}}}`), 0o644))

	_, err := execute(t, "", "import", bad)
	assert.Error(t, err)

	_, err = execute(t, "", "import", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "", "record", "--theme", "Pin", "--score", "9")
	require.NoError(t, err)

	_, err = execute(t, "", "reset")
	assert.Error(t, err)

	out, err := execute(t, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset 48 themes")

	out, err = execute(t, "", "themes")
	require.NoError(t, err)
	assert.NotContains(t, out, "9/10]")
}

func TestBadConfigFlag(t *testing.T) {
	sandbox(t)
	_, err := execute(t, "", "next", "--backend", "postgres")
	assert.Error(t, err)
}

func TestLevelChange(t *testing.T) {
	assert.Equal(t, "Easiest", levelChange("Easiest", "Easiest"))
	assert.Equal(t, "Easiest -> Easier", levelChange("Easiest", "Easier"))
	assert.Equal(t, "Hardest -> Complete", levelChange("Hardest", ""))
	assert.Equal(t, "Complete", levelChange("", ""))
}
