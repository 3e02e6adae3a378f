package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/difficulty"
	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/ui/theme"
)

var testNow = time.Date(2025, 6, 10, 15, 4, 5, 0, time.UTC)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, theme.Plain), &out
}

func TestPrompt(t *testing.T) {
	c, out := newTestConsole("  hello  \n")
	got, err := c.Prompt("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "Name: ", out.String())

	_, err = c.Prompt("Again: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		c, _ := newTestConsole(tt.input)
		got, err := c.Confirm("? ")
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestReadInt(t *testing.T) {
	c, _ := newTestConsole("42\n -3 \nabc\n\n")

	n, err := c.ReadInt("> ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = c.ReadInt("> ")
	require.NoError(t, err)
	assert.Equal(t, -3, n)

	_, err = c.ReadInt("> ")
	assert.ErrorIs(t, err, ErrNotNumber)

	_, err = c.ReadInt("> ")
	assert.ErrorIs(t, err, ErrNotNumber)

	_, err = c.ReadInt("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestAgo(t *testing.T) {
	day := func(n int) time.Time { return progress.DateOf(testNow.AddDate(0, 0, -n)) }

	assert.Equal(t, "today", Ago(day(0), testNow))
	assert.Equal(t, "1 day ago", Ago(day(1), testNow))
	assert.Equal(t, "3 days ago", Ago(day(3), testNow))
	assert.Equal(t, "3 weeks ago", Ago(day(21), testNow))
}

func TestLabels(t *testing.T) {
	tr := difficulty.NewTracker(difficulty.DefaultConfig())
	tp := &progress.ThemeProgress{Name: "Fork"}

	assert.Equal(t, "Easiest", LevelLabel(tr, tp))
	assert.Equal(t, "never", LastAttemptedLabel(tp, testNow))
	assert.Equal(t, "-/10", SuccessRateLabel(tp))

	d := progress.DateOf(testNow.AddDate(0, 0, -1))
	score := 7
	tp.LastAttempted = &d
	tp.SuccessRate = &score
	for _, l := range catalog.Levels() {
		tp.Levels[l] = progress.LevelCounts{PuzzlesSolved: 50, Correct: 45}
	}

	assert.Equal(t, "Complete", LevelLabel(tr, tp))
	assert.Equal(t, "2025-06-09 (1 day ago)", LastAttemptedLabel(tp, testNow))
	assert.Equal(t, "7/10", SuccessRateLabel(tp))
}

func TestRenderThemes(t *testing.T) {
	st := progress.NewState()
	tr := difficulty.NewTracker(difficulty.DefaultConfig())

	tp, err := st.Theme("Pin")
	require.NoError(t, err)
	d := progress.DateOf(testNow)
	score := 9
	tp.LastAttempted = &d
	tp.SuccessRate = &score
	tp.Levels[catalog.LevelEasiest] = progress.LevelCounts{PuzzlesSolved: 50, Correct: 40}

	var out bytes.Buffer
	RenderThemes(&out, theme.Plain, st, tr, testNow)
	text := out.String()

	cats := catalog.Categories()
	assert.True(t, strings.HasPrefix(text, "\n"+cats[0].Name+":\n"))
	for _, cat := range cats {
		assert.Contains(t, text, "\n"+cat.Name+":\n")
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	var themeLines []string
	for _, l := range lines {
		if l != "" && !strings.HasSuffix(l, ":") {
			themeLines = append(themeLines, l)
		}
	}
	require.Len(t, themeLines, catalog.Count())

	assert.Equal(t, "1   Fork                      [Easiest never -/10]", themeLines[0])
	assert.Equal(t, "3   Pin                       [Easier 2025-06-10 (today) 9/10]", themeLines[2])

	last, err := catalog.ThemeAt(catalog.Count())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(themeLines[len(themeLines)-1], fmt.Sprintf("%-3d %s ", catalog.Count(), last)))
}

func TestShowThemes_UsesConsoleOutput(t *testing.T) {
	c, out := newTestConsole("")
	c.ShowThemes(progress.NewState(), difficulty.NewTracker(difficulty.DefaultConfig()), testNow)
	assert.Contains(t, out.String(), "Fork")
}
