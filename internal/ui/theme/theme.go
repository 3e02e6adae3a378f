package theme

import (
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/term"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#EAB308") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Category = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	Index = lipgloss.NewStyle().
		Foreground(Accent)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Complete = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Warning)
)

// Palette renders text in the styles above, or passes it through untouched
// when styling is off.
type Palette struct {
	enabled bool
}

// Plain is a palette that never styles.
var Plain = Palette{}

// NewPalette returns a palette that styles when enabled is true.
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// Enabled reports whether the palette styles its output.
func (p Palette) Enabled() bool {
	return p.enabled
}

func (p Palette) render(s lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return s.Render(text)
}

func (p Palette) Title(text string) string { return p.render(Title, text) }
func (p Palette) Category(text string) string { return p.render(Category, text) }
func (p Palette) Index(text string) string { return p.render(Index, text) }
func (p Palette) Body(text string) string { return p.render(Body, text) }
func (p Palette) Hint(text string) string { return p.render(Hint, text) }
func (p Palette) Complete(text string) string { return p.render(Complete, text) }
func (p Palette) Correct(text string) string { return p.render(Correct, text) }
func (p Palette) Incorrect(text string) string { return p.render(Incorrect, text) }
func (p Palette) Notice(text string) string { return p.render(Notice, text) }

// Detect resolves a color mode ("auto", "always", "never") for w. In auto
// mode styling is on only when w is a terminal and NO_COLOR is unset.
func Detect(mode string, w io.Writer) Palette {
	switch mode {
	case "always":
		return NewPalette(true)
	case "never":
		return Plain
	}
	if os.Getenv("NO_COLOR") != "" {
		return Plain
	}
	f, ok := w.(*os.File)
	if !ok {
		return Plain
	}
	return NewPalette(term.IsTerminal(f.Fd()))
}
