package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ssmythe/tactics-manager/internal/ui/theme"
)

// ErrNotNumber is returned by ReadInt when the answer is not an integer.
var ErrNotNumber = errors.New("not a number")

// Console is a line-oriented text interface: prompts go to out, answers are
// read one line at a time from in.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	pal theme.Palette
}

// New creates a Console.
func New(in io.Reader, out io.Writer, pal theme.Palette) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, pal: pal}
}

// Out returns the writer prompts and messages go to.
func (c *Console) Out() io.Writer { return c.out }

// Palette returns the console's styling.
func (c *Console) Palette() theme.Palette { return c.pal }

// Println writes a line to the console output.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted text to the console output.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Prompt writes msg without a newline and returns the next input line with
// surrounding space trimmed. It returns io.EOF when input is exhausted.
func (c *Console) Prompt(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		// Keep the transcript tidy when input ends mid-prompt.
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Confirm asks a yes/no question. Only an answer starting with y or Y counts
// as yes; an empty answer or end of input is no.
func (c *Console) Confirm(msg string) (bool, error) {
	answer, err := c.Prompt(msg)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// ReadInt asks for an integer. Non-numeric answers yield ErrNotNumber.
func (c *Console) ReadInt(msg string) (int, error) {
	answer, err := c.Prompt(msg)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, answer)
	}
	return n, nil
}
