package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Item is one validated diagram as shown to the user.
type Item struct {
	// Name is the file path, or path:blockN for a block of a Markdown file.
	Name  string
	Valid bool
	Error string
	// Line is where the block starts in its Markdown file, 0 for whole files.
	Line int
}

// Text prints validation results with ✓/✗ marks.
type Text struct {
	w     io.Writer
	opts  TextOpts
	green *color.Color
	red   *color.Color
	warn  *color.Color
}

// NewText creates a text renderer writing to w.
func NewText(w io.Writer, opts TextOpts) *Text {
	t := &Text{
		w:     w,
		opts:  opts,
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed),
		warn:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{t.green, t.red, t.warn} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// Item prints a ✓ line for a valid diagram (unless quiet) or a ✗ line
// followed by the head of the error, indented by two spaces.
func (t *Text) Item(it Item) {
	if it.Valid {
		if !t.opts.Quiet {
			fmt.Fprintf(t.w, "%s %s\n", t.green.Sprint("✓"), it.Name)
		}
		return
	}

	name := it.Name
	if it.Line > 0 {
		name = fmt.Sprintf("%s (line %d)", name, it.Line)
	}
	fmt.Fprintf(t.w, "%s %s\n", t.red.Sprint("✗"), name)
	for _, line := range ErrorLines(it.Error, t.opts.maxErrorLines()) {
		fmt.Fprintf(t.w, "  %s\n", line)
	}
}

// Summary prints the trailing blank line and the totals.
func (t *Text) Summary(valid, invalid int) {
	invalidText := fmt.Sprintf("%d invalid", invalid)
	if invalid > 0 {
		invalidText = t.red.Sprint(invalidText)
	}
	fmt.Fprintf(t.w, "\nSummary: %s, %s\n", t.green.Sprintf("%d valid", valid), invalidText)
}

// Single prints the verdict for a diagram read from stdin. The error is
// printed in full.
func (t *Text) Single(valid bool, errText string) {
	if valid {
		fmt.Fprintln(t.w, t.green.Sprint("Valid"))
		return
	}
	fmt.Fprintln(t.w, t.red.Sprint("Invalid"))
	fmt.Fprintln(t.w, errText)
}

// NoFiles reports an input that resolved to nothing to check.
func (t *Text) NoFiles() {
	fmt.Fprintln(t.w, t.warn.Sprint("No markdown files found"))
}

// ErrorLines splits msg into lines and keeps at most limit of them.
// A negative limit keeps everything.
func ErrorLines(msg string, limit int) []string {
	if msg == "" {
		return nil
	}
	lines := strings.Split(msg, "\n")
	if limit >= 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return lines
}

// PrintError writes a fatal error as "Error: <message>" in red.
func PrintError(w io.Writer, msg string, colored bool) {
	c := color.New(color.FgRed)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	fmt.Fprintln(w, c.Sprint("Error: "+msg))
}
