package mermaid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/source"
	"mermaid-validate/internal/token"
)

// ErrNotInitialized is returned by Parse when Initialize has not been called.
var ErrNotInitialized = errors.New("mermaid parser environment is not initialized")

// contextWidth - сколько символов показывать до и после позиции ошибки
const contextWidth = 20

// ParseError describes a grammar failure at a concrete position.
type ParseError struct {
	Code     diag.Code
	Span     source.Span
	Pos      source.LineCol
	Expected []string
	Got      string
	// Lexical marks failures where no token could be formed at all.
	Lexical bool
	// Excerpt holds the context line and the caret line.
	Excerpt string
}

func (e *ParseError) Error() string {
	if e.Lexical {
		return fmt.Sprintf("Lexical error on line %d. Unrecognized text.\n%s", e.Pos.Line, e.Excerpt)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Parse error on line %d:\n%s\n", e.Pos.Line, e.Excerpt)
	if len(e.Expected) == 0 {
		fmt.Fprintf(&b, "Unexpected '%s'", e.Got)
		return b.String()
	}
	quoted := make([]string, len(e.Expected))
	for i, name := range e.Expected {
		quoted[i] = "'" + name + "'"
	}
	fmt.Fprintf(&b, "Expecting %s, got '%s'", strings.Join(quoted, ", "), e.Got)
	return b.String()
}

// UnknownDiagramError is returned when no registered diagram type matches the text.
type UnknownDiagramError struct {
	Text string
}

func (e *UnknownDiagramError) Error() string {
	return "No diagram type detected matching given configuration for text: " + e.Text
}

// SemanticError reports a diagram that parses but describes an impossible state,
// e.g. a gitGraph merge of an unknown branch.
type SemanticError struct {
	Code diag.Code
	Pos  source.LineCol
	Msg  string
}

func (e *SemanticError) Error() string {
	return e.Msg
}

// DiagCode extracts the diagnostic code carried by err, if any.
func DiagCode(err error) (diag.Code, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	var se *SemanticError
	if errors.As(err, &se) {
		return se.Code, true
	}
	var ue *UnknownDiagramError
	if errors.As(err, &ue) {
		return diag.SynUnknownDiagram, true
	}
	if errors.Is(err, ErrNotInitialized) {
		return diag.EnvNotInitialized, true
	}
	return diag.UnknownCode, false
}

func newParseError(f *source.File, off uint32, code diag.Code, got token.Kind, expected ...token.Kind) *ParseError {
	return &ParseError{
		Code:     code,
		Span:     source.Span{File: f.ID, Start: off, End: off},
		Pos:      f.Position(off),
		Expected: token.Names(expected...),
		Got:      got.String(),
		Excerpt:  showPosition(f.Content, off),
	}
}

func newLexicalError(f *source.File, off uint32) *ParseError {
	return &ParseError{
		Code:    diag.LexUnexpectedChar,
		Span:    source.Span{File: f.ID, Start: off, End: off},
		Pos:     f.Position(off),
		Got:     token.Invalid.String(),
		Lexical: true,
		Excerpt: showPosition(f.Content, off),
	}
}

// showPosition рисует контекст вокруг off и каретку под позицией ошибки
func showPosition(content []byte, off uint32) string {
	past := []rune(string(content[:off]))
	pre := ""
	if len(past) > contextWidth {
		pre = "..."
		past = past[len(past)-contextWidth:]
	}
	pastText := pre + strings.ReplaceAll(string(past), "\n", "")

	next := []rune(string(content[off:]))
	post := ""
	if len(next) > contextWidth {
		post = "..."
		next = next[:contextWidth]
	}
	nextText := strings.ReplaceAll(string(next), "\n", "") + post

	return pastText + nextText + "\n" + strings.Repeat("-", runewidth.StringWidth(pastText)) + "^"
}
