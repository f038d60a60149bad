package mermaid

import (
	"strings"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/token"
)

type structureOpts struct {
	// brackets enables (), [] and {} balance checking. Diagrams with free
	// text such as timeline and sankey leave it off.
	brackets bool
}

type openBracket struct {
	ch  byte
	off uint32
}

var bracketPairs = map[byte]byte{')': '(', ']': '[', '}': '{'}

// structural проверяет только парность кавычек и скобок
func structural(opts structureOpts) parseFunc {
	return func(d *document) error {
		_, next := d.header()
		var stack []openBracket
		for l := range d.lines(next) {
			inQuote := false
			var quoteAt uint32
			for i := 0; i < len(l.text); i++ {
				b := l.text[i]
				off := l.off + offsetOf(i)
				if b == '"' {
					inQuote = !inQuote
					quoteAt = off
					continue
				}
				if inQuote || !opts.brackets {
					continue
				}
				switch b {
				case '(', '[', '{':
					stack = append(stack, openBracket{ch: b, off: off})
				case ')', ']', '}':
					if len(stack) == 0 || stack[len(stack)-1].ch != bracketPairs[b] {
						expected := []token.Kind{token.Newline}
						if len(stack) > 0 {
							expected = []token.Kind{closerKind(stack[len(stack)-1].ch)}
						}
						return d.errorAt(off, diag.SynUnclosedDelimiter, closerKind(b), expected...)
					}
					stack = stack[:len(stack)-1]
				}
			}
			if inQuote {
				return d.errorAt(quoteAt, diag.LexUnterminatedString, token.Newline, token.Str)
			}
		}
		if len(stack) > 0 {
			return d.eofError(diag.SynUnclosedDelimiter, closerKind(stack[len(stack)-1].ch))
		}
		return nil
	}
}

func closerKind(b byte) token.Kind {
	switch b {
	case '(', ')':
		return token.PE
	case '[', ']':
		return token.SQE
	default:
		return token.BlockEnd
	}
}

// parseInfo принимает только "info" и необязательный "showInfo"
func parseInfo(d *document) error {
	head, next := d.header()
	if rest := strings.TrimSpace(strings.TrimPrefix(head.text, "info")); rest != "" && rest != "showInfo" {
		return d.errorAt(head.off+offsetOf(len("info")), diag.SynBadHeader, classifyLine(rest), token.Newline)
	}
	for l := range d.lines(next) {
		if l.text != "showInfo" {
			return d.errorAt(l.off, diag.SynUnexpectedStatement, classifyLine(l.text), token.Newline, token.EOF)
		}
	}
	return nil
}
