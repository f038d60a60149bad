package mermaid

import (
	"strings"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/token"
)

// mindShape - форма узла mindmap; у облака и взрыва скобки перевёрнуты
type mindShape struct {
	open  string
	close string
	kind  token.Kind
}

// Длинные открывающие последовательности проверяются первыми.
var mindShapes = []mindShape{
	{"((", "))", token.PE},
	{"))", "((", token.PS},
	{"{{", "}}", token.DiamondStop},
	{"(", ")", token.PE},
	{")", "(", token.PS},
	{"[", "]", token.SQE},
}

// parseMindmap checks that every node line closes the shape it opens.
// A quoted description may span lines.
func parseMindmap(d *document) error {
	_, next := d.header()
	var pending *mindShape
	for l := range d.lines(next) {
		if pending != nil {
			q := strings.IndexByte(l.text, '"')
			if q < 0 {
				continue
			}
			if err := closeMindShape(d, l, q+1, *pending); err != nil {
				return err
			}
			pending = nil
			continue
		}
		if strings.HasPrefix(l.text, ":::") {
			continue
		}
		if strings.HasPrefix(l.text, "::icon(") {
			if !strings.HasSuffix(l.text, ")") {
				return d.errorAt(l.end, diag.SynUnclosedDelimiter, token.Newline, token.PE)
			}
			continue
		}

		i := strings.IndexAny(l.text, "()[{}")
		if i < 0 {
			continue
		}
		if l.text[i] == '}' || (l.text[i] == '{' && !strings.HasPrefix(l.text[i:], "{{")) {
			return d.lexicalAt(l.off + offsetOf(i))
		}
		s := mindShapeAt(l.text[i:])
		body := i + len(s.open)
		if strings.HasPrefix(l.text[body:], `"`) {
			q := strings.IndexByte(l.text[body+1:], '"')
			if q < 0 {
				pending = &s
				continue
			}
			if err := closeMindShape(d, l, body+1+q+1, s); err != nil {
				return err
			}
			continue
		}
		c := strings.Index(l.text[body:], s.close)
		if c < 0 {
			return d.errorAt(l.end, diag.SynUnclosedDelimiter, token.Newline, s.kind)
		}
		if err := mindLineEnd(d, l, body+c+len(s.close)); err != nil {
			return err
		}
	}
	if pending != nil {
		return d.eofError(diag.LexUnterminatedString, token.Str)
	}
	return nil
}

func mindShapeAt(text string) mindShape {
	for _, s := range mindShapes {
		if strings.HasPrefix(text, s.open) {
			return s
		}
	}
	// сюда не доходим: вызывающий уже нашёл открывающую скобку
	return mindShapes[len(mindShapes)-1]
}

// closeMindShape expects s.close right after the quoted description ending at at.
func closeMindShape(d *document, l line, at int, s mindShape) error {
	rest := strings.TrimLeft(l.text[at:], " \t")
	at += len(l.text[at:]) - len(rest)
	if !strings.HasPrefix(rest, s.close) {
		return d.errorAt(l.off+offsetOf(at), diag.SynUnclosedDelimiter, classifyLine(rest), s.kind)
	}
	return mindLineEnd(d, l, at+len(s.close))
}

// mindLineEnd rejects anything after a closed node shape.
func mindLineEnd(d *document, l line, at int) error {
	rest := strings.TrimLeft(l.text[at:], " \t")
	if rest == "" {
		return nil
	}
	at += len(l.text[at:]) - len(rest)
	return d.errorAt(l.off+offsetOf(at), diag.SynUnexpectedToken, classifyLine(rest), token.Newline)
}
