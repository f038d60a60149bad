package mermaid

import (
	"strings"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/token"
)

type seqArrow struct {
	text string
	kind token.Kind
}

// seqArrows - стрелки сообщений, длинные раньше коротких
var seqArrows = []seqArrow{
	{"<<-->>", token.BidirectionalDottedArrow},
	{"<<->>", token.BidirectionalSolidArrow},
	{"-->>", token.DottedArrow},
	{"->>", token.SolidArrow},
	{"-->", token.DottedOpenArrow},
	{"--x", token.DottedCross},
	{"--)", token.DottedPoint},
	{"->", token.SolidOpenArrow},
	{"-x", token.SolidCross},
	{"-)", token.SolidPoint},
}

var (
	seqArrowKinds = []token.Kind{
		token.SolidOpenArrow, token.DottedOpenArrow, token.SolidArrow, token.BidirectionalSolidArrow,
		token.DottedArrow, token.BidirectionalDottedArrow, token.SolidCross, token.DottedCross,
		token.SolidPoint, token.DottedPoint,
	}
	seqStatementStart = []token.Kind{
		token.Space, token.Newline, token.KwParticipant, token.KwParticipantActor, token.KwCreate,
		token.KwDestroy, token.KwNote, token.KwLoop, token.KwAlt, token.KwOpt, token.KwPar,
		token.KwCritical, token.KwBreak, token.KwRect, token.KwBox, token.KwActivate,
		token.KwDeactivate, token.KwAutonumber, token.KwTitle, token.Actor,
	}
)

// continuators - какой блок может продолжать каждое ключевое слово
var continuators = map[string]string{
	"else":   "alt",
	"and":    "par",
	"option": "critical",
}

// seqStatement - одна инструкция sequenceDiagram внутри строки
type seqStatement struct {
	text string
	off  uint32
	end  uint32
}

type seqParser struct {
	d      *document
	blocks []string
}

func parseSequence(d *document) error {
	p := &seqParser{d: d}
	c := d.cursor()
	c.advance(len("sequenceDiagram"))
	if b := c.peek(); b != 0 && b != ' ' && b != '\t' && b != '\n' && b != ';' {
		return d.errorAt(c.off, diag.SynBadHeader, p.classifyText(c.rest()), token.Newline)
	}

	var multiline bool
	for l := range d.lines(c.off) {
		if multiline {
			if strings.Contains(l.text, "}") {
				multiline = false
			}
			continue
		}
		for _, st := range splitStatements(l) {
			if isMultilineAccDescr(st.text) {
				multiline = !strings.Contains(st.text, "}")
				continue
			}
			if err := p.statement(st); err != nil {
				return err
			}
		}
	}
	if multiline {
		return d.eofError(diag.SynUnclosedDelimiter, token.DiamondStop)
	}
	if len(p.blocks) > 0 {
		return d.eofError(diag.SynUnclosedBlock, token.KwEnd)
	}
	return nil
}

// splitStatements делит строку по ';', не трогая сущности вида #59;
func splitStatements(l line) []seqStatement {
	var out []seqStatement
	text := l.text
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != ';' || isEntityEnd(text, i) {
			continue
		}
		out = appendStatement(out, text[start:i], l.off+offsetOf(start))
		start = i + 1
	}
	return appendStatement(out, text[start:], l.off+offsetOf(start))
}

func appendStatement(out []seqStatement, text string, off uint32) []seqStatement {
	trimmed := strings.TrimLeft(text, " \t")
	lead := offsetOf(len(text) - len(trimmed))
	trimmed = strings.TrimRight(trimmed, " \t\r")
	if trimmed == "" {
		return out
	}
	start := off + lead
	return append(out, seqStatement{text: trimmed, off: start, end: start + offsetOf(len(trimmed))})
}

// isEntityEnd reports whether the ';' at i closes an entity like #59; or #quot;.
func isEntityEnd(text string, i int) bool {
	j := i - 1
	for j >= 0 && (isASCIILetter(text[j]) || isDigit(text[j])) {
		j--
	}
	return j >= 0 && j < i-1 && text[j] == '#'
}

func isMultilineAccDescr(text string) bool {
	if !strings.HasPrefix(text, "accDescr") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(text[len("accDescr"):]), "{")
}

func (p *seqParser) statement(st seqStatement) error {
	word, rest := splitWord(st.text)
	switch strings.ToLower(word) {
	case "participant", "actor":
		return p.participant(st, rest)
	case "create":
		kw, tail := splitWord(rest)
		if k := strings.ToLower(kw); k != "participant" && k != "actor" {
			return p.errorAfter(st, word, token.KwParticipant, token.KwParticipantActor)
		}
		return p.participant(st, tail)
	case "destroy", "activate", "deactivate":
		if rest == "" {
			return p.errorAfter(st, word, token.Actor)
		}
		return nil
	case "box":
		p.blocks = append(p.blocks, "box")
		return nil
	case "loop", "alt", "opt", "par", "critical", "break":
		p.blocks = append(p.blocks, strings.ToLower(word))
		return nil
	case "par_over":
		p.blocks = append(p.blocks, "par")
		return nil
	case "rect":
		if rest == "" {
			return p.errorAfter(st, word, token.Txt)
		}
		p.blocks = append(p.blocks, "rect")
		return nil
	case "else", "and", "option":
		want := continuators[strings.ToLower(word)]
		if len(p.blocks) == 0 || p.blocks[len(p.blocks)-1] != want {
			return p.d.errorAt(st.off, diag.SynMisplacedContinuator, keywordKind(word), seqStatementStart...)
		}
		return nil
	case "end":
		if len(p.blocks) == 0 {
			return p.d.errorAt(st.off, diag.SynUnexpectedEnd, token.KwEnd, seqStatementStart...)
		}
		p.blocks = p.blocks[:len(p.blocks)-1]
		return nil
	case "autonumber":
		return p.autonumber(st, rest)
	case "note":
		return p.note(st, rest)
	case "title":
		return nil
	case "links", "link", "properties", "details":
		if !strings.Contains(rest, ":") {
			return p.errorAfter(st, st.text, token.Colon)
		}
		return nil
	}
	if strings.HasPrefix(st.text, "title:") || strings.HasPrefix(st.text, "title :") {
		return nil
	}
	if strings.HasPrefix(st.text, "accTitle") || strings.HasPrefix(st.text, "accDescr") {
		if !strings.Contains(st.text, ":") {
			return p.errorAfter(st, st.text, token.Colon)
		}
		return nil
	}
	return p.signal(st)
}

func (p *seqParser) participant(st seqStatement, rest string) error {
	if rest == "" {
		return p.errorAfter(st, st.text, token.Actor)
	}
	name, alias, hasAlias := strings.Cut(rest, " as ")
	if strings.TrimSpace(name) == "" {
		return p.d.errorAt(st.off, diag.SynUnexpectedToken, token.KwAs, token.Actor)
	}
	if hasAlias && strings.TrimSpace(alias) == "" {
		return p.errorAfter(st, st.text, token.Txt)
	}
	return nil
}

func (p *seqParser) autonumber(st seqStatement, rest string) error {
	if rest == "" || rest == "off" {
		return nil
	}
	for _, f := range strings.Fields(rest) {
		for i := range len(f) {
			if !isDigit(f[i]) {
				off := st.off + offsetOf(strings.Index(st.text, f))
				return p.d.errorAt(off, diag.SynBadNumber, p.classifyText(f), token.Num, token.Newline)
			}
		}
	}
	return nil
}

// note проверяет "note left of A: text", "note over A,B: text"
func (p *seqParser) note(st seqStatement, rest string) error {
	lower := strings.ToLower(rest)
	var placement string
	for _, pl := range []string{"left of", "right of", "over"} {
		if strings.HasPrefix(lower, pl) {
			placement = pl
			break
		}
	}
	if placement == "" {
		return p.errorAfter(st, "note", token.KwLeftOf, token.KwRightOf, token.KwOver)
	}
	body := rest[len(placement):]
	actors, _, ok := strings.Cut(body, ":")
	if !ok {
		return p.d.errorAt(st.end, diag.SynMissingMessage, token.Newline, token.Txt)
	}
	for _, a := range strings.Split(actors, ",") {
		if strings.TrimSpace(a) == "" {
			return p.d.errorAt(st.off, diag.SynUnexpectedToken, token.Colon, token.Actor)
		}
	}
	return nil
}

// signal разбирает "A->>B: сообщение"
func (p *seqParser) signal(st seqStatement) error {
	text := st.text
	at, arrow := findArrow(text)
	if at < 0 {
		return p.d.errorAt(st.end, diag.SynUnexpectedToken, token.Newline, seqArrowKinds...)
	}
	if strings.TrimSpace(text[:at]) == "" {
		return p.d.errorAt(st.off, diag.SynUnexpectedToken, arrow.kind, seqStatementStart...)
	}
	if i := actorFault(text[:at]); i >= 0 {
		return p.d.lexicalAt(st.off + offsetOf(i))
	}

	targetAt := at + len(arrow.text)
	rest := text[targetAt:]
	trimmed := strings.TrimLeft(rest, " \t")
	if strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "-") {
		trimmed = trimmed[1:]
	}
	target, _, hasColon := strings.Cut(trimmed, ":")
	targetOff := st.off + offsetOf(targetAt+len(rest)-len(trimmed))
	if strings.TrimSpace(target) == "" {
		got := token.Newline
		if hasColon {
			got = token.Txt
		}
		return p.d.errorAt(targetOff, diag.SynUnexpectedToken, got, token.Actor)
	}
	if i := actorFault(target); i >= 0 {
		return p.d.lexicalAt(targetOff + offsetOf(i))
	}
	if !hasColon {
		return p.d.errorAt(st.end, diag.SynMissingMessage, token.Newline, token.Txt)
	}
	return nil
}

// actorFault returns the index of the first byte that cannot be part of an
// actor name, or -1. '<' and '>' never can, '-' only between other characters.
func actorFault(name string) int {
	if i := strings.IndexAny(name, "<>"); i >= 0 {
		return i
	}
	lead := len(name) - len(strings.TrimLeft(name, " \t"))
	if strings.HasPrefix(name[lead:], "-") {
		return lead
	}
	if trimmed := strings.TrimRight(name, " \t"); strings.HasSuffix(trimmed, "-") {
		return len(trimmed) - 1
	}
	return -1
}

func findArrow(text string) (int, seqArrow) {
	for i := 0; i < len(text); i++ {
		if text[i] != '-' && text[i] != '<' {
			continue
		}
		for _, a := range seqArrows {
			if strings.HasPrefix(text[i:], a.text) {
				return i, a
			}
		}
	}
	return -1, seqArrow{}
}

// errorAfter сообщает об ошибке сразу после префикса prefix инструкции
func (p *seqParser) errorAfter(st seqStatement, prefix string, expected ...token.Kind) error {
	off := st.off + offsetOf(min(len(prefix), len(st.text)))
	got := token.Newline
	if off < st.end {
		got = p.classifyText(strings.TrimSpace(st.text[off-st.off:]))
	}
	return p.d.errorAt(off, diag.SynUnexpectedToken, got, expected...)
}

func (p *seqParser) classifyText(s string) token.Kind {
	switch {
	case s == "":
		return token.Newline
	case s[0] == ':':
		return token.Txt
	case s[0] == ',':
		return token.Comma
	case isDigit(s[0]):
		return token.Num
	}
	return token.Actor
}

func keywordKind(word string) token.Kind {
	switch strings.ToLower(word) {
	case "else":
		return token.KwElse
	case "and":
		return token.KwAnd
	case "option":
		return token.KwOption
	}
	return token.Actor
}

// splitWord отделяет первое слово от остатка строки
func splitWord(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
