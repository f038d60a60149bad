package mermaid

import (
	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/source"
	"mermaid-validate/internal/token"
)

// shape описывает открывающую и допустимые закрывающие скобки формы вершины
type shape struct {
	open    string
	kind    token.Kind
	closers []string
}

// Порядок важен: длинные открывающие последовательности проверяются первыми.
var flowShapes = []shape{
	{"(((", token.DoubleCircleStart, []string{")))"}},
	{"((", token.PS, []string{"))"}},
	{"([", token.StadiumStart, []string{"])"}},
	{"(-", token.EllipseStart, []string{"-)"}},
	{"(", token.PS, []string{")"}},
	{"[[", token.SubroutineStart, []string{"]]"}},
	{"[(", token.CylinderStart, []string{")]"}},
	{"[/", token.TrapStart, []string{"/]", "\\]"}},
	{"[\\", token.InvTrapStart, []string{"\\]", "/]"}},
	{"[", token.SQS, []string{"]"}},
	{"{{", token.DiamondStart, []string{"}}"}},
	{"{", token.DiamondStart, []string{"}"}},
	{">", token.TagEnd, []string{"]"}},
}

var squareShape = shape{"[", token.SQS, []string{"]"}}

var flowClosers = []struct {
	text string
	kind token.Kind
}{
	{")))", token.DoubleCircleEnd},
	{"])", token.StadiumEnd},
	{"]]", token.SubroutineEnd},
	{")]", token.CylinderEnd},
	{"-)", token.EllipseEnd},
	{"/]", token.TrapEnd},
	{"\\]", token.InvTrapEnd},
}

var (
	flowDirections    = []string{"TB", "TD", "BT", "RL", "LR", ">", "<", "^", "v"}
	subgraphDirection = []string{"TB", "TD", "BT", "RL", "LR"}

	vertexStart = []token.Kind{token.NodeString, token.Num, token.Minus, token.Str}

	statementFollow = []token.Kind{
		token.Semi, token.Newline, token.EOF, token.Amp, token.StyleSeparator,
		token.Link, token.StartLink, token.SQS, token.PS, token.DiamondStart, token.TagEnd,
	}

	shapeTextFollow = []token.Kind{
		token.SQE, token.DoubleCircleEnd, token.PE, token.EllipseEnd, token.StadiumEnd,
		token.SubroutineEnd, token.Pipe, token.CylinderEnd, token.DiamondStop, token.TagEnd,
		token.TrapEnd, token.InvTrapEnd, token.Text,
	}

	flowStatementStart = []token.Kind{
		token.EOF, token.Newline, token.Semi, token.KwSubgraph, token.KwStyle, token.KwLinkStyle,
		token.KwClassDef, token.KwClass, token.KwClick, token.NodeString,
	}
)

// flowParser разбирает flowchart/graph рекурсивным спуском
type flowParser struct {
	d *document
	c cursor
	// offsets of subgraph keywords that still wait for their end
	subgraphs []uint32
}

func parseFlowchart(d *document) error {
	p := &flowParser{d: d, c: d.cursor()}
	if err := p.header(); err != nil {
		return err
	}
	return p.body()
}

func (p *flowParser) header() error {
	switch {
	case p.c.hasPrefix("flowchart-elk"):
		p.c.advance(len("flowchart-elk"))
	case p.c.hasPrefix("flowchart"):
		p.c.advance(len("flowchart"))
	case p.c.hasPrefix("graph"):
		p.c.advance(len("graph"))
	default:
		return p.d.errorAt(p.c.off, diag.SynBadHeader, token.Invalid, token.KwGraph)
	}
	p.c.skipSpaces()
	if p.atStatementEnd() {
		return nil
	}
	matched := false
	for _, dir := range flowDirections {
		if p.c.hasPrefix(dir) {
			p.c.advance(len(dir))
			matched = true
			break
		}
	}
	if !matched {
		return p.d.lexicalAt(p.c.off)
	}
	p.c.skipSpaces()
	if p.atStatementEnd() {
		return nil
	}
	return p.unexpected(diag.SynBadHeader, token.Semi, token.Newline, token.Space)
}

func (p *flowParser) body() error {
	for {
		p.skipSeparators()
		if p.c.eof() {
			break
		}
		if err := p.statement(); err != nil {
			return err
		}
		if err := p.statementEnd(); err != nil {
			return err
		}
	}
	if len(p.subgraphs) > 0 {
		return p.d.eofError(diag.SynUnclosedBlock, token.KwEnd, token.Newline, token.Semi, token.NodeString)
	}
	return nil
}

func (p *flowParser) skipSeparators() {
	for !p.c.eof() {
		switch p.c.peek() {
		case ' ', '\t', '\r', '\n', ';':
			p.c.bump()
		case '%':
			if !p.c.hasPrefix(commentPrefix) {
				return
			}
			p.c.skipLine()
		default:
			return
		}
	}
}

func (p *flowParser) atStatementEnd() bool {
	return p.peekToken().IsLineEnd()
}

func (p *flowParser) statementEnd() error {
	p.c.skipSpaces()
	if p.atStatementEnd() || p.c.hasPrefix(commentPrefix) {
		return nil
	}
	return p.unexpected(diag.SynUnexpectedToken, statementFollow...)
}

func (p *flowParser) statement() error {
	switch word := p.keywordAt(); word {
	case "subgraph":
		return p.subgraph()
	case "end":
		return p.end()
	case "direction":
		return p.direction()
	case "classDef", "class", "style", "linkStyle", "click":
		return p.styleStatement(word)
	case "accTitle", "accDescr":
		return p.accessibility(word)
	}
	return p.vertexChain()
}

// keywordAt возвращает слово под курсором, если за ним не продолжается идентификатор
func (p *flowParser) keywordAt() string {
	content := p.c.file.Content
	end := p.c.off
	for end < p.c.limit && isASCIILetter(content[end]) {
		end++
	}
	if end < p.c.limit {
		if b := content[end]; isASCIILetter(b) || isDigit(b) || b == '_' {
			return ""
		}
	}
	return string(content[p.c.off:end])
}

func (p *flowParser) subgraph() error {
	p.subgraphs = append(p.subgraphs, p.c.off)
	p.c.advance(len("subgraph"))
	if !p.c.skipSpaces() || p.atStatementEnd() {
		return nil
	}
	if p.c.peek() == '"' {
		if err := p.quoted(); err != nil {
			return err
		}
	} else {
		for !p.atStatementEnd() && p.c.peek() != '[' {
			p.c.bump()
		}
	}
	p.c.skipSpaces()
	if p.c.peek() != '[' {
		return nil
	}
	p.c.bump()
	return p.shapeBody(squareShape)
}

func (p *flowParser) end() error {
	if len(p.subgraphs) == 0 {
		return p.d.errorAt(p.c.off, diag.SynUnexpectedEnd, token.KwEnd, flowStatementStart...)
	}
	p.subgraphs = p.subgraphs[:len(p.subgraphs)-1]
	p.c.advance(len("end"))
	return nil
}

func (p *flowParser) direction() error {
	p.c.advance(len("direction"))
	if !p.c.skipSpaces() {
		return p.unexpected(diag.SynUnexpectedToken, token.Dir)
	}
	for _, dir := range subgraphDirection {
		if p.c.hasPrefix(dir) {
			p.c.advance(len(dir))
			return nil
		}
	}
	return p.unexpected(diag.SynUnexpectedToken, token.Dir)
}

// styleStatement принимает classDef/class/style/linkStyle/click с непустым хвостом
func (p *flowParser) styleStatement(word string) error {
	p.c.advance(len(word))
	if !p.c.skipSpaces() || p.atStatementEnd() {
		return p.unexpected(diag.SynUnexpectedToken, token.Space)
	}
	for !p.atStatementEnd() {
		if p.c.peek() == '"' {
			if err := p.quoted(); err != nil {
				return err
			}
			continue
		}
		p.c.bump()
	}
	return nil
}

func (p *flowParser) accessibility(word string) error {
	p.c.advance(len(word))
	p.c.skipSpaces()
	switch {
	case p.c.peek() == ':':
		p.c.skipLine()
		return nil
	case word == "accDescr" && p.c.peek() == '{':
		for !p.c.eof() {
			if p.c.bump() == '}' {
				return nil
			}
		}
		return p.d.eofError(diag.SynUnclosedDelimiter, token.DiamondStop)
	}
	return p.unexpected(diag.SynUnexpectedToken, token.Colon)
}

func (p *flowParser) vertexChain() error {
	if err := p.nodeGroup(); err != nil {
		return err
	}
	for {
		p.c.skipSpaces()
		if !p.atLink() {
			return nil
		}
		if err := p.link(); err != nil {
			return err
		}
		p.c.skipSpaces()
		if err := p.nodeGroup(); err != nil {
			return err
		}
	}
}

// nodeGroup - одна или несколько вершин, соединённых '&'
func (p *flowParser) nodeGroup() error {
	for {
		if err := p.node(); err != nil {
			return err
		}
		p.c.skipSpaces()
		if p.c.peek() != '&' {
			return nil
		}
		p.c.bump()
		p.c.skipSpaces()
	}
}

func (p *flowParser) node() error {
	if !p.scanNodeID() {
		return p.unexpected(diag.SynUnexpectedToken, vertexStart...)
	}
	if p.c.hasPrefix("@{") {
		if err := p.shapeData(); err != nil {
			return err
		}
	} else {
		save := p.c.off
		p.c.skipSpaces()
		if s, ok := p.shapeAt(); ok {
			p.c.advance(len(s.open))
			if err := p.shapeBody(s); err != nil {
				return err
			}
		} else {
			p.c.off = save
		}
	}
	if p.c.hasPrefix(":::") {
		p.c.advance(len(":::"))
		if !p.scanNodeID() {
			return p.unexpected(diag.SynUnexpectedToken, token.NodeString)
		}
	}
	return nil
}

func (p *flowParser) scanNodeID() bool {
	start := p.c.off
	for !p.c.eof() && isNodeByte(p.c.peek(), p.c.peekAt(1)) {
		p.c.bump()
	}
	return p.c.off > start
}

func (p *flowParser) shapeAt() (shape, bool) {
	if !p.peekToken().IsShapeOpen() {
		return shape{}, false
	}
	for _, s := range flowShapes {
		if p.c.hasPrefix(s.open) {
			return s, true
		}
	}
	return shape{}, false
}

func (p *flowParser) shapeBody(s shape) error {
	p.c.skipSpaces()
	if p.c.peek() == '"' {
		if err := p.quoted(); err != nil {
			return err
		}
		p.c.skipSpaces()
		if p.closeShape(s) {
			return nil
		}
		return p.unexpected(diag.SynUnclosedDelimiter, shapeTextFollow...)
	}
	n := 0
	for {
		if p.c.eof() {
			return p.d.eofError(diag.SynUnclosedDelimiter, shapeTextFollow...)
		}
		if n > 0 && p.closeShape(s) {
			return nil
		}
		switch p.c.peek() {
		case '(', ')', '[', ']', '{', '}', '"':
			return p.unexpected(diag.SynUnexpectedToken, shapeTextFollow...)
		}
		p.c.bump()
		n++
	}
}

func (p *flowParser) closeShape(s shape) bool {
	for _, closer := range s.closers {
		if p.c.hasPrefix(closer) {
			p.c.advance(len(closer))
			return true
		}
	}
	return false
}

// shapeData пропускает блок свойств вершины A@{ shape: rect }
func (p *flowParser) shapeData() error {
	p.c.advance(len("@{"))
	for !p.c.eof() {
		switch p.c.peek() {
		case '"':
			if err := p.quoted(); err != nil {
				return err
			}
		case '}':
			p.c.bump()
			return nil
		default:
			p.c.bump()
		}
	}
	return p.d.eofError(diag.SynUnclosedDelimiter, token.DiamondStop)
}

func (p *flowParser) quoted() error {
	p.c.bump()
	for !p.c.eof() {
		if p.c.bump() == '"' {
			return nil
		}
	}
	return p.d.eofError(diag.LexUnterminatedString, token.Str)
}

func (p *flowParser) atLink() bool {
	c := p.c
	kind, _ := scanLinkHead(&c)
	return kind != token.Invalid
}

func (p *flowParser) link() error {
	kind, style := scanLinkHead(&p.c)
	switch kind {
	case token.Link:
	case token.StartLink:
		if err := p.linkText(style); err != nil {
			return err
		}
	default:
		return p.unexpected(diag.SynUnexpectedToken, token.Link)
	}
	p.c.skipSpaces()
	if p.c.peek() != '|' {
		return nil
	}
	p.c.bump()
	for !p.c.eof() {
		switch p.c.peek() {
		case '|':
			p.c.bump()
			return nil
		case '\n':
			return p.unexpected(diag.SynUnclosedDelimiter, token.Pipe)
		case '"':
			if err := p.quoted(); err != nil {
				return err
			}
		default:
			p.c.bump()
		}
	}
	return p.d.eofError(diag.SynUnclosedDelimiter, token.Pipe)
}

// linkText читает текст ребра вида "-- текст -->" до закрывающей части стрелки
func (p *flowParser) linkText(style byte) error {
	p.c.skipSpaces()
	n := 0
	if p.c.peek() == '"' {
		if err := p.quoted(); err != nil {
			return err
		}
		n++
	}
	for {
		if p.c.eof() || p.c.peek() == '\n' {
			return p.unexpected(diag.SynUnexpectedToken, token.Link, token.Text)
		}
		if n > 0 && linkClosesAt(&p.c, style) {
			return nil
		}
		p.c.bump()
		n++
	}
}

// scanLinkHead распознаёт стрелку или начало стрелки с текстом.
// Возвращает Link, StartLink (с символом стиля '-', '=' или '.') либо Invalid.
func scanLinkHead(c *cursor) (token.Kind, byte) {
	probe := *c
	if b := probe.peek(); (b == '<' || b == 'x' || b == 'o') && (probe.peekAt(1) == '-' || probe.peekAt(1) == '=') {
		probe.bump()
	}
	switch {
	case probe.hasPrefix("~~~"):
		for probe.peek() == '~' {
			probe.bump()
		}
		*c = probe
		return token.Link, '~'
	case probe.hasPrefix("-."):
		probe.bump()
		for probe.peek() == '.' {
			probe.bump()
		}
		if probe.peek() == '-' {
			probe.bump()
			if isLinkEnd(probe.peek()) {
				probe.bump()
			}
			*c = probe
			return token.Link, '.'
		}
		*c = probe
		return token.StartLink, '.'
	case probe.hasPrefix("--"), probe.hasPrefix("=="):
		ch := probe.peek()
		n := 0
		for probe.peek() == ch {
			probe.bump()
			n++
		}
		if isLinkEnd(probe.peek()) {
			probe.bump()
			*c = probe
			return token.Link, ch
		}
		*c = probe
		if n >= 3 {
			return token.Link, ch
		}
		return token.StartLink, ch
	}
	return token.Invalid, 0
}

// linkClosesAt проверяет закрывающую часть стрелки с текстом и потребляет её
func linkClosesAt(c *cursor, style byte) bool {
	probe := *c
	probe.skipSpaces()
	switch style {
	case '-', '=':
		n := 0
		for probe.peek() == style {
			probe.bump()
			n++
		}
		switch {
		case n >= 2 && isLinkEnd(probe.peek()):
			probe.bump()
		case n >= 3:
		default:
			return false
		}
	case '.':
		if probe.peek() == '-' {
			probe.bump()
		}
		dots := 0
		for probe.peek() == '.' {
			probe.bump()
			dots++
		}
		if dots == 0 || probe.peek() != '-' {
			return false
		}
		probe.bump()
		if isLinkEnd(probe.peek()) {
			probe.bump()
		}
	default:
		return false
	}
	*c = probe
	return true
}

func isLinkEnd(b byte) bool {
	return b == '>' || b == 'x' || b == 'o'
}

// peekToken определяет токен под курсором, не сдвигая курсор
func (p *flowParser) peekToken() token.Token {
	c := p.c
	start := c.off
	at := func(kind token.Kind, width int) token.Token {
		end := min(start+offsetOf(width), c.limit)
		return token.Token{
			Kind: kind,
			Span: source.Span{File: c.file.ID, Start: start, End: end},
			Text: string(c.file.Content[start:end]),
		}
	}
	switch {
	case c.eof():
		return at(token.EOF, 0)
	case c.peek() == '\n':
		return at(token.Newline, 1)
	case c.peek() == ';':
		return at(token.Semi, 1)
	}
	if kind, _ := scanLinkHead(&c); kind != token.Invalid {
		return at(kind, int(c.off-start))
	}
	for _, cl := range flowClosers {
		if c.hasPrefix(cl.text) {
			return at(cl.kind, len(cl.text))
		}
	}
	for _, s := range flowShapes {
		if c.hasPrefix(s.open) {
			return at(s.kind, len(s.open))
		}
	}
	switch b := c.peek(); b {
	case ')':
		return at(token.PE, 1)
	case ']':
		return at(token.SQE, 1)
	case '}':
		return at(token.DiamondStop, 1)
	case '"':
		return at(token.Str, 1)
	case '&':
		return at(token.Amp, 1)
	case '|':
		return at(token.Pipe, 1)
	case ',':
		return at(token.Comma, 1)
	case ' ', '\t', '\r':
		return at(token.Space, 1)
	case ':':
		if c.hasPrefix(":::") {
			return at(token.StyleSeparator, 3)
		}
		return at(token.Colon, 1)
	case '-':
		return at(token.Minus, 1)
	default:
		if isDigit(b) {
			return at(token.Num, 1)
		}
		if isNodeByte(b, c.peekAt(1)) {
			return at(token.NodeString, 1)
		}
	}
	return at(token.Invalid, 1)
}

func (p *flowParser) unexpected(code diag.Code, expected ...token.Kind) error {
	got := p.peekToken()
	if got.Kind == token.Invalid {
		return p.d.lexicalAt(got.Span.Start)
	}
	return p.d.errorAt(got.Span.Start, code, got.Kind, expected...)
}

func isNodeByte(b, next byte) bool {
	switch {
	case isASCIILetter(b), isDigit(b), b >= 0x80:
		return true
	}
	switch b {
	case '_', '.', '!', '#', '$', '*', '+', '?', '\'', '`', '\\', '/':
		return true
	case '-':
		return next != '-' && next != '>' && next != '.'
	case '=':
		return next != '='
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
