package mermaid

import (
	"iter"
	"strings"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/source"
	"mermaid-validate/internal/token"
)

type parseFunc func(d *document) error

// diagramDef связывает тип диаграммы с его детектором и грамматикой
type diagramDef struct {
	id string
	// keywords are matched as prefixes of the first meaningful text, in order.
	keywords []string
	parse    parseFunc
}

func builtinDiagrams() ([]*diagramDef, error) {
	grammars, err := compileLineGrammars()
	if err != nil {
		return nil, err
	}
	defs := []*diagramDef{
		{id: "flowchart-elk", keywords: []string{"flowchart-elk"}, parse: parseFlowchart},
		{id: "flowchart-v2", keywords: []string{"flowchart"}, parse: parseFlowchart},
		{id: "flowchart", keywords: []string{"graph"}, parse: parseFlowchart},
		{id: "sequence", keywords: []string{"sequenceDiagram"}, parse: parseSequence},
		{id: "classDiagram", keywords: []string{"classDiagram"}, parse: grammars.class},
		{id: "stateDiagram", keywords: []string{"stateDiagram"}, parse: grammars.state},
		{id: "er", keywords: []string{"erDiagram"}, parse: grammars.er},
		{id: "gantt", keywords: []string{"gantt"}, parse: grammars.gantt},
		{id: "pie", keywords: []string{"pie"}, parse: grammars.pie},
		{id: "journey", keywords: []string{"journey"}, parse: grammars.journey},
		{id: "gitGraph", keywords: []string{"gitGraph"}, parse: grammars.gitGraph},
		{id: "mindmap", keywords: []string{"mindmap"}, parse: parseMindmap},
		{id: "timeline", keywords: []string{"timeline"}, parse: structural(structureOpts{})},
		{id: "quadrantChart", keywords: []string{"quadrantChart"}, parse: structural(structureOpts{brackets: true})},
		{id: "xychart", keywords: []string{"xychart-beta", "xychart"}, parse: structural(structureOpts{brackets: true})},
		{id: "requirement", keywords: []string{"requirementDiagram"}, parse: structural(structureOpts{brackets: true})},
		{id: "c4", keywords: []string{"C4Context", "C4Container", "C4Component", "C4Dynamic", "C4Deployment"}, parse: structural(structureOpts{brackets: true})},
		{id: "sankey", keywords: []string{"sankey-beta", "sankey"}, parse: structural(structureOpts{})},
		{id: "block", keywords: []string{"block-beta", "block"}, parse: structural(structureOpts{brackets: true})},
		{id: "packet", keywords: []string{"packet-beta", "packet"}, parse: structural(structureOpts{brackets: true})},
		{id: "architecture", keywords: []string{"architecture-beta"}, parse: structural(structureOpts{brackets: true})},
		{id: "kanban", keywords: []string{"kanban"}, parse: structural(structureOpts{brackets: true})},
		{id: "radar", keywords: []string{"radar-beta"}, parse: structural(structureOpts{brackets: true})},
		{id: "info", keywords: []string{"info"}, parse: parseInfo},
	}
	return defs, nil
}

// detect пропускает пробелы и ищет первое совпадение ключевого слова
func (p *Parser) detect(f *source.File) (*diagramDef, uint32) {
	c := newCursor(f, 0)
	for !c.eof() && isBlankByte(c.peek()) {
		c.bump()
	}
	for _, def := range p.diagrams {
		for _, kw := range def.keywords {
			if c.hasPrefix(kw) {
				return def, c.off
			}
		}
	}
	return nil, 0
}

func isBlankByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// document is a preprocessed diagram with the offset of its type keyword.
type document struct {
	file  *source.File
	start uint32
}

// line is one physical line of a document.
type line struct {
	// text is the line with surrounding whitespace removed.
	text string
	// off points at the first non-blank byte, or at the line start for blank lines.
	off uint32
	// end points at the terminating newline or the end of content.
	end uint32
}

func (d *document) cursor() cursor {
	return newCursor(d.file, d.start)
}

func (d *document) size() uint32 {
	return offsetOf(len(d.file.Content))
}

// header returns the line holding the diagram keyword and the offset of the next line.
func (d *document) header() (line, uint32) {
	end := d.start
	size := d.size()
	for end < size && d.file.Content[end] != '\n' {
		end++
	}
	raw := string(d.file.Content[d.start:end])
	next := end
	if next < size {
		next++
	}
	return line{text: strings.TrimSpace(raw), off: d.start, end: end}, next
}

// lines yields lines starting at from; blank and comment lines are skipped.
func (d *document) lines(from uint32) iter.Seq[line] {
	return func(yield func(line) bool) {
		size := d.size()
		start := from
		for start < size {
			end := start
			for end < size && d.file.Content[end] != '\n' {
				end++
			}
			raw := string(d.file.Content[start:end])
			trimmed := strings.TrimSpace(raw)
			if trimmed != "" && !strings.HasPrefix(trimmed, commentPrefix) {
				lead := len(raw) - len(strings.TrimLeft(raw, " \t\r"))
				off := start + offsetOf(lead)
				if !yield(line{text: trimmed, off: off, end: end}) {
					return
				}
			}
			start = end + 1
		}
	}
}

func (d *document) errorAt(off uint32, code diag.Code, got token.Kind, expected ...token.Kind) error {
	return newParseError(d.file, off, code, got, expected...)
}

func (d *document) lexicalAt(off uint32) error {
	return newLexicalError(d.file, off)
}

func (d *document) semanticAt(off uint32, code diag.Code, msg string) error {
	return &SemanticError{Code: code, Pos: d.file.Position(off), Msg: msg}
}

// eofError reports an unexpected end of the document.
func (d *document) eofError(code diag.Code, expected ...token.Kind) error {
	return d.errorAt(d.size(), code, token.EOF, expected...)
}
