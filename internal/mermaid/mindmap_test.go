package mermaid

import "testing"

func TestMindmapValid(t *testing.T) {
	runParseCases(t, []parseCase{
		{name: "shapes", input: "mindmap\n  root((Root))\n    square[Square]\n    rounded(Rounded)\n    hex{{Hexagon}}\n    plain text"},
		{name: "inverted brackets", input: "mindmap\n  root((Root))\n    id)cloud(\n    id2))bang(("},
		{name: "icons and classes", input: "mindmap\n  root((mindmap))\n    Origins\n      ::icon(fa fa-book)\n      :::urgent large\n    Tools"},
		{name: "quoted shape text", input: "mindmap\n  root[\"a (b) ]\"]"},
		{name: "multiline markdown string", input: "mindmap\n  id1[\"`**Root** with\na second line`\"]\n    child"},
	})
}

func TestMindmapInvalid(t *testing.T) {
	runParseCases(t, []parseCase{
		{name: "unclosed circle", input: "mindmap\n root((x)\n  a", wantErr: "Expecting 'PE', got 'NEWLINE'"},
		{name: "unclosed square", input: "mindmap\n  root[x", wantErr: "Expecting 'SQE'"},
		{name: "unclosed cloud", input: "mindmap\n  root\n    id)cloud", wantErr: "Expecting 'PS'"},
		{name: "single brace", input: "mindmap\n  root{x}", wantErr: "Lexical error on line 2"},
		{name: "text after shape", input: "mindmap\n  root((x)) y", wantErr: "Expecting 'NEWLINE'"},
		{name: "unclosed icon", input: "mindmap\n  root\n    ::icon(fa fa-book", wantErr: "Expecting 'PE'"},
		{name: "unterminated string", input: "mindmap\n  root[\"open\n  child", wantErr: "got 'EOF'"},
	})
}

func TestMindmapErrorLine(t *testing.T) {
	p := newTestParser(t)
	pe := asParseError(t, p.Parse("mindmap\n  root((Root))\n    child(x\n    other"))
	if pe.Pos.Line != 3 {
		t.Errorf("line = %d, want 3", pe.Pos.Line)
	}
}
