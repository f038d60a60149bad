package mermaid

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"mermaid-validate/internal/diag"
)

func TestParseBeforeInitialize(t *testing.T) {
	resetEnvironment(t)

	p, err := Default()
	if p != nil || !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Default before Initialize: got %v, %v, want ErrNotInitialized", p, err)
	}
	if code, ok := DiagCode(err); !ok || code != diag.EnvNotInitialized {
		t.Errorf("DiagCode = %v, %v", code, ok)
	}
}

func TestInitializeOnce(t *testing.T) {
	resetEnvironment(t)

	if err := Initialize(Config{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	first, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	// второй вызов с другой конфигурацией ничего не меняет
	if err := Initialize(Config{MaxTextSize: 10}); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	second, _ := Default()
	if first != second {
		t.Fatal("second Initialize replaced the parser")
	}
	if err := second.Parse("graph TD\n  A --> B"); err != nil {
		t.Fatalf("Parse after Initialize: %v", err)
	}
}

func TestInitializeRejectsNegativeSize(t *testing.T) {
	resetEnvironment(t)

	err := Initialize(Config{MaxTextSize: -1})
	if err == nil {
		t.Fatal("expected error for negative MaxTextSize")
	}
	if _, err := Default(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Default after failed Initialize: %v", err)
	}
}

func TestMaxTextSize(t *testing.T) {
	p, err := NewParser(Config{MaxTextSize: 32})
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	text := "graph TD\n" + strings.Repeat("  A --> B\n", 10)
	err = p.Parse(text)
	if err == nil || err.Error() != "Maximum text size in diagram exceeded" {
		t.Fatalf("got %v, want size error", err)
	}
	if code, _ := DiagCode(err); code != diag.EnvTextTooLarge {
		t.Errorf("code = %s", code.ID())
	}
}

func TestLargeDiagramWithoutLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for i := range 2500 {
		fmt.Fprintf(&sb, "  node%d[Step %d] --> node%d[Step %d]\n", i, i, i+1, i+1)
	}
	text := sb.String()
	if len(text) <= 50000 {
		t.Fatalf("diagram is only %d bytes", len(text))
	}
	if err := newTestParser(t).Parse(text); err != nil {
		t.Fatalf("large valid diagram rejected: %v", err)
	}
}

func TestUnknownDiagram(t *testing.T) {
	p := newTestParser(t)
	text := "notADiagram\n  foo --> bar"
	err := p.Parse(text)
	var ue *UnknownDiagramError
	if !errors.As(err, &ue) {
		t.Fatalf("got %T (%v), want *UnknownDiagramError", err, err)
	}
	want := "No diagram type detected matching given configuration for text: " + text
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDiagramTypesOrder(t *testing.T) {
	types := newTestParser(t).DiagramTypes()
	if len(types) == 0 || types[0] != "flowchart-elk" {
		t.Fatalf("flowchart-elk must be detected first, got %v", types)
	}
	seen := make(map[string]bool)
	for _, id := range types {
		if seen[id] {
			t.Errorf("duplicate diagram id %q", id)
		}
		seen[id] = true
	}
}

func TestPreprocessKeepsLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"front matter", "---\ntitle: Demo\n---\ngraph TD\n  A --> B"},
		{"directive", "%%{init: {'theme': 'dark'}}%%\ngraph TD\n  A --> B"},
		{"multiline directive", "%%{\n  init: {'theme': 'dark'}\n}%%\ngraph TD\n  A --> B"},
		{"comment lines", "graph TD\n  %% a comment\n  A --> B\n%% trailing"},
	}
	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Parse(tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out := preprocess([]byte(tt.input))
			if got, want := strings.Count(string(out), "\n"), strings.Count(tt.input, "\n"); got != want {
				t.Errorf("line count changed: got %d, want %d", got, want)
			}
		})
	}
}

func TestErrorLineAfterFrontMatter(t *testing.T) {
	p := newTestParser(t)
	err := p.Parse("---\ntitle: Demo\n---\ngraph TD\n  A --> --> B")
	pe := asParseError(t, err)
	if pe.Pos.Line != 5 {
		t.Errorf("line = %d, want 5", pe.Pos.Line)
	}
}
