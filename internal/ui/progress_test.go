package ui

import (
	"fmt"
	"strings"
	"testing"

	"mermaid-validate/internal/runner"
)

func newTestModel() *progressModel {
	return NewProgressModel("validating", make(chan runner.Event)).(*progressModel)
}

func TestApplyEvent(t *testing.T) {
	m := newTestModel()
	for _, ev := range []runner.Event{
		{File: "a.md", Status: runner.StatusQueued},
		{File: "b.mmd", Status: runner.StatusQueued},
		{File: "a.md", Status: runner.StatusWorking},
		{File: "a.md", Status: runner.StatusDone, Valid: 2},
		{File: "b.mmd", Status: runner.StatusWorking},
		{File: "b.mmd", Status: runner.StatusInvalid, Invalid: 1},
		{Status: runner.StatusDone},
	} {
		m.applyEvent(ev)
	}

	if len(m.items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(m.items))
	}
	if m.valid != 2 || m.invalid != 1 {
		t.Errorf("totals = %d/%d, want 2/1", m.valid, m.invalid)
	}
	if got := statusLabel(m.items[0]); got != "✓ 2" {
		t.Errorf("a.md label = %q, want %q", got, "✓ 2")
	}
	if got := statusLabel(m.items[1]); got != "✗ 1/1" {
		t.Errorf("b.mmd label = %q, want %q", got, "✗ 1/1")
	}
}

func TestViewScrollsLongLists(t *testing.T) {
	m := newTestModel()
	for i := range maxVisibleItems + 5 {
		m.applyEvent(runner.Event{File: fmt.Sprintf("file%02d.md", i), Status: runner.StatusQueued})
	}
	m.done = true

	view := m.View()
	if !strings.Contains(view, "5 more") {
		t.Errorf("view does not mention hidden files:\n%s", view)
	}
	if strings.Contains(view, "file00.md") {
		t.Errorf("oldest file should scroll away:\n%s", view)
	}
	if !strings.Contains(view, "file24.md") {
		t.Errorf("newest file missing:\n%s", view)
	}
	if !strings.Contains(view, "done: validating (0 valid, 0 invalid)") {
		t.Errorf("unexpected header:\n%s", view)
	}
}

func TestViewEmpty(t *testing.T) {
	if got := newTestModel().View(); got != "" {
		t.Errorf("View() = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"docs/readme.md", 0, "docs/readme.md"},
		{"docs/readme.md", 20, "docs/readme.md"},
		{"docs/readme.md", 10, "docs/re..."},
		{"docs/readme.md", 3, "doc"},
		{"диаграммы/схема.md", 8, "диагр..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.value, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}
