package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		fail bool
	}{
		{in: "off", want: LevelOff},
		{in: "error", want: LevelError},
		{in: "PHASE", want: LevelPhase},
		{in: "detail", want: LevelDetail},
		{in: "Debug", want: LevelDebug},
		{in: "verbose", fail: true},
		{in: "", fail: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.fail {
				if err == nil {
					t.Fatalf("ParseLevel(%q) succeeded", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestShouldEmit(t *testing.T) {
	scopes := []Scope{ScopeRun, ScopePhase, ScopeFile, ScopeBlock}
	tests := []struct {
		level Level
		want  []bool
	}{
		{LevelOff, []bool{false, false, false, false}},
		{LevelError, []bool{false, false, false, false}},
		{LevelPhase, []bool{true, true, false, false}},
		{LevelDetail, []bool{true, true, true, false}},
		{LevelDebug, []bool{true, true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			for i, scope := range scopes {
				if got := tt.level.ShouldEmit(scope); got != tt.want[i] {
					t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, scope, got, tt.want[i])
				}
			}
		})
	}
}

func TestFormatText(t *testing.T) {
	ev := &Event{
		Seq:    7,
		Kind:   KindSpanEnd,
		Scope:  ScopeFile,
		SpanID: 3,
		Name:   "file",
		Detail: "ok",
		Extra:  map[string]string{"path": "a.md", "blocks": "2"},
	}
	got := string(FormatEvent(ev, FormatText))
	want := "[     7]     ← file:file (ok) {blocks=2, path=a.md}\n"
	if got != want {
		t.Errorf("FormatEvent text:\n got %q\nwant %q", got, want)
	}
}

func TestFormatNDJSON(t *testing.T) {
	ev := &Event{Seq: 1, Kind: KindFailure, Scope: ScopeBlock, ParentID: 4, Name: "a.md:block1", Detail: "SYN2001"}
	data := FormatEvent(ev, FormatNDJSON)
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Fatalf("ndjson line has no newline: %q", data)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["kind"] != "failure" || got["scope"] != "block" || got["detail"] != "SYN2001" {
		t.Errorf("unexpected event: %v", got)
	}
	if _, ok := got["span_id"]; ok {
		t.Error("zero span_id should be omitted")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "TEXT": FormatText, "ndjson": FormatNDJSON, "json": FormatNDJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}

func TestStreamTracerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)

	span := Begin(tr, ScopeRun, "run", 0)
	Point(tr, ScopeBlock, "a.md:block1", "", span.ID())
	Failure(tr, ScopeFile, "b.md", "boom", span.ID())
	span.End("")

	got := buf.String()
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("want only the failure line, got:\n%s", got)
	}
	if !strings.Contains(got, "✗ file:b.md (boom)") {
		t.Errorf("failure line = %q", got)
	}
}

func TestSpansNest(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	run := Begin(tr, ScopeRun, "run", 0)
	file := Begin(tr, ScopeFile, "file", run.ID()).WithExtra("path", "a.md")
	Point(tr, ScopeBlock, "a.md:block1", "", file.ID())
	file.End("")
	run.End("done")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var events []Event
	for line := range strings.Lines(buf.String()) {
		var raw struct {
			Kind     string            `json:"kind"`
			SpanID   uint64            `json:"span_id"`
			ParentID uint64            `json:"parent_id"`
			Name     string            `json:"name"`
			Extra    map[string]string `json:"extra"`
			Seq      uint64            `json:"seq"`
		}
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			t.Fatalf("unmarshal %q: %v", line, err)
		}
		events = append(events, Event{Seq: raw.Seq, SpanID: raw.SpanID, ParentID: raw.ParentID, Name: raw.Name, Extra: raw.Extra})
	}
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Errorf("seq not increasing: %d after %d", events[i].Seq, events[i-1].Seq)
		}
	}
	if events[1].ParentID != run.ID() {
		t.Errorf("file parent = %d, want %d", events[1].ParentID, run.ID())
	}
	if events[2].ParentID != file.ID() {
		t.Errorf("block parent = %d, want %d", events[2].ParentID, file.ID())
	}
	if events[3].Extra["path"] != "a.md" {
		t.Errorf("file end extra = %v", events[3].Extra)
	}
}

func TestDisabledSpanPassesParent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	run := Begin(tr, ScopeRun, "run", 0)
	file := Begin(tr, ScopeFile, "file", run.ID())
	if file.ID() != run.ID() {
		t.Errorf("disabled span ID = %d, want parent %d", file.ID(), run.ID())
	}
	if d := file.WithExtra("k", "v").End(""); d != 0 {
		t.Errorf("disabled span duration = %v", d)
	}
	run.End("")
	if strings.Contains(buf.String(), "file:") {
		t.Errorf("file scope leaked at phase level:\n%s", buf.String())
	}
}

func TestNewDetectsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson")
	tr, err := New(Config{Level: LevelPhase, OutputPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeRun, "run", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("{")) {
		t.Errorf("trace file is not ndjson: %q", data)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, OutputPath: filepath.Join(t.TempDir(), "never")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr != Nop || tr.Enabled() {
		t.Errorf("New(off) = %v, want Nop", tr)
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Error("empty context should yield Nop")
	}
	if ParentID(ctx) != 0 {
		t.Error("empty context has a parent span")
	}

	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx = WithTracer(ctx, tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not stored in context")
	}

	run, runCtx := StartSpan(ctx, ScopeRun, "run")
	if got := ParentID(runCtx); got != run.ID() {
		t.Errorf("ParentID = %d, want %d", got, run.ID())
	}
	if ParentID(ctx) != 0 {
		t.Error("StartSpan changed the parent context")
	}
	file, _ := StartSpan(runCtx, ScopeFile, "file")
	file.End("")
	run.End("")

	// трассировщик после WithSpan сохраняется
	if FromContext(runCtx) != Tracer(tr) {
		t.Error("tracer lost after WithSpan")
	}
	if !strings.Contains(buf.String(), "  → file:file") {
		t.Errorf("file span not nested:\n%s", buf.String())
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"":               FormatText,
		"-":              FormatText,
		"trace.log":      FormatText,
		"out/run.ndjson": FormatNDJSON,
		"run.jsonl":      FormatNDJSON,
		"run.ndjson.txt": FormatText,
	}
	for path, want := range tests {
		if got := formatForPath(path); got != want {
			t.Errorf("formatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}
