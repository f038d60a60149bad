package mermaid

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"mermaid-validate/internal/source"
)

// resetEnvironment возвращает пакет в состояние до Initialize
func resetEnvironment(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	initErr = nil
	current.Store(nil)
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
		current.Store(nil)
	})
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(Config{})
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return p
}

type parseCase struct {
	name  string
	input string
	// wantErr is a substring of the expected error; empty means valid.
	wantErr string
}

func runParseCases(t *testing.T, cases []parseCase) {
	t.Helper()
	p := newTestParser(t)
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Parse(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error:\n%v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func asParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe
}

func testDocument(text string) *document {
	fs := source.NewFileSet()
	return &document{file: fs.Get(fs.AddVirtual("test", []byte(text)))}
}
