package mermaid

import (
	"fmt"
	"sync"
	"sync/atomic"

	"mermaid-validate/internal/diag"
	"mermaid-validate/internal/source"
)

// Config tunes the parser environment.
type Config struct {
	// MaxTextSize limits diagram text length in bytes. Zero means no limit:
	// the renderer's maxTextSize is not a syntax rule.
	MaxTextSize int
}

// Parser checks diagram text against the registered grammars.
type Parser struct {
	cfg      Config
	diagrams []*diagramDef
}

var (
	initOnce sync.Once
	initErr  error
	current  atomic.Pointer[Parser]
)

// Initialize builds the process-wide parser environment. Only the first
// call has an effect; later calls return the first call's result.
func Initialize(cfg Config) error {
	initOnce.Do(func() {
		p, err := NewParser(cfg)
		if err != nil {
			initErr = fmt.Errorf("mermaid initialize: %w", err)
			return
		}
		current.Store(p)
	})
	return initErr
}

// Default returns the process-wide parser, or ErrNotInitialized before
// Initialize has succeeded.
func Default() (*Parser, error) {
	p := current.Load()
	if p == nil {
		return nil, ErrNotInitialized
	}
	return p, nil
}

// NewParser builds a standalone parser independent of the process-wide one.
func NewParser(cfg Config) (*Parser, error) {
	if cfg.MaxTextSize < 0 {
		return nil, fmt.Errorf("invalid max text size %d", cfg.MaxTextSize)
	}
	diagrams, err := builtinDiagrams()
	if err != nil {
		return nil, err
	}
	return &Parser{cfg: cfg, diagrams: diagrams}, nil
}

// DiagramTypes lists registered diagram ids in detection order.
func (p *Parser) DiagramTypes() []string {
	out := make([]string, 0, len(p.diagrams))
	for _, d := range p.diagrams {
		out = append(out, d.id)
	}
	return out
}

// Parse returns nil when text is a syntactically valid diagram.
func (p *Parser) Parse(text string) error {
	if p.cfg.MaxTextSize > 0 && len(text) > p.cfg.MaxTextSize {
		return &SemanticError{
			Code: diag.EnvTextTooLarge,
			Pos:  source.LineCol{Line: 1, Col: 1},
			Msg:  "Maximum text size in diagram exceeded",
		}
	}

	normalized, _ := source.Normalize([]byte(text))
	fs := source.NewFileSet()
	doc := fs.Get(fs.AddVirtual("diagram", preprocess(normalized)))

	def, start := p.detect(doc)
	if def == nil {
		return &UnknownDiagramError{Text: text}
	}
	return def.parse(&document{file: doc, start: start})
}
