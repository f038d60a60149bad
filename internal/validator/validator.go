package validator

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"mermaid-validate/internal/markdown"
	"mermaid-validate/internal/mermaid"
	"mermaid-validate/internal/source"
	"mermaid-validate/internal/trace"
)

// DefaultDiagramExtensions are the extensions of standalone diagram files.
var DefaultDiagramExtensions = []string{".mmd", ".mermaid"}

// Parser checks the grammar of a single diagram.
type Parser interface {
	Parse(text string) error
}

// Validator runs a Parser over diagrams, files and their blocks.
type Validator struct {
	parser      Parser
	diagramExts []string
}

// Option configures a Validator.
type Option func(*Validator)

// WithDiagramExtensions replaces the extensions treated as standalone diagrams.
// Extensions include the leading dot and match case-insensitively.
func WithDiagramExtensions(exts ...string) Option {
	return func(v *Validator) {
		v.diagramExts = exts
	}
}

// New creates a Validator backed by p.
func New(p Parser, opts ...Option) *Validator {
	v := &Validator{
		parser:      p,
		diagramExts: DefaultDiagramExtensions,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Default creates a Validator over the process-wide mermaid parser.
// mermaid.Initialize must have been called.
func Default(opts ...Option) (*Validator, error) {
	p, err := mermaid.Default()
	if err != nil {
		return nil, err
	}
	return New(p, opts...), nil
}

// IsDiagramFile reports whether path is validated as a single diagram.
func (v *Validator) IsDiagramFile(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(v.diagramExts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// ValidateDiagram checks a single diagram. It never fails: parser errors
// and panics are returned as an invalid Outcome.
func (v *Validator) ValidateDiagram(ctx context.Context, code string) Outcome {
	out := v.check(code)
	record(ctx, "diagram", out)
	return out
}

// ValidateFile checks every mermaid block of a Markdown-like file.
// A file without blocks yields a FileResult with TotalBlocks == 0.
func (v *Validator) ValidateFile(ctx context.Context, path string) (FileResult, error) {
	res := FileResult{FilePath: path}
	file, err := load(path)
	if err != nil {
		return res, err
	}

	index := 0
	for block := range markdown.Blocks(file.Text()) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		index++
		out := v.check(block.Code)
		record(ctx, fmt.Sprintf("%s:block%d", path, index), out)
		res.add(Result{Outcome: out, BlockIndex: index, LineNumber: block.StartLine})
	}
	return res, nil
}

// ValidateDiagramFile checks a standalone diagram file as one diagram.
func (v *Validator) ValidateDiagramFile(ctx context.Context, path string) (Result, error) {
	file, err := load(path)
	if err != nil {
		return Result{}, err
	}
	out := v.check(file.Text())
	record(ctx, path, out)
	return Result{Outcome: out, BlockIndex: 1, LineNumber: 1}, nil
}

// ValidatePath dispatches on the file extension.
func (v *Validator) ValidatePath(ctx context.Context, path string) (FileResult, error) {
	if !v.IsDiagramFile(path) {
		return v.ValidateFile(ctx, path)
	}
	res := FileResult{FilePath: path, Diagram: true}
	r, err := v.ValidateDiagramFile(ctx, path)
	if err != nil {
		return res, err
	}
	res.add(r)
	return res, nil
}

func (v *Validator) check(code string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Error: failureMessage(r)}
		}
	}()

	if err := v.parser.Parse(code); err != nil {
		out = Outcome{Error: err.Error()}
		if c, ok := mermaid.DiagCode(err); ok {
			out.Code = c
		}
		return out
	}
	return Outcome{Valid: true}
}

// failureMessage renders whatever the parser panicked with.
func failureMessage(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v)
}

func load(path string) (*source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram source: %w", err)
	}
	return fs.Get(id), nil
}

func record(ctx context.Context, name string, out Outcome) {
	t := trace.FromContext(ctx)
	if !t.Enabled() {
		return
	}
	parent := trace.ParentID(ctx)
	if out.Valid {
		trace.Point(t, trace.ScopeBlock, name, "valid", parent)
		return
	}
	detail, _, _ := strings.Cut(out.Error, "\n")
	if out.Code != 0 {
		detail = out.Code.ID() + " " + detail
	}
	trace.Failure(t, trace.ScopeBlock, name, detail, parent)
}
