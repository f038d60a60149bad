package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"mermaid-validate/internal/diagfmt"
	"mermaid-validate/internal/observ"
	"mermaid-validate/internal/trace"
	"mermaid-validate/internal/validator"
)

// Entry is one validated diagram in the run summary.
type Entry struct {
	// File is the path, or path:blockN for a block of a Markdown file.
	File  string
	Valid bool
	Error string
	// Line is where a Markdown block starts, 0 for whole-file diagrams.
	Line int
}

// Summary aggregates a run.
type Summary struct {
	TotalValid   int
	TotalInvalid int
	Results      []Entry
}

func (s *Summary) add(e Entry) {
	s.Results = append(s.Results, e)
	if e.Valid {
		s.TotalValid++
	} else {
		s.TotalInvalid++
	}
}

// JSON converts the summary into the batch output document.
func (s *Summary) JSON() diagfmt.BatchJSON {
	doc := diagfmt.BatchJSON{
		TotalValid:   s.TotalValid,
		TotalInvalid: s.TotalInvalid,
		Results:      make([]diagfmt.EntryJSON, 0, len(s.Results)),
	}
	for _, e := range s.Results {
		doc.Results = append(doc.Results, diagfmt.EntryJSON{File: e.File, Valid: e.Valid, Error: e.Error})
	}
	return doc
}

// Options configures a Runner.
type Options struct {
	// JSON prints only the final document.
	JSON bool
	Text diagfmt.TextOpts

	Resolver Resolver

	Stdin  io.Reader
	Stdout io.Writer

	// Progress receives per-file events, may be nil.
	Progress ProgressSink
	// Timer records phase durations, may be nil.
	Timer *observ.Timer
}

// Runner validates everything one input names.
type Runner struct {
	v    *validator.Validator
	opts Options
	text *diagfmt.Text
}

// New creates a Runner. Nil Stdin and Stdout default to the process streams.
func New(v *validator.Validator, opts Options) *Runner {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Runner{
		v:    v,
		opts: opts,
		text: diagfmt.NewText(opts.Stdout, opts.Text),
	}
}

func (r *Runner) resolve(input string) ([]string, error) {
	files, err := r.opts.Resolver.Resolve(input)
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nil, &ExitError{Code: 1, Message: nf.Error()}
	}
	return files, err
}

// Run validates input and prints the results. It returns *ExitError with
// an empty message when invalid diagrams were found.
func (r *Runner) Run(ctx context.Context, input string) (Summary, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeRun, "run")
	span.WithExtra("input", input)

	var (
		sum Summary
		err error
	)
	if input == StdinInput {
		sum, err = r.runStdin(ctx)
	} else {
		sum, err = r.runFiles(ctx, input)
	}

	span.WithExtra("valid", strconv.Itoa(sum.TotalValid)).
		WithExtra("invalid", strconv.Itoa(sum.TotalInvalid)).
		End(errDetail(err))
	return sum, err
}

func (r *Runner) check(ctx context.Context, files []string) (Summary, error) {
	if len(files) == 0 {
		return Summary{}, r.renderEmpty()
	}
	sum, err := r.validate(ctx, files)
	if err != nil {
		return sum, err
	}
	if err := r.renderSummary(ctx, &sum); err != nil {
		return sum, err
	}
	if sum.TotalInvalid > 0 {
		return sum, &ExitError{Code: 1}
	}
	return sum, nil
}

func (r *Runner) runFiles(ctx context.Context, input string) (Summary, error) {
	done := r.phase(ctx, "resolve")
	files, err := r.resolve(input)
	done(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return Summary{}, err
	}
	return r.check(ctx, files)
}

func (r *Runner) runStdin(ctx context.Context) (Summary, error) {
	data, err := io.ReadAll(r.opts.Stdin)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read stdin: %w", err)
	}

	done := r.phase(ctx, "validate")
	out := r.v.ValidateDiagram(ctx, string(data))
	done("stdin")

	var sum Summary
	sum.add(Entry{File: StdinInput, Valid: out.Valid, Error: out.Error})

	if r.opts.JSON {
		if err := diagfmt.JSON(r.opts.Stdout, diagfmt.OutcomeJSON{Valid: out.Valid, Error: out.Error}); err != nil {
			return sum, fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		r.text.Single(out.Valid, out.Error)
	}
	if !out.Valid {
		return sum, &ExitError{Code: 1}
	}
	return sum, nil
}

func (r *Runner) validate(ctx context.Context, files []string) (Summary, error) {
	done := r.phase(ctx, "validate")
	var sum Summary
	defer func() {
		done(fmt.Sprintf("%d valid, %d invalid", sum.TotalValid, sum.TotalInvalid))
	}()

	for _, path := range files {
		emit(r.opts.Progress, Event{File: path, Status: StatusQueued})
	}

	t := trace.FromContext(ctx)
	parent := trace.ParentID(ctx)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		emit(r.opts.Progress, Event{File: path, Status: StatusWorking})

		span, fileCtx := trace.StartSpan(ctx, trace.ScopeFile, "file")
		span.WithExtra("path", path)
		res, err := r.v.ValidatePath(fileCtx, path)
		if err != nil {
			span.End(err.Error())
			trace.Failure(t, trace.ScopeFile, path, err.Error(), parent)
			emit(r.opts.Progress, Event{File: path, Status: StatusError})
			return sum, err
		}
		span.WithExtra("blocks", strconv.Itoa(res.TotalBlocks)).End("")

		r.collect(&sum, res)

		status := StatusDone
		if res.InvalidBlocks > 0 {
			status = StatusInvalid
		}
		emit(r.opts.Progress, Event{File: path, Status: status, Valid: res.ValidBlocks, Invalid: res.InvalidBlocks})
	}
	return sum, nil
}

// collect adds the diagrams of one file; Markdown files without blocks
// contribute nothing.
func (r *Runner) collect(sum *Summary, res validator.FileResult) {
	for _, b := range res.Blocks {
		e := Entry{File: res.FilePath, Valid: b.Valid, Error: b.Error}
		if !res.Diagram {
			e.File = fmt.Sprintf("%s:block%d", res.FilePath, b.BlockIndex)
			e.Line = b.LineNumber
		}
		sum.add(e)
		if !r.opts.JSON {
			r.text.Item(diagfmt.Item{Name: e.File, Valid: e.Valid, Error: e.Error, Line: e.Line})
		}
	}
}

func (r *Runner) renderSummary(ctx context.Context, sum *Summary) error {
	done := r.phase(ctx, "render")
	defer done("")
	if r.opts.JSON {
		if err := diagfmt.JSON(r.opts.Stdout, sum.JSON()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	r.text.Summary(sum.TotalValid, sum.TotalInvalid)
	return nil
}

func (r *Runner) renderEmpty() error {
	if r.opts.JSON {
		if err := diagfmt.JSON(r.opts.Stdout, diagfmt.BatchJSON{}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	r.text.NoFiles()
	return nil
}

// phase starts a timer phase and a trace span, the returned func ends both.
func (r *Runner) phase(ctx context.Context, name string) func(note string) {
	span, _ := trace.StartSpan(ctx, trace.ScopePhase, name)
	stopTimer := func(string) {}
	if r.opts.Timer != nil {
		stopTimer = r.opts.Timer.Start(name)
	}
	return func(note string) {
		stopTimer(note)
		span.End(note)
	}
}

func errDetail(err error) string {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &exitErr) && exitErr.Message == "":
		return "invalid diagrams"
	default:
		return err.Error()
	}
}
