package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tracer receives events from spans and points. Implementations must be
// goroutine-safe: the progress UI runs validation off the main goroutine.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config selects where and how much to trace.
type Config struct {
	Level  Level
	Format Format
	// Output wins over OutputPath when set.
	Output io.Writer
	// OutputPath is a file to create, "" or "-" means stderr.
	OutputPath string
}

// New creates the tracer for cfg. LevelOff always yields Nop, no file is
// created then.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}

	w := cfg.Output
	if w == nil {
		if cfg.OutputPath == "" || cfg.OutputPath == "-" {
			w = os.Stderr
		} else {
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			w = f
		}
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

// formatForPath picks NDJSON for .ndjson and .jsonl files, text otherwise.
func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	}
	return FormatText
}

// Nop discards everything, it is the tracer of a context without one.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }
