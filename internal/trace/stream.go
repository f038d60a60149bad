package trace

import (
	"io"
	"os"
	"sync"
)

// StreamTracer writes events immediately to an io.Writer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	err    error // first write error
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{
		w:      w,
		level:  level,
		format: format,
	}
}

// Emit writes an event to the output.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.accepts(ev) {
		return
	}

	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()

	// ошибка записи трассы не должна ломать проверку, запоминаем первую
	if _, err := t.w.Write(data); err != nil && t.err == nil {
		t.err = err
	}
}

func (t *StreamTracer) accepts(ev *Event) bool {
	if ev.Kind == KindFailure {
		return t.level >= LevelError
	}
	return t.level.ShouldEmit(ev.Scope)
}

// Flush reports the first write error and flushes the writer if it can.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
// Standard streams are never closed.
func (t *StreamTracer) Close() error {
	flushErr := t.Flush()
	if t.w == os.Stderr || t.w == os.Stdout {
		return flushErr
	}
	if closer, ok := t.w.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return flushErr
}

// Level returns the current tracing level.
func (t *StreamTracer) Level() Level {
	return t.level
}

// Enabled returns true if tracing is active.
func (t *StreamTracer) Enabled() bool {
	return t.level > LevelOff
}
