package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next event sequence number, shared by all tracers.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID; 0 is never returned.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open begin/end pair. The zero-cost form, returned when the
// scope is filtered out, only carries the parent ID.
type Span struct {
	t       Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

func emits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !emits(t, scope) {
		return &Span{id: parent}
	}
	s := &Span{
		t:       t,
		id:      NextSpanID(),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

func (s *Span) live() bool {
	return s != nil && s.t != nil
}

// End closes the span and returns how long it was open, 0 for a
// filtered span.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.t.Emit(s.event(KindSpanEnd, now, detail))
	return now.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID. A filtered span returns its parent's ID so
// children attach to the nearest emitted ancestor.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event when scope passes the level filter.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if emits(t, scope) {
		t.Emit(instant(KindPoint, scope, name, detail, parent))
	}
}

// Failure records a failed file or block. Unlike Point it is written
// from LevelError up whatever the scope.
func Failure(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t != nil && t.Enabled() {
		t.Emit(instant(KindFailure, scope, name, detail, parent))
	}
}

func instant(kind Kind, scope Scope, name, detail string, parent uint64) *Event {
	return &Event{
		Time:     time.Now(),
		Kind:     kind,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	}
}
