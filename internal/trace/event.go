package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindFailure reports an invalid file or block. Emitted from LevelError up.
	KindFailure
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindFailure:   "failure",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event, coarser scopes are smaller.
type Scope uint8

const (
	ScopeRun   Scope = iota + 1 // the whole invocation
	ScopePhase                  // resolve, validate, render
	ScopeFile                   // one input file
	ScopeBlock                  // one diagram inside a file
)

var scopeNames = [...]string{
	ScopeRun:   "run",
	ScopePhase: "phase",
	ScopeFile:  "file",
	ScopeBlock: "block",
}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer on write
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points and failures
	ParentID uint64 // 0 at the root
	Name     string
	Detail   string
	Extra    map[string]string // only on span ends
}
