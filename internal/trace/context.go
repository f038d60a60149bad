package trace

import "context"

type ctxKey struct{}

// ctxState is what a context carries: the tracer and the span new spans
// attach to.
type ctxState struct {
	tracer Tracer
	parent uint64
}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// WithTracer attaches t to ctx. A nil t disables tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext returns the tracer of ctx, Nop if there is none.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// ParentID returns the span new events in ctx attach to, 0 at the root.
func ParentID(ctx context.Context) uint64 {
	return stateOf(ctx).parent
}

// WithSpan makes s the parent of spans started from the returned context.
func WithSpan(ctx context.Context, s *Span) context.Context {
	st := stateOf(ctx)
	st.parent = s.ID()
	return context.WithValue(ctx, ctxKey{}, st)
}

// StartSpan begins a span under the current parent of ctx and returns a
// context in which it is the parent.
func StartSpan(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	st := stateOf(ctx)
	s := Begin(st.tracer, scope, name, st.parent)
	return s, WithSpan(ctx, s)
}
