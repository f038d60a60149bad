// Package trace records what a validation run is doing.
//
// Tracing is off by default. Enable it from the command line:
//
//	mermaid-validate --trace=- --trace-level=detail "docs/**/*.md"
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Failures only
//   - LevelPhase: Run boundaries (resolve, validate, render)
//   - LevelDetail: One span per file
//   - LevelDebug: Everything including single diagram blocks
//
// # Context Propagation
//
// The tracer travels with the context through runner and validator:
//
//	ctx = trace.WithTracer(ctx, tracer)
//
//	span, ctx := trace.StartSpan(ctx, trace.ScopeFile, "file")
//	defer span.End("")
//
// Spans started from the returned context nest under span.
package trace
