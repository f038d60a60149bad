// Package mermaid checks mermaid diagram text against the diagram grammars.
//
// The package owns process-wide state: the registry of diagram types with
// their detectors and compiled line grammars. That state is built by an
// explicit call to Initialize, once, before the first Parse:
//
//	if err := mermaid.Initialize(mermaid.Config{}); err != nil {
//		return err
//	}
//	p, err := mermaid.Default()
//	if err != nil {
//		return err
//	}
//	err = p.Parse("graph TD\n  A --> B")
//
// Parse reports grammar failures as *ParseError, *SemanticError or
// *UnknownDiagramError. Default before Initialize yields ErrNotInitialized.
//
// Flowchart and sequence diagrams are checked with token-level recursive
// descent parsers. Pie, state, class, ER, gantt, journey and gitGraph
// diagrams use line grammars. The remaining known diagram types get a
// structural check (balanced quotes and brackets).
package mermaid
