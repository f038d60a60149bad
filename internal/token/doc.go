// Package token defines the terminals produced while scanning mermaid diagrams.
//
// Kind names mirror the terminal names used by mermaid's own grammars so that
// "Expecting ..., got ..." messages read the same way users see them in the
// mermaid live editor.
package token
