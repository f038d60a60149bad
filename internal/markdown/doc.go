// Package markdown finds fenced mermaid blocks in Markdown text.
//
// The scanner is line oriented and deliberately simple: a line whose trimmed
// form starts with "```mermaid" opens a block, a line whose trimmed form is
// exactly "```" closes it. Fences for other languages are never opened, nested
// fences are not supported and an unterminated opening fence is dropped.
package markdown
