// Package diag defines the error codes attached to diagram grammar failures.
//
// Codes are compact numeric identifiers with a stable string form. Ranges:
//
//   - 1000-1999 (LEX): lexical problems such as unterminated strings.
//   - 2000-2999 (SYN): grammar violations.
//   - 3000-3999 (SEM): semantic checks performed after parsing (gitGraph branches).
//   - 4000-4999 (ENV): parser environment and input limits.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
