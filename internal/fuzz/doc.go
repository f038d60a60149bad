// Package fuzztests houses Go fuzz harnesses for the validation pipeline
// (markdown block extraction -> mermaid parser). They guard against panics,
// hangs and errors without a diagnostic code on arbitrary input.
//
// Назначение: прогонять произвольные байты через markdown.Blocks и
// mermaid.Parser.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/markdown, internal/mermaid.

package fuzztests
