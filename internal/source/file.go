package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type (
	// FileID identifies a document within a FileSet.
	FileID uint32
	// FileFlags records what happened to the bytes on the way in.
	FileFlags uint8
)

const (
	// FileVirtual marks documents that never lived on disk: stdin, a mermaid
	// block cut out of Markdown, test input.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one normalized document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of every '\n' in Content.
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based position as shown to users.
type LineCol struct {
	Line uint32
	Col  uint32 // в байтах, не в рунах
}

func (p LineCol) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is a half-open byte range [Start, End) of a file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Text returns the normalized content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Position converts a byte offset into a line/column pair. A '\n' belongs
// to the line it terminates.
func (f *File) Position(off uint32) LineCol {
	// число переводов строк строго до off и есть номер строки с нуля
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	n, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: n, Col: off - lineStart + 1}
}
