package mermaid

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"mermaid-validate/internal/source"
)

// cursor представляет собой позицию в тексте диаграммы
type cursor struct {
	file *source.File
	off  uint32
	// limit is the exclusive upper bound for off.
	limit uint32
}

func newCursor(f *source.File, off uint32) cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return cursor{file: f, off: off, limit: limit}
}

func (c *cursor) eof() bool {
	return c.off >= c.limit
}

// peek читает текущий байт, если есть, иначе возвращает 0
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.off]
}

// peekAt читает байт со смещением n от текущей позиции
func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.file.Content[c.off+n]
}

func (c *cursor) hasPrefix(s string) bool {
	n := uint32(len(s))
	if c.off+n > c.limit {
		return false
	}
	return string(c.file.Content[c.off:c.off+n]) == s
}

// bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

func (c *cursor) advance(n int) {
	for range n {
		c.bump()
	}
}

// skipSpaces пропускает пробелы и табуляции, но не переводы строк
func (c *cursor) skipSpaces() bool {
	start := c.off
	for !c.eof() {
		switch c.peek() {
		case ' ', '\t', '\r':
			c.off++
		default:
			return c.off > start
		}
	}
	return c.off > start
}

// skipLine переносит курсор на перевод строки (не потребляя его)
func (c *cursor) skipLine() {
	for !c.eof() && c.peek() != '\n' {
		c.off++
	}
}

func (c *cursor) text(start uint32) string {
	return string(c.file.Content[start:c.off])
}

// rest returns the remainder of the current line without consuming it.
func (c *cursor) rest() string {
	end := c.off
	for end < c.limit && c.file.Content[end] != '\n' {
		end++
	}
	return strings.TrimRight(string(c.file.Content[c.off:end]), " \t\r")
}

func (c *cursor) span(start uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: c.off}
}

// offsetOf переводит длину в смещение внутри файла
func offsetOf(n int) uint32 {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return off
}
