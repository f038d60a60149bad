package mermaid

import (
	"bytes"
	"strings"
)

const (
	directiveOpen  = "%%{"
	directiveClose = "}%%"
	commentPrefix  = "%%"
	frontMatterSep = "---"
)

// preprocess убирает front matter, директивы %%{...}%% и строки-комментарии.
// Количество строк сохраняется, чтобы номера строк в ошибках совпадали с исходным текстом.
func preprocess(content []byte) []byte {
	out := bytes.Clone(content)
	blankDirectives(out)

	lines := bytes.Split(out, []byte("\n"))
	blankFrontMatter(lines)
	for i, line := range lines {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte(commentPrefix)) {
			lines[i] = nil
		}
	}
	return bytes.Join(lines, []byte("\n"))
}

// blankDirectives replaces directive bytes with spaces, leaving newlines in place.
func blankDirectives(buf []byte) {
	from := 0
	for {
		open := bytes.Index(buf[from:], []byte(directiveOpen))
		if open < 0 {
			return
		}
		open += from
		closeAt := bytes.Index(buf[open+len(directiveOpen):], []byte(directiveClose))
		if closeAt < 0 {
			return
		}
		end := open + len(directiveOpen) + closeAt + len(directiveClose)
		for i := open; i < end; i++ {
			if buf[i] != '\n' {
				buf[i] = ' '
			}
		}
		from = end
	}
}

// blankFrontMatter clears a leading "---" ... "---" block.
func blankFrontMatter(lines [][]byte) {
	first := 0
	for first < len(lines) && len(bytes.TrimSpace(lines[first])) == 0 {
		first++
	}
	if first == len(lines) || strings.TrimSpace(string(lines[first])) != frontMatterSep {
		return
	}
	for j := first + 1; j < len(lines); j++ {
		if strings.TrimSpace(string(lines[j])) == frontMatterSep {
			for k := first; k <= j; k++ {
				lines[k] = nil
			}
			return
		}
	}
}
