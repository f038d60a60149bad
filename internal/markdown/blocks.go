package markdown

import (
	"iter"
	"slices"
	"strings"
)

const (
	// Language is the info string that marks a diagram fence.
	Language = "mermaid"

	fenceMarker  = "```"
	openingFence = fenceMarker + Language
)

// Block is one fenced diagram found in a document.
type Block struct {
	// Code is the diagram source with surrounding whitespace trimmed.
	Code string
	// StartLine is the 1-based line of the first content line inside the fence.
	StartLine int
}

// Blocks lazily yields the mermaid blocks of content in source order.
func Blocks(content string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		var (
			inBlock    bool
			blockStart int
			blockLines []string
		)

		lineNo := 0
		for line := range strings.SplitSeq(content, "\n") {
			trimmed := strings.TrimSpace(line)

			switch {
			case strings.HasPrefix(trimmed, openingFence):
				// повторное открытие сбрасывает накопленное
				inBlock = true
				blockStart = lineNo + 1
				blockLines = blockLines[:0]
			case inBlock && trimmed == fenceMarker:
				inBlock = false
				block := Block{
					Code:      strings.TrimSpace(strings.Join(blockLines, "\n")),
					StartLine: blockStart + 1,
				}
				if !yield(block) {
					return
				}
			case inBlock:
				blockLines = append(blockLines, line)
			}
			lineNo++
		}
	}
}

// ExtractBlocks collects every mermaid block of content.
func ExtractBlocks(content string) []Block {
	return slices.Collect(Blocks(content))
}
