package markdown_test

import (
	"strings"
	"testing"

	"mermaid-validate/internal/markdown"
)

func TestExtractBlocksSingle(t *testing.T) {
	content := "# Header\n\n```mermaid\ngraph TD\n    A --> B\n```\n\nSome text"

	blocks := markdown.ExtractBlocks(content)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Code != "graph TD\n    A --> B" {
		t.Errorf("code = %q, want %q", blocks[0].Code, "graph TD\n    A --> B")
	}
	if blocks[0].StartLine != 4 {
		t.Errorf("start line = %d, want 4", blocks[0].StartLine)
	}
}

func TestExtractBlocksMultiple(t *testing.T) {
	content := strings.Join([]string{
		"# Doc",
		"",
		"```mermaid",
		"graph TD",
		"    A --> B",
		"```",
		"",
		"```mermaid",
		"sequenceDiagram",
		"    A->>B: Hi",
		"```",
	}, "\n")

	blocks := markdown.ExtractBlocks(content)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].StartLine != 4 || blocks[1].StartLine != 9 {
		t.Errorf("start lines = %d, %d, want 4, 9", blocks[0].StartLine, blocks[1].StartLine)
	}
	if blocks[1].Code != "sequenceDiagram\n    A->>B: Hi" {
		t.Errorf("second code = %q", blocks[1].Code)
	}
}

func TestExtractBlocksIgnoresOtherLanguages(t *testing.T) {
	content := strings.Join([]string{
		"# Doc",
		"",
		"```typescript",
		"const x = 1;",
		"```",
		"",
		"```mermaid",
		"graph TD",
		"    A --> B",
		"```",
		"",
		"```mermaid",
		"pie",
		"    \"a\" : 1",
		"```",
	}, "\n")

	blocks := markdown.ExtractBlocks(content)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	for _, b := range blocks {
		if strings.Contains(b.Code, "const x") {
			t.Errorf("typescript fence leaked into block: %q", b.Code)
		}
	}
}

func TestExtractBlocksEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []markdown.Block
	}{
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
		{
			name:    "no fences",
			content: "just\ntext\n",
			want:    nil,
		},
		{
			name:    "unterminated",
			content: "```mermaid\ngraph TD\n  A --> B\n",
			want:    nil,
		},
		{
			name:    "indented fences",
			content: "- item\n  ```mermaid\n  graph LR\n  ```\n",
			want:    []markdown.Block{{Code: "graph LR", StartLine: 3}},
		},
		{
			name:    "blank lines kept inside",
			content: "```mermaid\n\ngraph TD\n\n  A --> B\n\n```",
			want:    []markdown.Block{{Code: "graph TD\n\n  A --> B", StartLine: 2}},
		},
		{
			name:    "closing fence with trailing text does not close",
			content: "```mermaid\ngraph TD\n```js\n```\n",
			want:    []markdown.Block{{Code: "graph TD\n```js", StartLine: 2}},
		},
		{
			name:    "reopening restarts the block",
			content: "```mermaid\nlost\n```mermaid\npie\n```\n",
			want:    []markdown.Block{{Code: "pie", StartLine: 4}},
		},
		{
			name:    "empty block",
			content: "```mermaid\n```\n",
			want:    []markdown.Block{{Code: "", StartLine: 2}},
		},
		{
			name:    "crlf lines",
			content: "```mermaid\r\ngraph TD\r\n```\r\n",
			want:    []markdown.Block{{Code: "graph TD", StartLine: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markdown.ExtractBlocks(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d blocks (%+v), want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("block %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBlocksInvariants(t *testing.T) {
	var sb strings.Builder
	const n = 25
	for i := range n {
		sb.WriteString("para\n\n```go\nfmt.Println(\"```\")\n```\n")
		sb.WriteString("```mermaid\ngraph TD\n")
		for range i % 3 {
			sb.WriteString("  A --> B\n")
		}
		sb.WriteString("```\n")
	}

	blocks := markdown.ExtractBlocks(sb.String())
	if len(blocks) != n {
		t.Fatalf("expected %d blocks, got %d", n, len(blocks))
	}
	prev := 0
	for i, b := range blocks {
		if b.StartLine <= prev {
			t.Errorf("block %d start line %d not after %d", i, b.StartLine, prev)
		}
		prev = b.StartLine
		if strings.Contains(b.Code, "```") {
			t.Errorf("block %d contains a fence marker: %q", i, b.Code)
		}
	}
}

func TestBlocksStopsEarly(t *testing.T) {
	content := "```mermaid\npie\n```\n```mermaid\ngraph TD\n```\n"
	count := 0
	for range markdown.Blocks(content) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("expected iteration to stop after 1 block, got %d", count)
	}
}
