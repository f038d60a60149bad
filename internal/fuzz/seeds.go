package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"mermaid-validate/internal/markdown"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"graph TD\n  A --> B\n",
	"flowchart LR\n  A[Start] -->|yes| B{Check}\n  B -.-> C((End))\n",
	"graph TB\n  A[Function uuid() here]\n",
	"sequenceDiagram\n  Alice->>Bob: Hi\n  loop Every minute\n    Bob-->>Alice: Ping\n  end\n",
	"gitGraph\n  commit\n  branch dev\n  commit\n  checkout main\n  merge dev\n",
	"pie title Pets\n  \"Dogs\" : 386\n  \"Cats\" : 85\n",
	"stateDiagram-v2\n  [*] --> Still\n  state Moving {\n    [*] --> Fast\n  }\n",
	"---\ntitle: x\n---\nclassDiagram\n  Animal <|-- Duck\n",
	"%%{init: {'theme': 'dark'}}%%\nerDiagram\n  A ||--o{ B : has\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every diagram file and every mermaid block of the
// Markdown files under testdata.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		switch filepath.Ext(path) {
		case ".mmd", ".mermaid":
			f.Add(clampSeed(src))
		case ".md":
			f.Add(clampSeed(src))
			for b := range markdown.Blocks(string(src)) {
				f.Add(clampSeed([]byte(b.Code)))
			}
		}
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
