package validator

import "mermaid-validate/internal/diag"

// Outcome is the verdict for a single diagram.
type Outcome struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	// Code is the diagnostic code of a failed diagram when the parser reports one.
	Code diag.Code `json:"-"`
}

// Result is the outcome of one diagram within a file.
type Result struct {
	Outcome
	// BlockIndex is 1-based within the file.
	BlockIndex int
	// LineNumber is the 1-based line where the diagram starts, 0 when unknown.
	LineNumber int
}

// FileResult aggregates the diagrams of one file.
type FileResult struct {
	FilePath      string
	Blocks        []Result
	TotalBlocks   int
	ValidBlocks   int
	InvalidBlocks int
	// Diagram is set when the whole file is one diagram (.mmd, .mermaid).
	Diagram bool
}

func (r *FileResult) add(res Result) {
	r.Blocks = append(r.Blocks, res)
	r.TotalBlocks++
	if res.Valid {
		r.ValidBlocks++
	} else {
		r.InvalidBlocks++
	}
}
