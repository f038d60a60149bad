package diagfmt

import (
	"encoding/json"
	"io"
)

// OutcomeJSON is the document printed for a single diagram read from stdin.
type OutcomeJSON struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// EntryJSON is one validated diagram of a batch run.
type EntryJSON struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// BatchJSON is the document printed at the end of a batch run.
type BatchJSON struct {
	TotalValid   int         `json:"totalValid"`
	TotalInvalid int         `json:"totalInvalid"`
	Results      []EntryJSON `json:"results"`
}

// JSON writes v indented by two spaces. HTML characters are kept as is:
// diagram errors are full of "-->" and "<<".
func JSON(w io.Writer, v any) error {
	if b, ok := v.(BatchJSON); ok && b.Results == nil {
		b.Results = []EntryJSON{}
		v = b
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
