package diagfmt

// DefaultMaxErrorLines is how many lines of a parser error text mode shows.
const DefaultMaxErrorLines = 5

// TextOpts configures the human-readable renderer.
type TextOpts struct {
	Color bool
	// Quiet suppresses lines for valid diagrams.
	Quiet bool
	// MaxErrorLines truncates error messages, 0 means DefaultMaxErrorLines,
	// negative means no limit.
	MaxErrorLines int
}

func (o TextOpts) maxErrorLines() int {
	if o.MaxErrorLines == 0 {
		return DefaultMaxErrorLines
	}
	return o.MaxErrorLines
}
