package main

import (
	"fmt"
	"io"

	"mermaid-validate/internal/diagfmt"
	"mermaid-validate/internal/observ"
)

// printTimings writes phase timings, as JSON when the main output is JSON.
func printTimings(out io.Writer, timer *observ.Timer, asJSON bool) error {
	if out == nil || timer == nil {
		return nil
	}
	if asJSON {
		return diagfmt.JSON(out, timer.Report())
	}
	_, err := fmt.Fprint(out, timer.Summary())
	return err
}
