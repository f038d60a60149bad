package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mermaid-validate/internal/diagfmt"
	"mermaid-validate/internal/mermaid"
	"mermaid-validate/internal/runner"
	"mermaid-validate/internal/version"
)

// exitInterrupted - код выхода после Ctrl+C, как у shell
const exitInterrupted = 130

const usageExamples = `  mermaid-validate README.md
  mermaid-validate docs/
  mermaid-validate diagram.mmd
  mermaid-validate "docs/**/*.md"
  echo "graph TD; A-->B" | mermaid-validate -`

// newRootCmd builds the command tree. Flags live on the root command;
// there are no subcommands.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mermaid-validate [options] <file|directory|glob|->",
		Short: "Validate Mermaid diagram syntax",
		Long: `Validate Mermaid diagram syntax in Markdown files and standalone diagrams.

Arguments:
  <file>        Validate a single .md or .mmd file
  <directory>   Recursively validate all .md/.mmd files
  <glob>        Validate every file matching the pattern
  -             Read one diagram from stdin` + diagramTypesHelp(),
		Example:       usageExamples,
		Version:       version.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runValidate,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolP("quiet", "q", false, "only output errors")
	flags.Bool("json", false, "output results as JSON")
	flags.Int("max-error-lines", 5, "error lines shown per invalid diagram (negative shows all)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("ui", "off", "progress UI for batch runs (auto|on|off)")
	flags.String("config", "", "path to a config file (default: nearest .mermaid-validate.toml)")
	flags.Bool("no-config", false, "ignore config files")
	flags.String("trace", "", "write trace events to a file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file")
	return cmd
}

// diagramTypesHelp lists the diagram types the parser detects.
func diagramTypesHelp() string {
	p, err := mermaid.NewParser(mermaid.Config{})
	if err != nil {
		return ""
	}
	return "\n\nDiagram types:\n  " + strings.Join(p.DiagramTypes(), ", ")
}

// main runs the root command and maps errors to exit codes: *runner.ExitError
// carries its own code, anything else exits with 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return reportError(os.Stderr, err, isTerminal(os.Stderr) && !color.NoColor)
}

// reportError prints err and returns the exit code for it.
func reportError(w io.Writer, err error, colored bool) int {
	var exitErr *runner.ExitError
	switch {
	case errors.As(err, &exitErr):
		if exitErr.Message != "" {
			diagfmt.PrintError(w, exitErr.Message, colored)
		}
		return exitErr.Code
	case errors.Is(err, context.Canceled):
		diagfmt.PrintError(w, "interrupted", colored)
		return exitInterrupted
	}
	diagfmt.PrintError(w, err.Error(), colored)
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
