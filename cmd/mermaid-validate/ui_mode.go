package main

import (
	"io"
	"os"

	"github.com/fatih/color"

	"mermaid-validate/internal/config"
)

type uiMode string

const (
	uiModeAuto uiMode = config.SwitchAuto
	uiModeOn   uiMode = config.SwitchOn
	uiModeOff  uiMode = config.SwitchOff
)

func readUIMode(value string) (uiMode, error) {
	v, err := config.ParseSwitch("--ui", value)
	if err != nil {
		return "", err
	}
	return uiMode(v), nil
}

func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return writerIsTerminal(out)
	}
}

// shouldUseColor resolves the color switch. In auto mode color follows the
// terminal and NO_COLOR, see color.NoColor.
func shouldUseColor(mode string, out io.Writer) bool {
	switch mode {
	case config.SwitchOn:
		return true
	case config.SwitchOff:
		return false
	default:
		return writerIsTerminal(out) && !color.NoColor
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
