package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"mermaid-validate/internal/config"
)

// applyFlags overrides config values with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("quiet") {
		quiet, err := flags.GetBool("quiet")
		if err != nil {
			return fmt.Errorf("failed to get quiet flag: %w", err)
		}
		cfg.Output.Quiet = quiet
	}
	if flags.Changed("json") {
		asJSON, err := flags.GetBool("json")
		if err != nil {
			return fmt.Errorf("failed to get json flag: %w", err)
		}
		cfg.Output.JSON = asJSON
	}
	if flags.Changed("max-error-lines") {
		n, err := flags.GetInt("max-error-lines")
		if err != nil {
			return fmt.Errorf("failed to get max-error-lines flag: %w", err)
		}
		cfg.Output.MaxErrorLines = n
	}
	if flags.Changed("color") {
		value, err := flags.GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
		if cfg.Output.Color, err = config.ParseSwitch("--color", value); err != nil {
			return err
		}
	}
	if flags.Changed("ui") {
		value, err := flags.GetString("ui")
		if err != nil {
			return fmt.Errorf("failed to get ui flag: %w", err)
		}
		mode, err := readUIMode(value)
		if err != nil {
			return err
		}
		cfg.Output.UI = string(mode)
	}
	return nil
}
