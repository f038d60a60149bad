package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mermaid-validate/internal/config"
	"mermaid-validate/internal/diagfmt"
	"mermaid-validate/internal/mermaid"
	"mermaid-validate/internal/observ"
	"mermaid-validate/internal/runner"
	"mermaid-validate/internal/validator"
)

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	input := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	if err := mermaid.Initialize(mermaid.Config{MaxTextSize: cfg.Parser.MaxTextSize}); err != nil {
		return err
	}
	v, err := validator.Default(validator.WithDiagramExtensions(cfg.Files.DiagramExtensions...))
	if err != nil {
		return err
	}

	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	out := cmd.OutOrStdout()
	opts := runner.Options{
		JSON: cfg.Output.JSON,
		Text: diagfmt.TextOpts{
			Color:         shouldUseColor(cfg.Output.Color, out),
			Quiet:         cfg.Output.Quiet,
			MaxErrorLines: cfg.Output.MaxErrorLines,
		},
		Resolver: runner.Resolver{
			Extensions: cfg.Extensions(),
			Exclude:    cfg.Files.Exclude,
		},
		Stdin:  cmd.InOrStdin(),
		Stdout: out,
		Timer:  timer,
	}

	ctx := cmd.Context()
	if input != runner.StdinInput && !cfg.Output.JSON && shouldUseTUI(uiMode(cfg.Output.UI), out) {
		err = runWithUI(ctx, "validating "+input, input, v, opts)
	} else {
		_, err = runner.New(v, opts).Run(ctx, input)
	}

	if timingErr := printTimings(cmd.ErrOrStderr(), timer, cfg.Output.JSON); timingErr != nil && err == nil {
		err = fmt.Errorf("failed to write timings: %w", timingErr)
	}
	return err
}

// loadConfig honours --no-config and --config, otherwise searches upwards
// from the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get no-config flag: %w", err)
	}
	if noConfig {
		return config.Default(), nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}
