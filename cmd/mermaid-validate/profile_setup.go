package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mermaid-validate/internal/prof"
)

// setupProfiling starts the profilers requested by --cpu-profile and
// --mem-profile. The returned cleanup reports errors to stderr.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	cpuProfile, err := cmd.Flags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := cmd.Flags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}

	session, err := prof.Start(prof.Options{CPU: cpuProfile, Mem: memProfile})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
