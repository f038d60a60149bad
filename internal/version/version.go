package version

import "strings"

// Version information for the mermaid-validate CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// String returns the version followed by the build metadata that is set,
// e.g. "0.1.0 (abc1234, 2026-01-15)".
func String() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	var meta []string
	for _, m := range []string{GitCommit, BuildDate} {
		if m = strings.TrimSpace(m); m != "" {
			meta = append(meta, m)
		}
	}
	if len(meta) == 0 {
		return v
	}
	return v + " (" + strings.Join(meta, ", ") + ")"
}
