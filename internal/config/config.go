package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = ".mermaid-validate.toml"

// Switch values accepted by color and ui.
const (
	SwitchAuto = "auto"
	SwitchOn   = "on"
	SwitchOff  = "off"
)

// Output holds the [output] section.
type Output struct {
	Quiet         bool   `toml:"quiet"`
	JSON          bool   `toml:"json"`
	MaxErrorLines int    `toml:"max_error_lines"`
	Color         string `toml:"color"`
	UI            string `toml:"ui"`
}

// Files holds the [files] section.
type Files struct {
	MarkdownExtensions []string `toml:"markdown_extensions"`
	DiagramExtensions  []string `toml:"diagram_extensions"`
	// Exclude holds doublestar patterns matched against paths relative to
	// the scanned directory.
	Exclude []string `toml:"exclude"`
}

// Parser holds the [parser] section.
type Parser struct {
	// MaxTextSize rejects longer diagrams, 0 means no limit.
	MaxTextSize int `toml:"max_text_size"`
}

// Config is the decoded .mermaid-validate.toml.
type Config struct {
	Output Output `toml:"output"`
	Files  Files  `toml:"files"`
	Parser Parser `toml:"parser"`

	// Path is the file the config came from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Output: Output{
			MaxErrorLines: 5,
			Color:         SwitchAuto,
			UI:            SwitchOff,
		},
		Files: Files{
			MarkdownExtensions: []string{".md", ".markdown", ".mdx"},
			DiagramExtensions:  []string{".mmd", ".mermaid"},
		},
	}
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest config above startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerated values and normalizes extensions.
func (c *Config) Validate() error {
	var err error
	if c.Output.Color, err = ParseSwitch("output.color", c.Output.Color); err != nil {
		return err
	}
	if c.Output.UI, err = ParseSwitch("output.ui", c.Output.UI); err != nil {
		return err
	}
	if c.Parser.MaxTextSize < 0 {
		return fmt.Errorf("parser.max_text_size must not be negative, got %d", c.Parser.MaxTextSize)
	}
	c.Files.MarkdownExtensions = NormalizeExtensions(c.Files.MarkdownExtensions)
	c.Files.DiagramExtensions = NormalizeExtensions(c.Files.DiagramExtensions)
	for _, ext := range c.Files.DiagramExtensions {
		if slices.Contains(c.Files.MarkdownExtensions, ext) {
			return fmt.Errorf("extension %q is both a markdown and a diagram extension", ext)
		}
	}
	return nil
}

// Extensions returns every extension picked up by a directory scan.
func (c *Config) Extensions() []string {
	return slices.Concat(c.Files.MarkdownExtensions, c.Files.DiagramExtensions)
}

// NormalizeExtensions lowercases extensions, adds the leading dot and
// drops blanks and duplicates.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

// ParseSwitch validates an auto|on|off value. Empty means auto.
func ParseSwitch(name, value string) (string, error) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return SwitchAuto, nil
	}
	if err := checkSwitch(name, v); err != nil {
		return "", err
	}
	return v, nil
}

func checkSwitch(name, value string) error {
	switch value {
	case SwitchAuto, SwitchOn, SwitchOff:
		return nil
	}
	return fmt.Errorf("invalid %s value %q (expected auto|on|off)", name, value)
}
