package runner

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.MD":              "",
		"a.mmd":                  "",
		"notes.txt":              "",
		"guide/intro.mdx":        "",
		"guide/vendor/x.md":      "",
		".git/info.md":           "",
		"node_modules/lib/y.md":  "",
		"guide/draft.tmp.md":     "",
		"guide/deep/deeper/z.md": "",
	})
	r := Resolver{
		Extensions: []string{".md", ".mdx", ".mmd"},
		Exclude:    []string{"node_modules/**", "**/vendor/**", "**/*.tmp.md"},
	}
	join := func(parts ...string) string { return filepath.Join(append([]string{dir}, parts...)...) }

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "directory",
			input: dir,
			want: []string{
				join("README.MD"),
				join("a.mmd"),
				join("guide", "deep", "deeper", "z.md"),
				join("guide", "intro.mdx"),
			},
		},
		{
			name:  "regular file with any extension",
			input: join("notes.txt"),
			want:  []string{join("notes.txt")},
		},
		{
			name:  "glob",
			input: join("guide", "deep", "**", "*.md"),
			want:  []string{join("guide", "deep", "deeper", "z.md")},
		},
		{
			name:  "glob keeps other extensions",
			input: join("*.txt"),
			want:  []string{join("notes.txt")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	dir := t.TempDir()
	r := Resolver{Extensions: []string{".md"}}

	for _, input := range []string{
		filepath.Join(dir, "missing.md"),
		filepath.Join(dir, "*.md"),
		filepath.Join(dir, "[unclosed"),
	} {
		_, err := r.Resolve(input)
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("Resolve(%q) err = %v, want *NotFoundError", input, err)
			continue
		}
		if nf.Input != input {
			t.Errorf("Input = %q, want %q", nf.Input, input)
		}
	}
}

func TestResolveEmptyDirectory(t *testing.T) {
	files, err := Resolver{Extensions: []string{".md"}}.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %v, want no files", files)
	}
}
