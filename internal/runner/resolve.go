package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// StdinInput is the input that selects standard input.
const StdinInput = "-"

// Resolver turns one command-line input into the files to validate.
type Resolver struct {
	// Extensions selects files during a directory walk.
	Extensions []string
	// Exclude holds doublestar patterns. Directory walks match them against
	// paths relative to the walked directory, globs against the match itself.
	Exclude []string
}

// Resolve returns the files named by input. A regular file is returned
// as is; directory walks and globs are sorted lexically.
func (r Resolver) Resolve(input string) ([]string, error) {
	info, err := os.Stat(input)
	switch {
	case err == nil && info.IsDir():
		return r.walk(input)
	case err == nil:
		return []string{input}, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to stat %q: %w", input, err)
	}
	return r.glob(input)
}

func (r Resolver) walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		// скрытые каталоги и файлы не обходим, как обычный glob
		if strings.HasPrefix(d.Name(), ".") || r.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !r.hasExtension(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

func (r Resolver) glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil && !errors.Is(err, doublestar.ErrBadPattern) {
		return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}
	matches = slices.DeleteFunc(matches, r.excluded)
	if len(matches) == 0 {
		return nil, &NotFoundError{Input: pattern}
	}
	slices.Sort(matches)
	return matches, nil
}

func (r Resolver) excluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range r.Exclude {
		if ok, err := doublestar.Match(filepath.ToSlash(pattern), path); err == nil && ok {
			return true
		}
	}
	return false
}

func (r Resolver) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(r.Extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
