package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the documents of one validation and hands out FileIDs.
type FileSet struct {
	files []File
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// Add stores already normalized content under a fresh FileID.
// Adding the same path twice yields two files.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(n)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    cleanPath(path),
		Content: content,
		LineIdx: lineIndex(content),
		Flags:   flags,
	})
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(content)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory document, normalized the way Load does it.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fileSet.Add(name, content, flags|FileVirtual)
}

// Len returns the number of files stored in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Get returns the file for id.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// cleanPath keeps "-" for stdin and uses forward slashes elsewhere.
func cleanPath(p string) string {
	if p == "" || p == "-" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
