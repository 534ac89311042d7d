// Package source models the files of an analyzed tree as comparable path values.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when nothing exists at a file's location.
	ErrNotFound = errors.New("entity not found")
	// ErrRenameConflict is returned when a rename destination already exists.
	ErrRenameConflict = errors.New("rename destination already exists")
)

// File identifies a file of the analyzed tree by its absolute, slash-separated path.
// Two Files are equal iff their paths are equal, so File works as a map key.
type File struct {
	path string
}

// Open returns the File for path. The path is made absolute and cleaned, so
// "src/a/../b.js" and "src/b.js" are the same File; construction fails with ErrNotFound
// if nothing exists there.
func Open(path string) (File, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("resolving absolute path %s: %w", path, err)
	}
	absolutePath = filepath.ToSlash(absolutePath)
	if err := checkExists(absolutePath); err != nil {
		return File{}, err
	}
	return File{path: absolutePath}, nil
}

// MustOpen is Open for paths known to exist, such as entries returned by a directory walk.
func MustOpen(path string) File {
	f, err := Open(path)
	if err != nil {
		panic(err)
	}
	return f
}

// Path returns the absolute path.
func (f File) Path() string { return f.path }

// String implements fmt.Stringer.
func (f File) String() string { return f.path }

// IsZero reports whether f was never opened.
func (f File) IsZero() bool { return f.path == "" }

// Name returns the base name.
func (f File) Name() string {
	idx := strings.LastIndex(f.path, "/")
	return f.path[idx+1:]
}

// Type returns the text after the last dot of the name ("js", "less"),
// or "" when the name has no dot.
func (f File) Type() string {
	name := f.Name()
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// Dir returns the containing directory: the path with its last component dropped.
func (f File) Dir() string {
	idx := strings.LastIndex(f.path, "/")
	if idx < 0 {
		return ""
	}
	return f.path[:idx]
}

// IsUnder reports whether the file lives below dir.
func (f File) IsUnder(dir string) bool {
	dir = strings.TrimSuffix(filepath.ToSlash(dir), "/")
	return strings.HasPrefix(f.path, dir+"/")
}

// Rename moves the file to newName inside its directory and updates the in-memory path.
// It fails with ErrRenameConflict if the destination exists and with ErrNotFound if the
// source disappeared.
func (f *File) Rename(newName string) error {
	if strings.Contains(newName, "/") {
		return fmt.Errorf("rename %s: new name %q must not contain a path separator", f.path, newName)
	}
	newPath := f.Dir() + "/" + newName
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%w: %s", ErrRenameConflict, newPath)
	}
	if err := checkExists(f.path); err != nil {
		return err
	}
	if err := os.Rename(f.path, newPath); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", f.path, newName, err)
	}
	f.path = newPath
	return checkExists(f.path)
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}
