// Package index keeps searchable in-memory catalogs of an analyzed tree: file records for
// glob lookups and a full-text index over the import statements of each script.
package index

import "time"

// FileRecord describes one file of the analyzed tree.
type FileRecord struct {
	Path         string // Absolute file path (forward slashes)
	RelativePath string // Path relative to the tree root (forward slashes)
	Type         string // File type: text after the last dot of the name
	Language     string // Language label of the type
	SizeBytes    int64
	ModTime      time.Time
	ImportCount  int // Import statements found; 0 for non-script files
}
