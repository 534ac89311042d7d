package index

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxResults caps searches that do not set a limit.
const DefaultMaxResults = 50

// FileIndex is the catalog of the files of a tree, keyed by relative path and kept
// sorted for stable glob iteration.
type FileIndex struct {
	mu          sync.RWMutex
	files       map[string]*FileRecord
	sortedPaths []string
}

// NewFileIndex creates an empty catalog.
func NewFileIndex() *FileIndex {
	return &FileIndex{
		files:       make(map[string]*FileRecord),
		sortedPaths: make([]string, 0),
	}
}

// AddFile adds or replaces a record.
func (fi *FileIndex) AddFile(file *FileRecord) {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	_, exists := fi.files[file.RelativePath]
	fi.files[file.RelativePath] = file
	if exists {
		return
	}
	idx := sort.SearchStrings(fi.sortedPaths, file.RelativePath)
	fi.sortedPaths = append(fi.sortedPaths, "")
	copy(fi.sortedPaths[idx+1:], fi.sortedPaths[idx:])
	fi.sortedPaths[idx] = file.RelativePath
}

// RemoveFile drops the record of relativePath, if any.
func (fi *FileIndex) RemoveFile(relativePath string) {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	if _, exists := fi.files[relativePath]; !exists {
		return
	}
	delete(fi.files, relativePath)

	idx := sort.SearchStrings(fi.sortedPaths, relativePath)
	if idx < len(fi.sortedPaths) && fi.sortedPaths[idx] == relativePath {
		fi.sortedPaths = append(fi.sortedPaths[:idx], fi.sortedPaths[idx+1:]...)
	}
}

// GetFile returns the record of relativePath, or nil.
func (fi *FileIndex) GetFile(relativePath string) *FileRecord {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return fi.files[relativePath]
}

// FileCount returns the number of records.
func (fi *FileIndex) FileCount() int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()
	return len(fi.files)
}

// TotalSizeBytes returns the summed size of all records.
func (fi *FileIndex) TotalSizeBytes() int64 {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	var total int64
	for _, file := range fi.files {
		total += file.SizeBytes
	}
	return total
}

// TotalImports returns the summed import statement count of all records.
func (fi *FileIndex) TotalImports() int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	total := 0
	for _, file := range fi.files {
		total += file.ImportCount
	}
	return total
}

// TypeCounts returns file type -> record count.
func (fi *FileIndex) TypeCounts() map[string]int {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	counts := make(map[string]int)
	for _, file := range fi.files {
		counts[file.Type]++
	}
	return counts
}

// SearchByGlob returns records whose relative path matches a doublestar pattern,
// in path order, at most maxResults of them.
func (fi *FileIndex) SearchByGlob(pattern string, maxResults int) ([]*FileRecord, error) {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	pattern = strings.ReplaceAll(pattern, "\\", "/")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var results []*FileRecord
	for _, path := range fi.sortedPaths {
		if len(results) >= maxResults {
			break
		}
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			results = append(results, fi.files[path])
		}
	}
	return results, nil
}

// FilesOfType returns the records of one file type in path order.
func (fi *FileIndex) FilesOfType(fileType string) []*FileRecord {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	var result []*FileRecord
	for _, path := range fi.sortedPaths {
		if file := fi.files[path]; file.Type == fileType {
			result = append(result, file)
		}
	}
	return result
}

// AllFiles returns every record in path order.
func (fi *FileIndex) AllFiles() []*FileRecord {
	fi.mu.RLock()
	defer fi.mu.RUnlock()

	result := make([]*FileRecord, 0, len(fi.sortedPaths))
	for _, path := range fi.sortedPaths {
		result = append(result, fi.files[path])
	}
	return result
}

// Clear removes every record.
func (fi *FileIndex) Clear() {
	fi.mu.Lock()
	defer fi.mu.Unlock()

	fi.files = make(map[string]*FileRecord)
	fi.sortedPaths = make([]string, 0)
}
