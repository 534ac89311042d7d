// Package ignore decides which files of a tree take part in an analysis.
package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// DefaultMaxFileSize is the size above which files are skipped.
const DefaultMaxFileSize = 1024 * 1024

// Matcher combines the default patterns, the root ignore files and custom exclude patterns.
// Reload takes the write lock; the Should* methods take the read lock.
type Matcher struct {
	mu               sync.RWMutex
	rootDir          string
	ignoreFiles      []gitignore.GitIgnore
	customPatterns   []string
	maxFileSizeBytes int64
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	RootDir string
	// CustomPatterns are doublestar patterns matched against the slash path relative to RootDir.
	// A pattern without "/" also matches base names.
	CustomPatterns   []string
	MaxFileSizeBytes int64
}

// NewMatcher creates a matcher for options.RootDir and loads its ignore files.
func NewMatcher(options MatcherOptions) *Matcher {
	matcher := &Matcher{
		rootDir:          options.RootDir,
		customPatterns:   options.CustomPatterns,
		maxFileSizeBytes: options.MaxFileSizeBytes,
	}
	if matcher.maxFileSizeBytes <= 0 {
		matcher.maxFileSizeBytes = DefaultMaxFileSize
	}
	matcher.ignoreFiles = loadIgnoreFiles(options.RootDir)
	return matcher
}

// ShouldIgnore reports whether absolutePath is excluded from analysis.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	for _, part := range strings.Split(relativePath, "/") {
		if skippedDirs[part] {
			return true
		}
	}
	if matchesAny(DefaultIgnorePatterns, relativePath) {
		return true
	}

	isDir := false
	if info, err := os.Stat(absolutePath); err == nil {
		isDir = info.IsDir()
	}
	for _, ignoreFile := range m.ignoreFiles {
		if match := ignoreFile.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}

	return matchesAny(m.customPatterns, relativePath)
}

// ShouldIgnoreDir reports whether a directory is skipped entirely during traversal.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	if skippedDirs[filepath.Base(absolutePath)] {
		return true
	}
	return m.ShouldIgnore(absolutePath)
}

// IsFileTooLarge reports whether a file of fileSize bytes exceeds the limit.
func (m *Matcher) IsFileTooLarge(fileSize int64) bool {
	return fileSize > m.maxFileSizeBytes
}

// MaxFileSizeBytes returns the configured size limit.
func (m *Matcher) MaxFileSizeBytes() int64 {
	return m.maxFileSizeBytes
}

// IsIgnoreFile reports whether name is one of the ignore files the matcher reads.
func IsIgnoreFile(name string) bool {
	for _, candidate := range IgnoreFileNames {
		if name == candidate {
			return true
		}
	}
	return false
}

// Reload re-reads the ignore files of the root.
func (m *Matcher) Reload() {
	ignoreFiles := loadIgnoreFiles(m.rootDir)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignoreFiles = ignoreFiles
}

func matchesAny(patterns []string, relativePath string) bool {
	baseName := relativePath[strings.LastIndex(relativePath, "/")+1:]
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func loadIgnoreFiles(rootDir string) []gitignore.GitIgnore {
	var loaded []gitignore.GitIgnore
	for _, name := range IgnoreFileNames {
		if gi := loadIgnoreFile(filepath.Join(rootDir, name), rootDir); gi != nil {
			loaded = append(loaded, gi)
		}
	}
	return loaded
}

// loadIgnoreFile parses one ignore file. The file handle is closed before returning.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
