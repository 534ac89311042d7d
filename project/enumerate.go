package project

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/lexandro/importgraph-mcp/ignore"
	"github.com/lexandro/importgraph-mcp/source"
)

// Entry is one file of the tree that takes part in an analysis.
type Entry struct {
	File         source.File
	RelativePath string
	Info         os.FileInfo
}

// Enumerate lists the files below rootDir that the matcher keeps, sorted by relative path.
// Unreadable entries are skipped.
func Enumerate(rootDir string, matcher *ignore.Matcher) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootDir && matcher.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || matcher.ShouldIgnore(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if matcher.IsFileTooLarge(info.Size()) {
			return nil
		}
		file, err := source.Open(path)
		if err != nil {
			return nil
		}
		entries = append(entries, Entry{
			File:         file,
			RelativePath: relativePath(rootDir, path),
			Info:         info,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})
	return entries, nil
}

func relativePath(rootDir string, path string) string {
	rel, err := filepath.Rel(rootDir, filepath.FromSlash(path))
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
