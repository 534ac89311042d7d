package imports

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lexandro/importgraph-mcp/language"
	"github.com/lexandro/importgraph-mcp/source"
)

// DefaultCacheSize is the number of files whose statements CachedExtractor keeps.
const DefaultCacheSize = 4096

// Imports reads f from disk and extracts its import statements.
func (e Extractor) Imports(f source.File) ([]string, error) {
	if f.Type() != e.scriptType() {
		return nil, nil
	}
	content, err := os.ReadFile(f.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, f.Path())
		}
		return nil, fmt.Errorf("reading %s: %w", f.Path(), err)
	}
	if language.IsBinaryContent(content) {
		return nil, nil
	}
	return e.Extract(string(content), f.Type()), nil
}

type cachedImports struct {
	size       int64
	modTime    time.Time
	statements []string
}

// CachedExtractor memoizes Extractor.Imports per path. An entry is reused only while the
// file's size and modification time are unchanged, so edits made between two walks are seen.
// Safe for concurrent use.
type CachedExtractor struct {
	extractor Extractor
	cache     *lru.Cache[string, cachedImports]
	hits      atomic.Int64
	misses    atomic.Int64
}

// NewCachedExtractor creates a cache holding up to size files (DefaultCacheSize when size <= 0).
func NewCachedExtractor(extractor Extractor, size int) (*CachedExtractor, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedImports](size)
	if err != nil {
		return nil, fmt.Errorf("creating import cache: %w", err)
	}
	return &CachedExtractor{extractor: extractor, cache: cache}, nil
}

// Imports returns the import statements of f, reading the file only when it changed.
func (c *CachedExtractor) Imports(f source.File) ([]string, error) {
	if f.Type() != c.extractor.scriptType() {
		return nil, nil
	}

	info, err := os.Stat(f.Path())
	if err != nil {
		c.cache.Remove(f.Path())
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, f.Path())
		}
		return nil, fmt.Errorf("checking %s: %w", f.Path(), err)
	}

	if entry, ok := c.cache.Get(f.Path()); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		c.hits.Add(1)
		return entry.statements, nil
	}
	c.misses.Add(1)

	statements, err := c.extractor.Imports(f)
	if err != nil {
		return nil, err
	}
	c.cache.Add(f.Path(), cachedImports{
		size:       info.Size(),
		modTime:    info.ModTime(),
		statements: statements,
	})
	return statements, nil
}

// Invalidate drops the cached statements of path.
func (c *CachedExtractor) Invalidate(path string) {
	c.cache.Remove(path)
}

// Purge drops every cached entry.
func (c *CachedExtractor) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached files.
func (c *CachedExtractor) Len() int {
	return c.cache.Len()
}

// Stats returns cache hits and misses since creation.
func (c *CachedExtractor) Stats() (hits int64, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
