// Package project ties the analysis of one tree together: enumeration, the file and
// import catalogs, the dependency graph, and its upkeep while files change.
package project

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/lexandro/importgraph-mcp/graph"
	"github.com/lexandro/importgraph-mcp/ignore"
	"github.com/lexandro/importgraph-mcp/imports"
	"github.com/lexandro/importgraph-mcp/index"
	"github.com/lexandro/importgraph-mcp/source"
)

// Options configures a Project.
type Options struct {
	RootDir   string
	Ignore    *ignore.Matcher
	Extractor imports.Extractor
	Resolver  imports.Resolver
	MaxDepth  int
	Strict    bool
	CacheSize int
	Logger    *slog.Logger
}

// Summary describes the outcome of an analysis.
type Summary struct {
	Files        int
	Scripts      int
	TotalBytes   int64
	Dependencies int
	Failures     int
	Duration     time.Duration
}

// Project is the analyzed state of one tree. Analyses are serialized; readers of the
// catalogs and the graph store may run concurrently with them.
type Project struct {
	rootDir    string
	options    Options
	matcher    *ignore.Matcher
	extractor  *imports.CachedExtractor
	files      *index.FileIndex
	statements *index.ImportIndex
	store      *graph.Store
	logger     *slog.Logger

	analyzeMu sync.Mutex
}

// New creates a project for options.RootDir. Nothing is analyzed until Analyze.
func New(options Options) (*Project, error) {
	rootDir, err := filepath.Abs(options.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", options.RootDir, err)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	matcher := options.Ignore
	if matcher == nil {
		matcher = ignore.NewMatcher(ignore.MatcherOptions{RootDir: rootDir})
	}

	extractor, err := imports.NewCachedExtractor(options.Extractor, options.CacheSize)
	if err != nil {
		return nil, err
	}
	statements, err := index.NewImportIndex()
	if err != nil {
		return nil, err
	}

	return &Project{
		rootDir:    rootDir,
		options:    options,
		matcher:    matcher,
		extractor:  extractor,
		files:      index.NewFileIndex(),
		statements: statements,
		store:      graph.NewStore(),
		logger:     logger,
	}, nil
}

// RootDir returns the absolute root directory.
func (p *Project) RootDir() string { return p.rootDir }

// Files returns the file catalog.
func (p *Project) Files() *index.FileIndex { return p.files }

// Statements returns the import statement index.
func (p *Project) Statements() *index.ImportIndex { return p.statements }

// Graph returns the store holding the latest dependency tree.
func (p *Project) Graph() *graph.Store { return p.store }

// Extractor returns the cached import extractor.
func (p *Project) Extractor() *imports.CachedExtractor { return p.extractor }

// Ignore returns the ignore matcher.
func (p *Project) Ignore() *ignore.Matcher { return p.matcher }

// ScriptType returns the file type whose imports are scanned.
func (p *Project) ScriptType() string {
	if p.options.Extractor.ScriptType == "" {
		return imports.DefaultScriptType
	}
	return p.options.Extractor.ScriptType
}

// Walker returns a graph walker sharing the project's extractor cache and resolver.
func (p *Project) Walker() graph.Walker {
	return graph.Walker{
		Imports:  p.extractor,
		Resolver: p.options.Resolver,
		MaxDepth: p.options.MaxDepth,
		Logger:   p.logger,
	}
}

// Resolver returns the configured import resolver.
func (p *Project) Resolver() imports.Resolver { return p.options.Resolver }

// Open returns the file at path; relative paths are taken from the root.
func (p *Project) Open(path string) (source.File, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.rootDir, filepath.FromSlash(path))
	}
	return source.Open(path)
}

// Relative returns the slash path of f relative to the root.
func (p *Project) Relative(f source.File) string {
	return relativePath(p.rootDir, f.Path())
}

// Contains reports whether f lives below the root.
func (p *Project) Contains(f source.File) bool {
	return f.IsUnder(p.rootDir)
}

// Analyze rebuilds the catalogs and the dependency tree from scratch.
func (p *Project) Analyze() (*Summary, error) {
	p.analyzeMu.Lock()
	defer p.analyzeMu.Unlock()

	start := time.Now()
	entries, err := Enumerate(p.rootDir, p.matcher)
	if err != nil {
		return nil, fmt.Errorf("enumerating %s: %w", p.rootDir, err)
	}

	p.files.Clear()
	if err := p.statements.Clear(); err != nil {
		return nil, fmt.Errorf("clearing import index: %w", err)
	}
	recorded, totalSize := p.catalogAll(entries)

	tree, err := p.buildGraph()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Files:        recorded,
		Scripts:      len(tree.Roots) + len(tree.Failures),
		TotalBytes:   totalSize,
		Dependencies: tree.References.Len(),
		Failures:     len(tree.Failures),
		Duration:     time.Since(start),
	}
	p.logger.Info("analysis complete",
		"files", summary.Files,
		"scripts", summary.Scripts,
		"dependencies", summary.Dependencies,
		"failures", summary.Failures,
		"duration", summary.Duration,
	)
	return summary, nil
}

// Reanalyze reloads the ignore rules, drops the extractor cache and analyzes again.
func (p *Project) Reanalyze() (*Summary, error) {
	p.matcher.Reload()
	p.extractor.Purge()
	return p.Analyze()
}

// buildGraph walks every cataloged script and stores the resulting tree.
func (p *Project) buildGraph() (*graph.TreeResult, error) {
	records := p.files.FilesOfType(p.ScriptType())
	roots := make([]source.File, 0, len(records))
	for _, record := range records {
		file, err := source.Open(record.Path)
		if err != nil {
			if errors.Is(err, source.ErrNotFound) {
				continue
			}
			return nil, err
		}
		roots = append(roots, file)
	}

	tree, err := graph.BuildTree(roots, graph.TreeOptions{
		Walker: p.Walker(),
		Strict: p.options.Strict,
		Logger: p.logger,
	})
	if err != nil {
		return nil, err
	}
	p.store.Set(tree)
	return tree, nil
}

// Tree returns the latest dependency tree, analyzing first if there is none.
func (p *Project) Tree() (*graph.TreeResult, error) {
	if tree := p.store.Get(); tree != nil {
		return tree, nil
	}
	if _, err := p.Analyze(); err != nil {
		return nil, err
	}
	return p.store.Get(), nil
}

// Close releases the import index.
func (p *Project) Close() error {
	return p.statements.Close()
}
