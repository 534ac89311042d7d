package graph

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexandro/importgraph-mcp/imports"
	"github.com/lexandro/importgraph-mcp/source"
)

// DefaultMaxDepth bounds recursion when Walker.MaxDepth is not set.
const DefaultMaxDepth = 10

// ErrRecursionDepthExceeded is returned when a walk descends deeper than the configured limit.
var ErrRecursionDepthExceeded = errors.New("recursion depth exceeded")

// ImportSource yields the raw import statements of a file.
// imports.Extractor and *imports.CachedExtractor implement it.
type ImportSource interface {
	Imports(f source.File) ([]string, error)
}

// Walker follows file-to-file imports from a root.
type Walker struct {
	Imports  ImportSource
	Resolver imports.Resolver
	MaxDepth int
	Logger   *slog.Logger
}

// Entry is one line of a dependency tree: a dependency reached at Depth
// (0 for direct imports of the root). Seen marks a file already listed earlier.
type Entry struct {
	Depth int
	File  source.File
	Seen  bool
}

// WalkResult holds everything reachable from one root.
type WalkResult struct {
	Root source.File
	// Visited lists every file reached from Root, each once, in discovery order.
	Visited []source.File
	// References maps each reached dependency to the files importing it.
	References *ReverseIndex
	// Edges lists each resolved import in discovery order.
	Edges []Edge
	// Tree is the depth-annotated walk, suitable for an indented report.
	Tree []Entry
}

// Walk computes the transitive dependency set of root and the reverse index of every edge
// met on the way. Each edge is recorded once per importing statement; recursion stops at
// files already visited, so cycles terminate.
func (w Walker) Walk(root source.File) (*WalkResult, error) {
	if w.Imports == nil {
		w.Imports = imports.Extractor{}
	}
	if w.MaxDepth <= 0 {
		w.MaxDepth = DefaultMaxDepth
	}
	if w.Logger == nil {
		w.Logger = slog.Default()
	}

	result := &WalkResult{Root: root, References: NewReverseIndex()}
	visited := map[source.File]struct{}{root: {}}
	if err := w.walk(root, 0, visited, result); err != nil {
		return nil, err
	}
	w.Logger.Debug("walked dependencies", "root", root.Path(), "visited", len(result.Visited))
	return result, nil
}

func (w Walker) walk(file source.File, depth int, visited map[source.File]struct{}, result *WalkResult) error {
	if depth > w.MaxDepth {
		return fmt.Errorf("%w: %d levels below %s at %s", ErrRecursionDepthExceeded, w.MaxDepth, result.Root.Path(), file.Path())
	}

	dependencies, err := w.Dependencies(file)
	if err != nil {
		return err
	}

	for _, dependency := range dependencies {
		result.References.Add(dependency, file)
		result.Edges = append(result.Edges, Edge{From: file, To: dependency})
		if _, seen := visited[dependency]; seen {
			result.Tree = append(result.Tree, Entry{Depth: depth, File: dependency, Seen: true})
			continue
		}
		visited[dependency] = struct{}{}
		result.Visited = append(result.Visited, dependency)
		result.Tree = append(result.Tree, Entry{Depth: depth, File: dependency})
		if err := w.walk(dependency, depth+1, visited, result); err != nil {
			return err
		}
	}
	return nil
}

// Dependencies resolves the direct file imports of file in statement order.
// Library imports are skipped; a statement imported twice yields two entries.
func (w Walker) Dependencies(file source.File) ([]source.File, error) {
	if w.Imports == nil {
		w.Imports = imports.Extractor{}
	}
	statements, err := w.Imports.Imports(file)
	if err != nil {
		return nil, fmt.Errorf("reading imports of %s: %w", file.Path(), err)
	}

	var dependencies []source.File
	for _, statement := range statements {
		path, isFile, err := w.Resolver.Resolve(statement, file)
		if err != nil {
			return nil, err
		}
		if !isFile {
			continue
		}
		dependency, err := source.Open(path)
		if err != nil {
			return nil, fmt.Errorf("import %q in %s: %w", statement, file.Path(), err)
		}
		dependencies = append(dependencies, dependency)
	}
	return dependencies, nil
}
