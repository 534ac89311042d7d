package graph

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/lexandro/importgraph-mcp/source"
)

// Failure records a root whose walk failed in non-strict mode.
type Failure struct {
	Root source.File
	Err  error
}

// TreeOptions configures BuildTree.
type TreeOptions struct {
	Walker Walker
	// Strict aborts on the first failing root instead of recording it.
	Strict bool
	Logger *slog.Logger
}

// TreeResult is the union of the walks of every root of a tree.
type TreeResult struct {
	Roots []source.File
	// References is the merged reverse index over all roots.
	References *ReverseIndex
	// Dependencies lists the distinct direct imports of each walked file in discovery order.
	Dependencies map[source.File][]source.File
	Failures     []Failure
}

// BuildTree walks every root with its own visited set and unions the results.
func BuildTree(roots []source.File, opts TreeOptions) (*TreeResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tree := &TreeResult{
		References:   NewReverseIndex(),
		Dependencies: make(map[source.File][]source.File),
	}
	direct := make(map[Edge]bool)

	for _, root := range roots {
		walk, err := opts.Walker.Walk(root)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("walking %s: %w", root.Path(), err)
			}
			logger.Warn("skipping root", "root", root.Path(), "error", err)
			tree.Failures = append(tree.Failures, Failure{Root: root, Err: err})
			continue
		}

		tree.Roots = append(tree.Roots, root)
		tree.References.Merge(walk.References)
		for _, edge := range walk.Edges {
			if direct[edge] {
				continue
			}
			direct[edge] = true
			tree.Dependencies[edge.From] = append(tree.Dependencies[edge.From], edge.To)
		}
	}

	logger.Info("dependency tree built",
		"roots", len(tree.Roots),
		"dependencies", tree.References.Len(),
		"failures", len(tree.Failures),
	)
	return tree, nil
}

// DependenciesOf returns a copy of the direct dependencies of file.
func (t *TreeResult) DependenciesOf(file source.File) []source.File {
	list := t.Dependencies[file]
	result := make([]source.File, len(list))
	copy(result, list)
	return result
}

// Cycles lists the import cycles of the tree. Each cycle starts and ends with the same
// file. Traversal order is by path, so results are stable between runs.
func (t *TreeResult) Cycles() [][]source.File {
	files := make([]source.File, 0, len(t.Dependencies))
	for file := range t.Dependencies {
		files = append(files, file)
	}
	sortFiles(files)

	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[source.File]int)
	var stack []source.File
	var cycles [][]source.File

	var visit func(file source.File)
	visit = func(file source.File) {
		state[file] = inProgress
		stack = append(stack, file)
		for _, dependency := range t.Dependencies[file] {
			switch state[dependency] {
			case unvisited:
				visit(dependency)
			case inProgress:
				cycles = append(cycles, cycleFrom(stack, dependency))
			}
		}
		stack = stack[:len(stack)-1]
		state[file] = done
	}

	for _, file := range files {
		if state[file] == unvisited {
			visit(file)
		}
	}
	return cycles
}

func cycleFrom(stack []source.File, start source.File) []source.File {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == start {
			cycle := make([]source.File, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)
			return append(cycle, start)
		}
	}
	return nil
}

func sortFiles(files []source.File) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path() < files[j].Path()
	})
}
