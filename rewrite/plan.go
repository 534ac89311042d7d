package rewrite

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lexandro/importgraph-mcp/graph"
	"github.com/lexandro/importgraph-mcp/imports"
	"github.com/lexandro/importgraph-mcp/source"
)

// Selector chooses which dependencies of a reverse index are renamed.
type Selector struct {
	// Category is the file type of targets. Empty means DefaultCategory.
	Category string
	// Glob optionally restricts targets to paths (relative to Root) matching a doublestar pattern.
	Glob string
	// Root, when set, excludes dependencies outside it.
	Root string
	// Resolver locates the import literals of referencers when they are rewritten.
	Resolver imports.Resolver
}

// Target is a file to rename together with the files importing it.
type Target struct {
	File    source.File
	NewName string
	// Referencers lists each importing file once, in discovery order.
	Referencers []source.File
}

// Conflict describes a target that cannot be renamed.
type Conflict struct {
	Target      source.File
	Destination string
	Reason      string
}

// Plan is the full set of renames and rewrites of one run.
type Plan struct {
	Rule     NamingRule
	Resolver imports.Resolver
	Targets  []Target
	// Skipped holds selected files whose new name equals their current name.
	Skipped []source.File
	// Outside holds selected files that live outside the selector root.
	Outside   []source.File
	Conflicts []Conflict
}

// BuildPlan selects targets from refs in discovery order. A nil rule means
// ModuleNaming for the selected category. Destinations that exist on disk or collide
// with another target are reported as conflicts.
func BuildPlan(refs *graph.ReverseIndex, sel Selector, rule NamingRule) (*Plan, error) {
	category := sel.Category
	if category == "" {
		category = DefaultCategory
	}
	if sel.Glob != "" && !doublestar.ValidatePattern(sel.Glob) {
		return nil, fmt.Errorf("invalid glob pattern: %s", sel.Glob)
	}
	if rule == nil {
		rule = ModuleNaming(category)
	}
	root := strings.TrimSuffix(sel.Root, "/")

	plan := &Plan{Rule: rule, Resolver: sel.Resolver}
	claimed := make(map[string]source.File)

	for _, dependency := range refs.Keys() {
		if dependency.Type() != category {
			continue
		}
		if root != "" && !dependency.IsUnder(root) {
			plan.Outside = append(plan.Outside, dependency)
			continue
		}
		if sel.Glob != "" {
			relative := strings.TrimPrefix(dependency.Path(), root+"/")
			if matched, _ := doublestar.Match(sel.Glob, relative); !matched {
				continue
			}
		}

		newName := rule(dependency.Name())
		if newName == dependency.Name() {
			plan.Skipped = append(plan.Skipped, dependency)
			continue
		}

		destination := dependency.Dir() + "/" + newName
		if other, taken := claimed[destination]; taken {
			plan.Conflicts = append(plan.Conflicts, Conflict{
				Target:      dependency,
				Destination: destination,
				Reason:      "also the destination of " + other.Name(),
			})
			continue
		}
		if _, err := os.Lstat(destination); err == nil {
			plan.Conflicts = append(plan.Conflicts, Conflict{
				Target:      dependency,
				Destination: destination,
				Reason:      "destination exists",
			})
			continue
		}
		claimed[destination] = dependency

		plan.Targets = append(plan.Targets, Target{
			File:        dependency,
			NewName:     newName,
			Referencers: distinct(refs.Referencers(dependency)),
		})
	}
	return plan, nil
}

// Rewriter returns the rewriter Apply and Preview use for the plan's referencers.
func (p *Plan) Rewriter() Rewriter {
	return Rewriter{Rule: p.Rule, Resolver: p.Resolver}
}

func distinct(files []source.File) []source.File {
	seen := make(map[source.File]bool, len(files))
	result := make([]source.File, 0, len(files))
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		result = append(result, f)
	}
	return result
}
