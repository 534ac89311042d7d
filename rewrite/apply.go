package rewrite

import (
	"fmt"
	"log/slog"

	"github.com/lexandro/importgraph-mcp/source"
)

// Result summarizes an applied plan.
type Result struct {
	Renamed []Renamed
	// Rewritten lists each file whose content changed, once.
	Rewritten []source.File
}

// Apply executes plan target by target: rename the target, then rewrite its referencers
// before moving on. A plan with conflicts is refused before anything is touched. On
// failure the work already done is returned with the error.
func Apply(plan *Plan, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	result := &Result{}
	if len(plan.Conflicts) > 0 {
		return result, fmt.Errorf("%w: %d conflicting targets, first %s (%s)",
			ErrRenameConflict, len(plan.Conflicts), plan.Conflicts[0].Destination, plan.Conflicts[0].Reason)
	}

	rewriter := plan.Rewriter()
	// current follows referencers that were renamed by an earlier target.
	current := make(map[source.File]source.File)
	rewritten := make(map[source.File]bool)

	for _, target := range plan.Targets {
		file := target.File
		if err := file.Rename(target.NewName); err != nil {
			return result, err
		}
		current[target.File] = file
		result.Renamed = append(result.Renamed, Renamed{From: target.File.Path(), File: file})
		logger.Debug("renamed", "from", target.File.Path(), "to", file.Path())

		refs := make([]Reference, 0, len(target.Referencers))
		for _, referencer := range target.Referencers {
			if moved, ok := current[referencer]; ok {
				referencer = moved
			}
			refs = append(refs, Reference{File: referencer, Targets: []source.File{target.File}})
		}

		changed, err := rewriter.RewriteReferences(refs)
		for _, f := range changed {
			if !rewritten[f] {
				rewritten[f] = true
				result.Rewritten = append(result.Rewritten, f)
			}
		}
		if err != nil {
			return result, fmt.Errorf("rewriting references to %s: %w", file.Path(), err)
		}
		if len(changed) < len(refs) {
			logger.Warn("referencer did not mention the renamed file",
				"target", file.Path(),
				"unchanged", len(refs)-len(changed),
			)
		}
	}

	logger.Info("rewrite applied",
		"renamed", len(result.Renamed),
		"rewritten", len(result.Rewritten),
	)
	return result, nil
}
