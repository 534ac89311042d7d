package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lexandro/importgraph-mcp/graph"
	"github.com/lexandro/importgraph-mcp/index"
	"github.com/lexandro/importgraph-mcp/project"
	"github.com/lexandro/importgraph-mcp/rewrite"
	"github.com/lexandro/importgraph-mcp/source"
)

// displayPath shows f relative to rootDir, or absolute with a marker when it lives outside.
func displayPath(rootDir string, f source.File) string {
	root := strings.TrimSuffix(rootDir, "/")
	if f.IsUnder(root) {
		return strings.TrimPrefix(f.Path(), root+"/")
	}
	return f.Path() + "  [outside root]"
}

// FormatDependencyTree renders a walk as an indented tree, one dependency per line.
// Files already listed earlier are marked and not expanded again.
func FormatDependencyTree(rootDir string, walk *graph.WalkResult) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s (%d dependencies) ──\n", displayPath(rootDir, walk.Root), len(walk.Visited)))
	if len(walk.Tree) == 0 {
		builder.WriteString("  (no file imports)\n")
		return builder.String()
	}

	for _, entry := range walk.Tree {
		builder.WriteString(strings.Repeat("  ", entry.Depth+1))
		builder.WriteString(displayPath(rootDir, entry.File))
		if entry.Seen {
			builder.WriteString("  (seen)")
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatReferencers lists the files importing target.
func FormatReferencers(rootDir string, target source.File, referencers []source.File, transitive bool) string {
	if len(referencers) == 0 {
		return fmt.Sprintf("No files import %s.\n", displayPath(rootDir, target))
	}

	kind := "direct"
	if transitive {
		kind = "transitive"
	}
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s (%d %s referencers) ──\n", displayPath(rootDir, target), len(referencers), kind))
	for _, referencer := range referencers {
		builder.WriteString(fmt.Sprintf("  %s\n", displayPath(rootDir, referencer)))
	}
	return builder.String()
}

// FormatSearchResults formats statement search results grouped by file.
func FormatSearchResults(results []index.SearchResult, totalMatches int) string {
	if len(results) == 0 {
		return "No matches found."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d matches in %d files:\n\n", totalMatches, len(results)))

	for i, result := range results {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("── %s ──\n", result.RelativePath))
		for _, match := range result.Matches {
			builder.WriteString(fmt.Sprintf("  %d: %s\n", match.Position, match.Statement))
		}
	}

	return builder.String()
}

// FormatFileResults formats file search results as human-readable text.
func FormatFileResults(results []*index.FileRecord, nameOnly bool) string {
	if len(results) == 0 {
		return "No files matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d files:\n\n", len(results)))

	for _, record := range results {
		if nameOnly {
			builder.WriteString(record.RelativePath)
			builder.WriteString("\n")
			continue
		}
		builder.WriteString(fmt.Sprintf("  %s  (%s, %s, %d imports)\n",
			record.RelativePath,
			record.Language,
			formatFileSize(record.SizeBytes),
			record.ImportCount,
		))
	}

	return builder.String()
}

// FormatStatements lists the import statements of one file, numbered.
func FormatStatements(filePath string, statements []string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s (%d import statements) ──\n", filePath, len(statements)))

	width := len(fmt.Sprintf("%d", len(statements)))
	for i, statement := range statements {
		builder.WriteString(fmt.Sprintf("%*d│ %s\n", width, i+1, statement))
	}
	return builder.String()
}

// FormatPlan describes a rewrite plan and the content changes it would make.
func FormatPlan(rootDir string, plan *rewrite.Plan, diffs []rewrite.FileDiff) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Dry run: %d renames, %d files to rewrite\n",
		len(plan.Targets), len(diffs)))

	if len(plan.Targets) > 0 {
		builder.WriteString("\nRenames:\n")
		for _, target := range plan.Targets {
			builder.WriteString(fmt.Sprintf("  %s -> %s  (%d referencers)\n",
				displayPath(rootDir, target.File), target.NewName, len(target.Referencers)))
		}
	}
	writeFileList(&builder, rootDir, "Already renamed", plan.Skipped)
	writeFileList(&builder, rootDir, "Outside root, not renamed", plan.Outside)

	if len(plan.Conflicts) > 0 {
		builder.WriteString("\nConflicts (nothing will be applied):\n")
		for _, conflict := range plan.Conflicts {
			builder.WriteString(fmt.Sprintf("  %s: %s\n", displayPath(rootDir, conflict.Target), conflict.Reason))
		}
	}

	for _, diff := range diffs {
		builder.WriteString(fmt.Sprintf("\n── %s (+%d -%d) ──\n", displayPath(rootDir, diff.File), diff.Added, diff.Removed))
		builder.WriteString(diff.Diff)
	}
	return builder.String()
}

// FormatApplyResult summarizes an applied rewrite.
func FormatApplyResult(rootDir string, result *rewrite.Result) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Applied: %d renames, %d files rewritten\n", len(result.Renamed), len(result.Rewritten)))
	if len(result.Renamed) > 0 {
		builder.WriteString("\nRenamed:\n")
		for _, renamed := range result.Renamed {
			builder.WriteString(fmt.Sprintf("  %s -> %s\n", renamed.From, displayPath(rootDir, renamed.File)))
		}
	}
	writeFileList(&builder, rootDir, "Rewritten", result.Rewritten)
	return builder.String()
}

// FormatCheck reports dangling imports, failed roots, cycles and outside dependencies.
func FormatCheck(rootDir string, result *project.CheckResult) string {
	var builder strings.Builder
	if result.OK() {
		builder.WriteString("All imports resolve.\n")
	} else {
		builder.WriteString(fmt.Sprintf("%d dangling imports, %d failed roots\n", len(result.Dangling), len(result.Failures)))
	}

	if len(result.Dangling) > 0 {
		builder.WriteString("\nDangling imports:\n")
		for _, dangling := range result.Dangling {
			builder.WriteString(fmt.Sprintf("  %s: %s\n    %v\n", displayPath(rootDir, dangling.File), dangling.Statement, dangling.Err))
		}
	}
	if len(result.Failures) > 0 {
		builder.WriteString("\nFailed roots:\n")
		for _, failure := range result.Failures {
			builder.WriteString(fmt.Sprintf("  %s: %v\n", displayPath(rootDir, failure.Root), failure.Err))
		}
	}
	if len(result.Cycles) > 0 {
		builder.WriteString("\nCycles:\n")
		for _, cycle := range result.Cycles {
			names := make([]string, len(cycle))
			for i, file := range cycle {
				names[i] = displayPath(rootDir, file)
			}
			builder.WriteString("  " + strings.Join(names, " -> ") + "\n")
		}
	}
	writeFileList(&builder, rootDir, "Dependencies outside root", result.Outside)
	return builder.String()
}

func writeFileList(builder *strings.Builder, rootDir string, title string, files []source.File) {
	if len(files) == 0 {
		return
	}
	builder.WriteString(fmt.Sprintf("\n%s:\n", title))
	for _, file := range files {
		builder.WriteString(fmt.Sprintf("  %s\n", displayPath(rootDir, file)))
	}
}

func formatFileSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}
