package rewrite

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/lexandro/importgraph-mcp/source"
)

// FileDiff is the pending change of one referencing file.
type FileDiff struct {
	File    source.File
	Added   int
	Removed int
	// Diff holds the changed lines, prefixed with "-" or "+".
	Diff string
}

// Preview computes the content changes Apply would make, without touching the disk.
// Targets are replayed in plan order on in-memory copies, one target per pass, as Apply
// rewrites them.
func Preview(plan *Plan) ([]FileDiff, error) {
	rewriter := plan.Rewriter()
	var order []source.File
	before := make(map[source.File]string)
	after := make(map[source.File]string)

	for _, target := range plan.Targets {
		for _, referencer := range target.Referencers {
			if _, loaded := before[referencer]; !loaded {
				content, err := readContent(referencer)
				if err != nil {
					return nil, err
				}
				before[referencer] = content
				after[referencer] = content
				order = append(order, referencer)
			}
			after[referencer] = rewriter.RewriteContent(after[referencer], Reference{
				File:    referencer,
				Targets: []source.File{target.File},
			})
		}
	}

	var diffs []FileDiff
	for _, file := range order {
		if before[file] == after[file] {
			continue
		}
		diff := lineDiff(before[file], after[file])
		diff.File = file
		diffs = append(diffs, diff)
	}
	return diffs, nil
}

func lineDiff(before string, after string) FileDiff {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(src, dst, false), lines)

	var result FileDiff
	var b strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(strings.TrimSuffix(line, "\n"))
			b.WriteByte('\n')
			if prefix == "-" {
				result.Removed++
			} else {
				result.Added++
			}
		}
	}
	result.Diff = b.String()
	return result
}
