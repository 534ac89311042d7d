// Package rewrite renames a class of files and updates every file that references them,
// one target at a time so the tree is never inconsistent for more than a single target.
package rewrite

import (
	"strings"

	"github.com/lexandro/importgraph-mcp/source"
)

// DefaultCategory is the file type renamed when no category is configured.
const DefaultCategory = "less"

// ErrRenameConflict is returned when a rename destination already exists or is claimed
// by another target of the same plan.
var ErrRenameConflict = source.ErrRenameConflict

// NamingRule maps an old base name to its new base name.
type NamingRule func(oldName string) string

// ModuleNaming keeps the text before the first dot and appends ".module.<ext>":
// "demo.less" and "demo.style.less" both become "demo.module.less".
func ModuleNaming(ext string) NamingRule {
	return func(oldName string) string {
		stem, _, _ := strings.Cut(oldName, ".")
		return stem + ".module." + ext
	}
}
