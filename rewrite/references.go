package rewrite

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/lexandro/importgraph-mcp/fsutil"
	"github.com/lexandro/importgraph-mcp/imports"
	"github.com/lexandro/importgraph-mcp/source"
)

var pathLiteral = regexp.MustCompile(`'[^']*'|"[^"]*"`)

// Reference pairs a referencing file with the targets it imports, in plan order.
type Reference struct {
	File    source.File
	Targets []source.File
}

// Rewriter replaces the names of renamed targets in the files that import them.
type Rewriter struct {
	Rule NamingRule
	// Resolver locates the path literals of a line; only literals pointing at the
	// target itself are rewritten, so a same-named file elsewhere is left alone.
	Resolver imports.Resolver
}

// RewriteReferences rewrites every reference and writes each changed file atomically.
// It returns the files whose content changed.
func (w Rewriter) RewriteReferences(refs []Reference) ([]source.File, error) {
	var changed []source.File
	for _, ref := range refs {
		content, err := readContent(ref.File)
		if err != nil {
			return changed, err
		}

		updated := w.RewriteContent(content, ref)
		if updated == content {
			continue
		}
		if err := fsutil.WriteFileAtomic(ref.File.Path(), []byte(updated), 0o644); err != nil {
			return changed, err
		}
		changed = append(changed, ref.File)
	}
	return changed, nil
}

// RewriteContent rewrites content line by line. In each line only the first target of ref
// that the line mentions is replaced. A line with quoted literals is matched through
// them: every literal locating the target gets the new name. A line without literals,
// such as a comment, has every whole-name occurrence replaced. Every other byte, line
// endings included, is kept.
func (w Rewriter) RewriteContent(content string, ref Reference) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, line := range strings.SplitAfter(content, "\n") {
		b.WriteString(w.rewriteLine(line, ref))
	}
	return b.String()
}

func (w Rewriter) rewriteLine(line string, ref Reference) string {
	literals := pathLiteral.FindAllStringIndex(line, -1)
	for _, target := range ref.Targets {
		newName := w.Rule(target.Name())
		var replaced string
		var found bool
		if len(literals) == 0 {
			replaced, found = replaceName(line, target.Name(), newName)
		} else {
			replaced, found = w.replaceLiterals(line, literals, ref.File, target, newName)
		}
		if found {
			return replaced
		}
	}
	return line
}

func (w Rewriter) replaceLiterals(line string, literals [][]int, from source.File, target source.File, newName string) (string, bool) {
	var b strings.Builder
	found := false
	pos := 0
	for _, loc := range literals {
		literal := line[loc[0]:loc[1]]
		if !w.locates(literal[1:len(literal)-1], from, target) {
			continue
		}
		replaced, ok := replaceName(literal, target.Name(), newName)
		if !ok {
			continue
		}
		b.WriteString(line[pos:loc[0]])
		b.WriteString(replaced)
		pos = loc[1]
		found = true
	}
	if !found {
		return line, false
	}
	b.WriteString(line[pos:])
	return b.String(), true
}

// locates reports whether token, imported from the directory of from, points at target.
func (w Rewriter) locates(token string, from source.File, target source.File) bool {
	if !imports.IsFileToken(token) {
		return false
	}
	located, err := w.Resolver.Locate(token, from.Dir())
	if err != nil {
		return false
	}
	return path.Clean(located) == target.Path()
}

// replaceName replaces occurrences of oldName that are not embedded in a longer name:
// "x.less" matches in "./x.less" but not in "./index.less".
func replaceName(line string, oldName string, newName string) (string, bool) {
	if oldName == "" || !strings.Contains(line, oldName) {
		return line, false
	}

	var b strings.Builder
	found := false
	pos := 0
	for {
		idx := strings.Index(line[pos:], oldName)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(oldName)
		if isNameBoundary(line, start, end) {
			b.WriteString(line[pos:start])
			b.WriteString(newName)
			found = true
		} else {
			b.WriteString(line[pos:end])
		}
		pos = end
	}
	b.WriteString(line[pos:])
	return b.String(), found
}

func isNameBoundary(line string, start int, end int) bool {
	if start > 0 && isNameByte(line[start-1]) {
		return false
	}
	if end < len(line) && isNameByte(line[end]) {
		return false
	}
	return true
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func readContent(f source.File) (string, error) {
	content, err := os.ReadFile(f.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", source.ErrNotFound, f.Path())
		}
		return "", fmt.Errorf("reading %s: %w", f.Path(), err)
	}
	return string(content), nil
}
