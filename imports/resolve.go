package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lexandro/importgraph-mcp/source"
)

var (
	singleQuoted = regexp.MustCompile(`'(.*)'`)
	doubleQuoted = regexp.MustCompile(`"(.*)"`)
)

// Resolver turns raw import statements into absolute file paths.
type Resolver struct {
	// AliasRoot replaces a leading "~" segment. Imports using "~" fail when it is empty.
	AliasRoot string
	// ScriptExt is appended when probing implicit imports. Empty means DefaultScriptType.
	ScriptExt string
}

func (r Resolver) scriptExt() string {
	if r.ScriptExt == "" {
		return DefaultScriptType
	}
	return r.ScriptExt
}

// ImportPath returns the text between the quotes of statement. Single quotes are tried first.
func ImportPath(statement string) (string, error) {
	if m := singleQuoted.FindStringSubmatch(statement); m != nil {
		return m[1], nil
	}
	if m := doubleQuoted.FindStringSubmatch(statement); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: %s", ErrMalformedImport, statement)
}

// IsFileToken reports whether an import path refers to a file of the tree rather than a library.
func IsFileToken(token string) bool {
	return strings.HasPrefix(token, ".") || strings.HasPrefix(token, "~")
}

// Resolve returns the absolute path imported by statement inside from.
// isFile is false for library imports, which callers discard.
func (r Resolver) Resolve(statement string, from source.File) (path string, isFile bool, err error) {
	token, err := ImportPath(statement)
	if err != nil {
		return "", false, err
	}
	if !IsFileToken(token) {
		return "", false, nil
	}
	path, err = r.ResolveToken(token, from.Dir())
	if err != nil {
		return "", false, fmt.Errorf("resolving %q in %s: %w", token, from.Path(), err)
	}
	return path, true, nil
}

// ResolveToken resolves a file-relative import path against dir.
// Parent segments are applied by dropping trailing components of dir; nothing is normalized.
func (r Resolver) ResolveToken(token string, dir string) (string, error) {
	resolved, err := r.Locate(token, dir)
	if err != nil {
		return "", err
	}
	if IsImplicit(resolved) {
		return r.resolveImplicit(resolved)
	}
	return resolved, nil
}

// Locate applies the leading ".", ".." or "~" segment of token to dir. Unlike
// ResolveToken it never looks on disk for an index file or a missing extension.
func (r Resolver) Locate(token string, dir string) (string, error) {
	segments := strings.Split(token, "/")

	var resolved string
	switch segments[0] {
	case ".":
		segments[0] = dir
		resolved = strings.Join(segments, "/")
	case "..":
		levels := countParentSegments(segments)
		resolved = ancestor(dir, levels)
		if rest := strings.Join(segments[levels:], "/"); rest != "" {
			resolved += "/" + rest
		}
	case "~":
		if r.AliasRoot == "" {
			return "", fmt.Errorf("%w: no alias root configured for %q", ErrUnsupportedImportSyntax, token)
		}
		segments[0] = strings.TrimSuffix(filepath.ToSlash(r.AliasRoot), "/")
		resolved = strings.Join(segments, "/")
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImportSyntax, token)
	}

	if len(resolved) > 1 {
		resolved = strings.TrimSuffix(resolved, "/")
	}
	return resolved, nil
}

// IsImplicit reports whether the base name of path lacks an extension. Names containing
// ".service" exactly once ("api.service") are implicit too.
func IsImplicit(path string) bool {
	base := path[strings.LastIndex(path, "/")+1:]
	if strings.Count(base, ".service") == 1 {
		return true
	}
	return !strings.Contains(base, ".")
}

// resolveImplicit probes dir -> dir/index.<ext>, then file -> file.<ext>.
func (r Resolver) resolveImplicit(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path + "/index." + r.scriptExt(), nil
	}
	withExt := path + "." + r.scriptExt()
	if info, err := os.Stat(withExt); err == nil && info.Mode().IsRegular() {
		return withExt, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnresolvedImport, path)
}

// Specifier derives the relative import path that from would use to import to.
func Specifier(from source.File, to source.File) string {
	rel, err := filepath.Rel(filepath.FromSlash(from.Dir()), filepath.FromSlash(to.Path()))
	if err != nil {
		return to.Path()
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}

func countParentSegments(segments []string) int {
	levels := 0
	for levels < len(segments) && segments[levels] == ".." {
		levels++
	}
	return levels
}

func ancestor(dir string, levels int) string {
	parts := strings.Split(dir, "/")
	if levels >= len(parts) {
		return ""
	}
	return strings.Join(parts[:len(parts)-levels], "/")
}
