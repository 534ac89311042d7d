package imports

import "strings"

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether the trimmed line starts a line comment, a block comment,
// or is a `*` continuation line of a block comment.
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "//")
}

// IsImportStatement reports whether line contains "import" anywhere.
// Keyword boundaries are not checked: `const importer = 1` is classified as an import.
func IsImportStatement(line string) bool {
	return strings.Contains(line, "import")
}

// IsCompleteImport reports whether statement is import-like and holds a single balanced
// quoted literal: exactly two double quotes or exactly two single quotes.
func IsCompleteImport(statement string) bool {
	if !IsImportStatement(statement) {
		return false
	}
	return strings.Count(statement, `"`) == 2 || strings.Count(statement, `'`) == 2
}
