// Package imports recognizes import statements line by line and resolves their
// path literals to files of the analyzed tree.
package imports

import "strings"

// DefaultScriptType is the file type whose imports are scanned.
const DefaultScriptType = "js"

// Extractor pulls raw import statements out of the leading import block of a script file.
type Extractor struct {
	// ScriptType is the only file type that is scanned. Empty means DefaultScriptType.
	ScriptType string
}

func (e Extractor) scriptType() string {
	if e.ScriptType == "" {
		return DefaultScriptType
	}
	return e.ScriptType
}

// Extract returns the import statements of content in source order. Files of any other
// type than the script type yield nothing.
//
// Statements spanning several physical lines are joined (trimmed lines concatenated
// without a separator) until the accumulated text is complete. Scanning stops at the first
// line that is neither blank, a comment, nor import-like while no statement is open.
// An open statement is not reset by a following import line, so a malformed multi-line
// statement swallows the next one; a statement still open at end of input is dropped.
func (e Extractor) Extract(content string, fileType string) []string {
	if fileType != e.scriptType() {
		return nil
	}

	var statements []string
	var pending strings.Builder

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || IsComment(line) {
			continue
		}

		tracking := pending.Len() > 0
		if !IsImportStatement(line) && !tracking {
			break
		}

		if !tracking && IsCompleteImport(line) {
			statements = append(statements, line)
			continue
		}

		pending.WriteString(line)
		if IsCompleteImport(pending.String()) {
			statements = append(statements, pending.String())
			pending.Reset()
		}
	}

	return statements
}
