package imports

import "testing"

func Test_IsComment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"// import a from './a'", true},
		{"  /* block */", true},
		{" * continued block", true},
		{"*/", true},
		{"", false},
		{"   ", false},
		{"import a from './a'", false},
		{"const x = 1 // trailing", false},
	}
	for _, tt := range tests {
		if got := IsComment(tt.line); got != tt.want {
			t.Errorf("IsComment(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func Test_IsBlank(t *testing.T) {
	if !IsBlank(" \t ") {
		t.Error("expected whitespace to be blank")
	}
	if IsBlank("x") {
		t.Error("expected text not to be blank")
	}
}

func Test_IsImportStatement_Substring(t *testing.T) {
	if !IsImportStatement("import a from './a'") {
		t.Error("expected import statement")
	}
	// Coarse heuristic: any line containing the word counts.
	if !IsImportStatement("const important = true") {
		t.Error("expected substring match to classify as import")
	}
	if IsImportStatement("export default App") {
		t.Error("expected export not to be import")
	}
}

func Test_IsCompleteImport(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"import a from './a'", true},
		{`import a from "./a"`, true},
		{"import {", false},
		{"import a from './a", false},
		{"export { a } from './a'", false},
		{`import a from "it's"`, true},
	}
	for _, tt := range tests {
		if got := IsCompleteImport(tt.line); got != tt.want {
			t.Errorf("IsCompleteImport(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
