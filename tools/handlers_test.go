package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lexandro/importgraph-mcp/project"
	"github.com/lexandro/importgraph-mcp/rewrite"
)

func Test_DepsHandler_Tree(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &DepsHandler{Project: p, Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, DepsArgs{File: "src/app.js"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got: %s", resultText(t, result))
	}

	want := "── src/app.js (3 dependencies) ──\n" +
		"  src/components/button.js\n" +
		"    src/components/button.less\n" +
		"  src/app.less\n"
	if got := resultText(t, result); got != want {
		t.Errorf("unexpected tree:\n%s\nwant:\n%s", got, want)
	}
}

func Test_DepsHandler_Errors(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &DepsHandler{Project: p, Logger: testLogger()}

	for _, file := range []string{"", "src/missing.js"} {
		result, _, err := h.Handle(context.Background(), nil, DepsArgs{File: file})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Errorf("expected IsError=true for %q", file)
		}
	}
}

func Test_RefsHandler(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &RefsHandler{Project: p, Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, RefsArgs{File: "src/components/button.less"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "1 direct referencers") || !strings.Contains(text, "src/components/button.js") {
		t.Errorf("unexpected direct referencers:\n%s", text)
	}
	if strings.Contains(text, "src/app.js") {
		t.Errorf("expected app.js only in the transitive result:\n%s", text)
	}

	result, _, err = h.Handle(context.Background(), nil, RefsArgs{File: "src/components/button.less", Transitive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text = resultText(t, result)
	if !strings.Contains(text, "2 transitive referencers") || !strings.Contains(text, "src/app.js") {
		t.Errorf("unexpected transitive referencers:\n%s", text)
	}
}

func Test_RefsHandler_NoReferencers(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &RefsHandler{Project: p, Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, RefsArgs{File: "src/app.js"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, "No files import src/app.js") {
		t.Errorf("unexpected output:\n%s", text)
	}
}

func Test_SearchHandler(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &SearchHandler{Statements: p.Statements(), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, SearchArgs{Query: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "query parameter is required") {
		t.Error("expected an error for an empty query")
	}

	result, _, err = h.Handle(context.Background(), nil, SearchArgs{Query: "import"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Found 4 matches in 2 files") {
		t.Errorf("unexpected search output:\n%s", text)
	}
	if !strings.Contains(text, "2: import styles from './button.less';") {
		t.Errorf("expected the statement with its position, got:\n%s", text)
	}

	result, _, err = h.Handle(context.Background(), nil, SearchArgs{Query: "nonexistent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resultText(t, result), "No matches found") {
		t.Errorf("expected no matches, got:\n%s", resultText(t, result))
	}
}

func Test_FilesHandler(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &FilesHandler{FileIndex: p.Files(), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Pattern: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty pattern")
	}

	result, _, err = h.Handle(context.Background(), nil, FilesArgs{Pattern: "**/*.less", NameOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Found 2 files:\n\nsrc/app.less\nsrc/components/button.less\n"
	if got := resultText(t, result); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	result, _, err = h.Handle(context.Background(), nil, FilesArgs{Pattern: "**/*.ts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resultText(t, result), "No files matched") {
		t.Errorf("expected no files, got:\n%s", resultText(t, result))
	}
}

func Test_StatementsHandler(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &StatementsHandler{Statements: p.Statements(), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, StatementsArgs{FilePath: "./src/app.js"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "── src/app.js (2 import statements) ──\n" +
		"1│ import Button from './components/button';\n" +
		"2│ import './app.less';\n"
	if got := resultText(t, result); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	result, _, err = h.Handle(context.Background(), nil, StatementsArgs{FilePath: "src/app.less"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected IsError=true for a file without imports")
	}
}

func Test_RewriteHandler_DryRunByDefault(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &RewriteHandler{Project: p, Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, RewriteArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if result.IsError {
		t.Fatalf("expected success, got:\n%s", text)
	}
	checks := []string{
		"Dry run: 2 renames, 2 files to rewrite",
		"src/app.less -> app.module.less",
		"-import './app.less';",
		"+import './app.module.less';",
	}
	for _, check := range checks {
		if !strings.Contains(text, check) {
			t.Errorf("expected output to contain %q, got:\n%s", check, text)
		}
	}

	if _, err := os.Stat(filepath.Join(p.RootDir(), "src", "app.less")); err != nil {
		t.Errorf("expected a dry run to leave files in place: %v", err)
	}
}

func Test_RewriteHandler_Apply(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &RewriteHandler{Project: p, Defaults: rewrite.Selector{Glob: "src/components/**"}, Logger: testLogger()}

	dryRun := false
	result, _, err := h.Handle(context.Background(), nil, RewriteArgs{DryRun: &dryRun})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if result.IsError {
		t.Fatalf("expected success, got:\n%s", text)
	}
	if !strings.Contains(text, "Applied: 1 renames, 1 files rewritten") {
		t.Errorf("unexpected output:\n%s", text)
	}

	content, err := os.ReadFile(filepath.Join(p.RootDir(), "src", "components", "button.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "./button.module.less") {
		t.Errorf("expected the import to be rewritten, got:\n%s", content)
	}
	if _, err := os.Stat(filepath.Join(p.RootDir(), "src", "app.less")); err != nil {
		t.Errorf("expected app.less outside the glob to stay: %v", err)
	}
	if p.Files().GetFile("src/components/button.module.less") == nil {
		t.Error("expected the project to be re-analyzed after the rewrite")
	}
}

func Test_RewriteHandler_ConflictRefused(t *testing.T) {
	files := map[string]string{}
	for k, v := range fixture {
		files[k] = v
	}
	files["src/app.module.less"] = ".taken {}\n"
	p := newTestProject(t, files)
	h := &RewriteHandler{Project: p, Logger: testLogger()}

	dryRun := false
	result, _, err := h.Handle(context.Background(), nil, RewriteArgs{DryRun: &dryRun})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for a conflicting plan")
	}
	if !strings.Contains(resultText(t, result), "destination exists") {
		t.Errorf("expected the conflict reason, got:\n%s", resultText(t, result))
	}
	if _, err := os.Stat(filepath.Join(p.RootDir(), "src", "components", "button.less")); err != nil {
		t.Errorf("expected nothing to be renamed: %v", err)
	}
}

func Test_CheckHandler(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &CheckHandler{Project: p, Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, CheckArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.HasPrefix(text, "All imports resolve.") {
		t.Errorf("unexpected output:\n%s", text)
	}

	if err := os.Remove(filepath.Join(p.RootDir(), "src", "app.less")); err != nil {
		t.Fatal(err)
	}
	result, _, err = h.Handle(context.Background(), nil, CheckArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "1 dangling imports") || !strings.Contains(text, "src/app.js: import './app.less';") {
		t.Errorf("unexpected output:\n%s", text)
	}
}

func Test_StatusHandler(t *testing.T) {
	p := newTestProject(t, fixture)
	h := &StatusHandler{Project: p, StartTime: time.Now(), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	checks := []string{
		"importgraph-mcp Status",
		p.RootDir(),
		"Cataloged files: 4",
		"Files with imports: 2",
		"Import statements: 4",
		"Graph: 2 roots, 3 dependencies, 0 failed roots",
		"less",
	}
	for _, check := range checks {
		if !strings.Contains(text, check) {
			t.Errorf("expected output to contain %q, got:\n%s", check, text)
		}
	}
}

func Test_ReindexHandler(t *testing.T) {
	h := &ReindexHandler{
		DoReindex: func() (*project.Summary, error) {
			return &project.Summary{Files: 42, TotalBytes: 1024 * 1024, Scripts: 7, Duration: 1500 * time.Millisecond}, nil
		},
		Logger: testLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, ReindexArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	for _, check := range []string{"42 files", "1.0 MiB", "7 scripts", "1.5s"} {
		if !strings.Contains(text, check) {
			t.Errorf("expected output to contain %q, got:\n%s", check, text)
		}
	}

	h.DoReindex = func() (*project.Summary, error) { return nil, errors.New("disk full") }
	result, _, err = h.Handle(context.Background(), nil, ReindexArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "disk full") {
		t.Errorf("expected the failure to be reported, got:\n%s", resultText(t, result))
	}
}
