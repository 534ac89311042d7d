package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so each test starts from a clean command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Value.Type() == "stringArray" {
			return
		}
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

var demoTree = map[string]string{
	"src/index.js":     "import Demo from '~/demo';\n\nDemo();\n",
	"src/demo.js":      "import styles from './demo.less';\nimport shared from '../shared/base.less';\n",
	"src/demo.less":    ".demo {}\n",
	"shared/base.less": ".base {}\n",
}

func Test_VersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "importgraph-mcp "+Version+"\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func Test_DepsCommand_AliasRoot(t *testing.T) {
	root := writeTree(t, demoTree)

	out, err := execute(t, "deps", "src/index.js", "--root", root, "--alias-root", "src")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"src/demo.js", "    src/demo.less", "    shared/base.less"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func Test_DepsCommand_WithoutAliasFails(t *testing.T) {
	root := writeTree(t, demoTree)

	if _, err := execute(t, "deps", "src/index.js", "--root", root); err == nil {
		t.Error("expected an error for a \"~\" import without an alias root")
	}
}

func Test_RewriteCommand_DryRunThenApply(t *testing.T) {
	root := writeTree(t, demoTree)

	out, err := execute(t, "rewrite", "--root", root, "--alias-root", "src")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Dry run: 2 renames") {
		t.Errorf("unexpected dry run output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "src", "demo.less")); err != nil {
		t.Fatalf("expected the dry run to leave demo.less: %v", err)
	}

	out, err = execute(t, "rewrite", "--root", root, "--alias-root", "src", "--dry-run=false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Applied: 2 renames, 1 files rewritten") {
		t.Errorf("unexpected apply output:\n%s", out)
	}
	content, err := os.ReadFile(filepath.Join(root, "src", "demo.js"))
	if err != nil {
		t.Fatal(err)
	}
	want := "import styles from './demo.module.less';\nimport shared from '../shared/base.module.less';\n"
	if string(content) != want {
		t.Errorf("got:\n%s\nwant:\n%s", content, want)
	}

	out, err = execute(t, "check", "--root", root, "--alias-root", "src")
	if err != nil {
		t.Fatalf("expected a clean check after the rewrite, got %v:\n%s", err, out)
	}
}

func Test_CheckCommand_ReportsDangling(t *testing.T) {
	root := writeTree(t, demoTree)
	if err := os.Remove(filepath.Join(root, "src", "demo.less")); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "check", "--root", root, "--alias-root", "src")
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected errCheckFailed, got %v", err)
	}
	if !strings.Contains(out, "src/demo.js: import styles from './demo.less';") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func Test_ConfigFileAndFlags(t *testing.T) {
	root := writeTree(t, demoTree)
	if err := os.WriteFile(filepath.Join(root, "importgraph.yaml"), []byte("alias_root: src\nmax_depth: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "deps", "src/index.js", "--root", root); err == nil {
		t.Error("expected the invalid max_depth of the config file to be rejected")
	}
	if _, err := execute(t, "deps", "src/index.js", "--root", root, "--config", filepath.Join(root, "missing.yaml")); err == nil {
		t.Error("expected a missing explicit config to be rejected")
	}
}

func Test_RegisterCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "register", "project", dir, "--name", "importgraph", "--", "serve", "--alias-root", "src")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, ".mcp.json")) {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".mcp.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"importgraph"`) || !strings.Contains(string(data), `"--alias-root"`) {
		t.Errorf("unexpected config:\n%s", data)
	}

	if _, err := execute(t, "register", "user", dir); err == nil {
		t.Error("expected a directory to be rejected for the user scope")
	}
}
