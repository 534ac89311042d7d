package tools

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/project"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixture = map[string]string{
	"src/app.js":                 "import Button from './components/button';\nimport './app.less';\n\nrender(Button);\n",
	"src/app.less":               ".app {}\n",
	"src/components/button.js":   "import React from 'react';\nimport styles from './button.less';\n",
	"src/components/button.less": ".btn {}\n",
}

// newTestProject writes files under a temp dir and returns the analyzed project.
func newTestProject(t *testing.T, files map[string]string) *project.Project {
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

	p, err := project.New(project.Options{RootDir: root, Logger: testLogger()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Close() })
	if _, err := p.Analyze(); err != nil {
		t.Fatal(err)
	}
	return p
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	return result.Content[0].(*mcp.TextContent).Text
}
