package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/project"
)

// DepsArgs defines the input parameters for the importgraph_deps tool.
type DepsArgs struct {
	File string `json:"file" jsonschema:"Script file to walk, relative to the project root (e.g. src/app.js)"`
}

// DepsHandler walks the transitive dependencies of one file.
type DepsHandler struct {
	Project *project.Project
	Logger  *slog.Logger
}

// Handle processes an importgraph_deps request.
func (h *DepsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args DepsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.File == "" {
		h.Logger.Warn("importgraph_deps called with empty file")
		return errorResult("Error: file parameter is required"), nil, nil
	}

	file, err := h.Project.Open(args.File)
	if err != nil {
		return errorResult("Error: %v", err), nil, nil
	}

	walk, err := h.Project.Walker().Walk(file)
	if err != nil {
		h.Logger.Error("importgraph_deps failed", "file", args.File, "error", err)
		return errorResult("Walk error: %v", err), nil, nil
	}

	h.Logger.Info("importgraph_deps",
		"file", args.File,
		"dependencies", len(walk.Visited),
		"elapsed", time.Since(start),
	)
	return textResult(FormatDependencyTree(h.Project.RootDir(), walk)), nil, nil
}
