package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/project"
	"github.com/lexandro/importgraph-mcp/source"
)

// RefsArgs defines the input parameters for the importgraph_refs tool.
type RefsArgs struct {
	File       string `json:"file" jsonschema:"File whose importers are listed, relative to the project root (e.g. src/theme.less)"`
	Transitive bool   `json:"transitive,omitempty" jsonschema:"If true also list files that reach the file through other imports"`
}

// RefsHandler answers reverse lookups on the dependency graph.
type RefsHandler struct {
	Project *project.Project
	Logger  *slog.Logger
}

// Handle processes an importgraph_refs request.
func (h *RefsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args RefsArgs) (*mcp.CallToolResult, any, error) {
	if args.File == "" {
		h.Logger.Warn("importgraph_refs called with empty file")
		return errorResult("Error: file parameter is required"), nil, nil
	}

	file, err := h.Project.Open(args.File)
	if err != nil {
		return errorResult("Error: %v", err), nil, nil
	}
	tree, err := h.Project.Tree()
	if err != nil {
		h.Logger.Error("importgraph_refs failed", "file", args.File, "error", err)
		return errorResult("Graph error: %v", err), nil, nil
	}

	var referencers []source.File
	if args.Transitive {
		referencers = tree.References.Affected(file)
	} else {
		referencers = distinctFiles(tree.References.Referencers(file))
	}

	h.Logger.Info("importgraph_refs", "file", args.File, "transitive", args.Transitive, "referencers", len(referencers))
	return textResult(FormatReferencers(h.Project.RootDir(), file, referencers, args.Transitive)), nil, nil
}

func distinctFiles(files []source.File) []source.File {
	seen := make(map[source.File]bool, len(files))
	var result []source.File
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			result = append(result, f)
		}
	}
	return result
}
