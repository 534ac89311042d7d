package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/project"
)

// CheckArgs defines the input parameters for the importgraph_check tool (none required).
type CheckArgs struct{}

// CheckHandler reports imports that no longer resolve.
type CheckHandler struct {
	Project *project.Project
	Logger  *slog.Logger
}

// Handle processes an importgraph_check request.
func (h *CheckHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CheckArgs) (*mcp.CallToolResult, any, error) {
	result, err := h.Project.Check()
	if err != nil {
		h.Logger.Error("importgraph_check failed", "error", err)
		return errorResult("Check error: %v", err), nil, nil
	}

	h.Logger.Info("importgraph_check",
		"dangling", len(result.Dangling),
		"failures", len(result.Failures),
		"cycles", len(result.Cycles),
	)
	return textResult(FormatCheck(h.Project.RootDir(), result)), nil, nil
}
