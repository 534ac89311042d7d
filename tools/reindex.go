package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/project"
)

// ReindexArgs defines the input parameters for the importgraph_reindex tool.
type ReindexArgs struct{}

// ReindexFunc rebuilds the catalogs and the graph from scratch.
type ReindexFunc func() (*project.Summary, error)

// ReindexHandler holds the dependencies for the reindex tool.
type ReindexHandler struct {
	DoReindex ReindexFunc
	Logger    *slog.Logger
}

// Handle processes an importgraph_reindex request.
func (h *ReindexHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReindexArgs) (*mcp.CallToolResult, any, error) {
	h.Logger.Info("importgraph_reindex started")

	summary, err := h.DoReindex()
	if err != nil {
		h.Logger.Error("importgraph_reindex failed", "error", err)
		return errorResult("Reindex error: %v", err), nil, nil
	}

	h.Logger.Info("importgraph_reindex complete",
		"files", summary.Files,
		"totalSize", summary.TotalBytes,
		"elapsed", summary.Duration,
	)

	output := fmt.Sprintf("reindexed: %d files (%s), %d scripts, %d dependencies, %d failed roots in %s",
		summary.Files, formatFileSize(summary.TotalBytes), summary.Scripts, summary.Dependencies,
		summary.Failures, summary.Duration.Round(time.Millisecond))
	return textResult(output), nil, nil
}
