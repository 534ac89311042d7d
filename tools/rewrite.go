package tools

import (
	"context"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/project"
	"github.com/lexandro/importgraph-mcp/rewrite"
)

// RewriteArgs defines the input parameters for the importgraph_rewrite tool.
type RewriteArgs struct {
	Category string `json:"category,omitempty" jsonschema:"File type to rename (default less)"`
	Glob     string `json:"glob,omitempty" jsonschema:"Optional glob restricting renamed files, relative to the project root"`
	DryRun   *bool  `json:"dryRun,omitempty" jsonschema:"Only show the planned renames and diffs (default true)"`
}

// RewriteHandler plans and applies module renames. Applications are serialized.
type RewriteHandler struct {
	Project *project.Project
	// Defaults fill in an empty category or glob.
	Defaults rewrite.Selector
	Logger   *slog.Logger

	mu sync.Mutex
}

// Handle processes an importgraph_rewrite request.
func (h *RewriteHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args RewriteArgs) (*mcp.CallToolResult, any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sel := rewrite.Selector{Category: args.Category, Glob: args.Glob}
	if sel.Category == "" {
		sel.Category = h.Defaults.Category
	}
	if sel.Glob == "" {
		sel.Glob = h.Defaults.Glob
	}
	dryRun := args.DryRun == nil || *args.DryRun

	plan, err := h.Project.PlanRewrite(sel)
	if err != nil {
		h.Logger.Error("importgraph_rewrite planning failed", "error", err)
		return errorResult("Plan error: %v", err), nil, nil
	}

	rootDir := h.Project.RootDir()
	if dryRun || len(plan.Conflicts) > 0 {
		diffs, err := rewrite.Preview(plan)
		if err != nil {
			h.Logger.Error("importgraph_rewrite preview failed", "error", err)
			return errorResult("Preview error: %v", err), nil, nil
		}
		h.Logger.Info("importgraph_rewrite dry run",
			"targets", len(plan.Targets),
			"conflicts", len(plan.Conflicts),
			"files", len(diffs),
		)
		result := textResult(FormatPlan(rootDir, plan, diffs))
		result.IsError = !dryRun
		return result, nil, nil
	}

	applied, err := h.Project.ApplyRewrite(plan)
	if err != nil {
		h.Logger.Error("importgraph_rewrite failed", "error", err)
		return errorResult("Rewrite error after %d renames: %v\n\n%s", len(applied.Renamed), err, FormatApplyResult(rootDir, applied)), nil, nil
	}

	h.Logger.Info("importgraph_rewrite applied",
		"renamed", len(applied.Renamed),
		"rewritten", len(applied.Rewritten),
	)
	return textResult(FormatApplyResult(rootDir, applied)), nil, nil
}
