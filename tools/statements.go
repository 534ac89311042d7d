package tools

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/index"
)

// StatementsArgs defines the input parameters for the importgraph_statements tool.
type StatementsArgs struct {
	FilePath string `json:"filePath" jsonschema:"Relative path of a script file (e.g. src/app.js)"`
}

// StatementsHandler serves the import statements recorded for one file.
type StatementsHandler struct {
	Statements *index.ImportIndex
	Logger     *slog.Logger
}

// Handle processes an importgraph_statements request.
func (h *StatementsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatementsArgs) (*mcp.CallToolResult, any, error) {
	if args.FilePath == "" {
		h.Logger.Warn("importgraph_statements called with empty filePath")
		return errorResult("Error: filePath parameter is required"), nil, nil
	}

	filePath := strings.TrimPrefix(strings.ReplaceAll(args.FilePath, "\\", "/"), "./")
	statements, ok := h.Statements.Statements(filePath)
	if !ok {
		h.Logger.Info("importgraph_statements file has no imports", "filePath", filePath)
		return errorResult("No import statements recorded for: %s", filePath), nil, nil
	}

	h.Logger.Info("importgraph_statements", "filePath", filePath, "statements", len(statements))
	return textResult(FormatStatements(filePath, statements)), nil, nil
}
