package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/index"
)

// SearchArgs defines the input parameters for the importgraph_search tool.
type SearchArgs struct {
	Query      string `json:"query" jsonschema:"Search query over import statements. Plain text for word match, quoted for exact phrase, /regex/ for regular expression"`
	FileGlob   string `json:"fileGlob,omitempty" jsonschema:"Optional glob pattern to filter importing files (e.g. src/components/**)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of file results to return (default 50)"`
}

// SearchHandler holds the dependencies for the search tool.
type SearchHandler struct {
	Statements *index.ImportIndex
	Logger     *slog.Logger
}

// Handle processes an importgraph_search request.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("importgraph_search called with empty query")
		return errorResult("Error: query parameter is required"), nil, nil
	}

	results, totalMatches, err := h.Statements.Search(index.SearchOptions{
		Query:      args.Query,
		FileGlob:   args.FileGlob,
		MaxResults: args.MaxResults,
	})
	if err != nil {
		h.Logger.Error("importgraph_search failed", "query", args.Query, "error", err)
		return errorResult("Search error: %v", err), nil, nil
	}

	h.Logger.Info("importgraph_search",
		"query", args.Query,
		"fileGlob", args.FileGlob,
		"files", len(results),
		"matches", totalMatches,
		"elapsed", time.Since(start),
	)

	return textResult(FormatSearchResults(results, totalMatches)), nil, nil
}
