package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/project"
)

// StatusArgs defines the input parameters for the importgraph_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Project   *project.Project
	StartTime time.Time
	Logger    *slog.Logger
}

// Handle processes an importgraph_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	files := h.Project.Files()
	fileCount := files.FileCount()
	totalSize := files.TotalSizeBytes()
	typeCounts := files.TypeCounts()
	docCount := h.Project.Statements().DocumentCount()
	hits, misses := h.Project.Extractor().Stats()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("importgraph_status",
		"files", fileCount,
		"totalSize", totalSize,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== importgraph-mcp Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Root directory: %s\n", h.Project.RootDir()))
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	builder.WriteString(fmt.Sprintf("Cataloged files: %s\n", humanize.Comma(int64(fileCount))))
	builder.WriteString(fmt.Sprintf("Files with imports: %s\n", humanize.Comma(int64(docCount))))
	builder.WriteString(fmt.Sprintf("Import statements: %s\n", humanize.Comma(int64(files.TotalImports()))))
	builder.WriteString(fmt.Sprintf("Total cataloged size: %s\n", formatFileSize(totalSize)))

	if tree := h.Project.Graph().Get(); tree != nil {
		builder.WriteString(fmt.Sprintf("Graph: %d roots, %d dependencies, %d failed roots\n",
			len(tree.Roots), tree.References.Len(), len(tree.Failures)))
	} else {
		builder.WriteString("Graph: not built yet\n")
	}
	builder.WriteString(fmt.Sprintf("Import cache: %d files, %d hits, %d misses\n",
		h.Project.Extractor().Len(), hits, misses))
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		formatFileSize(int64(memStats.Alloc)),
		formatFileSize(int64(memStats.HeapAlloc)),
	))

	if len(typeCounts) > 0 {
		builder.WriteString("\nFile types:\n")

		type typeEntry struct {
			fileType string
			count    int
		}
		entries := make([]typeEntry, 0, len(typeCounts))
		for fileType, count := range typeCounts {
			entries = append(entries, typeEntry{fileType, count})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].count != entries[j].count {
				return entries[i].count > entries[j].count
			}
			return entries[i].fileType < entries[j].fileType
		})

		for _, entry := range entries {
			name := entry.fileType
			if name == "" {
				name = "(none)"
			}
			builder.WriteString(fmt.Sprintf("  %-20s %d files\n", name, entry.count))
		}
	}

	return textResult(builder.String()), nil, nil
}
