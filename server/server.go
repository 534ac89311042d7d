package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/importgraph-mcp/tools"
)

// Name identifies the server to MCP clients.
const Name = "importgraph-mcp"

// Handlers groups the tool handlers served over MCP.
type Handlers struct {
	Deps       *tools.DepsHandler
	Refs       *tools.RefsHandler
	Search     *tools.SearchHandler
	Files      *tools.FilesHandler
	Statements *tools.StatementsHandler
	Rewrite    *tools.RewriteHandler
	Check      *tools.CheckHandler
	Status     *tools.StatusHandler
	Reindex    *tools.ReindexHandler
}

// Setup creates and configures the MCP server with all tool registrations.
func Setup(version string, handlers Handlers) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    Name,
			Version: version,
		},
		&mcp.ServerOptions{
			Instructions: `This server keeps an in-memory import graph of a JavaScript tree: which files each script imports, and which files import a given file.

Use these tools instead of grepping for import statements:
- importgraph_deps lists everything a script pulls in, transitively
- importgraph_refs lists the files importing a file (use before moving or renaming it)
- importgraph_search searches import statements only
- importgraph_rewrite renames stylesheets to CSS modules and rewrites their imports (dry run first)
- importgraph_check finds imports that no longer resolve
- The graph updates automatically when files change (via filesystem watcher)`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "importgraph_deps",
		Description: `Show the dependency tree of a script file: every file it imports, directly or through other imports, indented by depth.

Only relative ("./", "../") and alias ("~/") imports are followed; package imports are skipped. Files listed earlier in the tree are marked "(seen)".`,
	}, handlers.Deps.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "importgraph_refs",
		Description: `List the files that import a given file. Set transitive to also list files that reach it through other imports.`,
	}, handlers.Refs.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "importgraph_search",
		Description: `Search import statements using full-text indexed search.

Query formats:
  - Plain text: word-level matching (e.g., "react")
  - "quoted text": exact phrase matching (e.g., "\"from './theme'\"")
  - /regex/: regular expression matching (e.g., "/lodash.*/")

Filtering:
  - fileGlob: glob pattern over importing files (e.g., "src/components/**").`,
	}, handlers.Search.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "importgraph_files",
		Description: `Find cataloged files by glob pattern, with their type and import count.

Pattern examples:
  - "**/*.less" - all stylesheets
  - "src/**/*.js" - scripts under src/`,
	}, handlers.Files.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "importgraph_statements",
		Description: `Show the import statements recorded for one script file, numbered in source order.`,
	}, handlers.Statements.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "importgraph_rewrite",
		Description: `Rename imported stylesheets to CSS modules ("theme.less" -> "theme.module.less") and rewrite every import of them.

Runs as a dry run unless dryRun is false: the dry run lists the renames and the line diffs of each importing file. A plan whose destinations already exist is refused.`,
	}, handlers.Rewrite.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "importgraph_check",
		Description: "Report imports that no longer resolve, scripts whose walk failed, import cycles, and dependencies outside the project root.",
	}, handlers.Check.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "importgraph_status",
		Description: "Show catalog and graph status: file counts, import statements, dependencies, cache hits, memory usage, and uptime.",
	}, handlers.Status.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "importgraph_reindex",
		Description: "Force a full re-analysis of the project. Reloads ignore rules, drops caches and rebuilds the graph from scratch.",
	}, handlers.Reindex.Handle)

	return mcpServer
}
