package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lexandro/importgraph-mcp/ignore"
	"github.com/lexandro/importgraph-mcp/project"
	"github.com/lexandro/importgraph-mcp/rewrite"
	"github.com/lexandro/importgraph-mcp/server"
	"github.com/lexandro/importgraph-mcp/tools"
	"github.com/lexandro/importgraph-mcp/watcher"
)

var serveFlags struct {
	syncInterval time.Duration
	noWatch      bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the import graph over MCP on stdio",
	Long: `Analyze the tree, then serve the import graph tools over MCP on stdio.
The graph follows file changes through a filesystem watcher and a periodic consistency check.
Logs never go to stdout; the default log file is importgraph-mcp.log in the root directory.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&serveFlags.syncInterval, "sync-interval", 5*time.Minute, "Interval of the catalog consistency check (0 disables it)")
	serveCmd.Flags().BoolVar(&serveFlags.noWatch, "no-watch", false, "Disable the filesystem watcher")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logFile := flags.logFile
	if logFile == "" {
		logFile = filepath.Join(s.rootDir, "importgraph-mcp.log")
	}
	logLevel := flags.logLevel
	if logLevel == "" {
		logLevel = "info"
	}
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting importgraph-mcp",
		"version", Version,
		"root", s.rootDir,
		"maxFileSize", s.config.MaxFileSize,
		"maxDepth", s.config.MaxDepth,
		"strict", s.config.Strict,
	)
	startTime := time.Now()

	p, err := openProject(s, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	summary, err := p.Analyze()
	if err != nil {
		return err
	}
	logger.Info("initial analysis complete",
		"files", summary.Files,
		"totalSize", humanize.IBytes(uint64(summary.TotalBytes)),
		"duration", summary.Duration,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !serveFlags.noWatch {
		fileWatcher, err := watcher.New(watcher.Options{
			RootDir:  s.rootDir,
			Ignore:   p.Ignore(),
			Relevant: isRelevantChange,
			Logger:   logger,
		})
		if err != nil {
			logger.Warn("failed to start file watcher, continuing without live updates", "error", err)
		} else {
			go fileWatcher.Run(ctx)
			go applyWatcherChanges(ctx, fileWatcher, p, logger)
			defer fileWatcher.Close()
		}
	}

	if serveFlags.syncInterval > 0 {
		go p.RunPeriodicSync(ctx, serveFlags.syncInterval)
	}

	mcpServer := server.Setup(Version, server.Handlers{
		Deps:       &tools.DepsHandler{Project: p, Logger: logger},
		Refs:       &tools.RefsHandler{Project: p, Logger: logger},
		Search:     &tools.SearchHandler{Statements: p.Statements(), Logger: logger},
		Files:      &tools.FilesHandler{FileIndex: p.Files(), Logger: logger},
		Statements: &tools.StatementsHandler{Statements: p.Statements(), Logger: logger},
		Rewrite: &tools.RewriteHandler{
			Project:  p,
			Defaults: rewrite.Selector{Category: s.config.Rewrite.Category, Glob: s.config.Rewrite.Glob},
			Logger:   logger,
		},
		Check:   &tools.CheckHandler{Project: p, Logger: logger},
		Status:  &tools.StatusHandler{Project: p, StartTime: startTime, Logger: logger},
		Reindex: &tools.ReindexHandler{DoReindex: p.Reanalyze, Logger: logger},
	})

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("MCP server error", "error", err)
		return err
	}
	return nil
}

// isRelevantChange drops the temp files of atomic writes.
func isRelevantChange(path string) bool {
	base := filepath.Base(path)
	if ignore.IsIgnoreFile(base) {
		return true
	}
	return !(strings.HasPrefix(base, ".") && strings.HasSuffix(base, ".tmp"))
}

func applyWatcherChanges(ctx context.Context, fileWatcher *watcher.Watcher, p *project.Project, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case changes, ok := <-fileWatcher.Changes():
			if !ok {
				return
			}
			if err := p.ApplyChanges(changes); err != nil {
				logger.Warn("failed to apply file changes", "changes", len(changes), "error", err)
				continue
			}
			logger.Debug("applied file changes", "changes", len(changes))
		}
	}
}
