// Package cmd implements the importgraph-mcp command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexandro/importgraph-mcp/config"
	"github.com/lexandro/importgraph-mcp/ignore"
	"github.com/lexandro/importgraph-mcp/imports"
	"github.com/lexandro/importgraph-mcp/project"
)

var rootCmd = &cobra.Command{
	Use:   "importgraph-mcp",
	Short: "Import graph analysis and CSS module migration for JavaScript trees",
	Long: `importgraph-mcp scans the import statements of a JavaScript tree, resolves them to
files and keeps a dependency graph with reverse lookups. It serves the graph over MCP,
and can rename imported .less files to .module.less while rewriting every import.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// flagValues holds the persistent flags shared by every command.
type flagValues struct {
	root        string
	configPath  string
	aliasRoot   string
	exclude     []string
	maxFileSize string
	maxDepth    int
	strict      bool
	logLevel    string
	logFile     string
}

var flags flagValues

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.root, "root", "", "Project root directory (default: current working directory)")
	pf.StringVar(&flags.configPath, "config", "", "Config file (default: <root>/"+config.FileName+" when present)")
	pf.StringVar(&flags.aliasRoot, "alias-root", "", "Directory that \"~/\" imports resolve against")
	pf.StringArrayVar(&flags.exclude, "exclude", nil, "Extra ignore pattern (repeatable)")
	pf.StringVar(&flags.maxFileSize, "max-file-size", "", "Maximum file size, e.g. 512KiB or 2MB (default: 1 MiB)")
	pf.IntVar(&flags.maxDepth, "max-depth", 0, "Maximum import nesting below a root script (default: 10)")
	pf.BoolVar(&flags.strict, "strict", false, "Fail on the first script whose imports cannot be resolved")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&flags.logFile, "log-file", "", "Log file path (default: stderr)")
}

// settings is the resolved configuration of one invocation.
type settings struct {
	rootDir string
	config  *config.Config
}

// loadSettings resolves the root, loads the config file and applies flags set on the command line.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	rootDir := flags.root
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		rootDir = wd
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", rootDir, err)
	}

	cfg, err := config.Load(flags.configPath, rootDir)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("alias-root") {
		cfg.AliasRoot = flags.aliasRoot
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	}
	if changed("max-file-size") {
		cfg.MaxFileSize = flags.maxFileSize
	}
	if changed("max-depth") {
		cfg.MaxDepth = flags.maxDepth
	}
	if changed("strict") {
		cfg.Strict = flags.strict
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &settings{rootDir: rootDir, config: cfg}, nil
}

// openProject creates the project described by s. Nothing is analyzed yet.
func openProject(s *settings, logger *slog.Logger) (*project.Project, error) {
	maxFileSize, err := s.config.MaxFileSizeBytes()
	if err != nil {
		return nil, err
	}
	return project.New(project.Options{
		RootDir: s.rootDir,
		Ignore: ignore.NewMatcher(ignore.MatcherOptions{
			RootDir:          s.rootDir,
			CustomPatterns:   s.config.Exclude,
			MaxFileSizeBytes: maxFileSize,
		}),
		Extractor: imports.Extractor{ScriptType: s.config.ScriptExt},
		Resolver:  s.config.Resolver(s.rootDir),
		MaxDepth:  s.config.MaxDepth,
		Strict:    s.config.Strict,
		CacheSize: s.config.CacheSize,
		Logger:    logger,
	})
}

// cliLogger is the logger of the one-shot commands: warnings only unless --log-level says otherwise.
func cliLogger() *slog.Logger {
	level := flags.logLevel
	if level == "" {
		level = "warn"
	}
	return setupLogger(level, flags.logFile)
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
