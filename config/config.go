// Package config loads importgraph.yaml and applies defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/lexandro/importgraph-mcp/graph"
	"github.com/lexandro/importgraph-mcp/imports"
	"github.com/lexandro/importgraph-mcp/rewrite"
)

// FileName is the config file looked up in the root directory.
const FileName = "importgraph.yaml"

var (
	ErrInvalidMaxDepth  = errors.New("max_depth must be at least 1")
	ErrInvalidSize      = errors.New("invalid max_file_size")
	ErrInvalidScriptExt = errors.New("script_ext must be a bare extension")
	ErrInvalidGlob      = errors.New("invalid rewrite glob")
)

type Config struct {
	AliasRoot   string   `yaml:"alias_root"`
	ScriptExt   string   `yaml:"script_ext"`
	MaxDepth    int      `yaml:"max_depth"`
	Strict      bool     `yaml:"strict"`
	Exclude     []string `yaml:"exclude"`
	MaxFileSize string   `yaml:"max_file_size"`
	CacheSize   int      `yaml:"cache_size"`
	Rewrite     Rewrite  `yaml:"rewrite"`
}

type Rewrite struct {
	Category string `yaml:"category"`
	Glob     string `yaml:"glob"`
}

func Default() *Config {
	return &Config{
		ScriptExt:   imports.DefaultScriptType,
		MaxDepth:    graph.DefaultMaxDepth,
		MaxFileSize: "1 MiB",
		CacheSize:   imports.DefaultCacheSize,
		Rewrite: Rewrite{
			Category: rewrite.DefaultCategory,
		},
	}
}

// Load reads the config at path, or FileName inside rootDir when path is empty.
// A missing FileName yields Default; a missing explicit path is an error.
func Load(path string, rootDir string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(rootDir, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that yaml decoding cannot.
func (c *Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	if c.ScriptExt == "" || strings.ContainsAny(c.ScriptExt, "./\\") {
		return fmt.Errorf("%w: %q", ErrInvalidScriptExt, c.ScriptExt)
	}
	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}
	if c.Rewrite.Glob != "" && !doublestar.ValidatePattern(c.Rewrite.Glob) {
		return fmt.Errorf("%w: %q", ErrInvalidGlob, c.Rewrite.Glob)
	}
	return nil
}

// MaxFileSizeBytes parses MaxFileSize ("512 KiB", "2MB", "1048576").
func (c *Config) MaxFileSizeBytes() (int64, error) {
	size, err := humanize.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSize, c.MaxFileSize, err)
	}
	if size == 0 {
		return 0, fmt.Errorf("%w: %q is zero", ErrInvalidSize, c.MaxFileSize)
	}
	return int64(size), nil
}

// Resolver returns the import resolver described by the config. A relative alias root is
// taken from rootDir.
func (c *Config) Resolver(rootDir string) imports.Resolver {
	aliasRoot := c.AliasRoot
	if aliasRoot != "" && !filepath.IsAbs(aliasRoot) {
		aliasRoot = filepath.Join(rootDir, aliasRoot)
	}
	return imports.Resolver{AliasRoot: aliasRoot, ScriptExt: c.ScriptExt}
}
