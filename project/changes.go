package project

import (
	"os"
	"path/filepath"

	"github.com/lexandro/importgraph-mcp/ignore"
	"github.com/lexandro/importgraph-mcp/source"
	"github.com/lexandro/importgraph-mcp/watcher"
)

// ApplyChanges updates the catalogs for a batch of file changes and rebuilds the graph.
// A change to an ignore file triggers a full re-analysis instead.
func (p *Project) ApplyChanges(changes []watcher.Change) error {
	for _, change := range changes {
		if ignore.IsIgnoreFile(filepath.Base(change.Path)) {
			p.logger.Info("reloading ignore rules", "trigger", filepath.Base(change.Path))
			_, err := p.Reanalyze()
			return err
		}
	}

	p.analyzeMu.Lock()
	defer p.analyzeMu.Unlock()

	for _, change := range changes {
		relPath := relativePath(p.rootDir, change.Path)
		slashPath := filepath.ToSlash(change.Path)

		switch change.Op {
		case watcher.OpRemove, watcher.OpRename:
			p.uncatalog(relPath, slashPath)
			p.logger.Debug("removed from catalog", "path", relPath)

		case watcher.OpCreate, watcher.OpWrite:
			if p.matcher.ShouldIgnore(change.Path) {
				continue
			}
			info, err := os.Stat(change.Path)
			if err != nil || info.IsDir() || p.matcher.IsFileTooLarge(info.Size()) {
				continue
			}
			file, err := source.Open(change.Path)
			if err != nil {
				continue
			}
			p.extractor.Invalidate(file.Path())
			if err := p.catalogFile(Entry{File: file, RelativePath: relPath, Info: info}); err != nil {
				p.logger.Debug("skipped file update", "path", relPath, "error", err)
				continue
			}
			p.logger.Debug("updated catalog", "path", relPath)
		}
	}

	_, err := p.buildGraph()
	return err
}
