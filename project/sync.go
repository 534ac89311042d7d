package project

import (
	"context"
	"time"

	"github.com/lexandro/importgraph-mcp/index"
)

// SyncResult is the outcome of one catalog verification.
type SyncResult struct {
	MissingFiles  int // on disk but not cataloged
	StaleFiles    int // cataloged but gone from disk
	ModifiedFiles int // modification time differs
	Duration      time.Duration
}

// Drift returns the total number of discrepancies found.
func (r SyncResult) Drift() int {
	return r.MissingFiles + r.StaleFiles + r.ModifiedFiles
}

// Verify compares the disk with the catalog, repairs every discrepancy, and rebuilds the
// graph when anything drifted. It catches changes the watcher missed.
func (p *Project) Verify() (SyncResult, error) {
	p.analyzeMu.Lock()
	defer p.analyzeMu.Unlock()

	start := time.Now()
	var result SyncResult

	entries, err := Enumerate(p.rootDir, p.matcher)
	if err != nil {
		return result, err
	}
	onDisk := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		onDisk[entry.RelativePath] = entry
	}

	cataloged := make(map[string]*index.FileRecord)
	for _, record := range p.files.AllFiles() {
		cataloged[record.RelativePath] = record
	}

	for _, entry := range entries {
		record, exists := cataloged[entry.RelativePath]
		switch {
		case !exists:
			if err := p.catalogFile(entry); err != nil {
				p.logger.Debug("sync: skipped missing file", "path", entry.RelativePath, "error", err)
				continue
			}
			p.logger.Info("sync: cataloged missing file", "path", entry.RelativePath)
			result.MissingFiles++
		case !entry.Info.ModTime().Equal(record.ModTime):
			p.extractor.Invalidate(entry.File.Path())
			if err := p.catalogFile(entry); err != nil {
				p.logger.Debug("sync: skipped modified file", "path", entry.RelativePath, "error", err)
				continue
			}
			p.logger.Info("sync: re-cataloged modified file", "path", entry.RelativePath)
			result.ModifiedFiles++
		}
	}

	for relPath, record := range cataloged {
		if _, exists := onDisk[relPath]; exists {
			continue
		}
		p.uncatalog(relPath, record.Path)
		p.logger.Info("sync: removed stale file", "path", relPath)
		result.StaleFiles++
	}

	if result.Drift() > 0 || p.store.Get() == nil {
		if _, err := p.buildGraph(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// RunPeriodicSync calls Verify every interval until ctx is done.
func (p *Project) RunPeriodicSync(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.logger.Info("periodic sync started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("periodic sync stopped")
			return
		case <-ticker.C:
			result, err := p.Verify()
			if err != nil {
				p.logger.Warn("sync verification failed", "error", err)
				continue
			}
			if result.Drift() > 0 {
				p.logger.Info("sync verification complete",
					"missing", result.MissingFiles,
					"stale", result.StaleFiles,
					"modified", result.ModifiedFiles,
					"duration", result.Duration,
				)
			} else {
				p.logger.Debug("sync verification complete, catalog is in sync", "duration", result.Duration)
			}
		}
	}
}
