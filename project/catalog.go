package project

import (
	"fmt"
	"sync"

	"github.com/lexandro/importgraph-mcp/index"
	"github.com/lexandro/importgraph-mcp/language"
)

// catalogWorkers bounds the goroutines reading files during a full analysis.
const catalogWorkers = 8

// catalogAll records every entry in the file and import indexes using a bounded worker pool.
// It returns how many entries were recorded and their total size.
func (p *Project) catalogAll(entries []Entry) (int, int64) {
	var recorded int
	var totalSize int64
	var mu sync.Mutex

	jobs := make(chan Entry, 100)
	var wg sync.WaitGroup
	for i := 0; i < catalogWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				if err := p.catalogFile(entry); err != nil {
					p.logger.Debug("skipped file", "path", entry.RelativePath, "error", err)
					continue
				}
				mu.Lock()
				recorded++
				totalSize += entry.Info.Size()
				mu.Unlock()
			}
		}()
	}

	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)
	wg.Wait()
	return recorded, totalSize
}

// catalogFile records one file. Script files are read for their import statements,
// which also warms the extractor cache for the graph walk.
func (p *Project) catalogFile(entry Entry) error {
	statements, err := p.extractor.Imports(entry.File)
	if err != nil {
		return fmt.Errorf("extracting imports: %w", err)
	}

	fileType := entry.File.Type()
	p.files.AddFile(&index.FileRecord{
		Path:         entry.File.Path(),
		RelativePath: entry.RelativePath,
		Type:         fileType,
		Language:     language.Label(fileType),
		SizeBytes:    entry.Info.Size(),
		ModTime:      entry.Info.ModTime(),
		ImportCount:  len(statements),
	})

	if err := p.statements.IndexFile(entry.RelativePath, statements, fileType); err != nil {
		return fmt.Errorf("indexing statements: %w", err)
	}
	return nil
}

// uncatalog removes a file from both indexes and the extractor cache.
func (p *Project) uncatalog(relativePath string, absolutePath string) {
	p.files.RemoveFile(relativePath)
	if err := p.statements.RemoveFile(relativePath); err != nil {
		p.logger.Debug("failed to remove statements", "path", relativePath, "error", err)
	}
	p.extractor.Invalidate(absolutePath)
}
