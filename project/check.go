package project

import (
	"sort"

	"github.com/lexandro/importgraph-mcp/graph"
	"github.com/lexandro/importgraph-mcp/source"
)

// DanglingImport is an import statement whose target cannot be found.
type DanglingImport struct {
	File      source.File
	Statement string
	Err       error
}

// CheckResult summarizes the integrity of the tree's imports.
type CheckResult struct {
	Dangling []DanglingImport
	Failures []graph.Failure
	Cycles   [][]source.File
	// Outside lists dependencies that resolve to files outside the root.
	Outside []source.File
}

// OK reports whether nothing dangles and no root failed.
func (r *CheckResult) OK() bool {
	return len(r.Dangling) == 0 && len(r.Failures) == 0
}

// Check resolves every statement of every cataloged script and reports what is broken.
func (p *Project) Check() (*CheckResult, error) {
	tree, err := p.Tree()
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		Failures: tree.Failures,
		Cycles:   tree.Cycles(),
	}
	resolver := p.Resolver()

	for _, record := range p.files.FilesOfType(p.ScriptType()) {
		file, err := source.Open(record.Path)
		if err != nil {
			continue
		}
		statements, err := p.extractor.Imports(file)
		if err != nil {
			continue
		}
		for _, statement := range statements {
			path, isFile, err := resolver.Resolve(statement, file)
			if err == nil && !isFile {
				continue
			}
			if err == nil {
				_, err = source.Open(path)
			}
			if err != nil {
				result.Dangling = append(result.Dangling, DanglingImport{File: file, Statement: statement, Err: err})
			}
		}
	}

	outside := make(map[source.File]bool)
	for _, dependencies := range tree.Dependencies {
		for _, dependency := range dependencies {
			if !p.Contains(dependency) {
				outside[dependency] = true
			}
		}
	}
	for file := range outside {
		result.Outside = append(result.Outside, file)
	}
	sort.Slice(result.Outside, func(i, j int) bool {
		return result.Outside[i].Path() < result.Outside[j].Path()
	})

	p.logger.Debug("import check complete",
		"dangling", len(result.Dangling),
		"failures", len(result.Failures),
		"cycles", len(result.Cycles),
		"outside", len(result.Outside),
	)
	return result, nil
}
