package rewrite

import "github.com/lexandro/importgraph-mcp/source"

// Renamed records one completed rename.
type Renamed struct {
	// From is the path before the rename.
	From string
	File source.File
}

// Rename renames every target according to rule, stopping at the first failure.
// Renames already done are returned alongside the error.
func Rename(targets []source.File, rule NamingRule) ([]Renamed, error) {
	var done []Renamed
	for _, target := range targets {
		file := target
		if err := file.Rename(rule(target.Name())); err != nil {
			return done, err
		}
		done = append(done, Renamed{From: target.Path(), File: file})
	}
	return done, nil
}
