package graph

import "github.com/lexandro/importgraph-mcp/source"

// Edge is a directed file-to-file import: From imports To.
type Edge struct {
	From source.File
	To   source.File
}

// ReverseIndex maps each dependency to the files that reference it. Keys keep their
// first-discovery order and referencer lists keep insertion order, duplicates included:
// a file importing the same dependency twice is listed twice.
type ReverseIndex struct {
	keys []source.File
	refs map[source.File][]source.File
}

// NewReverseIndex creates an empty index.
func NewReverseIndex() *ReverseIndex {
	return &ReverseIndex{refs: make(map[source.File][]source.File)}
}

// Add records that referencer imports dependency.
func (r *ReverseIndex) Add(dependency source.File, referencer source.File) {
	if _, exists := r.refs[dependency]; !exists {
		r.keys = append(r.keys, dependency)
	}
	r.refs[dependency] = append(r.refs[dependency], referencer)
}

// Referencers returns a copy of the files referencing dependency, or nil.
func (r *ReverseIndex) Referencers(dependency source.File) []source.File {
	list, exists := r.refs[dependency]
	if !exists {
		return nil
	}
	result := make([]source.File, len(list))
	copy(result, list)
	return result
}

// Keys returns the dependencies in first-discovery order.
func (r *ReverseIndex) Keys() []source.File {
	result := make([]source.File, len(r.keys))
	copy(result, r.keys)
	return result
}

// Len returns the number of dependencies.
func (r *ReverseIndex) Len() int {
	return len(r.keys)
}

// Merge unions other into r. Per (dependency, referencer) pair the resulting count is the
// larger of the two counts, so merging the same walk twice changes nothing.
func (r *ReverseIndex) Merge(other *ReverseIndex) {
	for _, dependency := range other.keys {
		existing := make(map[source.File]int)
		for _, referencer := range r.refs[dependency] {
			existing[referencer]++
		}
		seen := make(map[source.File]int)
		for _, referencer := range other.refs[dependency] {
			seen[referencer]++
			if seen[referencer] > existing[referencer] {
				r.Add(dependency, referencer)
			}
		}
	}
}

// Affected returns every file that depends on file directly or transitively, in
// breadth-first order and without duplicates. file itself is included only when it
// sits on a cycle.
func (r *ReverseIndex) Affected(file source.File) []source.File {
	visited := make(map[source.File]bool)
	var affected []source.File
	queue := []source.File{file}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, referencer := range r.refs[current] {
			if visited[referencer] {
				continue
			}
			visited[referencer] = true
			affected = append(affected, referencer)
			queue = append(queue, referencer)
		}
	}
	return affected
}
