package index

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"
)

// ImportIndex is a full-text index over the import statements of each script file,
// backed by an in-memory Bleve index.
type ImportIndex struct {
	mu    sync.RWMutex
	index bleve.Index
	// statements keeps the raw statements for per-statement result extraction.
	statements map[string][]string
}

// NewImportIndex creates an empty in-memory index.
func NewImportIndex() (*ImportIndex, error) {
	bleveIndex, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &ImportIndex{
		index:      bleveIndex,
		statements: make(map[string][]string),
	}, nil
}

type importDocument struct {
	Statements string `json:"statements"`
	Path       string `json:"path"`
	Type       string `json:"type"`
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	statementsField := bleve.NewTextFieldMapping()
	statementsField.Store = false
	statementsField.IncludeInAll = true
	docMapping.AddFieldMappingsAt("statements", statementsField)

	pathField := bleve.NewTextFieldMapping()
	pathField.Store = true
	pathField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("path", pathField)

	typeField := bleve.NewKeywordFieldMapping()
	typeField.Store = true
	typeField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("type", typeField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// IndexFile adds or replaces the statements of a file. Files without statements are
// removed from the index.
func (ii *ImportIndex) IndexFile(relativePath string, statements []string, fileType string) error {
	if len(statements) == 0 {
		return ii.RemoveFile(relativePath)
	}

	ii.mu.Lock()
	defer ii.mu.Unlock()

	kept := make([]string, len(statements))
	copy(kept, statements)
	ii.statements[relativePath] = kept

	doc := importDocument{
		Statements: strings.Join(statements, "\n"),
		Path:       relativePath,
		Type:       fileType,
	}
	if err := ii.index.Index(relativePath, doc); err != nil {
		return fmt.Errorf("indexing file %s: %w", relativePath, err)
	}
	return nil
}

// RemoveFile drops a file from the index.
func (ii *ImportIndex) RemoveFile(relativePath string) error {
	ii.mu.Lock()
	defer ii.mu.Unlock()

	delete(ii.statements, relativePath)
	if err := ii.index.Delete(relativePath); err != nil {
		return fmt.Errorf("removing file %s from index: %w", relativePath, err)
	}
	return nil
}

// Statements returns the indexed statements of a file.
func (ii *ImportIndex) Statements(relativePath string) ([]string, bool) {
	ii.mu.RLock()
	defer ii.mu.RUnlock()

	statements, ok := ii.statements[strings.ReplaceAll(relativePath, "\\", "/")]
	return statements, ok
}

// StatementMatch is one matching import statement of a file.
type StatementMatch struct {
	// Position is the 1-based index of the statement within the file's import block.
	Position  int
	Statement string
}

// SearchResult groups the matching statements of one file.
type SearchResult struct {
	RelativePath string
	Matches      []StatementMatch
}

// SearchOptions configures a statement search.
type SearchOptions struct {
	Query string
	// FileGlob restricts results to relative paths matching a doublestar pattern.
	FileGlob   string
	MaxResults int
}

// Search finds import statements matching a query.
// Query format:
//   - Plain text: match query (word-level matching)
//   - "quoted text": phrase query
//   - /regex/: regexp query
func (ii *ImportIndex) Search(options SearchOptions) ([]SearchResult, int, error) {
	ii.mu.RLock()
	defer ii.mu.RUnlock()

	if options.MaxResults <= 0 {
		options.MaxResults = DefaultMaxResults
	}
	matchStatement, err := statementMatcher(options.Query)
	if err != nil {
		return nil, 0, err
	}

	searchRequest := bleve.NewSearchRequest(buildQuery(options.Query))
	// Over-fetch: hits are filtered by glob and by statement afterwards.
	searchRequest.Size = options.MaxResults * 5
	searchRequest.Fields = []string{"path", "type"}

	searchResults, err := ii.index.Search(searchRequest)
	if err != nil {
		return nil, 0, fmt.Errorf("searching index: %w", err)
	}

	glob := strings.ReplaceAll(options.FileGlob, "\\", "/")
	var results []SearchResult
	totalMatches := 0

	for _, hit := range searchResults.Hits {
		relativePath := hit.ID
		statements, ok := ii.statements[relativePath]
		if !ok {
			continue
		}
		if glob != "" {
			if matched, matchErr := doublestar.Match(glob, relativePath); matchErr != nil || !matched {
				continue
			}
		}

		var matches []StatementMatch
		for i, statement := range statements {
			if matchStatement(statement) {
				matches = append(matches, StatementMatch{Position: i + 1, Statement: statement})
			}
		}
		if len(matches) == 0 {
			continue
		}

		totalMatches += len(matches)
		results = append(results, SearchResult{RelativePath: relativePath, Matches: matches})
		if len(results) >= options.MaxResults {
			break
		}
	}
	return results, totalMatches, nil
}

func buildQuery(queryString string) query.Query {
	queryString = strings.TrimSpace(queryString)
	if pattern, ok := regexQuery(queryString); ok {
		return bleve.NewRegexpQuery(pattern)
	}
	if phrase, ok := phraseQuery(queryString); ok {
		return bleve.NewMatchPhraseQuery(phrase)
	}
	return bleve.NewMatchQuery(queryString)
}

// statementMatcher returns the per-statement filter applied to index hits: the regexp
// for /regex/ queries, else a case-insensitive substring test.
func statementMatcher(queryString string) (func(string) bool, error) {
	queryString = strings.TrimSpace(queryString)
	if pattern, ok := regexQuery(queryString); ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regular expression %q: %w", pattern, err)
		}
		return re.MatchString, nil
	}
	term := queryString
	if phrase, ok := phraseQuery(queryString); ok {
		term = phrase
	}
	term = strings.ToLower(term)
	return func(statement string) bool {
		return strings.Contains(strings.ToLower(statement), term)
	}, nil
}

func regexQuery(queryString string) (string, bool) {
	if len(queryString) > 2 && strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/") {
		return queryString[1 : len(queryString)-1], true
	}
	return "", false
}

func phraseQuery(queryString string) (string, bool) {
	if len(queryString) > 2 && strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"") {
		return queryString[1 : len(queryString)-1], true
	}
	return "", false
}

// DocumentCount returns the number of indexed files.
func (ii *ImportIndex) DocumentCount() uint64 {
	ii.mu.RLock()
	defer ii.mu.RUnlock()
	count, _ := ii.index.DocCount()
	return count
}

// Close releases the Bleve index.
func (ii *ImportIndex) Close() error {
	ii.mu.Lock()
	defer ii.mu.Unlock()
	return ii.index.Close()
}

// Clear removes every document by recreating the index.
func (ii *ImportIndex) Clear() error {
	ii.mu.Lock()
	defer ii.mu.Unlock()

	if err := ii.index.Close(); err != nil {
		return fmt.Errorf("closing old index: %w", err)
	}
	newIndex, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("creating new index: %w", err)
	}
	ii.index = newIndex
	ii.statements = make(map[string][]string)
	return nil
}
