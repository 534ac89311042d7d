package index

import "testing"

func newTestImportIndex(t *testing.T) *ImportIndex {
	t.Helper()
	ii, err := NewImportIndex()
	if err != nil {
		t.Fatalf("failed to create import index: %v", err)
	}
	return ii
}

func Test_ImportIndex_IndexAndSearch(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	err := ii.IndexFile("src/app.js", []string{
		"import React from 'react'",
		"import styles from './app.less'",
	}, "js")
	if err != nil {
		t.Fatalf("failed to index file: %v", err)
	}

	results, totalMatches, err := ii.Search(SearchOptions{Query: "react", MaxResults: 10})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || totalMatches != 1 {
		t.Fatalf("expected one matching statement, got %d results and %d matches", len(results), totalMatches)
	}
	match := results[0].Matches[0]
	if results[0].RelativePath != "src/app.js" || match.Position != 1 {
		t.Errorf("unexpected match %s #%d", results[0].RelativePath, match.Position)
	}
}

func Test_ImportIndex_PhraseSearch(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	ii.IndexFile("a.js", []string{"import { Modal, Button } from 'antd'"}, "js")
	ii.IndexFile("b.js", []string{"import { Button, Modal } from 'antd'"}, "js")

	results, _, err := ii.Search(SearchOptions{Query: `"modal, button"`})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || results[0].RelativePath != "a.js" {
		t.Errorf("expected only a.js, got %+v", results)
	}
}

func Test_ImportIndex_RegexSearch(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	ii.IndexFile("a.js", []string{"import Button from './button'", "import Card from './card'"}, "js")

	results, total, err := ii.Search(SearchOptions{Query: "/butt.*/"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || total != 1 || results[0].Matches[0].Position != 1 {
		t.Errorf("expected the button statement, got %+v", results)
	}

	if _, _, err := ii.Search(SearchOptions{Query: "/(unclosed/"}); err == nil {
		t.Error("expected invalid regex to fail")
	}
}

func Test_ImportIndex_SearchWithFileGlob(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	ii.IndexFile("src/pages/home.js", []string{"import React from 'react'"}, "js")
	ii.IndexFile("test/home.test.js", []string{"import React from 'react'"}, "js")

	results, _, err := ii.Search(SearchOptions{Query: "react", FileGlob: "src/**"})
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(results) != 1 || results[0].RelativePath != "src/pages/home.js" {
		t.Errorf("expected only src result, got %+v", results)
	}
}

func Test_ImportIndex_RemoveFile(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	ii.IndexFile("a.js", []string{"import React from 'react'"}, "js")
	if err := ii.RemoveFile("a.js"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, _, _ := ii.Search(SearchOptions{Query: "react"})
	if len(results) != 0 {
		t.Errorf("expected no results after removal, got %d", len(results))
	}
	if _, ok := ii.Statements("a.js"); ok {
		t.Error("expected statements to be dropped")
	}
}

func Test_ImportIndex_EmptyStatementsRemove(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	ii.IndexFile("a.js", []string{"import React from 'react'"}, "js")
	if err := ii.IndexFile("a.js", nil, "js"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ii.DocumentCount() != 0 {
		t.Errorf("expected empty index, got %d documents", ii.DocumentCount())
	}
}

func Test_ImportIndex_Clear(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	ii.IndexFile("a.js", []string{"import a from './a'"}, "js")
	ii.IndexFile("b.js", []string{"import b from './b'"}, "js")
	if ii.DocumentCount() != 2 {
		t.Fatalf("expected 2 documents, got %d", ii.DocumentCount())
	}
	if err := ii.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ii.DocumentCount() != 0 {
		t.Errorf("expected 0 documents after clear, got %d", ii.DocumentCount())
	}
}

func Test_ImportIndex_Statements(t *testing.T) {
	ii := newTestImportIndex(t)
	defer ii.Close()

	ii.IndexFile("src/a.js", []string{"import a from './a'"}, "js")
	statements, ok := ii.Statements(`src\a.js`)
	if !ok || len(statements) != 1 {
		t.Errorf("expected statements for backslash path, got %v", statements)
	}
}
