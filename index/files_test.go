package index

import (
	"testing"
	"time"
)

func newTestRecord(relPath string, fileType string, size int64, imports int) *FileRecord {
	return &FileRecord{
		Path:         "/project/" + relPath,
		RelativePath: relPath,
		Type:         fileType,
		SizeBytes:    size,
		ModTime:      time.Now(),
		ImportCount:  imports,
	}
}

func Test_FileIndex_AddAndGetFile(t *testing.T) {
	fi := NewFileIndex()
	fi.AddFile(newTestRecord("src/app.js", "js", 1024, 3))

	got := fi.GetFile("src/app.js")
	if got == nil {
		t.Fatal("expected to find file, got nil")
	}
	if got.ImportCount != 3 {
		t.Errorf("expected 3 imports, got %d", got.ImportCount)
	}
}

func Test_FileIndex_AddFile_Replaces(t *testing.T) {
	fi := NewFileIndex()
	fi.AddFile(newTestRecord("src/app.js", "js", 1024, 3))
	fi.AddFile(newTestRecord("src/app.js", "js", 2048, 4))

	if fi.FileCount() != 1 {
		t.Errorf("expected 1 file, got %d", fi.FileCount())
	}
	if len(fi.AllFiles()) != 1 {
		t.Errorf("expected path listed once")
	}
	if fi.GetFile("src/app.js").SizeBytes != 2048 {
		t.Error("expected record to be replaced")
	}
}

func Test_FileIndex_RemoveFile(t *testing.T) {
	fi := NewFileIndex()
	fi.AddFile(newTestRecord("src/app.js", "js", 1024, 0))
	fi.RemoveFile("src/app.js")

	if fi.FileCount() != 0 {
		t.Errorf("expected 0 files, got %d", fi.FileCount())
	}
	if fi.GetFile("src/app.js") != nil {
		t.Error("expected nil after removal")
	}
	if len(fi.AllFiles()) != 0 {
		t.Error("expected sorted paths to be updated")
	}
}

func Test_FileIndex_SearchByGlob(t *testing.T) {
	fi := NewFileIndex()
	fi.AddFile(newTestRecord("src/app.js", "js", 1024, 2))
	fi.AddFile(newTestRecord("src/components/button/index.js", "js", 512, 1))
	fi.AddFile(newTestRecord("src/components/button/index.less", "less", 256, 0))
	fi.AddFile(newTestRecord("README.md", "md", 256, 0))

	tests := []struct {
		pattern string
		want    int
	}{
		{"**/*.js", 2},
		{"src/components/**", 2},
		{"**/*.less", 1},
		{"*.md", 1},
		{"lib/**", 0},
	}
	for _, tt := range tests {
		results, err := fi.SearchByGlob(tt.pattern, 50)
		if err != nil {
			t.Fatalf("SearchByGlob(%q): unexpected error: %v", tt.pattern, err)
		}
		if len(results) != tt.want {
			t.Errorf("SearchByGlob(%q) = %d files, want %d", tt.pattern, len(results), tt.want)
		}
	}
}

func Test_FileIndex_SearchByGlob_InvalidPattern(t *testing.T) {
	fi := NewFileIndex()
	if _, err := fi.SearchByGlob("[invalid", 50); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func Test_FileIndex_SearchByGlob_SortedAndCapped(t *testing.T) {
	fi := NewFileIndex()
	for _, name := range []string{"d.js", "b.js", "a.js", "c.js", "e.js"} {
		fi.AddFile(newTestRecord(name, "js", 1, 0))
	}

	results, err := fi.SearchByGlob("*.js", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a.js", "b.js", "c.js"} {
		if results[i].RelativePath != want {
			t.Errorf("results[%d] = %s, want %s", i, results[i].RelativePath, want)
		}
	}
}

func Test_FileIndex_Totals(t *testing.T) {
	fi := NewFileIndex()
	fi.AddFile(newTestRecord("a.js", "js", 100, 2))
	fi.AddFile(newTestRecord("b.js", "js", 200, 3))
	fi.AddFile(newTestRecord("c.less", "less", 300, 0))

	if fi.TotalSizeBytes() != 600 {
		t.Errorf("expected 600 bytes, got %d", fi.TotalSizeBytes())
	}
	if fi.TotalImports() != 5 {
		t.Errorf("expected 5 imports, got %d", fi.TotalImports())
	}
	counts := fi.TypeCounts()
	if counts["js"] != 2 || counts["less"] != 1 {
		t.Errorf("unexpected type counts %v", counts)
	}
	if len(fi.FilesOfType("less")) != 1 {
		t.Errorf("expected one less file")
	}
}

func Test_FileIndex_Clear(t *testing.T) {
	fi := NewFileIndex()
	fi.AddFile(newTestRecord("a.js", "js", 100, 0))
	fi.Clear()

	if fi.FileCount() != 0 {
		t.Errorf("expected 0 after clear, got %d", fi.FileCount())
	}
}
