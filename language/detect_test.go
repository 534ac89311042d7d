package language

import "testing"

func Test_Label_KnownTypes(t *testing.T) {
	tests := []struct {
		fileType string
		want     string
	}{
		{"js", "JavaScript"},
		{"less", "Less"},
		{"LESS", "Less"},
		{"tsx", "TypeScript"},
		{"xyz", "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := Label(tt.fileType); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.fileType, got, tt.want)
		}
	}
}

func Test_CategoryOf(t *testing.T) {
	if CategoryOf("js") != CategoryScript {
		t.Errorf("expected js to be a script")
	}
	if CategoryOf("less") != CategoryStylesheet {
		t.Errorf("expected less to be a stylesheet")
	}
	if CategoryOf("lock") != CategoryOther {
		t.Errorf("expected unknown type to be other")
	}
}
