package util

import "testing"

func TestFindLineCol(t *testing.T) {
	content := "fn main() {\n    let x = 1;\n    let y = 2;\n}\n"

	tests := []struct {
		name   string
		needle string
		line   int
		col    int
	}{
		{"first line", "fn main", 1, 1},
		{"inner line", "let y", 3, 5},
		{"first occurrence wins", "let", 2, 5},
		{"not found", "nonexistent", 0, 0},
		{"empty needle", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := FindLineCol(content, tt.needle)
			if line != tt.line || col != tt.col {
				t.Errorf("FindLineCol(%q) = (%d, %d), want (%d, %d)", tt.needle, line, col, tt.line, tt.col)
			}
		})
	}
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("desc", "file.rs", 3, 7)
	b := Fingerprint("desc", "file.rs", 3, 7)
	if a != b {
		t.Fatal("fingerprint not deterministic")
	}
	if a == Fingerprint("desc", "file.rs", 4, 7) {
		t.Error("fingerprint should change with line")
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(a))
	}
}
