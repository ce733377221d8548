package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadWithIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.json", `{"vulnerabilities":[{"id":"reinitialization-attack"},{"id":"missing-entry"}]}`)
	writeFile(t, dir, "reinitialization-attack.json", `{"description":"Reinit write-up","secure_example":"if acc.is_initialized { return Err(...); }"}`)
	writeFile(t, dir, "unlisted.json", `{"description":"not in index"}`)

	cat := Load(dir)
	if len(cat) != 1 {
		t.Fatalf("len = %d, want 1 (missing detail skipped, unlisted ignored)", len(cat))
	}
	entry, ok := cat["reinitialization-attack"]
	if !ok {
		t.Fatal("reinitialization-attack not loaded")
	}
	if entry.Description != "Reinit write-up" {
		t.Errorf("description = %q", entry.Description)
	}
}

func TestLoadWithoutIndexGlobsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bump-seed.json", `{"description":"bump"}`)
	writeFile(t, dir, "arbitrary-cpi.json", `{"description":"cpi"}`)
	writeFile(t, dir, "notes.txt", "ignored")

	cat := Load(dir)
	if len(cat) != 2 {
		t.Fatalf("len = %d, want 2", len(cat))
	}
	if _, ok := cat["bump-seed"]; !ok {
		t.Error("bump-seed missing")
	}
	if _, ok := cat["arbitrary-cpi"]; !ok {
		t.Error("arbitrary-cpi missing")
	}
}

func TestLoadMissingDirIsEmpty(t *testing.T) {
	cat := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(cat) != 0 {
		t.Fatalf("len = %d, want 0", len(cat))
	}
	if _, ok := cat.Lookup("anything"); ok {
		t.Error("lookup on empty catalog should miss")
	}
}

func TestLoadSkipsMalformedEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", `{"description":"fine"}`)
	writeFile(t, dir, "bad.json", `{not json`)

	cat := Load(dir)
	if len(cat) != 1 {
		t.Fatalf("len = %d, want 1", len(cat))
	}
}

func TestLookup(t *testing.T) {
	cat := Catalog{
		"bump-seed":             {Description: "seed"},
		"bump-canonicalization": {Description: "canonical"},
		"arbitrary-cpi":         {Description: "cpi"},
	}

	tests := []struct {
		keyword string
		wantOK  bool
		want    string
	}{
		{"CPI", true, "cpi"},
		{"bump", true, "canonical"}, // sorted keys: canonicalization before seed
		{"missing", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		entry, ok := cat.Lookup(tt.keyword)
		if ok != tt.wantOK {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.keyword, ok, tt.wantOK)
			continue
		}
		if ok && entry.Description != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.keyword, entry.Description, tt.want)
		}
	}
}
