// Package catalog loads long-form vulnerability write-ups from a documents
// directory. It is pure lookup: the catalog enriches report text and never
// alters detection results.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one vulnerability write-up. All fields are optional.
type Entry struct {
	Description     string `json:"description,omitempty"`
	ExampleScenario string `json:"example_scenario,omitempty"`
	SecureExample   string `json:"secure_example,omitempty"`
}

type Catalog map[string]Entry

const indexFile = "index.json"

type index struct {
	Vulnerabilities []struct {
		ID string `json:"id"`
	} `json:"vulnerabilities"`
}

// Load reads the catalog from dir. An index.json listing ids is preferred;
// without one, every *.json in the directory is loaded keyed by filename
// stem. A missing or unreadable directory yields an empty catalog — loading
// never fails the run.
func Load(dir string) Catalog {
	cat := Catalog{}
	if dir == "" {
		return cat
	}

	if b, err := os.ReadFile(filepath.Join(dir, indexFile)); err == nil {
		var idx index
		if json.Unmarshal(b, &idx) == nil && len(idx.Vulnerabilities) > 0 {
			for _, v := range idx.Vulnerabilities {
				if v.ID == "" {
					continue
				}
				cat.loadEntry(dir, v.ID)
			}
			return cat
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return cat
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == indexFile {
			continue
		}
		cat.loadEntry(dir, strings.TrimSuffix(name, ".json"))
	}
	return cat
}

func (c Catalog) loadEntry(dir, id string) {
	b, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		return
	}
	var entry Entry
	if err := json.Unmarshal(b, &entry); err != nil {
		return
	}
	c[id] = entry
}

// Lookup returns the first entry whose key contains keyword as a
// case-insensitive substring. Keys are scanned in sorted order so that
// multi-match lookups stay reproducible across runs.
func (c Catalog) Lookup(keyword string) (Entry, bool) {
	if len(c) == 0 || keyword == "" {
		return Entry{}, false
	}
	kw := strings.ToLower(keyword)
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), kw) {
			return c[k], true
		}
	}
	return Entry{}, false
}
