// Package engine orchestrates a scan: file discovery, the overflow-checks
// manifest fact, per-file parsing and visiting, and post-run report
// filters. Detection itself lives in the visitor package.
package engine

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hexlattice/anchorscan/internal/catalog"
	"github.com/hexlattice/anchorscan/internal/model"
	"github.com/hexlattice/anchorscan/internal/rustsrc"
	"github.com/hexlattice/anchorscan/internal/visitor"
)

type Analyzer struct {
	projectPath    string
	catalogDir     string
	overflowChecks bool
}

// New prepares an analyzer for a project. catalogDir may be empty or
// missing; the catalog then stays empty and only report enrichment is
// affected.
func New(projectPath, catalogDir string) *Analyzer {
	return &Analyzer{
		projectPath:    projectPath,
		catalogDir:     catalogDir,
		overflowChecks: HasOverflowChecks(projectPath),
	}
}

func (a *Analyzer) OverflowChecks() bool { return a.overflowChecks }

// Analyze scans every .rs file under the project path, one visitor per
// file, all appending into one shared result. Files that fail to parse are
// recorded as a single warning each and skipped.
func (a *Analyzer) Analyze() *model.AnalysisResult {
	res := model.NewAnalysisResult()
	res.Descriptions = catalog.Load(a.catalogDir)

	if a.overflowChecks {
		res.AddInfo(
			"Project has overflow-checks = true in Cargo.toml, which provides runtime protection against integer overflow/underflow",
			model.Location{File: "Cargo.toml"})
	}

	for _, path := range discoverFiles(a.projectPath) {
		a.analyzeFile(path, res)
	}
	return res
}

func (a *Analyzer) analyzeFile(path string, res *model.AnalysisResult) {
	source, err := os.ReadFile(path)
	if err != nil {
		res.AddWarning("Failed to read file: "+err.Error(), model.Location{File: path},
			"Check file permissions and encoding")
		return
	}
	parsed, err := rustsrc.Parse(path, source)
	if err != nil {
		res.AddWarning("Failed to parse file: "+err.Error(), model.Location{File: path},
			"Check for syntax errors or unsupported Rust syntax")
		return
	}
	vis := visitor.New(res, path, parsed.Source, a.overflowChecks)
	vis.VisitFile(parsed.Root)
}

// discoverFiles returns the project's Rust sources. WalkDir is lexical, so
// traversal order is deterministic; detection is order-independent anyway.
func discoverFiles(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) == ".rs" {
			out = append(out, path)
		}
		return nil
	})
	return out
}
