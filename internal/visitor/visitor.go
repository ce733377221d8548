// Package visitor implements the detection engine: a single-pass walk over
// one file's syntax tree that applies heuristic security rules for
// Solana/Anchor programs and appends classified findings to a shared
// AnalysisResult.
//
// The analysis is deliberately best-effort. Rules match over the rendered
// source text of sub-trees instead of building dataflow or control-flow
// graphs, so false positives and negatives are expected.
package visitor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hexlattice/anchorscan/internal/model"
	"github.com/hexlattice/anchorscan/internal/rustsrc"
	"github.com/hexlattice/anchorscan/internal/util"
)

// Visitor walks a single file's tree. One instance per file; it holds the
// only mutable reference to the shared result while it runs and is
// discarded afterwards.
type Visitor struct {
	res            *model.AnalysisResult
	file           string
	source         []byte
	content        string
	overflowChecks bool
}

// New creates a visitor for one file. overflowChecks is the run-wide fact
// scanned from Cargo.toml; it flips arithmetic findings between High
// vulnerabilities and Info notes.
func New(res *model.AnalysisResult, file string, source []byte, overflowChecks bool) *Visitor {
	return &Visitor{
		res:            res,
		file:           file,
		source:         source,
		content:        string(source),
		overflowChecks: overflowChecks,
	}
}

// VisitFile traverses the whole file. Rules never fail: each one either
// emits a finding or stays silent.
func (v *Visitor) VisitFile(root *sitter.Node) {
	v.visitItems(root)
}

// visitItems dispatches the items of a container node. Attribute items are
// collected and handed to the next struct so derive markers like
// #[derive(Accounts)] reach the struct check; tree-sitter parses them as
// preceding siblings, not children.
func (v *Visitor) visitItems(container *sitter.Node) {
	if container == nil {
		return
	}
	var attrs []string
	for i := 0; i < int(container.NamedChildCount()); i++ {
		item := container.NamedChild(i)
		switch item.Type() {
		case "attribute_item", "inner_attribute_item":
			attrs = append(attrs, v.text(item))
			continue
		case "function_item":
			v.checkFunction(item)
		case "struct_item":
			v.checkStruct(item, attrs)
		case "enum_item":
			v.checkEnum(item)
		case "mod_item":
			v.visitItems(item.ChildByFieldName("body"))
		default:
			v.visitItems(item)
		}
		attrs = nil
	}
}

func (v *Visitor) checkEnum(enum *sitter.Node) {
	name := v.text(enum.ChildByFieldName("name"))
	if strings.Contains(name, "Error") {
		v.addInfo("Error enum detected - ensure proper error handling", v.locate(enum))
	}
}

func (v *Visitor) text(n *sitter.Node) string {
	return rustsrc.Text(n, v.source)
}

// locate resolves a node's position by searching the raw file text for its
// literal snippet. Approximate by design: an identical snippet earlier in
// the file wins.
func (v *Visitor) locate(n *sitter.Node) model.Location {
	line, col := util.FindLineCol(v.content, v.text(n))
	return model.Location{File: v.file, Line: line, Column: col}
}

func (v *Visitor) addVulnerability(sev model.Severity, description string, loc model.Location, suggestion string) {
	v.res.AddVulnerability(sev, description, loc, suggestion)
}

func (v *Visitor) addWarning(description string, loc model.Location, suggestion string) {
	v.res.AddWarning(description, loc, suggestion)
}

func (v *Visitor) addInfo(description string, loc model.Location) {
	v.res.AddInfo(description, loc)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
