package visitor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hexlattice/anchorscan/internal/model"
)

// funcState is the transient per-function state. A fresh value is built at
// every function entry and goes out of scope at exit, so flags can never
// leak between sibling or nested functions.
type funcState struct {
	isInit             bool
	hasBumpParam       bool
	remainingAccessed  bool
	remainingValidated bool
	cpiPerformed       bool
	nonCanonicalBump   bool
	accessedAfterCPI   map[string]struct{}
}

func newFuncState() *funcState {
	return &funcState{accessedAfterCPI: map[string]struct{}{}}
}

func (v *Visitor) checkFunction(fn *sitter.Node) {
	st := newFuncState()
	name := v.text(fn.ChildByFieldName("name"))
	loc := v.locate(fn)

	// Naming convention marks initialization handlers; "initialize" and
	// "create_*" style names are the common Anchor idioms.
	st.isInit = strings.Contains(name, "initialize") ||
		strings.Contains(name, "init") ||
		strings.Contains(name, "create")

	if params := fn.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if p.Type() != "parameter" {
				continue
			}
			if pat := p.ChildByFieldName("pattern"); pat != nil && strings.Contains(v.text(pat), "bump") {
				st.hasBumpParam = true
			}
		}
	}

	v.checkFunctionNaming(name, loc)

	body := fn.ChildByFieldName("body")
	if body == nil {
		return // trait or extern declaration, nothing to analyze
	}
	v.walkExpr(body, st)

	// Exit-time checks, in fixed order.
	if st.remainingAccessed && !st.remainingValidated {
		v.addVulnerability(model.SeverityHigh,
			"Accessing remaining_accounts without proper validation",
			loc,
			"Always validate remaining accounts before using them. Check account ownership, type, and other constraints.")
	}

	if st.isInit {
		bodyText := v.text(body)
		hasGuard := strings.Contains(bodyText, "is_initialized") &&
			(strings.Contains(bodyText, "if") || strings.Contains(bodyText, "assert"))
		if !hasGuard {
			v.addVulnerability(model.SeverityHigh,
				"Initialization function without reinitialization check",
				loc,
				"Add an is_initialized check to prevent reinitialization attacks. In native Rust, verify an is_initialized flag before setting data. In Anchor, use the init constraint.")
		}
	}

	if st.cpiPerformed && len(st.accessedAfterCPI) > 0 {
		v.addVulnerability(model.SeverityCritical,
			"Account data accessed after CPI without reload",
			loc,
			"Call reload() on accounts whose data may have been changed by the invoked program before reading them again.")
	}

	if st.nonCanonicalBump && st.hasBumpParam {
		v.addVulnerability(model.SeverityCritical,
			"Possible bump seed canonicalization vulnerability",
			loc,
			"Use find_program_address to derive the canonical bump instead of accepting a caller-supplied bump with create_program_address.")
	}
	// st goes out of scope here; nothing persists to the next function.
}

func (v *Visitor) checkFunctionNaming(name string, loc model.Location) {
	if strings.Contains(name, "validate") {
		v.addWarning("Function contains 'validate' in name - ensure proper validation", loc,
			"Consider using Anchor's built-in validation attributes")
	}
	if strings.Contains(name, "error") {
		v.addWarning("Function contains 'error' in name - ensure proper error handling", loc,
			"Use Anchor's error handling macros and proper error types")
	}
	if strings.Contains(name, "access") {
		v.addWarning("Function contains 'access' in name - ensure proper access control", loc,
			"Implement proper access control checks using Anchor's constraints")
	}
}
