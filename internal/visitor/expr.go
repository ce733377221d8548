package visitor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hexlattice/anchorscan/internal/model"
)

// uncheckedAccountTypes are the Anchor wrapper types that skip all account
// validation.
var uncheckedAccountTypes = []string{"AccountInfo", "UncheckedAccount"}

// walkExpr applies the expression rules to n and recurses into its
// children. Items nested inside a body get their own dedicated check so the
// enclosing function's state never bleeds into them.
func (v *Visitor) walkExpr(n *sitter.Node, st *funcState) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "function_item":
		v.checkFunction(n)
		return
	case "struct_item":
		v.checkStruct(n, nil)
		return
	case "enum_item":
		v.checkEnum(n)
		return

	case "field_expression":
		v.checkFieldAccess(n, st)

	case "binary_expression":
		op := v.text(n.ChildByFieldName("operator"))
		switch op {
		case "==":
			if left := n.ChildByFieldName("left"); left != nil && left.Type() == "field_expression" {
				member := v.text(left.ChildByFieldName("field"))
				if member == "owner" || member == "key" {
					// An ownership or key comparison anywhere in the
					// function counts as validation; it is not proven to
					// guard the actual access.
					st.remainingValidated = true
				}
			}
		case "+", "-", "*":
			v.checkArithmetic(n, op)
		}

	case "type_cast_expression":
		if target := v.text(n.ChildByFieldName("type")); containsAny(target, uncheckedAccountTypes...) {
			v.addWarning("Casting to AccountInfo - ensure proper validation", v.locate(n),
				"Validate the account before and after casting to AccountInfo")
		}

	case "integer_literal":
		v.checkLargeIntegerLiteral(n)

	case "if_expression":
		if st.isInit {
			if cond := n.ChildByFieldName("condition"); cond != nil && strings.Contains(v.text(cond), "is_initialized") {
				v.addInfo("Detected is_initialized check to prevent reinitialization", v.locate(n))
			}
		}

	case "macro_invocation":
		v.checkMacro(n, st)

	case "call_expression":
		v.checkCall(n, st)
		return // checkCall recurses itself to order post-CPI tracking
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		v.walkExpr(n.NamedChild(i), st)
	}
}

func (v *Visitor) checkFieldAccess(n *sitter.Node, st *funcState) {
	member := v.text(n.ChildByFieldName("field"))
	if member == "remaining_accounts" {
		st.remainingAccessed = true
	}
	if st.cpiPerformed && member != "reload" {
		// Record only the outermost access of a chain so that
		// x.reload() does not count its own receiver.
		if parent := n.Parent(); parent == nil || parent.Type() != "field_expression" {
			st.accessedAfterCPI[v.text(n)] = struct{}{}
		}
	}
}

// checkCall handles calls and method calls. The CPI flag is raised only
// after the call's own sub-tree has been walked: accounts handed to the
// invoking call itself are not "accessed after CPI".
func (v *Visitor) checkCall(call *sitter.Node, st *funcState) {
	callee := call.ChildByFieldName("function")
	calleeText := v.text(callee)

	if callee != nil && callee.Type() == "field_expression" {
		method := v.text(callee.ChildByFieldName("field"))
		if containsAny(method, "check", "verify", "validate", "assert") {
			st.remainingValidated = true
		}
	}
	if calleeName(callee, v) == "create_program_address" && st.hasBumpParam {
		st.nonCanonicalBump = true
	}

	isInvoke := strings.Contains(calleeText, "invoke") // invoke and invoke_signed
	isCpiCtx := strings.Contains(calleeText, "CpiContext::new")

	for i := 0; i < int(call.NamedChildCount()); i++ {
		v.walkExpr(call.NamedChild(i), st)
	}

	if isInvoke {
		v.addVulnerability(model.SeverityCritical,
			"Potential arbitrary CPI vulnerability detected",
			v.locate(call),
			"Verify the program id of the invoked program before calling invoke/invoke_signed, and validate all accounts passed to the CPI.")
		st.cpiPerformed = true
	}
	if isCpiCtx {
		v.addWarning("Cross-Program Invocation detected - ensure proper program validation", v.locate(call),
			"Validate the target program and all accounts passed to the CPI before invoking")
		st.cpiPerformed = true
	}
}

// checkMacro covers the Rust-side shapes of validation and guard code:
// assert!/require! are macros, not method calls, so they are matched here.
func (v *Visitor) checkMacro(n *sitter.Node, st *funcState) {
	mac := v.text(n.ChildByFieldName("macro"))
	if containsAny(mac, "check", "verify", "validate", "assert") {
		st.remainingValidated = true
	}
	if st.isInit && containsAny(mac, "assert", "require") && strings.Contains(v.text(n), "is_initialized") {
		v.addInfo("Detected is_initialized assertion to prevent reinitialization", v.locate(n))
	}
}

func (v *Visitor) checkArithmetic(n *sitter.Node, op string) {
	var opName string
	switch op {
	case "+":
		opName = "addition"
	case "-":
		opName = "subtraction"
	case "*":
		opName = "multiplication"
	default:
		return
	}

	if !v.overflowChecks {
		v.addVulnerability(model.SeverityHigh,
			"Potential arithmetic overflow/underflow detected in "+opName+" operation",
			v.locate(n),
			"Use checked arithmetic operations (checked_add, checked_sub, checked_mul) or enable overflow-checks = true in Cargo.toml")
	} else {
		v.addInfo("Arithmetic operation with runtime overflow protection: "+opName+" operation", v.locate(n))
	}
}

var intLiteralSuffix = regexp.MustCompile(`(?:[ui](?:8|16|32|64|128|size))$`)

func (v *Visitor) checkLargeIntegerLiteral(n *sitter.Node) {
	text := strings.ReplaceAll(v.text(n), "_", "")
	text = intLiteralSuffix.ReplaceAllString(text, "")
	value, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return
	}
	if value > math.MaxUint32 {
		v.addWarning("Large integer literal detected: "+strconv.FormatUint(value, 10), v.locate(n),
			"Consider using a smaller integer type or implementing proper overflow checks")
	}
}

// calleeName extracts the final identifier of a callee, covering both the
// method shape (pda.create_program_address) and the path shape
// (Pubkey::create_program_address).
func calleeName(callee *sitter.Node, v *Visitor) string {
	if callee == nil {
		return ""
	}
	switch callee.Type() {
	case "field_expression":
		return v.text(callee.ChildByFieldName("field"))
	case "scoped_identifier":
		return v.text(callee.ChildByFieldName("name"))
	case "generic_function":
		return calleeName(callee.ChildByFieldName("function"), v)
	default:
		return v.text(callee)
	}
}
