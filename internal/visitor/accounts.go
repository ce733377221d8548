package visitor

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hexlattice/anchorscan/internal/model"
)

// checkStruct analyzes struct items. attrs holds the rendered text of the
// attribute items preceding the struct; any mention of "Accounts" marks an
// Anchor accounts struct whose fields carry constraint attributes.
func (v *Visitor) checkStruct(st *sitter.Node, attrs []string) {
	name := v.text(st.ChildByFieldName("name"))
	loc := v.locate(st)

	isAccountsStruct := false
	for _, a := range attrs {
		if strings.Contains(a, "Accounts") {
			isAccountsStruct = true
			break
		}
	}

	if isAccountsStruct {
		v.addInfo("Anchor Accounts struct detected: "+name, loc)
		v.checkAccountFields(st, name)
	}

	if strings.Contains(name, "Account") {
		v.addInfo("Account struct detected - ensure proper validation", loc)
		if !isAccountsStruct && !v.hasIsInitializedField(st) {
			v.addWarning("Account struct "+name+" missing is_initialized field", loc,
				"Add an is_initialized: bool field to account structs to prevent reinitialization attacks")
		}
	}
}

// checkAccountFields walks the field declaration list, pairing each field
// with the attribute items that precede it.
func (v *Visitor) checkAccountFields(st *sitter.Node, structName string) {
	body := st.ChildByFieldName("body")
	if body == nil || body.Type() != "field_declaration_list" {
		return
	}
	var attrs []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "attribute_item":
			attrs = append(attrs, v.text(child))
		case "field_declaration":
			v.checkAccountField(child, attrs, structName)
			attrs = nil
		}
	}
}

var bumpLiteral = regexp.MustCompile(`bump\s*=\s*(\d+)`)
var bumpExpr = regexp.MustCompile(`bump\s*=`)

func (v *Visitor) checkAccountField(field *sitter.Node, attrs []string, structName string) {
	fieldName := v.text(field.ChildByFieldName("name"))
	fieldType := v.text(field.ChildByFieldName("type"))
	attrText := strings.Join(attrs, " ")
	loc := v.locate(field)

	if containsAny(fieldType, uncheckedAccountTypes...) {
		constrained := containsAny(attrText, "account", "signer", "constraint", "owner")
		programLike := strings.Contains(fieldName, "program") || strings.Contains(fieldName, "Program")
		switch {
		case !constrained && programLike:
			v.addVulnerability(model.SeverityCritical,
				"Unchecked account '"+fieldName+"' in struct "+structName+" looks like a program - potential arbitrary CPI vulnerability",
				loc,
				"Use the Program<'info, T> wrapper or constrain the program id explicitly; an attacker can substitute any program for an unchecked field.")
		case !constrained:
			v.addVulnerability(model.SeverityHigh,
				"Unchecked AccountInfo in struct "+structName+": field "+fieldName,
				loc,
				"Add proper constraints to AccountInfo fields using Anchor attributes (e.g., #[account(...)]).")
		case programLike:
			v.addWarning("Program account '"+fieldName+"' in struct "+structName+" uses an unchecked account type", loc,
				"Prefer the strongly-typed Program<'info, T> wrapper over AccountInfo for program references.")
		}
	}

	if strings.Contains(fieldType, "Account<") {
		if !strings.Contains(attrText, "owner") {
			v.addWarning("Missing owner check for Account in struct "+structName+": field "+fieldName, loc,
				"Add #[account(owner = <PROGRAM_ID>)] to ensure the account is owned by the expected program.")
		}
		if strings.Contains(attrText, "space") && !strings.Contains(attrText, "init") {
			v.addWarning("Account space specified without init constraint in struct "+structName+": field "+fieldName, loc,
				"Add the init constraint when specifying space: #[account(init, space = ...)]")
		}
		if strings.Contains(attrText, "init_if_needed") {
			v.addWarning("Using init_if_needed in struct "+structName+": field "+fieldName, loc,
				"init_if_needed can be risky. Ensure the instruction handler includes checks to prevent resetting the account to its initial state.")
		}
		v.checkBumpUsage(attrs, fieldName, structName, loc)
	}

	v.checkATAInit(attrText, fieldName, loc)
}

// checkBumpUsage inspects #[account(...)] text for PDA seed handling. A
// bare `bump` lets Anchor derive the canonical value; an explicit
// assignment deserves review, and the low literals can never be a valid
// canonical bump for virtually any seed set.
func (v *Visitor) checkBumpUsage(attrs []string, fieldName, structName string, loc model.Location) {
	for _, a := range attrs {
		if !strings.Contains(a, "account") {
			continue
		}
		if strings.Contains(a, "seeds") && !strings.Contains(a, "bump") {
			v.addWarning("PDA seeds without bump in struct "+structName+": field "+fieldName, loc,
				"Add the bump constraint so Anchor verifies the canonical bump for the derived address.")
		}
		if m := bumpLiteral.FindStringSubmatch(a); m != nil {
			if m[1] == "0" || m[1] == "1" || m[1] == "2" {
				v.addVulnerability(model.SeverityCritical,
					"Hardcoded non-canonical bump ("+m[1]+") in struct "+structName+": field "+fieldName,
					loc,
					"Never hardcode bump values. Store the canonical bump from find_program_address and reference it in the constraint.")
				continue
			}
			v.addWarning("Explicit bump value in struct "+structName+": field "+fieldName+" - verify canonical bump", loc,
				"Ensure the referenced bump is the canonical one produced by find_program_address.")
		} else if bumpExpr.MatchString(a) {
			v.addWarning("Explicit bump value in struct "+structName+": field "+fieldName+" - verify canonical bump", loc,
				"Ensure the referenced bump is the canonical one produced by find_program_address.")
		}
	}
}

// checkATAInit flags associated token accounts created with init: the
// instruction fails whenever the user already owns the ATA.
func (v *Visitor) checkATAInit(attrText, fieldName string, loc model.Location) {
	isATA := strings.Contains(attrText, "associated_token::") ||
		strings.Contains(fieldName, "ata") ||
		strings.Contains(fieldName, "token_account") ||
		strings.Contains(fieldName, "tokenAccount")
	if !isATA {
		return
	}

	hasInit := false
	for _, part := range strings.Split(attrText, ",") {
		if strings.Contains(part, "init") && !strings.Contains(part, "init_if_needed") {
			hasInit = true
			break
		}
	}
	if hasInit && !strings.Contains(attrText, "init_if_needed") {
		v.addVulnerability(model.SeverityCritical,
			"Associated Token Account '"+fieldName+"' initialized with 'init' constraint instead of 'init_if_needed'",
			loc,
			"Use 'init_if_needed' for Associated Token Accounts to handle cases where users already have ATAs created. Using 'init' will fail if the account already exists.")
	}
}

func (v *Visitor) hasIsInitializedField(st *sitter.Node) bool {
	body := st.ChildByFieldName("body")
	if body == nil {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "field_declaration" && v.text(child.ChildByFieldName("name")) == "is_initialized" {
			return true
		}
	}
	return false
}
