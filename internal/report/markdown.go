// Package report renders a finished AnalysisResult. Renderers are read-only
// consumers; they never classify or filter findings.
package report

import (
	"fmt"
	"strings"

	"github.com/hexlattice/anchorscan/internal/catalog"
	"github.com/hexlattice/anchorscan/internal/model"
)

var severityHeadings = map[model.Severity]string{
	model.SeverityCritical: "Critical",
	model.SeverityHigh:     "High",
	model.SeverityMedium:   "Medium",
	model.SeverityLow:      "Low",
}

// ToMarkdown renders the full report. Vulnerability sections are enriched
// from the description catalog when a keyword of the finding text matches a
// catalog key.
func ToMarkdown(res *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# anchorscan Analysis Report\n\n")
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Critical Vulnerabilities**: %d\n", res.CountBySeverity(model.SeverityCritical))
	fmt.Fprintf(&b, "- **High Severity Vulnerabilities**: %d\n", res.CountBySeverity(model.SeverityHigh))
	fmt.Fprintf(&b, "- **Warnings**: %d\n", len(res.Warnings))
	fmt.Fprintf(&b, "- **Informational Items**: %d\n\n", len(res.Info))

	if len(res.Vulnerabilities) > 0 {
		b.WriteString("## Vulnerabilities\n\n")
		for _, sev := range model.Severities() {
			vulns := res.BySeverity(sev)
			if len(vulns) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s Severity\n\n", severityHeadings[sev])
			for _, v := range vulns {
				writeVulnerability(&b, v, res.Descriptions)
			}
		}
	}

	if len(res.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "### %s\n\n", w.Description)
			fmt.Fprintf(&b, "**Location**: %s:%d:%d\n\n", w.Location.File, w.Location.Line, w.Location.Column)
			fmt.Fprintf(&b, "**Suggestion**: %s\n\n", w.Suggestion)
			b.WriteString("---\n\n")
		}
	}

	if len(res.Info) > 0 {
		b.WriteString("## Informational Items\n\n")
		for _, i := range res.Info {
			fmt.Fprintf(&b, "- **%s** (%s:%d:%d)\n", i.Description, i.Location.File, i.Location.Line, i.Location.Column)
		}
	}

	return b.String()
}

func writeVulnerability(b *strings.Builder, v model.Vulnerability, cat catalog.Catalog) {
	fmt.Fprintf(b, "#### %s\n\n", v.Description)

	if entry, ok := lookupByKeywords(v.Description, cat); ok {
		if entry.Description != "" {
			fmt.Fprintf(b, "**Detailed Description**:\n%s\n\n", entry.Description)
		}
		if entry.ExampleScenario != "" {
			fmt.Fprintf(b, "**Example Scenario**:\n%s\n\n", entry.ExampleScenario)
		}
	}

	fmt.Fprintf(b, "**Location**: %s:%d:%d\n\n", v.Location.File, v.Location.Line, v.Location.Column)
	fmt.Fprintf(b, "**Suggestion**: %s\n\n", v.Suggestion)

	if entry, ok := lookupByKeywords(v.Description, cat); ok && entry.SecureExample != "" {
		b.WriteString("**Secure Implementation Example**:\n")
		b.WriteString("```rust\n")
		b.WriteString(entry.SecureExample)
		b.WriteString("\n```\n\n")
	}

	b.WriteString("---\n\n")
}

// lookupByKeywords tries the description's longer words, lowercased,
// against the catalog until one matches.
func lookupByKeywords(description string, cat catalog.Catalog) (catalog.Entry, bool) {
	for _, word := range strings.Fields(description) {
		if len(word) <= 4 {
			continue
		}
		if entry, ok := cat.Lookup(strings.ToLower(word)); ok {
			return entry, true
		}
	}
	return catalog.Entry{}, false
}
