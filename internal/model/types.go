package model

import "github.com/hexlattice/anchorscan/internal/catalog"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all severities in report grouping order (most severe
// first). Ordering drives grouping only, never detection.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityCritical):
		return SeverityCritical
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3, SeverityCritical: 4}
	return order[a] >= order[b]
}

// Location points into analyzed source. Line/Column are 1-based; 0 means
// unknown. Positions are resolved by snippet search and are approximate.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type Vulnerability struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
	Suggestion  string   `json:"suggestion"`
}

// Warning is a lower-confidence or stylistic issue, implicitly below Low.
type Warning struct {
	Description string   `json:"description"`
	Location    Location `json:"location"`
	Suggestion  string   `json:"suggestion"`
}

// Info is an observational note, never actionable.
type Info struct {
	Description string   `json:"description"`
	Location    Location `json:"location"`
}

// AnalysisResult accumulates findings across all files of a run. It is
// strictly append-only: order is file-traversal order, then emission order
// within a file. The description catalog rides along for report enrichment
// but is excluded from serialized output.
type AnalysisResult struct {
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	Warnings        []Warning       `json:"warnings"`
	Info            []Info          `json:"info"`

	Descriptions catalog.Catalog `json:"-"`
}

func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Vulnerabilities: []Vulnerability{},
		Warnings:        []Warning{},
		Info:            []Info{},
	}
}

func (r *AnalysisResult) AddVulnerability(sev Severity, description string, loc Location, suggestion string) {
	r.Vulnerabilities = append(r.Vulnerabilities, Vulnerability{
		Severity:    sev,
		Description: description,
		Location:    loc,
		Suggestion:  suggestion,
	})
}

func (r *AnalysisResult) AddWarning(description string, loc Location, suggestion string) {
	r.Warnings = append(r.Warnings, Warning{Description: description, Location: loc, Suggestion: suggestion})
}

func (r *AnalysisResult) AddInfo(description string, loc Location) {
	r.Info = append(r.Info, Info{Description: description, Location: loc})
}

// BySeverity returns the vulnerabilities of one severity, in emission order.
func (r *AnalysisResult) BySeverity(sev Severity) []Vulnerability {
	var out []Vulnerability
	for _, v := range r.Vulnerabilities {
		if v.Severity == sev {
			out = append(out, v)
		}
	}
	return out
}

func (r *AnalysisResult) CountBySeverity(sev Severity) int {
	n := 0
	for _, v := range r.Vulnerabilities {
		if v.Severity == sev {
			n++
		}
	}
	return n
}
