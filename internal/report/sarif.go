package report

import (
	"encoding/json"
	"strings"

	"github.com/hexlattice/anchorscan/internal/model"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}
type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}
type sarifArt struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

func ToSARIF(res *model.AnalysisResult) ([]byte, error) {
	var results []sarifResult
	for _, v := range res.Vulnerabilities {
		level := "warning"
		switch v.Severity {
		case model.SeverityLow:
			level = "note"
		case model.SeverityHigh, model.SeverityCritical:
			level = "error"
		}
		results = append(results, sarifResult{
			RuleID:  ruleID(v.Description),
			Level:   level,
			Message: sarifMessage{Text: v.Description},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: v.Location.File},
				Region:           sarifRegion{StartLine: v.Location.Line, StartColumn: v.Location.Column},
			}}},
		})
	}
	for _, w := range res.Warnings {
		results = append(results, sarifResult{
			RuleID:  ruleID(w.Description),
			Level:   "note",
			Message: sarifMessage{Text: w.Description},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: w.Location.File},
				Region:           sarifRegion{StartLine: w.Location.Line, StartColumn: w.Location.Column},
			}}},
		})
	}
	s := sarif{Version: "2.1.0", Runs: []sarifRun{{Tool: sarifTool{Driver: sarifDriver{Name: "anchorscan"}}, Results: results}}}
	return json.MarshalIndent(s, "", "  ")
}

// ruleID slugs the leading words of a description into a stable identifier.
func ruleID(description string) string {
	words := strings.Fields(strings.ToLower(description))
	if len(words) > 5 {
		words = words[:5]
	}
	var parts []string
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, w)
		if w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, "-")
}
