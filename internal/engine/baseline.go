package engine

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/hexlattice/anchorscan/internal/model"
	"github.com/hexlattice/anchorscan/internal/util"
)

// A baseline records fingerprints of known vulnerabilities so later reports
// can show only what is new. This diffs reports; detection itself never
// reads it.
type baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

func fingerprintOf(v model.Vulnerability) string {
	return util.Fingerprint(v.Description, v.Location.File, v.Location.Line, v.Location.Column)
}

func loadBaseline(path string) (baseline, error) {
	var b baseline
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	// accept a bare fingerprint array as well as the full struct
	var fp []string
	if err := json.Unmarshal(data, &fp); err == nil {
		b.Fingerprints = make(map[string]bool, len(fp))
		for _, f := range fp {
			b.Fingerprints[f] = true
		}
		return b, nil
	}
	_ = json.Unmarshal(data, &b)
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

// FilterByBaseline removes vulnerabilities whose fingerprint appears in the
// baseline file at path. A missing or unreadable baseline leaves the result
// unchanged.
func FilterByBaseline(res *model.AnalysisResult, path string) *model.AnalysisResult {
	b, err := loadBaseline(path)
	if err != nil || len(b.Fingerprints) == 0 {
		return res
	}
	out := model.NewAnalysisResult()
	out.Descriptions = res.Descriptions
	for _, v := range res.Vulnerabilities {
		if b.Fingerprints[fingerprintOf(v)] {
			continue
		}
		out.Vulnerabilities = append(out.Vulnerabilities, v)
	}
	out.Warnings = append(out.Warnings, res.Warnings...)
	out.Info = append(out.Info, res.Info...)
	return out
}

// WriteBaseline stores the fingerprints of the result's vulnerabilities.
func WriteBaseline(path string, res *model.AnalysisResult) error {
	seen := map[string]bool{}
	for _, v := range res.Vulnerabilities {
		seen[fingerprintOf(v)] = true
	}
	arr := make([]string, 0, len(seen))
	for k := range seen {
		arr = append(arr, k)
	}
	sort.Strings(arr)
	data, _ := json.MarshalIndent(arr, "", "  ")
	return os.WriteFile(path, data, 0o644)
}
