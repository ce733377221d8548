package engine

import (
	"github.com/hexlattice/anchorscan/internal/model"
)

// ApplyThreshold returns a copy of the result with vulnerabilities below
// threshold removed. Warnings and info items sit below every severity and
// are kept untouched; the original result is never mutated.
func ApplyThreshold(res *model.AnalysisResult, threshold model.Severity) *model.AnalysisResult {
	out := model.NewAnalysisResult()
	out.Descriptions = res.Descriptions
	for _, v := range res.Vulnerabilities {
		if model.SeverityGTE(v.Severity, threshold) {
			out.Vulnerabilities = append(out.Vulnerabilities, v)
		}
	}
	out.Warnings = append(out.Warnings, res.Warnings...)
	out.Info = append(out.Info, res.Info...)
	return out
}
