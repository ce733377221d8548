package report

import (
	"encoding/json"

	"github.com/hexlattice/anchorscan/internal/model"
)

// ToJSON serializes vulnerabilities, warnings and info verbatim. The
// description catalog is excluded from serialized output by design.
func ToJSON(res *model.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}
