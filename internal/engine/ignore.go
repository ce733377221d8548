package engine

import (
	"bufio"
	"os"
	"strings"

	"github.com/hexlattice/anchorscan/internal/model"
)

const suppressionMarker = "anchorscan:ignore"

// ApplyInlineSuppressions drops vulnerabilities suppressed by a comment on
// or just above the finding line:
//
//	// anchorscan:ignore [keyword]
//
// With a keyword, the suppression applies only to vulnerabilities whose
// description contains it case-insensitively; bare markers suppress
// everything at that location.
func ApplyInlineSuppressions(res *model.AnalysisResult) *model.AnalysisResult {
	out := model.NewAnalysisResult()
	out.Descriptions = res.Descriptions
	for _, v := range res.Vulnerabilities {
		if !isSuppressed(v) {
			out.Vulnerabilities = append(out.Vulnerabilities, v)
		}
	}
	out.Warnings = append(out.Warnings, res.Warnings...)
	out.Info = append(out.Info, res.Info...)
	return out
}

func isSuppressed(v model.Vulnerability) bool {
	if v.Location.Line == 0 {
		return false
	}
	f, err := os.Open(v.Location.File)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo < v.Location.Line-1 || lineNo > v.Location.Line {
			continue
		}
		line := scanner.Text()
		idx := strings.Index(line, suppressionMarker)
		if idx < 0 {
			continue
		}
		keyword := strings.TrimSpace(line[idx+len(suppressionMarker):])
		if keyword == "" || strings.Contains(strings.ToLower(v.Description), strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
