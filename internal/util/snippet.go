package util

import (
	"strings"
)

// FindLineCol locates the first occurrence of needle in content and returns
// its 1-based line and column. Returns (0, 0) when needle is empty or not
// found; 0 means "unknown" in finding locations.
//
// Resolution is best-effort: when an identical snippet recurs verbatim
// earlier in the file, the reported position is that of the first
// occurrence, not necessarily the node that produced the finding.
func FindLineCol(content, needle string) (line, col int) {
	if needle == "" {
		return 0, 0
	}
	idx := strings.Index(content, needle)
	if idx < 0 {
		return 0, 0
	}
	before := content[:idx]
	line = strings.Count(before, "\n") + 1
	lastNL := strings.LastIndexByte(before, '\n')
	col = idx - lastNL // lastNL is -1 on the first line
	return
}
