package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash for a finding key
func Fingerprint(description, file string, line, col int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%d", description, file, line, col)
	return hex.EncodeToString(h.Sum(nil))
}
