package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a short prefixed random identifier. The IDs only need to be
// unique within one process run, so a small random suffix is enough.
func NewID(prefix string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
