package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers. Session ids are assigned at start so
// events recorded mid-session reference a stable id before the ledger row exists.
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
