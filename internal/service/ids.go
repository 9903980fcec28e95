package service

import (
	"crypto/rand"
	"encoding/hex"
)

// newID yields a random 32 character hex id for records and file keys.
func newID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
