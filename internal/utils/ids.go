package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"

	"github.com/google/uuid"
)

// shareIDBytes yields 19 URL-safe characters (112 bits).
const shareIDBytes = 14

func newHexID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func NewAlbumID() string     { return newHexID() }
func NewSubfolderID() string { return newHexID() }
func NewImageID() string     { return newHexID() }

// NewShareID returns an unpadded base64url identifier that can be used as a
// path segment as-is.
func NewShareID() string {
	b := make([]byte, shareIDBytes)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
