package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	hexID   = regexp.MustCompile(`^[0-9a-f]{32}$`)
	urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func TestNewImageID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewImageID()
		assert.Regexp(t, hexID, id)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
	assert.Regexp(t, hexID, NewAlbumID())
	assert.Regexp(t, hexID, NewSubfolderID())
}

func TestNewShareID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewShareID()
		assert.Len(t, id, 19)
		assert.Regexp(t, urlSafe, id)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
