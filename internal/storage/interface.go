package storage

import (
	"context"
	"os"
	"time"
)

// StoredFile is one file found under the media root.
type StoredFile struct {
	ImageID string // empty for files not named after an image, e.g. leftover temp files
	Path    string
	ModTime time.Time
}

// MediaStore maps image ids to filesystem paths under a configured root.
// Paths are derived only from the image id and a normalized extension.
type MediaStore interface {
	// EnsureLayout creates the variant subdirectories. Safe to call repeatedly.
	EnsureLayout() error

	OriginalPath(imageID, ext string) string
	ThumbPath(imageID string) string
	PreviewPath(imageID string) string

	// Open opens a stored file for reading. Paths outside the root are refused.
	Open(path string) (*os.File, error)

	// Remove deletes files, ignoring ones that are already gone.
	Remove(paths ...string) error

	// List walks every variant directory.
	List(ctx context.Context) ([]StoredFile, error)
}
