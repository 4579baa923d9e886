package imaging

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// fitWithin scales img so its longer edge is at most maxEdge, keeping the
// aspect ratio. Images already small enough are returned unchanged.
func fitWithin(img image.Image, maxEdge int) image.Image {
	return resize.Thumbnail(uint(maxEdge), uint(maxEdge), img, resize.Lanczos3)
}

type encodeError struct{ err error }

func (e *encodeError) Error() string { return "encode jpeg: " + e.err.Error() }
func (e *encodeError) Unwrap() error { return e.err }

// writeJPEG encodes img into a temp file next to path and renames it into
// place, so readers never see a half-written derivative. Encoder failures
// are returned as *encodeError, everything else is a filesystem error.
func writeJPEG(path string, img image.Image, quality int) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriterSize(tmp, 256<<10)
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return &encodeError{err: err}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
