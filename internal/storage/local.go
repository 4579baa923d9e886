package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"proofflow-backend/internal/utils"
)

// ErrOutsideRoot is returned when asked to open a path that is not under the
// media root.
var ErrOutsideRoot = errors.New("path is outside the media root")

// LocalMediaStore implements MediaStore on the local filesystem
type LocalMediaStore struct {
	root         string
	originalsDir string
	thumbsDir    string
	previewsDir  string
}

// NewLocalMediaStore creates a store rooted at cfg.Root. It does not touch the
// filesystem; call EnsureLayout before the first write.
func NewLocalMediaStore(cfg Config) (*LocalMediaStore, error) {
	if cfg.Root == "" {
		return nil, errors.New("storage root is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}

	return &LocalMediaStore{
		root:         root,
		originalsDir: filepath.Join(root, OriginalsDir),
		thumbsDir:    filepath.Join(root, ThumbsDir),
		previewsDir:  filepath.Join(root, PreviewsDir),
	}, nil
}

func (s *LocalMediaStore) Root() string {
	return s.root
}

func (s *LocalMediaStore) EnsureLayout() error {
	for _, dir := range []string{s.originalsDir, s.thumbsDir, s.previewsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

func (s *LocalMediaStore) OriginalPath(imageID, ext string) string {
	return filepath.Join(s.originalsDir, imageID+utils.NormalizeExtension(ext))
}

func (s *LocalMediaStore) ThumbPath(imageID string) string {
	return filepath.Join(s.thumbsDir, imageID+DerivedExt)
}

func (s *LocalMediaStore) PreviewPath(imageID string) string {
	return filepath.Join(s.previewsDir, imageID+DerivedExt)
}

func (s *LocalMediaStore) Open(path string) (*os.File, error) {
	if !s.contains(path) {
		return nil, ErrOutsideRoot
	}
	return os.Open(path)
}

func (s *LocalMediaStore) Remove(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if !s.contains(path) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, ErrOutsideRoot))
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to delete file: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *LocalMediaStore) List(ctx context.Context) ([]StoredFile, error) {
	var files []StoredFile
	for _, dir := range []string{s.originalsDir, s.thumbsDir, s.previewsDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				// removed between ReadDir and Info
				continue
			}
			files = append(files, StoredFile{
				ImageID: imageIDFromName(entry.Name()),
				Path:    filepath.Join(dir, entry.Name()),
				ModTime: info.ModTime(),
			})
		}
	}
	return files, nil
}

func (s *LocalMediaStore) contains(path string) bool {
	rel, err := filepath.Rel(s.root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// imageIDFromName strips the extension. Hidden files are temp files written
// by the ingestion pipeline and belong to no image.
func imageIDFromName(name string) string {
	if strings.HasPrefix(name, ".") {
		return ""
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
