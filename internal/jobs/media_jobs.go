package jobs

import (
	"context"
	"fmt"
	"time"

	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/storage"
)

const existingIDsBatchSize = 500

// PurgeOrphanedFiles removes stored files that no image record points to.
// They are left behind when an ingestion fails halfway or the process dies
// between writing files and inserting the record.
func (jr *JobRunner) PurgeOrphanedFiles() bool {
	return jr.runWithRecovery("PurgeOrphanedFiles", func(ctx context.Context) error {
		_, err := jr.purgeOrphanedFiles(ctx)
		return err
	})
}

// purgeOrphanedFiles only considers files older than the grace period so
// that uploads still in flight are never touched.
func (jr *JobRunner) purgeOrphanedFiles(ctx context.Context) (int, error) {
	files, err := jr.media.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list media: %w", err)
	}

	grace := time.Duration(jr.config.OrphanGraceMinutes) * time.Minute
	cutoff := jr.now().Add(-grace)

	var candidates []storage.StoredFile
	var ids []string
	seen := make(map[string]bool)
	for _, f := range files {
		if f.ModTime.After(cutoff) {
			continue
		}
		candidates = append(candidates, f)
		if f.ImageID != "" && !seen[f.ImageID] {
			seen[f.ImageID] = true
			ids = append(ids, f.ImageID)
		}
	}

	existing := make(map[string]bool, len(ids))
	for start := 0; start < len(ids); start += existingIDsBatchSize {
		end := min(start+existingIDsBatchSize, len(ids))
		found, err := jr.images.ExistingIDs(ctx, ids[start:end])
		if err != nil {
			return 0, err
		}
		for id := range found {
			existing[id] = true
		}
	}

	var orphans []string
	for _, f := range candidates {
		if f.ImageID == "" || !existing[f.ImageID] {
			orphans = append(orphans, f.Path)
		}
	}
	if len(orphans) == 0 {
		logger.Info("No orphaned files", "scanned", len(files))
		return 0, nil
	}

	if err := jr.media.Remove(orphans...); err != nil {
		return 0, fmt.Errorf("remove orphaned files: %w", err)
	}
	logger.Info("Purged orphaned files", "scanned", len(files), "removed", len(orphans))
	return len(orphans), nil
}
