package jobs

import (
	"context"
	"fmt"
	"time"

	"proofflow-backend/internal/config"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
	"proofflow-backend/internal/storage"
)

// JobRunner coordinates all scheduled maintenance jobs
type JobRunner struct {
	shares repository.ShareRepository
	images repository.ImageRepository
	media  storage.MediaStore
	config config.SchedulerConfig
	now    func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(shares repository.ShareRepository, images repository.ImageRepository, media storage.MediaStore, cfg config.SchedulerConfig) *JobRunner {
	return &JobRunner{
		shares: shares,
		images: images,
		media:  media,
		config: cfg,
		now:    time.Now,
	}
}

// Config returns the schedule the runner was built with
func (jr *JobRunner) Config() config.SchedulerConfig {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery. It reports
// whether the job finished without error.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			ok = false
		}
	}()

	logger.Info("Starting job", "job", jobName)
	start := jr.now()
	if err := jobFunc(context.Background()); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return false
	}
	logger.Info("Job completed", "job", jobName, "duration", jr.now().Sub(start))
	return true
}

// RunAll runs every maintenance job once (for manual execution)
func (jr *JobRunner) RunAll() bool {
	sweptOK := jr.SweepExpiredShares()
	purgedOK := jr.PurgeOrphanedFiles()
	return sweptOK && purgedOK
}

// Run runs the named job once. Unknown names are an error.
func (jr *JobRunner) Run(name string) (bool, error) {
	switch name {
	case JobSweepExpiredShares:
		return jr.SweepExpiredShares(), nil
	case JobPurgeOrphanedFiles:
		return jr.PurgeOrphanedFiles(), nil
	case JobAll:
		return jr.RunAll(), nil
	default:
		return false, fmt.Errorf("unknown job %q", name)
	}
}

const (
	JobSweepExpiredShares = "sweep-expired-shares"
	JobPurgeOrphanedFiles = "purge-orphaned-files"
	JobAll                = "all"
)

// JobNames lists the names accepted by Run
var JobNames = []string{JobSweepExpiredShares, JobPurgeOrphanedFiles, JobAll}
