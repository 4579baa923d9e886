package jobs

import (
	"context"
	"time"

	"proofflow-backend/internal/logger"
)

// SweepExpiredShares deletes share records that expired more than the
// configured retention ago. Expired shares already behave as missing, so
// removing them changes nothing a client can observe.
func (jr *JobRunner) SweepExpiredShares() bool {
	return jr.runWithRecovery("SweepExpiredShares", func(ctx context.Context) error {
		_, err := jr.sweepExpiredShares(ctx)
		return err
	})
}

func (jr *JobRunner) sweepExpiredShares(ctx context.Context) (int64, error) {
	retention := time.Duration(jr.config.ExpiredShareRetentionHours) * time.Hour
	cutoff := jr.now().UTC().Add(-retention)

	deleted, err := jr.shares.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	logger.Info("Swept expired shares", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}
