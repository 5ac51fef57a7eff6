package jobs

import (
	"context"
	"time"

	"community-lunch-backend/internal/logger"
)

// ExpirePackages stamps EXPIRED on VALID packages whose expiration date has
// passed. Validity is a stored flag written at mutation time, so packages
// that go stale without being touched are swept here once a day.
func (jr *JobRunner) ExpirePackages() {
	jr.runWithRecovery("ExpirePackages", func() {
		ctx := context.Background()

		count, err := jr.store.Packages().MarkExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to expire packages", "error", err)
			return
		}

		logger.Info("Marked packages as expired", "count", count)
	})
}
