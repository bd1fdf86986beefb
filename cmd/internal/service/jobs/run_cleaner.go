package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
	"rentalcontracts/cmd/internal/utils"
)

type RunSweeper interface {
	DeleteSucceededBefore(before int64) (int64, error)
}

// RunCleaner removes the journal of successful runs after retention. Failed
// runs are never swept: they are the only record of orphaned store entries.
type RunCleaner struct {
	repo      RunSweeper
	retention time.Duration
	interval  time.Duration
}

func NewRunCleaner(repo RunSweeper, retention time.Duration) *RunCleaner {
	return &RunCleaner{
		repo:      repo,
		retention: retention,
		interval:  CleanInterval,
	}
}

func (c *RunCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info("Registration run cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping registration run cleaner...")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *RunCleaner) cleanup() {
	cutoff := utils.NowUTC() - c.retention.Milliseconds()

	n, err := c.repo.DeleteSucceededBefore(cutoff)
	if err != nil {
		log.Errorf("Cleaner: failed to sweep registration runs: %v", err)
		return
	}

	if n > 0 {
		log.Infof("Cleaner: removed %d succeeded runs older than %d", n, cutoff)
	}
}
