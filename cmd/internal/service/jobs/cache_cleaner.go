package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
	"rentalcontracts/cmd/internal/utils"
)

const CleanInterval = 1 * time.Hour

type ExpiringRepository interface {
	DeleteExpired(before int64) error
}

// CacheCleaner drops cache rows older than ttl.
type CacheCleaner struct {
	name     string
	repo     ExpiringRepository
	ttl      time.Duration
	interval time.Duration
}

func NewCacheCleaner(name string, repo ExpiringRepository, ttl time.Duration) *CacheCleaner {
	return &CacheCleaner{
		name:     name,
		repo:     repo,
		ttl:      ttl,
		interval: CleanInterval,
	}
}

func (c *CacheCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Infof("%s cache cleaner cron started", c.name)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Stopping %s cache cleaner...", c.name)
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *CacheCleaner) cleanup() {
	cutoff := utils.NowUTC() - c.ttl.Milliseconds()

	err := c.repo.DeleteExpired(cutoff)
	if err != nil {
		log.Errorf("Cleaner: failed to delete expired %s cache: %v", c.name, err)
		return
	}

	log.Debugf("Cleaner: successfully swept %s caches older than %d", c.name, cutoff)
}
