package jobs

import (
	"context"
	"errors"
	"rentalcontracts/cmd/internal/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeExpiring struct {
	cutoffs []int64
	err     error
}

func (f *fakeExpiring) DeleteExpired(before int64) error {
	f.cutoffs = append(f.cutoffs, before)
	return f.err
}

type fakeSweeper struct {
	cutoffs []int64
}

func (f *fakeSweeper) DeleteSucceededBefore(before int64) (int64, error) {
	f.cutoffs = append(f.cutoffs, before)
	return 3, nil
}

func TestCacheCleaner_Cleanup(t *testing.T) {
	repo := &fakeExpiring{}
	cleaner := NewCacheCleaner("lessor", repo, 10*time.Minute)

	before := utils.NowUTC()
	cleaner.cleanup()

	assert.Len(t, repo.cutoffs, 1)
	assert.InDelta(t, before-(10*time.Minute).Milliseconds(), repo.cutoffs[0], 1000)

	repo.err = errors.New("disk full")
	cleaner.cleanup()
	assert.Len(t, repo.cutoffs, 2)
}

func TestRunCleaner_Cleanup(t *testing.T) {
	repo := &fakeSweeper{}
	cleaner := NewRunCleaner(repo, 24*time.Hour)

	before := utils.NowUTC()
	cleaner.cleanup()

	assert.Len(t, repo.cutoffs, 1)
	assert.InDelta(t, before-(24*time.Hour).Milliseconds(), repo.cutoffs[0], 1000)
}

func TestCleaners_StopWithContext(t *testing.T) {
	repo := &fakeExpiring{}
	cleaner := NewCacheCleaner("registry", repo, time.Hour)
	cleaner.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cleaner.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleaner did not stop")
	}
}
