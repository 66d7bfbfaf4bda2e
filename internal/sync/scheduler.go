package sync

import (
	"log/slog"
	stdsync "sync"
	"time"
)

// scheduler re-triggers a sync pass on a fixed cadence. A failing pass
// does not stop the ticker; only stop does.
type scheduler struct {
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	stopOnce stdsync.Once
	wg       stdsync.WaitGroup
}

func newScheduler(interval time.Duration, logger *slog.Logger) *scheduler {
	return &scheduler{
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// start launches the ticker goroutine. pass runs on the scheduler
// goroutine; it is expected to handle its own errors.
func (s *scheduler) start(pass func()) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Debug("auto-sync scheduler started", "interval", s.interval)

		for {
			select {
			case <-s.stopCh:
				s.logger.Debug("auto-sync scheduler stopped")
				return
			case <-ticker.C:
				pass()
			}
		}
	}()
}

// stop terminates the ticker goroutine and waits for it to exit. Safe to
// call more than once.
func (s *scheduler) stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})

	s.wg.Wait()
}
