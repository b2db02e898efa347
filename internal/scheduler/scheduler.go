package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"vessel-alert-service/internal/alert"
)

// Scheduler triggers recurring alert runs at a fixed interval.
type Scheduler struct {
	runner   *alert.Runner
	interval time.Duration
	logger   *logrus.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(runner *alert.Runner, interval time.Duration, logger *logrus.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the run loop: one run immediately, then one per interval.
// A zero interval disables recurring runs (the HTTP trigger still works).
func (s *Scheduler) Start(wg *sync.WaitGroup) {
	if s.interval <= 0 {
		s.logger.Infof("Recurring alert runs disabled")
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.logger.Infof("Scheduler started, running every %v", s.interval)
		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				s.logger.Infof("Scheduler stopped")
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

func (s *Scheduler) runOnce() {
	report, err := s.runner.Run(s.ctx)
	if err != nil {
		s.logger.Errorf("Scheduled alert run failed: %v", err)
		return
	}
	s.logger.Infof("Scheduled alert run: scanned=%d triggered=%d dispatched=%d",
		report.Scanned, report.Triggered, report.Dispatched)
}

func (s *Scheduler) Stop() {
	s.cancel()
}
