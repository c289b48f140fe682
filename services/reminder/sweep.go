package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"memoria/models"
	"memoria/utils"

	"go.uber.org/zap"
)

// Sweeper periodically scans for reminders whose schedule has just come due
// and hands them to the dispatcher. A reminder is dispatched at most once
// per scheduled occurrence: a successful dispatch stamps lastNotifiedAt, and
// the dispatch predicate rejects already-stamped occurrences on later
// sweeps.
type Sweeper struct {
	service  *DefaultReminderService
	interval time.Duration
	window   time.Duration

	// nowFn is replaced in tests to drive the clock.
	nowFn func() time.Time

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewSweeper creates a sweeper over the given service. Interval and window
// fall back to the 30s/60s defaults when non-positive.
func NewSweeper(service *DefaultReminderService, interval, window time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if window <= 0 {
		window = DueWindow
	}
	return &Sweeper{
		service:  service,
		interval: interval,
		window:   window,
		nowFn:    time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("sweeper already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	utils.GetLogger().Info("Starting reminder sweeper",
		zap.Duration("interval", s.interval), zap.Duration("window", s.window))

	s.wg.Add(1)
	go s.run(ctx)

	return nil
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	utils.GetLogger().Info("Reminder sweeper stopped")
}

// IsRunning reports whether the loop is active.
func (s *Sweeper) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.SweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			utils.GetLogger().Info("Reminder sweeper context cancelled")
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single pass: fetch candidates inside the trailing due
// window, filter with the dispatch predicate, dispatch, and stamp
// lastNotifiedAt only on success. Failures are logged and retried on the
// next sweep while the occurrence remains in the window.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("Panic in reminder sweep", zap.Any("recover", r))
		}
	}()

	now := s.nowFn()
	candidates, err := s.service.Repo.ListDueCandidates(now, s.window)
	if err != nil {
		utils.GetLogger().Error("Sweep: failed to list due reminders", zap.Error(err))
		return
	}

	for i := range candidates {
		rem := &candidates[i]
		if !DueForNotification(rem, now, s.window) {
			continue
		}
		s.dispatch(ctx, rem, now)
	}
}

func (s *Sweeper) dispatch(ctx context.Context, rem *models.Reminder, now time.Time) {
	log := utils.GetLogger().With(
		zap.String("id", rem.ID), zap.String("userId", rem.UserID))

	if s.service.Dispatcher == nil || !s.service.Dispatcher.Ready(rem.UserID) {
		log.Debug("Sweep: dispatch capability unavailable, skipping")
		return
	}

	if err := s.service.Dispatcher.Dispatch(ctx, rem); err != nil {
		log.Error("Sweep: dispatch failed", zap.Error(err))
		return
	}

	rem.LastNotifiedAt = &now
	if err := s.service.Repo.Update(rem); err != nil {
		log.Error("Sweep: failed to record dispatch", zap.Error(err))
		return
	}
	log.Info("Dispatched reminder notification", zap.Time("scheduledFor", rem.ScheduledFor))
}
