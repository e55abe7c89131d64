// internal/application/remind/scheduler.go
package remind

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	remdom "nursery/internal/domain/reminder"
)

// CheckInterval is how often due reminders are evaluated. Reminders
// match on the minute, so checking once a minute is enough.
const CheckInterval = 60 * time.Second

// Notifier delivers one reminder to its owner (email in this backend).
type Notifier interface {
	Notify(ctx context.Context, userID, title string) error
}

// Scheduler fires watering reminders: every CheckInterval it scans
// all reminders and notifies the due ones, at most once per matching
// minute (LastFiredAt dedupe). Notification failures are logged and
// retried on the next pass of the same minute, never fatal.
type Scheduler struct {
	repo     remdom.Repository
	notifier Notifier

	now       func() time.Time
	newTicker func(time.Duration) (<-chan time.Time, func())

	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	done      chan struct{}
}

func NewScheduler(repo remdom.Repository, notifier Notifier) *Scheduler {
	return &Scheduler{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.started.Store(true)
		go s.run(ctx)
	})
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	if s.started.Load() {
		<-s.done
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	tick, stopTick := s.newTicker(CheckInterval)
	defer stopTick()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-tick:
		}
		s.checkOnce(ctx)
	}
}

func (s *Scheduler) checkOnce(ctx context.Context) {
	now := s.now()

	reminders, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Printf("[remind] list failed, skipping pass: %v", err)
		return
	}

	for _, r := range reminders {
		if !r.DueAt(now) {
			continue
		}
		if err := s.notifier.Notify(ctx, r.UserID, r.Title); err != nil {
			log.Printf("[remind] reminder=%s: notify failed: %v", r.ID, err)
			continue
		}
		if err := s.repo.SetLastFired(ctx, r.UserID, r.ID, now); err != nil {
			log.Printf("[remind] reminder=%s: mark fired failed: %v", r.ID, err)
		}
	}
}
