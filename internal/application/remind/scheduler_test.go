package remind

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	remdom "nursery/internal/domain/reminder"
)

type memReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]remdom.Reminder
	listErr   error
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{reminders: map[string]remdom.Reminder{}}
}

func (m *memReminderRepo) GetByID(_ context.Context, _, id string) (remdom.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return remdom.Reminder{}, remdom.ErrNotFound
	}
	return r, nil
}

func (m *memReminderRepo) ListByUser(_ context.Context, userID string) ([]remdom.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []remdom.Reminder
	for _, r := range m.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReminderRepo) ListAll(context.Context) ([]remdom.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]remdom.Reminder, 0, len(m.reminders))
	for _, r := range m.reminders {
		out = append(out, r)
	}
	return out, nil
}

func (m *memReminderRepo) Create(_ context.Context, r remdom.Reminder) (remdom.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[r.ID] = r
	return r, nil
}

func (m *memReminderRepo) Delete(_ context.Context, _, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reminders, id)
	return nil
}

func (m *memReminderRepo) SetLastFired(_ context.Context, _, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return remdom.ErrNotFound
	}
	r.LastFiredAt = at
	m.reminders[id] = r
	return nil
}

type memNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (n *memNotifier) Notify(_ context.Context, userID, title string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("mail down")
	}
	n.sent = append(n.sent, userID+":"+title)
	return nil
}

func (n *memNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// monday730 is a Monday.
var monday730 = time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

func seedReminder(t *testing.T, repo *memReminderRepo) {
	t.Helper()
	r, err := remdom.New("rem-1", "user-1", "Water the ferns", []time.Weekday{time.Monday}, 7, 30, monday730.Add(-time.Hour))
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), r)
	require.NoError(t, err)
}

func TestCheckOnceNotifiesDueReminder(t *testing.T) {
	repo := newMemReminderRepo()
	seedReminder(t, repo)
	notifier := &memNotifier{}

	s := NewScheduler(repo, notifier)
	s.now = func() time.Time { return monday730 }

	s.checkOnce(context.Background())
	assert.Equal(t, 1, notifier.count())

	// Same minute again: deduped via LastFiredAt.
	s.now = func() time.Time { return monday730.Add(30 * time.Second) }
	s.checkOnce(context.Background())
	assert.Equal(t, 1, notifier.count())

	// Next week fires again.
	s.now = func() time.Time { return monday730.Add(7 * 24 * time.Hour) }
	s.checkOnce(context.Background())
	assert.Equal(t, 2, notifier.count())
}

func TestCheckOnceSkipsOffSchedule(t *testing.T) {
	repo := newMemReminderRepo()
	seedReminder(t, repo)
	notifier := &memNotifier{}

	s := NewScheduler(repo, notifier)
	s.now = func() time.Time { return monday730.Add(time.Minute) }

	s.checkOnce(context.Background())
	assert.Zero(t, notifier.count())
}

func TestCheckOnceNotifyFailureRetriesSameMinute(t *testing.T) {
	repo := newMemReminderRepo()
	seedReminder(t, repo)
	notifier := &memNotifier{fail: true}

	s := NewScheduler(repo, notifier)
	s.now = func() time.Time { return monday730 }
	s.checkOnce(context.Background())
	assert.Zero(t, notifier.count())

	// Failure did not consume the minute; the next pass succeeds.
	notifier.mu.Lock()
	notifier.fail = false
	notifier.mu.Unlock()
	s.now = func() time.Time { return monday730.Add(20 * time.Second) }
	s.checkOnce(context.Background())
	assert.Equal(t, 1, notifier.count())
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler(newMemReminderRepo(), &memNotifier{})
	// Must not block waiting on a loop that never ran.
	s.Stop()
}

func TestSchedulerTickDrivesCheck(t *testing.T) {
	repo := newMemReminderRepo()
	seedReminder(t, repo)
	notifier := &memNotifier{}

	tick := make(chan time.Time)
	s := NewScheduler(repo, notifier)
	s.now = func() time.Time { return monday730 }
	s.newTicker = func(time.Duration) (<-chan time.Time, func()) { return tick, func() {} }

	s.Start(context.Background())
	tick <- time.Now()
	s.Stop()

	assert.Equal(t, 1, notifier.count())
}
