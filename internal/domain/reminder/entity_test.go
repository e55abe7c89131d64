package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReminder(t *testing.T, days []time.Weekday, hour, minute int) Reminder {
	t.Helper()
	r, err := New("rem-1", "user-1", "Water the ferns", days, hour, minute, time.Now())
	require.NoError(t, err)
	return r
}

func TestNewNormalizesDays(t *testing.T) {
	r := mustReminder(t, []time.Weekday{time.Friday, time.Monday, time.Monday, time.Weekday(9)}, 7, 30)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, r.Days)
}

func TestNewValidation(t *testing.T) {
	now := time.Now()

	_, err := New("rem-1", "user-1", "  ", []time.Weekday{time.Monday}, 7, 0, now)
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = New("rem-1", "user-1", "Water", nil, 7, 0, now)
	assert.ErrorIs(t, err, ErrInvalidDays)

	_, err = New("rem-1", "user-1", "Water", []time.Weekday{time.Monday}, 24, 0, now)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = New("rem-1", "user-1", "Water", []time.Weekday{time.Monday}, 7, 60, now)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestDueAt(t *testing.T) {
	// 2026-03-09 is a Monday.
	monday730 := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	r := mustReminder(t, []time.Weekday{time.Monday}, 7, 30)

	assert.True(t, r.DueAt(monday730))
	assert.True(t, r.DueAt(monday730.Add(20*time.Second)), "any second within the minute matches")
	assert.False(t, r.DueAt(monday730.Add(time.Minute)))
	assert.False(t, r.DueAt(monday730.Add(24*time.Hour)), "tuesday is not selected")
}

func TestDueAtDedupesWithinMinute(t *testing.T) {
	monday730 := time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC)

	r := mustReminder(t, []time.Weekday{time.Monday}, 7, 30)
	r.LastFiredAt = monday730.Add(5 * time.Second)

	// Already fired this minute; the checker must stay quiet.
	assert.False(t, r.DueAt(monday730.Add(40*time.Second)))

	// Next week's matching minute fires again.
	assert.True(t, r.DueAt(monday730.Add(7*24*time.Hour)))
}
