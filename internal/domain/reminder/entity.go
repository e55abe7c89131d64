// internal/domain/reminder/entity.go
package reminder

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Reminder is a weekly watering reminder: fire at Hour:Minute on each
// weekday in Days.
type Reminder struct {
	ID     string
	UserID string
	Title  string

	Days   []time.Weekday
	Hour   int
	Minute int

	// LastFiredAt dedupes within a minute: the checker runs more often
	// than once a minute and must notify once per matching minute.
	LastFiredAt time.Time

	CreatedAt time.Time
}

var (
	ErrNotFound = errors.New("reminder: not found")

	ErrInvalidID     = errors.New("reminder: invalid id")
	ErrInvalidUserID = errors.New("reminder: invalid userId")
	ErrInvalidTitle  = errors.New("reminder: invalid title")
	ErrInvalidDays   = errors.New("reminder: select at least one day")
	ErrInvalidTime   = errors.New("reminder: invalid time of day")
)

func New(id, userID, title string, days []time.Weekday, hour, minute int, createdAt time.Time) (Reminder, error) {
	r := Reminder{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Title:     strings.TrimSpace(title),
		Days:      normalizeDays(days),
		Hour:      hour,
		Minute:    minute,
		CreatedAt: createdAt.UTC(),
	}
	if err := r.validate(); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (r *Reminder) validate() error {
	if r.ID == "" {
		return ErrInvalidID
	}
	if r.UserID == "" {
		return ErrInvalidUserID
	}
	if r.Title == "" {
		return ErrInvalidTitle
	}
	if len(r.Days) == 0 {
		return ErrInvalidDays
	}
	if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
		return ErrInvalidTime
	}
	return nil
}

// DueAt reports whether the reminder should fire at t, i.e. t is on a
// selected weekday, matches Hour:Minute, and the reminder has not
// already fired within that same minute.
func (r *Reminder) DueAt(t time.Time) bool {
	matched := false
	for _, d := range r.Days {
		if t.Weekday() == d {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	if t.Hour() != r.Hour || t.Minute() != r.Minute {
		return false
	}
	return r.LastFiredAt.IsZero() || !r.LastFiredAt.Truncate(time.Minute).Equal(t.Truncate(time.Minute))
}

func normalizeDays(days []time.Weekday) []time.Weekday {
	seen := map[time.Weekday]bool{}
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
