// internal/application/usecase/reminder_usecase.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	remdom "nursery/internal/domain/reminder"
)

// ReminderUsecase manages watering reminders. The actual firing is
// the scheduler's job (application/remind).
type ReminderUsecase struct {
	repo  remdom.Repository
	now   func() time.Time
	newID func() string
}

func NewReminderUsecase(repo remdom.Repository) *ReminderUsecase {
	return &ReminderUsecase{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type CreateReminderInput struct {
	UserID string
	Title  string
	Days   []time.Weekday
	Hour   int
	Minute int
}

func (u *ReminderUsecase) Create(ctx context.Context, in CreateReminderInput) (remdom.Reminder, error) {
	r, err := remdom.New(u.newID(), in.UserID, in.Title, in.Days, in.Hour, in.Minute, u.now())
	if err != nil {
		return remdom.Reminder{}, err
	}
	return u.repo.Create(ctx, r)
}

func (u *ReminderUsecase) ListByUser(ctx context.Context, userID string) ([]remdom.Reminder, error) {
	return u.repo.ListByUser(ctx, strings.TrimSpace(userID))
}

func (u *ReminderUsecase) Delete(ctx context.Context, userID, id string) error {
	return u.repo.Delete(ctx, strings.TrimSpace(userID), strings.TrimSpace(id))
}
