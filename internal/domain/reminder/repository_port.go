// internal/domain/reminder/repository_port.go
package reminder

import (
	"context"
	"time"
)

// Repository persists reminders under users/{userId}/reminders.
type Repository interface {
	GetByID(ctx context.Context, userID, id string) (Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]Reminder, error)
	ListAll(ctx context.Context) ([]Reminder, error)

	Create(ctx context.Context, r Reminder) (Reminder, error)
	Delete(ctx context.Context, userID, id string) error

	// SetLastFired records the dedupe timestamp after a notification.
	SetLastFired(ctx context.Context, userID, id string, at time.Time) error
}
