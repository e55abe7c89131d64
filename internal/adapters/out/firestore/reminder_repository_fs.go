// internal/adapters/out/firestore/reminder_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	remdom "nursery/internal/domain/reminder"
)

const remindersCollection = "reminders"

// Firestore implementation of remdom.Repository.
// Docs at users/{uid}/reminders/{id}; ListAll (for the scheduler)
// uses a collection-group query across all users.
type ReminderRepositoryFS struct {
	Client *firestore.Client
}

func NewReminderRepositoryFS(client *firestore.Client) *ReminderRepositoryFS {
	return &ReminderRepositoryFS{Client: client}
}

func (r *ReminderRepositoryFS) doc(userID, id string) *firestore.DocumentRef {
	return r.Client.Collection(usersCollection).Doc(userID).Collection(remindersCollection).Doc(id)
}

func (r *ReminderRepositoryFS) GetByID(ctx context.Context, userID, id string) (remdom.Reminder, error) {
	if r.Client == nil {
		return remdom.Reminder{}, errors.New("firestore client is nil")
	}

	snap, err := r.doc(userID, id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return remdom.Reminder{}, remdom.ErrNotFound
		}
		return remdom.Reminder{}, err
	}
	return dataToReminder(snap.Ref.ID, userID, snap.Data())
}

func (r *ReminderRepositoryFS) ListByUser(ctx context.Context, userID string) ([]remdom.Reminder, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.Client.Collection(usersCollection).Doc(userID).Collection(remindersCollection).Documents(ctx)
	defer it.Stop()
	return collectReminders(it, userID)
}

func (r *ReminderRepositoryFS) ListAll(ctx context.Context) ([]remdom.Reminder, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.Client.CollectionGroup(remindersCollection).Documents(ctx)
	defer it.Stop()
	return collectReminders(it, "")
}

func (r *ReminderRepositoryFS) Create(ctx context.Context, rem remdom.Reminder) (remdom.Reminder, error) {
	if r.Client == nil {
		return remdom.Reminder{}, errors.New("firestore client is nil")
	}

	days := make([]int, 0, len(rem.Days))
	for _, d := range rem.Days {
		days = append(days, int(d))
	}

	_, err := r.doc(rem.UserID, rem.ID).Create(ctx, map[string]any{
		"userId":    rem.UserID,
		"title":     rem.Title,
		"days":      days,
		"hour":      rem.Hour,
		"minute":    rem.Minute,
		"createdAt": rem.CreatedAt,
	})
	if err != nil {
		return remdom.Reminder{}, fmt.Errorf("create reminder %s: %w", rem.ID, err)
	}
	return rem, nil
}

func (r *ReminderRepositoryFS) Delete(ctx context.Context, userID, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	_, err := r.doc(userID, id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("delete reminder %s: %w", id, err)
	}
	return nil
}

func (r *ReminderRepositoryFS) SetLastFired(ctx context.Context, userID, id string, at time.Time) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	_, err := r.doc(userID, id).Update(ctx, []firestore.Update{
		{Path: "lastFiredAt", Value: at.UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return remdom.ErrNotFound
		}
		return fmt.Errorf("set lastFiredAt %s: %w", id, err)
	}
	return nil
}

// ========================
// Decoding
// ========================

func collectReminders(it *firestore.DocumentIterator, userID string) ([]remdom.Reminder, error) {
	var out []remdom.Reminder
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		uid := userID
		if uid == "" {
			uid = mapGetStr(doc.Data(), "userId")
		}
		rem, err := dataToReminder(doc.Ref.ID, uid, doc.Data())
		if err != nil {
			log.Printf("[reminder-fs] skipping malformed reminder %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, rem)
	}
	return out, nil
}

func dataToReminder(docID, userID string, data map[string]any) (remdom.Reminder, error) {
	if len(data) == 0 {
		return remdom.Reminder{}, fmt.Errorf("empty reminder document: %s", docID)
	}

	var days []time.Weekday
	if arr, ok := data["days"].([]any); ok {
		for _, v := range arr {
			switch t := v.(type) {
			case int64:
				days = append(days, time.Weekday(t))
			case float64:
				days = append(days, time.Weekday(int(t)))
			}
		}
	}

	rem := remdom.Reminder{
		ID:          docID,
		UserID:      userID,
		Title:       mapGetStr(data, "title"),
		Days:        days,
		Hour:        mapGetInt(data, "hour"),
		Minute:      mapGetInt(data, "minute"),
		LastFiredAt: mapGetTime(data, "lastFiredAt"),
		CreatedAt:   mapGetTime(data, "createdAt"),
	}
	if rem.Title == "" || len(rem.Days) == 0 {
		return remdom.Reminder{}, fmt.Errorf("reminder %s: missing title or days", docID)
	}
	return rem, nil
}
