// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "nursery/internal/domain/user"
)

// Firestore implementation of userdom.Repository (profile docs at
// users/{uid}).
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) GetByUID(ctx context.Context, uid string) (userdom.User, error) {
	if r.Client == nil {
		return userdom.User{}, errors.New("firestore client is nil")
	}

	uid = strings.TrimSpace(uid)
	if uid == "" {
		return userdom.User{}, userdom.ErrInvalidUID
	}

	snap, err := r.Client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}

	data := snap.Data()
	return userdom.User{
		UID:   uid,
		Name:  mapGetStr(data, "name"),
		Email: mapGetStr(data, "email"),
		Role:  userdom.ParseRole(mapGetStr(data, "role")),
	}, nil
}

func (r *UserRepositoryFS) Save(ctx context.Context, u userdom.User) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	if strings.TrimSpace(u.UID) == "" {
		return userdom.ErrInvalidUID
	}

	// Merge: the profile doc also carries fields this backend does
	// not own (FCM tokens etc. written by the app).
	_, err := r.Client.Collection(usersCollection).Doc(u.UID).Set(ctx, map[string]any{
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("save user %s: %w", u.UID, err)
	}
	return nil
}
