// internal/domain/user/repository_port.go
package user

import "context"

// Repository reads/writes profile documents at users/{uid}.
type Repository interface {
	GetByUID(ctx context.Context, uid string) (User, error)
	Save(ctx context.Context, u User) error
}
