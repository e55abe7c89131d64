// internal/domain/wishlist/repository_port.go
package wishlist

import "context"

// Repository persists per-user favourites.
// Add is an upsert; Remove of an absent entry is a no-op.
type Repository interface {
	List(ctx context.Context, userID string) ([]Entry, error)
	Add(ctx context.Context, userID string, e Entry) error
	Remove(ctx context.Context, userID, productID string) error
}
