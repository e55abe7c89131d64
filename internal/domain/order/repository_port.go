// internal/domain/order/repository_port.go
package order

import (
	"context"
	"time"

	"nursery/internal/domain/geo"
)

// Repository is the persistence port for orders.
//
// Documents live at users/{userId}/orders/{orderId} with a mirror in
// adminOrders/{orderId} for cross-user dashboards. Field ownership is
// split on purpose: only the position publisher calls
// SetDeliveryPosition, only the delivery confirmation calls
// MarkDelivered. Both are unconditional field-scoped overwrites
// (last write wins, no version check).
type Repository interface {
	// Commands
	Create(ctx context.Context, o Order) (Order, error)
	SetDeliveryPosition(ctx context.Context, userID, orderID string, c geo.Coordinate, at time.Time) error
	MarkDelivered(ctx context.Context, userID, orderID string) error

	// Queries
	GetByID(ctx context.Context, userID, orderID string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListPending(ctx context.Context) ([]Order, error)
}

// Watcher subscribes to remote changes of one order document.
//
// The callback receives every remote mutation, including an initial
// snapshot. A missing document is delivered as Snapshot{Exists: false},
// never as an error (order creation and subscription start race).
// The returned stop func releases the subscription; it is safe to call
// more than once.
type Watcher interface {
	Watch(ctx context.Context, userID, orderID string, fn func(Snapshot)) (stop func(), err error)
}
