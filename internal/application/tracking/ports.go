// internal/application/tracking/ports.go
package tracking

import (
	"context"
	"time"

	"nursery/internal/domain/geo"
)

// OrderStore is the slice of order persistence the tracking core
// needs. *usecase.OrderUsecase satisfies it.
type OrderStore interface {
	Destination(ctx context.Context, userID, orderID string) (geo.Coordinate, error)
	SetDeliveryPosition(ctx context.Context, userID, orderID string, c geo.Coordinate, at time.Time) error
	MarkDelivered(ctx context.Context, userID, orderID string) error
}

// Locator reads the courier device's position.
//
// RequestPermission returns geo.ErrPermissionDenied when the device
// refused location access; that is terminal for the caller, not a
// retry case. Current may fail transiently (no fix, hardware).
type Locator interface {
	RequestPermission(ctx context.Context) error
	Current(ctx context.Context) (geo.Coordinate, error)
}

// Navigator receives screen-transition commands. It is the thin
// write-side into the presentation layer, nothing more.
type Navigator interface {
	Navigate(screen string, params map[string]string)
	GoBack()
}

// Prompter is a blocking yes/no confirmation. false with nil error
// means the operator cancelled.
type Prompter interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// Alerter surfaces a non-blocking notice to the operator.
type Alerter interface {
	Alert(title, message string)
}

// TickerFactory abstracts time.NewTicker so tests can drive ticks by
// hand. The returned stop func releases the ticker.
type TickerFactory func(d time.Duration) (<-chan time.Time, func())

// RealTicker is the production TickerFactory.
func RealTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
