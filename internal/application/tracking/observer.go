// internal/application/tracking/observer.go
package tracking

import (
	"context"
	"sync"

	"nursery/internal/domain/geo"
	"nursery/internal/domain/order"
)

// Observer subscribes to one order document and reacts to two
// independent fields:
//
//   - deliveryLocation changed -> OnPosition (redraw the marker)
//   - deliveryStatus became Delivered -> OnDelivered, exactly once
//     (edge-triggered; later snapshots of an already-Delivered order
//     fire nothing), then the subscription is released.
//
// A snapshot of a missing document is ignored; order creation and
// subscription start race, and "not there yet" is not an error.
//
// Several observers may watch the same record concurrently (customer
// screen and delivery screen); each owns only its own subscription.
type Observer struct {
	watcher order.Watcher

	// OnPosition and OnDelivered are invoked from the watcher's
	// delivery goroutine. Set them before Start.
	OnPosition  func(geo.Coordinate)
	OnDelivered func()

	mu            sync.Mutex
	closed        bool
	stopWatch     func()
	havePos       bool
	lastPos       geo.Coordinate
	deliveredSeen bool
}

func NewObserver(watcher order.Watcher) *Observer {
	return &Observer{watcher: watcher}
}

// Start begins observing. The returned error is a subscription setup
// failure only; notification-time errors never reach the caller.
func (o *Observer) Start(ctx context.Context, userID, orderID string) error {
	stop, err := o.watcher.Watch(ctx, userID, orderID, o.handle)
	if err != nil {
		return err
	}

	o.mu.Lock()
	if o.closed {
		// Stopped while the subscription was being set up.
		o.mu.Unlock()
		stop()
		return nil
	}
	o.stopWatch = stop
	o.mu.Unlock()
	return nil
}

// Stop releases the subscription. No callback starts after Stop
// returns; one already in flight on the watcher goroutine may still
// complete. Idempotent.
func (o *Observer) Stop() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	stop := o.stopWatch
	o.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (o *Observer) handle(s order.Snapshot) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if !s.Exists {
		// Record not created yet (or deleted out from under us):
		// treat as "no update".
		o.mu.Unlock()
		return
	}

	var (
		firePos       bool
		pos           geo.Coordinate
		fireDelivered bool
		stop          func()
	)

	if !o.havePos || s.Order.DeliveryLocation != o.lastPos {
		o.havePos = true
		o.lastPos = s.Order.DeliveryLocation
		firePos = true
		pos = s.Order.DeliveryLocation
	}

	if s.Order.Delivered() && !o.deliveredSeen {
		o.deliveredSeen = true
		fireDelivered = true
		// Terminal: tear down so nothing fires into a dead screen.
		o.closed = true
		stop = o.stopWatch
	}
	o.mu.Unlock()

	if firePos && o.OnPosition != nil {
		o.OnPosition(pos)
	}
	if fireDelivered {
		if stop != nil {
			stop()
		}
		if o.OnDelivered != nil {
			o.OnDelivered()
		}
	}
}
