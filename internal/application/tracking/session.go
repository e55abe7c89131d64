// internal/application/tracking/session.go
package tracking

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"nursery/internal/domain/geo"
	"nursery/internal/domain/order"
)

// Screen names pushed into the Navigator.
const (
	ScreenUserHome     = "UserHome"
	ScreenDeliveryHome = "DeliveryHome"
)

// Config wires one tracking session.
type Config struct {
	UserID  string
	OrderID string

	Store   OrderStore
	Watcher order.Watcher

	// Locator is required for delivery sessions only.
	Locator Locator

	Navigator Navigator
	Prompter  Prompter
	Alerter   Alerter

	// PublishInterval <= 0 falls back to DefaultPublishInterval.
	PublishInterval time.Duration

	// OnPosition is an optional redraw hook fired on every courier
	// position change, after the session recorded it.
	OnPosition func(geo.Coordinate)

	Now       func() time.Time
	NewTicker TickerFactory
}

// Session is the screen-scoped bundle of one live-tracking screen:
// the change subscription, the position publisher (delivery side),
// and the last-known coordinates. Close releases everything; it is
// safe to call more than once and runs fully on every teardown path.
type Session struct {
	userID  string
	orderID string

	store    OrderStore
	nav      Navigator
	prompt   Prompter
	alert    Alerter
	observer *Observer
	// publisher is nil on customer sessions.
	publisher *Publisher

	delivery bool

	closeOnce sync.Once

	mu          sync.Mutex
	destination geo.Coordinate
	courierPos  geo.Coordinate
	havePos     bool
}

// NewCustomerSession observes an order the customer just placed: it
// redraws on courier movement and, on the Delivered edge, surfaces a
// one-time completion notice and navigates home.
func NewCustomerSession(cfg Config) *Session {
	s := newSession(cfg, false)
	s.observer.OnDelivered = func() {
		s.alert.Alert("Order Delivered", "Your order has been delivered. Happy planting!")
		s.nav.Navigate(ScreenUserHome, map[string]string{"orderId": s.orderID})
	}
	return s
}

// NewDeliverySession observes the same record from the courier's side
// and additionally runs the position publisher. The Delivered edge
// (normally triggered by this very session's ConfirmDelivered, but
// possibly by another operator) stops the publisher and navigates
// back to the order list.
func NewDeliverySession(cfg Config) *Session {
	s := newSession(cfg, true)
	s.publisher = NewPublisher(cfg.Store, cfg.Locator, cfg.Alerter, cfg.UserID, cfg.OrderID, cfg.PublishInterval)
	if cfg.Now != nil {
		s.publisher.now = cfg.Now
	}
	if cfg.NewTicker != nil {
		s.publisher.newTicker = cfg.NewTicker
	}
	s.observer.OnDelivered = func() {
		// Second cancellation trigger for the timer: terminal state,
		// independent of screen teardown.
		s.publisher.Stop()
		s.nav.Navigate(ScreenDeliveryHome, nil)
	}
	return s
}

func newSession(cfg Config, delivery bool) *Session {
	s := &Session{
		userID:   cfg.UserID,
		orderID:  cfg.OrderID,
		store:    cfg.Store,
		nav:      cfg.Navigator,
		prompt:   cfg.Prompter,
		alert:    cfg.Alerter,
		observer: NewObserver(cfg.Watcher),
		delivery: delivery,
	}
	s.observer.OnPosition = func(c geo.Coordinate) {
		s.mu.Lock()
		s.courierPos = c
		s.havePos = true
		s.mu.Unlock()
		if cfg.OnPosition != nil {
			cfg.OnPosition(c)
		}
	}
	return s
}

// Start resolves the destination and begins observing (and, on the
// delivery side, publishing). A missing destination is fatal for the
// delivery screen; the order is expected to exist by the time a
// courier opens it.
func (s *Session) Start(ctx context.Context) error {
	dest, err := s.store.Destination(ctx, s.userID, s.orderID)
	if err != nil {
		return fmt.Errorf("tracking: resolve destination: %w", err)
	}
	s.mu.Lock()
	s.destination = dest
	s.mu.Unlock()

	if err := s.observer.Start(ctx, s.userID, s.orderID); err != nil {
		return fmt.Errorf("tracking: subscribe: %w", err)
	}
	if s.publisher != nil {
		s.publisher.Start(ctx)
	}
	log.Printf("[tracking] session started order=%s delivery=%v", s.orderID, s.delivery)
	return nil
}

// Destination returns the customer's drop-off coordinate.
func (s *Session) Destination() geo.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destination
}

// CourierPosition returns the last observed courier coordinate.
func (s *Session) CourierPosition() (geo.Coordinate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courierPos, s.havePos
}

// ConfirmDelivered runs the confirmation gate for the terminal
// transition: prompt the operator; on cancel, nothing changes; on
// confirm, stop the publisher FIRST (so no stale position write can
// land after the terminal write), then mark delivered and navigate
// back. A failed write is surfaced and leaves the order Pending;
// calling ConfirmDelivered again retries.
func (s *Session) ConfirmDelivered(ctx context.Context) error {
	ok, err := s.prompt.Confirm(ctx, "Mark as Delivered", "Confirm this order was handed to the customer?")
	if err != nil {
		return fmt.Errorf("tracking: confirm prompt: %w", err)
	}
	if !ok {
		return nil
	}

	if s.publisher != nil {
		s.publisher.Stop()
	}

	if err := s.store.MarkDelivered(ctx, s.userID, s.orderID); err != nil {
		s.alert.Alert("Error", "Could not update delivery status. Please try again.")
		return fmt.Errorf("tracking: mark delivered: %w", err)
	}

	s.nav.GoBack()
	return nil
}

// Close is the unmount path: release the subscription and the timer.
// Idempotent, and honored no matter how the screen goes away.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.publisher != nil {
			s.publisher.Stop()
		}
		s.observer.Stop()
		log.Printf("[tracking] session closed order=%s", s.orderID)
	})
}
