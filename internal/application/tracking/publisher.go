// internal/application/tracking/publisher.go
package tracking

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"nursery/internal/domain/geo"
)

// DefaultPublishInterval is how often the courier position is pushed
// into the order document when no interval is configured.
const DefaultPublishInterval = 90 * time.Second

// Publisher periodically reads the courier position and overwrites the
// order's deliveryLocation field.
//
// Failure policy (per tick): a failed read or write is logged and the
// tick skipped; the loop stays alive. A denied location permission
// alerts the operator once and stops the publisher for good.
//
// Stop is idempotent and synchronous: once Stop returns, no further
// store write happens. The session calls it both on teardown and
// right before the Delivered confirmation write, so a stale position
// can never land after the terminal transition.
type Publisher struct {
	store    OrderStore
	locator  Locator
	alert    Alerter
	interval time.Duration

	userID  string
	orderID string

	now       func() time.Time
	newTicker TickerFactory

	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	done      chan struct{}
}

func NewPublisher(store OrderStore, locator Locator, alert Alerter, userID, orderID string, interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = DefaultPublishInterval
	}
	return &Publisher{
		store:     store,
		locator:   locator,
		alert:     alert,
		interval:  interval,
		userID:    userID,
		orderID:   orderID,
		now:       time.Now,
		newTicker: RealTicker,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the publish loop. Subsequent calls are no-ops.
func (p *Publisher) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.started.Store(true)
		go p.run(ctx)
	})
}

// Stop halts the loop and waits for it to exit. Safe to call any
// number of times, from any goroutine.
func (p *Publisher) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	if p.started.Load() {
		<-p.done
	}
}

func (p *Publisher) run(ctx context.Context) {
	defer close(p.done)

	tick, stopTick := p.newTicker(p.interval)
	defer stopTick()

	permissionOK := false
	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-tick:
		}

		if !permissionOK {
			if err := p.locator.RequestPermission(ctx); err != nil {
				if errors.Is(err, geo.ErrPermissionDenied) {
					// Alert once, then stop silently. Retrying every
					// tick would nag the operator forever.
					p.alert.Alert("Permission Denied", "We need location permission to track your position.")
					log.Printf("[publisher] order=%s: location permission denied, stopping", p.orderID)
					return
				}
				log.Printf("[publisher] order=%s: permission check failed, skipping tick: %v", p.orderID, err)
				continue
			}
			permissionOK = true
		}

		pos, err := p.locator.Current(ctx)
		if err != nil {
			log.Printf("[publisher] order=%s: position read failed, skipping tick: %v", p.orderID, err)
			continue
		}

		if err := p.store.SetDeliveryPosition(ctx, p.userID, p.orderID, pos, p.now()); err != nil {
			log.Printf("[publisher] order=%s: position write failed, skipping tick: %v", p.orderID, err)
			continue
		}
	}
}
