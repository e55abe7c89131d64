// internal/adapters/out/device/fix_store.go
package device

import (
	"context"
	"sync"
	"time"

	"nursery/internal/domain/geo"
)

// MaxFixAge; older fixes count as "no fix": a courier whose app went
// quiet should not keep publishing a frozen position.
const MaxFixAge = 10 * time.Minute

type fix struct {
	coord geo.Coordinate
	at    time.Time
}

// FixStore holds the most recent GPS fix per courier, reported over
// HTTP by the courier app. It is the backend stand-in for the device
// geolocation service: the tracking publisher samples it through a
// per-courier tracking.Locator view.
type FixStore struct {
	mu         sync.RWMutex
	fixes      map[string]fix
	permDenied map[string]bool

	now func() time.Time
}

func NewFixStore() *FixStore {
	return &FixStore{
		fixes:      make(map[string]fix),
		permDenied: make(map[string]bool),
		now:        time.Now,
	}
}

// Report records a fix. It also clears a previous permission-denied
// flag; a fix can only come from a device that has permission again.
func (s *FixStore) Report(courierID string, c geo.Coordinate, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixes[courierID] = fix{coord: c, at: at}
	delete(s.permDenied, courierID)
}

// ReportPermissionDenied marks the courier's device as having refused
// location access.
func (s *FixStore) ReportPermissionDenied(courierID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permDenied[courierID] = true
}

// ForCourier returns the tracking.Locator view for one courier.
func (s *FixStore) ForCourier(courierID string) *CourierLocator {
	return &CourierLocator{store: s, courierID: courierID}
}

// CourierLocator implements tracking.Locator for a single courier.
type CourierLocator struct {
	store     *FixStore
	courierID string
}

func (l *CourierLocator) RequestPermission(_ context.Context) error {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	if l.store.permDenied[l.courierID] {
		return geo.ErrPermissionDenied
	}
	return nil
}

func (l *CourierLocator) Current(_ context.Context) (geo.Coordinate, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	f, ok := l.store.fixes[l.courierID]
	if !ok {
		return geo.Coordinate{}, geo.ErrNoFix
	}
	if l.store.now().Sub(f.at) > MaxFixAge {
		return geo.Coordinate{}, geo.ErrNoFix
	}
	return f.coord, nil
}
