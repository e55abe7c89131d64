package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery/internal/domain/geo"
	"nursery/internal/domain/order"
)

// fakeWatcher hands the registered callback to the test so snapshots
// can be pushed by hand.
type fakeWatcher struct {
	mu       sync.Mutex
	fn       func(order.Snapshot)
	stops    int
	watchErr error
}

func (f *fakeWatcher) Watch(_ context.Context, _, _ string, fn func(order.Snapshot)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	f.fn = fn
	return func() {
		f.mu.Lock()
		f.stops++
		f.mu.Unlock()
	}, nil
}

func (f *fakeWatcher) push(s order.Snapshot) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	fn(s)
}

func (f *fakeWatcher) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func pendingSnapshot(pos geo.Coordinate) order.Snapshot {
	return order.Snapshot{
		Exists: true,
		Order: order.Order{
			OrderID:          "ORD-test00001",
			DeliveryStatus:   order.StatusPending,
			DeliveryLocation: pos,
		},
	}
}

func deliveredSnapshot(pos geo.Coordinate) order.Snapshot {
	s := pendingSnapshot(pos)
	s.Order.DeliveryStatus = order.StatusDelivered
	return s
}

func TestObserverFiresOnPositionChange(t *testing.T) {
	w := &fakeWatcher{}
	o := NewObserver(w)

	var got []geo.Coordinate
	o.OnPosition = func(c geo.Coordinate) { got = append(got, c) }

	require.NoError(t, o.Start(context.Background(), "user-1", "ORD-test00001"))

	a := geo.Coordinate{Latitude: 15.59, Longitude: 73.81}
	b := geo.Coordinate{Latitude: 15.60, Longitude: 73.81}

	w.push(pendingSnapshot(a))
	w.push(pendingSnapshot(a)) // unchanged, no callback
	w.push(pendingSnapshot(b))

	assert.Equal(t, []geo.Coordinate{a, b}, got)
	o.Stop()
}

func TestObserverIgnoresMissingDocument(t *testing.T) {
	w := &fakeWatcher{}
	o := NewObserver(w)

	fired := 0
	o.OnPosition = func(geo.Coordinate) { fired++ }
	o.OnDelivered = func() { t.Fatal("delivered fired for a missing doc") }

	require.NoError(t, o.Start(context.Background(), "user-1", "ORD-test00001"))

	w.push(order.Snapshot{Exists: false})
	assert.Zero(t, fired)

	// Creation catches up: first real snapshot fires normally.
	w.push(pendingSnapshot(geo.NurseryDepot))
	assert.Equal(t, 1, fired)
	o.Stop()
}

func TestObserverDeliveredFiresExactlyOnce(t *testing.T) {
	w := &fakeWatcher{}
	o := NewObserver(w)

	delivered := 0
	o.OnDelivered = func() { delivered++ }

	require.NoError(t, o.Start(context.Background(), "user-1", "ORD-test00001"))

	pos := geo.Coordinate{Latitude: 15.6, Longitude: 73.8}
	w.push(pendingSnapshot(pos))
	w.push(deliveredSnapshot(pos))

	assert.Equal(t, 1, delivered)
	// The terminal edge releases the subscription by itself.
	assert.Equal(t, 1, w.stopCount())
}

func TestObserverAlreadyDeliveredOnFirstSnapshot(t *testing.T) {
	// Screen opened on an order that was completed elsewhere: the
	// Delivered state is an edge from "never seen", so it still fires.
	w := &fakeWatcher{}
	o := NewObserver(w)

	delivered := 0
	o.OnDelivered = func() { delivered++ }

	require.NoError(t, o.Start(context.Background(), "user-1", "ORD-test00001"))
	w.push(deliveredSnapshot(geo.NurseryDepot))

	assert.Equal(t, 1, delivered)
}

func TestObserverNoCallbackAfterStop(t *testing.T) {
	w := &fakeWatcher{}
	o := NewObserver(w)

	o.OnPosition = func(geo.Coordinate) { t.Fatal("callback after Stop") }
	o.OnDelivered = func() { t.Fatal("callback after Stop") }

	require.NoError(t, o.Start(context.Background(), "user-1", "ORD-test00001"))
	o.Stop()
	assert.Equal(t, 1, w.stopCount())

	// The unsubscribe raced a snapshot already in flight; the closed
	// flag still suppresses it.
	w.push(deliveredSnapshot(geo.NurseryDepot))
}

func TestObserverStopTwice(t *testing.T) {
	w := &fakeWatcher{}
	o := NewObserver(w)
	require.NoError(t, o.Start(context.Background(), "user-1", "ORD-test00001"))
	o.Stop()
	o.Stop()
	assert.Equal(t, 1, w.stopCount())
}

func TestObserverStartFailure(t *testing.T) {
	w := &fakeWatcher{watchErr: errors.New("stream refused")}
	o := NewObserver(w)
	err := o.Start(context.Background(), "user-1", "ORD-test00001")
	assert.Error(t, err)
}

func TestObserverPositionThenDeliveredInOneSnapshot(t *testing.T) {
	// Per-field ownership means both fields can change in one write
	// window; both callbacks fire, position first.
	w := &fakeWatcher{}
	o := NewObserver(w)

	var sequence []string
	o.OnPosition = func(geo.Coordinate) { sequence = append(sequence, "position") }
	o.OnDelivered = func() { sequence = append(sequence, "delivered") }

	require.NoError(t, o.Start(context.Background(), "user-1", "ORD-test00001"))

	w.push(pendingSnapshot(geo.NurseryDepot))
	w.push(deliveredSnapshot(geo.Coordinate{Latitude: 15.6, Longitude: 73.8}))

	assert.Equal(t, []string{"position", "position", "delivered"}, sequence)
}
