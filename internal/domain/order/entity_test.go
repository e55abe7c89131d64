package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery/internal/domain/geo"
)

var testDest = geo.Coordinate{Latitude: 15.6, Longitude: 73.8}

func testItems() []Item {
	return []Item{
		{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 2},
		{ProductID: "5", Name: "Tomato Seeds", UnitPrice: 20, Quantity: 1},
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	o, err := New("ORD-abc123def", "user-1", "Asha", "asha@example.com", testItems(), 550, testDest, now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.DeliveryStatus)
	assert.Equal(t, geo.NurseryDepot, o.DeliveryLocation, "fresh order starts tracking at the depot")
	assert.Equal(t, testDest, o.Location)
	assert.Equal(t, now, o.Timestamp)
	assert.False(t, o.Delivered())
}

func TestNewValidation(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		testName string
		mutate   func(*string, *string, *[]Item, *int, *geo.Coordinate)
		wantErr  error
	}{
		{
			testName: "missing id",
			mutate:   func(id *string, _ *string, _ *[]Item, _ *int, _ *geo.Coordinate) { *id = "  " },
			wantErr:  ErrInvalidID,
		},
		{
			testName: "missing user",
			mutate:   func(_ *string, uid *string, _ *[]Item, _ *int, _ *geo.Coordinate) { *uid = "" },
			wantErr:  ErrInvalidUserID,
		},
		{
			testName: "no items",
			mutate:   func(_ *string, _ *string, items *[]Item, _ *int, _ *geo.Coordinate) { *items = nil },
			wantErr:  ErrInvalidItems,
		},
		{
			testName: "zero quantity line",
			mutate: func(_ *string, _ *string, items *[]Item, _ *int, _ *geo.Coordinate) {
				(*items)[0].Quantity = 0
			},
			wantErr: ErrInvalidItems,
		},
		{
			testName: "quantity above cap",
			mutate: func(_ *string, _ *string, items *[]Item, _ *int, _ *geo.Coordinate) {
				(*items)[0].Quantity = 11
			},
			wantErr: ErrInvalidItems,
		},
		{
			testName: "non-positive total",
			mutate:   func(_ *string, _ *string, _ *[]Item, total *int, _ *geo.Coordinate) { *total = 0 },
			wantErr:  ErrInvalidTotal,
		},
		{
			testName: "zero destination",
			mutate: func(_ *string, _ *string, _ *[]Item, _ *int, dest *geo.Coordinate) {
				*dest = geo.Coordinate{}
			},
			wantErr: ErrInvalidLocation,
		},
		{
			testName: "out-of-range destination",
			mutate: func(_ *string, _ *string, _ *[]Item, _ *int, dest *geo.Coordinate) {
				dest.Latitude = 91
			},
			wantErr: ErrInvalidLocation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			id, uid := "ORD-abc123def", "user-1"
			items := testItems()
			total := 550
			dest := testDest
			tc.mutate(&id, &uid, &items, &total, &dest)

			_, err := New(id, uid, "Asha", "asha@example.com", items, total, dest, now)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMarkDelivered(t *testing.T) {
	o, err := New("ORD-abc123def", "user-1", "Asha", "", testItems(), 550, testDest, time.Now())
	require.NoError(t, err)

	o.MarkDelivered()
	assert.True(t, o.Delivered())

	// Idempotent: nothing else to transition to.
	o.MarkDelivered()
	assert.Equal(t, StatusDelivered, o.DeliveryStatus)
}

func TestSetDeliveryPosition(t *testing.T) {
	o, err := New("ORD-abc123def", "user-1", "Asha", "", testItems(), 550, testDest, time.Now())
	require.NoError(t, err)

	first := geo.Coordinate{Latitude: 15.595, Longitude: 73.809}
	second := geo.Coordinate{Latitude: 15.597, Longitude: 73.808}
	at := time.Date(2026, 3, 10, 12, 5, 0, 0, time.UTC)

	o.SetDeliveryPosition(first, at)
	o.SetDeliveryPosition(second, at.Add(time.Minute))

	// Last write wins, no history kept.
	assert.Equal(t, second, o.DeliveryLocation)
	assert.Equal(t, at.Add(time.Minute), o.DeliveryLocationAt)
}

func TestNewID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		require.True(t, strings.HasPrefix(id, "ORD-"))
		require.Len(t, id, len("ORD-")+9)
		for _, r := range id[4:] {
			assert.Contains(t, "0123456789abcdefghijklmnopqrstuvwxyz", string(r))
		}
		assert.False(t, seen[id], "duplicate id in a tiny sample: %s", id)
		seen[id] = true
	}
}
