package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery/internal/domain/geo"
)

func TestFixStore(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewFixStore()
	s.now = func() time.Time { return now }

	loc := s.ForCourier("courier-1")
	ctx := context.Background()

	// No fix reported yet.
	_, err := loc.Current(ctx)
	assert.ErrorIs(t, err, geo.ErrNoFix)
	assert.NoError(t, loc.RequestPermission(ctx))

	// Fresh fix.
	s.Report("courier-1", geo.CourierStart, now.Add(-time.Minute))
	c, err := loc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, geo.CourierStart, c)

	// Couriers do not see each other's fixes.
	_, err = s.ForCourier("courier-2").Current(ctx)
	assert.ErrorIs(t, err, geo.ErrNoFix)
}

func TestFixStoreStaleFix(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewFixStore()
	s.now = func() time.Time { return now }

	s.Report("courier-1", geo.CourierStart, now.Add(-MaxFixAge-time.Second))
	_, err := s.ForCourier("courier-1").Current(context.Background())
	assert.ErrorIs(t, err, geo.ErrNoFix, "a frozen position must not keep publishing")
}

func TestFixStorePermissionDenied(t *testing.T) {
	s := NewFixStore()
	loc := s.ForCourier("courier-1")
	ctx := context.Background()

	s.ReportPermissionDenied("courier-1")
	assert.ErrorIs(t, loc.RequestPermission(ctx), geo.ErrPermissionDenied)

	// A new fix proves permission is back.
	s.Report("courier-1", geo.CourierStart, time.Now())
	assert.NoError(t, loc.RequestPermission(ctx))
}
