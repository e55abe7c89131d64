package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, NurseryDepot.Valid())
	assert.True(t, Coordinate{}.Valid(), "zero value is in range, IsZero distinguishes it")
	assert.False(t, Coordinate{Latitude: 91}.Valid())
	assert.False(t, Coordinate{Longitude: -181}.Valid())
}

func TestIsZero(t *testing.T) {
	assert.True(t, Coordinate{}.IsZero())
	assert.False(t, NurseryDepot.IsZero())
}

func TestDistanceM(t *testing.T) {
	assert.Zero(t, DistanceM(NurseryDepot, NurseryDepot))

	// Depot to courier start is a bit under a kilometer.
	d := DistanceM(NurseryDepot, CourierStart)
	assert.InDelta(t, 920, d, 100)

	// Symmetric.
	assert.InDelta(t, d, DistanceM(CourierStart, NurseryDepot), 0.001)
}
