// internal/domain/geo/geo.go
package geo

import (
	"errors"
	"math"
)

// Errors surfaced by position sources.
var (
	ErrPermissionDenied = errors.New("geo: location permission denied")
	ErrNoFix            = errors.New("geo: no recent position fix")
)

// Coordinate は WGS84 の緯度経度ペアです。
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Well-known points of the nursery's delivery area.
var (
	// NurseryDepot is where every delivery starts from and the
	// initial deliveryLocation of a fresh order.
	NurseryDepot = Coordinate{Latitude: 15.590386, Longitude: 73.810582}

	// CourierStart is the default position a courier reports from
	// before the first device fix arrives.
	CourierStart = Coordinate{Latitude: 15.598293, Longitude: 73.807998}
)

// IsZero reports whether the coordinate is the zero value. (0,0) is
// in the Gulf of Guinea and never a real destination here, so the
// zero value doubles as "unset".
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Valid reports whether the coordinate is inside the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

const earthRadiusM = 6371000

// DistanceM returns the haversine distance between two coordinates
// in meters.
func DistanceM(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
