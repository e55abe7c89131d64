// internal/adapters/out/firestore/decode_fs.go
package firestore

import (
	"fmt"
	"strings"
	"time"

	"nursery/internal/domain/geo"
)

// ========================
// Decode helpers (Firestore type wobble absorption)
// ========================

func asMapAny(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func mapGetStr(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func mapGetInt(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	default:
		// 揺れがあっても落とさず 0 に寄せる（domain が弾く）
		return 0
	}
}

func mapGetFloat(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	default:
		return 0
	}
}

func mapGetTime(m map[string]any, key string) time.Time {
	if m == nil {
		return time.Time{}
	}
	switch t := m[key].(type) {
	case time.Time:
		return t.UTC()
	case string:
		// Old app clients wrote ISO strings.
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts.UTC()
		}
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

// decodeCoordinate reads a {latitude, longitude} map. ok is false when
// the value is absent or not a map; callers treat that as "no
// coordinate", never as an error.
func decodeCoordinate(v any) (geo.Coordinate, bool) {
	m := asMapAny(v)
	if m == nil {
		return geo.Coordinate{}, false
	}
	c := geo.Coordinate{
		Latitude:  mapGetFloat(m, "latitude"),
		Longitude: mapGetFloat(m, "longitude"),
	}
	if c.IsZero() {
		return geo.Coordinate{}, false
	}
	return c, true
}

func coordinateToMap(c geo.Coordinate) map[string]any {
	return map[string]any{
		"latitude":  c.Latitude,
		"longitude": c.Longitude,
	}
}
