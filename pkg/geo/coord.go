package geo

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

var (
	// ErrNotFinite is returned for NaN or infinite coordinates.
	ErrNotFinite = errors.New("coordinates must be finite numbers")
	// ErrOutOfRange is returned for coordinates outside the WGS84 range.
	ErrOutOfRange = errors.New("coordinates out of range")
)

// Validate checks a [longitude, latitude] point.
func Validate(p orb.Point) error {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return ErrNotFinite
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrOutOfRange
	}
	return nil
}
