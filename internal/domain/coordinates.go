package domain

import "math"

// earthRadiusKm is the mean Earth radius used for haversine distances.
const earthRadiusKm = 6371.0

// zoneEpsilon is the tolerance used when comparing zone centers, which are
// always multiples of 0.1 degrees up to floating-point noise.
const zoneEpsilon = 1e-9

// Coordinates is an exact geographic position. It is private to the profile it
// belongs to and must never be exposed to other users.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the documented coordinate ranges.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidCoordinate
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// ZoneCenter blurs the coordinate to its 0.1-degree grid cell center, which is
// roughly 11 km at the equator. Rounding is half-away-from-zero on each axis,
// so two positions in the same cell always map to the identical center.
func (c Coordinates) ZoneCenter() ZoneCenter {
	return ZoneCenter{
		Latitude:  math.Round(c.Latitude*10) / 10,
		Longitude: math.Round(c.Longitude*10) / 10,
	}
}

// ZoneCenter is the blurred position shown to non-owners.
type ZoneCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Equal compares two zone centers within floating tolerance.
func (z ZoneCenter) Equal(other ZoneCenter) bool {
	return math.Abs(z.Latitude-other.Latitude) < zoneEpsilon &&
		math.Abs(z.Longitude-other.Longitude) < zoneEpsilon
}

// HaversineDistanceKm returns the great-circle distance between two points.
func HaversineDistanceKm(a, b Coordinates) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)
	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// MapBounds is a map viewport. North/south are latitudes, east/west longitudes.
type MapBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// IsValid reports whether the viewport is non-degenerate. An invalid viewport
// yields empty query results rather than an error.
func (b MapBounds) IsValid() bool {
	if b.North < b.South || b.East < b.West {
		return false
	}
	if b.North > 90 || b.South < -90 || b.East > 180 || b.West < -180 {
		return false
	}
	return true
}

// Contains reports whether a zone center falls inside the viewport.
func (b MapBounds) Contains(z ZoneCenter) bool {
	return z.Latitude >= b.South && z.Latitude <= b.North &&
		z.Longitude >= b.West && z.Longitude <= b.East
}
