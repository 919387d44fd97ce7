package domain

import "github.com/pinmap-service/internal/pkg/geo"

// Region is a named closed polygon in map space. Regions are static, loaded
// once from an asset file, and their list order is meaningful: membership
// resolves to the first region containing a pin, not the nearest or smallest.
type Region struct {
	Name string `json:"name" yaml:"name"`
	// Coords holds vertices as [a, b] pairs in the order the legacy polygon
	// asset stored them (pin.X pairs with a, pin.Y with b).
	Coords [][2]float64 `json:"coords" yaml:"coords"`
}

// Ring returns the polygon vertices transposed into test space.
func (r Region) Ring() []geo.Point {
	ring := make([]geo.Point, len(r.Coords))
	for i, c := range r.Coords {
		ring[i] = geo.Point{X: c[1], Y: c[0]}
	}
	return ring
}

// Contains reports whether the pin's coordinate falls inside the region.
//
// The test point is built as (pin.Y, pin.X) and the ring as (b, a): the
// legacy client treated pin.y as the geometric x-axis and pin.x as the
// geometric y-axis. Stored coordinates depend on this transposition, so it
// must not be "fixed" without migrating the data.
func (r Region) Contains(pin Pin) bool {
	point := geo.Point{X: pin.Y, Y: pin.X}
	return geo.PointInPolygon(point, r.Ring())
}

// ResolveRegion returns the name of the first region in list order that
// contains the pin, or "" when no region does. Pure: same inputs, same
// answer. Zero regions always resolves to "".
func ResolveRegion(pin Pin, regions []Region) string {
	for _, region := range regions {
		if region.Contains(pin) {
			return region.Name
		}
	}
	return ""
}
