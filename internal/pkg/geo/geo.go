package geo

// Point is a point in the map's local coordinate space. These are image
// coordinates, not geographic lat/lon.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointInPolygon reports whether p lies inside the closed ring using the
// even-odd rule. The ring does not need to repeat its first vertex.
// Degenerate or self-intersecting rings get best-effort answers, not errors.
func PointInPolygon(p Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i, j = i+1, i {
		yi, yj := ring[i].Y, ring[j].Y
		xi, xj := ring[i].X, ring[j].X

		intersects := (yi > p.Y) != (yj > p.Y) &&
			p.X < (xj-xi)*(p.Y-yi)/(yj-yi)+xi
		if intersects {
			inside = !inside
		}
	}

	return inside
}
