// Package geom provides the small amount of rectangle arithmetic the linker
// needs, in PDF user-space coordinates (origin bottom-left, y increasing
// upward).
package geom

import "math"

// Rect is an axis-aligned rectangle given by its lower-left and upper-right
// corners.
type Rect struct {
	X0, Y0 float64 // lower-left
	X1, Y1 float64 // upper-right
}

// NewRect returns a rectangle with the corners reordered so that
// (X0,Y0) is the lower-left and (X1,Y1) the upper-right corner.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool {
	return r.X0 == 0 && r.Y0 == 0 && r.X1 == 0 && r.Y1 == 0
}

// Valid reports whether r has positive area and finite coordinates.
// Tokens whose geometry fails this check are skipped for linking.
func (r Rect) Valid() bool {
	for _, v := range [4]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.X1 > r.X0 && r.Y1 > r.Y0
}

// Union returns the smallest rectangle covering both r and other.
// Joining with the zero rectangle returns the other operand unchanged,
// so a running union can start from Rect{}.
func (r Rect) Union(other Rect) Rect {
	if r.IsZero() {
		return other
	}
	if other.IsZero() {
		return r
	}
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Expand grows the rectangle by margin on all four sides.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X0: r.X0 - margin,
		Y0: r.Y0 - margin,
		X1: r.X1 + margin,
		Y1: r.Y1 + margin,
	}
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X0 <= other.X1 && other.X0 <= r.X1 &&
		r.Y0 <= other.Y1 && other.Y0 <= r.Y1
}
