// pkg/geom/geom.go
package geom

import "math"

// UnitsPerCell is the number of world units along one edge of a map cell.
const UnitsPerCell = 1024

// WDist is a scalar distance in world units.
type WDist int

// Cells returns a distance of n whole cells.
func Cells(n int) WDist {
	return WDist(n * UnitsPerCell)
}

// WPos is an absolute position in world space.
type WPos struct {
	X, Y, Z int
}

// WVec is a displacement in world space.
type WVec struct {
	X, Y, Z int
}

// ZeroVec is the empty displacement.
var ZeroVec = WVec{}

// NewWPos creates a world position.
func NewWPos(x, y, z int) WPos {
	return WPos{X: x, Y: y, Z: z}
}

// Add shifts the position by v.
func (p WPos) Add(v WVec) WPos {
	return WPos{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Sub returns the vector pointing from o to p.
func (p WPos) Sub(o WPos) WVec {
	return WVec{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Flat drops the height component.
func (p WPos) Flat() WPos {
	return WPos{X: p.X, Y: p.Y}
}

// Add sums two vectors.
func (v WVec) Add(o WVec) WVec {
	return WVec{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Neg returns the opposite vector.
func (v WVec) Neg() WVec {
	return WVec{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Scale multiplies every component by num/den using integer arithmetic.
func (v WVec) Scale(num, den int) WVec {
	if den == 0 {
		return ZeroVec
	}
	return WVec{X: v.X * num / den, Y: v.Y * num / den, Z: v.Z * num / den}
}

// Length returns the euclidean length of the vector.
func (v WVec) Length() WDist {
	return WDist(math.Sqrt(float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y) + float64(v.Z)*float64(v.Z)))
}

// HorizontalLength ignores the height component.
func (v WVec) HorizontalLength() WDist {
	return WDist(math.Sqrt(float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)))
}

// Lerp interpolates between a and b, t being num/den.
func Lerp(a, b WPos, num, den int) WPos {
	return a.Add(b.Sub(a).Scale(num, den))
}
