// pkg/render/bolt.go
package render

import (
	"image"
	"image/color"

	"go-mind-control/pkg/geom"
)

// Bolt is an electric bolt drawn as one polyline through world-space points.
// A Bolt is immutable; transforms return new values.
type Bolt struct {
	points  []geom.WPos
	zOffset int
	width   geom.WDist
	color   color.RGBA
}

var _ Renderable = Bolt{}

// NewBolt copies points into a new bolt. It panics if points is empty,
// since the first point anchors the whole renderable.
func NewBolt(points []geom.WPos, zOffset int, width geom.WDist, c color.RGBA) Bolt {
	if len(points) == 0 {
		panic("render: bolt needs at least one point")
	}
	if width < 0 {
		width = 0
	}
	cp := make([]geom.WPos, len(points))
	copy(cp, points)
	return Bolt{points: cp, zOffset: zOffset, width: width, color: c}
}

// Pos is the anchor with its height dropped. Draw order comes from ZOffset,
// not from the anchor's real Z.
func (b Bolt) Pos() geom.WPos {
	return b.points[0].Flat()
}

func (b Bolt) ZOffset() int             { return b.zOffset }
func (b Bolt) IsDecoration() bool       { return true }
func (b Bolt) Width() geom.WDist        { return b.width }
func (b Bolt) Color() color.RGBA        { return b.color }
func (b Bolt) AsDecoration() Renderable { return b }

// Points returns a copy of the bolt's world-space points.
func (b Bolt) Points() []geom.WPos {
	cp := make([]geom.WPos, len(b.points))
	copy(cp, b.points)
	return cp
}

// WithZOffset returns the same bolt with a new depth offset.
func (b Bolt) WithZOffset(newOffset int) Renderable {
	return Bolt{points: b.points, zOffset: newOffset, width: b.width, color: b.color}
}

// OffsetBy returns a bolt with every point shifted by vec.
func (b Bolt) OffsetBy(vec geom.WVec) Renderable {
	shifted := make([]geom.WPos, len(b.points))
	for i, p := range b.points {
		shifted[i] = p.Add(vec)
	}
	return Bolt{points: shifted, zOffset: b.zOffset, width: b.width, color: b.color}
}

// Render projects the points and submits a single sharp-jointed polyline.
func (b Bolt) Render(ctx Context) {
	screenWidth := ctx.ScreenVector(geom.WVec{X: int(b.width)}).X

	screenPoints := make([]ScreenPos, len(b.points))
	for i, p := range b.points {
		screenPoints[i] = ctx.Screen3DPosition(p)
	}

	ctx.Surface().DrawPolyline(screenPoints, screenWidth, b.color, false)
}

// ScreenBounds is always empty: bolts skip visibility culling.
func (b Bolt) ScreenBounds(ctx Context) image.Rectangle {
	return image.Rectangle{}
}
