// pkg/render/ring.go
package render

import (
	"image"
	"image/color"
	"math"

	"go-mind-control/pkg/geom"
)

// ringSegments is the number of chords used to approximate a ring.
const ringSegments = 24

// Ring is a flat circle outline around a world-space center.
type Ring struct {
	center  geom.WPos
	radius  geom.WDist
	zOffset int
	width   geom.WDist
	color   color.RGBA
}

var _ Renderable = Ring{}

func NewRing(center geom.WPos, radius geom.WDist, zOffset int, width geom.WDist, c color.RGBA) Ring {
	if radius < 0 {
		radius = 0
	}
	if width < 0 {
		width = 0
	}
	return Ring{center: center, radius: radius, zOffset: zOffset, width: width, color: c}
}

func (r Ring) Pos() geom.WPos           { return r.center.Flat() }
func (r Ring) ZOffset() int             { return r.zOffset }
func (r Ring) IsDecoration() bool       { return true }
func (r Ring) Radius() geom.WDist       { return r.radius }
func (r Ring) Color() color.RGBA        { return r.color }
func (r Ring) AsDecoration() Renderable { return r }

func (r Ring) WithZOffset(newOffset int) Renderable {
	r.zOffset = newOffset
	return r
}

func (r Ring) OffsetBy(vec geom.WVec) Renderable {
	r.center = r.center.Add(vec)
	return r
}

// Points returns the closed outline; the last point repeats the first.
func (r Ring) Points() []geom.WPos {
	pts := make([]geom.WPos, ringSegments+1)
	for i := 0; i < ringSegments; i++ {
		a := 2 * math.Pi * float64(i) / ringSegments
		dx := int(math.Round(float64(r.radius) * math.Cos(a)))
		dy := int(math.Round(float64(r.radius) * math.Sin(a)))
		pts[i] = r.center.Add(geom.WVec{X: dx, Y: dy})
	}
	pts[ringSegments] = pts[0]
	return pts
}

// Render draws the outline as one smooth polyline.
func (r Ring) Render(ctx Context) {
	if r.radius == 0 {
		return
	}
	screenWidth := ctx.ScreenVector(geom.WVec{X: int(r.width)}).X
	pts := r.Points()
	screenPoints := make([]ScreenPos, len(pts))
	for i, p := range pts {
		screenPoints[i] = ctx.Screen3DPosition(p)
	}
	ctx.Surface().DrawPolyline(screenPoints, screenWidth, r.color, true)
}

func (r Ring) ScreenBounds(ctx Context) image.Rectangle {
	return image.Rectangle{}
}
