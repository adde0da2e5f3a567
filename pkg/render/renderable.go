// pkg/render/renderable.go
package render

import (
	"image"
	"image/color"
	"sort"

	"go-mind-control/pkg/geom"
)

// ScreenPos is a projected point. Z carries the depth used for ordering.
type ScreenPos struct {
	X, Y, Z float32
}

// Surface is the draw target a frontend hands to renderables.
type Surface interface {
	// DrawPolyline draws connected segments. With smooth=false the joints
	// are left sharp and no anti-aliasing is applied.
	DrawPolyline(points []ScreenPos, width float32, c color.RGBA, smooth bool)
	FillCircle(center ScreenPos, radius float32, c color.RGBA)
	DrawText(s string, x, y int, c color.RGBA)
}

// Context projects world space onto a surface.
type Context interface {
	Screen3DPosition(pos geom.WPos) ScreenPos
	ScreenVector(vec geom.WVec) ScreenPos
	Surface() Surface
}

// Renderable is a single frame's worth of drawing for one effect.
type Renderable interface {
	Pos() geom.WPos
	ZOffset() int
	IsDecoration() bool
	WithZOffset(newOffset int) Renderable
	OffsetBy(vec geom.WVec) Renderable
	AsDecoration() Renderable
	Render(ctx Context)
	ScreenBounds(ctx Context) image.Rectangle
}

// SortByZOffset orders renderables back to front by anchor Y plus depth
// offset. Ties keep submission order.
func SortByZOffset(rs []Renderable) {
	sort.SliceStable(rs, func(i, j int) bool {
		return zKey(rs[i]) < zKey(rs[j])
	})
}

func zKey(r Renderable) int {
	p := r.Pos()
	return p.Y + p.Z + r.ZOffset()
}
