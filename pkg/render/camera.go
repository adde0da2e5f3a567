// pkg/render/camera.go
package render

import "go-mind-control/pkg/geom"

// Camera maps world units onto screen units with a 2.5D projection:
// height lifts a point up the screen, depth follows world Z.
type Camera struct {
	TileWidth  float32   // screen units per cell along X
	TileHeight float32   // screen units per cell along Y
	Scroll     geom.WPos // world position shown at the top-left corner
}

// NewCamera creates a camera for the given tile size.
func NewCamera(tileWidth, tileHeight float32) *Camera {
	return &Camera{TileWidth: tileWidth, TileHeight: tileHeight}
}

// Screen3DPosition projects an absolute world position.
func (c *Camera) Screen3DPosition(pos geom.WPos) ScreenPos {
	v := c.ScreenVector(pos.Sub(c.Scroll.Flat()))
	return ScreenPos{X: v.X, Y: v.Y, Z: v.Z}
}

// ScreenVector projects a world displacement.
func (c *Camera) ScreenVector(vec geom.WVec) ScreenPos {
	return ScreenPos{
		X: c.TileWidth * float32(vec.X) / geom.UnitsPerCell,
		Y: c.TileHeight * float32(vec.Y-vec.Z) / geom.UnitsPerCell,
		Z: c.TileHeight * float32(vec.Z) / geom.UnitsPerCell,
	}
}

// GroundPosition inverts the projection for a point on the ground plane.
func (c *Camera) GroundPosition(x, y float32) geom.WPos {
	return geom.WPos{
		X: c.Scroll.X + int(x*geom.UnitsPerCell/c.TileWidth),
		Y: c.Scroll.Y + int(y*geom.UnitsPerCell/c.TileHeight),
	}
}

// View binds a camera to a surface. It satisfies Context.
type View struct {
	*Camera
	target Surface
}

// NewView creates a render context drawing onto target.
func NewView(camera *Camera, target Surface) *View {
	return &View{Camera: camera, target: target}
}

func (v *View) Surface() Surface {
	return v.target
}
