// pkg/render/term/surface.go
package term

import (
	"image/color"

	"go-mind-control/pkg/render"
	"go-mind-control/pkg/utils"

	"github.com/gdamore/tcell/v2"
)

// Glyphs used for polylines of increasing width.
const (
	GlyphThin   = '·'
	GlyphNormal = '*'
	GlyphThick  = '#'
	GlyphUnit   = 'o'
)

// Surface draws onto a tcell screen, one screen unit per cell.
// Cells have no joints, so the smooth flag of DrawPolyline has no effect.
type Surface struct {
	Screen tcell.Screen
}

var _ render.Surface = (*Surface)(nil)

func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{Screen: screen}
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func glyphFor(width float32) rune {
	switch {
	case width < 0.5:
		return GlyphThin
	case width < 1.5:
		return GlyphNormal
	}
	return GlyphThick
}

// DrawPolyline rasterizes each segment with Bresenham's algorithm.
func (s *Surface) DrawPolyline(points []render.ScreenPos, width float32, c color.RGBA, smooth bool) {
	if len(points) == 0 {
		return
	}
	style := styleFor(c)
	glyph := glyphFor(width)

	if len(points) == 1 {
		s.set(utils.Round(points[0].X), utils.Round(points[0].Y), glyph, style)
		return
	}
	for i := 0; i < len(points)-1; i++ {
		s.line(utils.Round(points[i].X), utils.Round(points[i].Y),
			utils.Round(points[i+1].X), utils.Round(points[i+1].Y), glyph, style)
	}
}

func (s *Surface) line(x0, y0, x1, y1 int, glyph rune, style tcell.Style) {
	dx := utils.Abs(x1 - x0)
	dy := utils.Abs(y1 - y0)
	sx := utils.Sign(x1 - x0)
	sy := utils.Sign(y1 - y0)
	err := dx - dy

	for {
		s.set(x0, y0, glyph, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle fills every cell whose centre lies within radius.
func (s *Surface) FillCircle(center render.ScreenPos, radius float32, c color.RGBA) {
	style := styleFor(c)
	cx, cy := utils.Round(center.X), utils.Round(center.Y)
	r := int(radius)
	if r < 1 {
		s.set(cx, cy, GlyphUnit, style)
		return
	}
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				s.set(cx+x, cy+y, GlyphUnit, style)
			}
		}
	}
}

func (s *Surface) DrawText(str string, x, y int, c color.RGBA) {
	style := styleFor(c)
	for _, r := range str {
		s.set(x, y, r, style)
		x++
	}
}

func (s *Surface) set(x, y int, r rune, style tcell.Style) {
	w, h := s.Screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s.Screen.SetContent(x, y, r, nil, style)
}
