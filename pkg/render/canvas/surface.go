// pkg/render/canvas/surface.go
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"go-mind-control/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Surface draws onto an ebiten image. Target is swapped every frame.
type Surface struct {
	Target *ebiten.Image

	fontFace  font.Face
	strokeImg *ebiten.Image
	strokeVs  []ebiten.Vertex
	strokeIs  []uint16
}

var _ render.Surface = (*Surface)(nil)

// NewSurface prepares the stroke texture and the HUD font.
func NewSurface(fontSize float64) (*Surface, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	// Sampling from the centre of a 3x3 white image avoids bleeding at the edges.
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)

	return &Surface{
		fontFace:  face,
		strokeImg: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		strokeVs:  make([]ebiten.Vertex, 0, 64),
		strokeIs:  make([]uint16, 0, 96),
	}, nil
}

// DrawPolyline strokes the points as one path. Sharp polylines use miter
// joins without anti-aliasing; smooth ones get round joins.
func (s *Surface) DrawPolyline(points []render.ScreenPos, width float32, c color.RGBA, smooth bool) {
	if s.Target == nil || len(points) < 2 || width <= 0 {
		return
	}

	var path vector.Path
	path.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		path.LineTo(p.X, p.Y)
	}

	op := &vector.StrokeOptions{
		Width:      width,
		LineJoin:   vector.LineJoinMiter,
		LineCap:    vector.LineCapButt,
		MiterLimit: 10,
	}
	if smooth {
		op.LineJoin = vector.LineJoinRound
		op.LineCap = vector.LineCapRound
	}

	s.strokeVs, s.strokeIs = path.AppendVerticesAndIndicesForStroke(s.strokeVs[:0], s.strokeIs[:0], op)

	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	for i := range s.strokeVs {
		s.strokeVs[i].SrcX = 1
		s.strokeVs[i].SrcY = 1
		// color.RGBA is premultiplied already, as DrawTriangles expects
		s.strokeVs[i].ColorR = r
		s.strokeVs[i].ColorG = g
		s.strokeVs[i].ColorB = b
		s.strokeVs[i].ColorA = a
	}

	s.Target.DrawTriangles(s.strokeVs, s.strokeIs, s.strokeImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: smooth,
	})
}

func (s *Surface) FillCircle(center render.ScreenPos, radius float32, c color.RGBA) {
	if s.Target == nil {
		return
	}
	vector.DrawFilledCircle(s.Target, center.X, center.Y, radius, c, true)
}

func (s *Surface) DrawText(str string, x, y int, c color.RGBA) {
	if s.Target == nil {
		return
	}
	text.Draw(s.Target, str, s.fontFace, x, y, c)
}

// FontFace returns the face DrawText uses.
func (s *Surface) FontFace() font.Face {
	return s.fontFace
}
