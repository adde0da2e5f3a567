package system

import (
	"image/color"
	"testing"

	"go-mind-control/internal/component"
	"go-mind-control/internal/config"
	"go-mind-control/internal/types"
	"go-mind-control/pkg/render"
)

type circleCall struct {
	center render.ScreenPos
	radius float32
	color  color.RGBA
}

type fakeSurface struct {
	circles   []circleCall
	polylines int
}

func (f *fakeSurface) DrawPolyline(points []render.ScreenPos, width float32, c color.RGBA, smooth bool) {
	f.polylines++
}

func (f *fakeSurface) FillCircle(center render.ScreenPos, radius float32, c color.RGBA) {
	f.circles = append(f.circles, circleCall{center, radius, c})
}

func (f *fakeSurface) DrawText(s string, x, y int, c color.RGBA) {}

func TestRenderUsesOwnerColors(t *testing.T) {
	h := newHarness(t)
	e := h.unit("conscript", h.p1, 1)
	c := h.controller("yuri", h.p2, 3)
	h.w.ECS.Renderables[e] = &component.Renderable{Radius: 0.5}
	h.w.ECS.Renderables[c] = &component.Renderable{Radius: 0.5, HasStroke: true}

	surface := &fakeSurface{}
	ctx := render.NewView(render.NewCamera(48, 48), surface)
	NewRenderSystem(h.w).Draw(ctx, types.InvalidEntity, nil)

	// One fill for e, stroke plus fill for c.
	if len(surface.circles) != 3 {
		t.Fatalf("circles = %d, want 3", len(surface.circles))
	}
	if surface.circles[0].radius != 24 {
		t.Errorf("radius = %v, want 24", surface.circles[0].radius)
	}

	h.controllers.Control(c, e)
	surface.circles = nil
	NewRenderSystem(h.w).Draw(ctx, e, h.controllers.Bolts())

	var sawSelection, sawCapturedColor bool
	for _, call := range surface.circles {
		if call.color == config.SelectionColor {
			sawSelection = true
		}
		if call.color == h.w.Player(h.p2).Color && call.center.X == 48 {
			sawCapturedColor = true
		}
	}
	if !sawSelection {
		t.Error("selected unit not highlighted")
	}
	if !sawCapturedColor {
		t.Error("captured unit not drawn in its new owner's color")
	}
	if surface.polylines != 1 {
		t.Errorf("polylines = %d, want one bolt", surface.polylines)
	}
}
