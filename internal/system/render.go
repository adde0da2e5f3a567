// internal/system/render.go
package system

import (
	"image/color"
	"sort"

	"go-mind-control/internal/config"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/types"
	"go-mind-control/internal/world"
	"go-mind-control/pkg/geom"
	"go-mind-control/pkg/render"
)

// RenderSystem рисует сущности
type RenderSystem struct {
	ecs   *entity.ECS
	world *world.World
}

func NewRenderSystem(w *world.World) *RenderSystem {
	return &RenderSystem{ecs: w.ECS, world: w}
}

// Draw renders unit markers back to front, then the given effects on top.
func (s *RenderSystem) Draw(ctx render.Context, selected types.EntityID, effects []render.Renderable) {
	surface := ctx.Surface()

	ids := make([]types.EntityID, 0, len(s.ecs.Renderables))
	for id := range s.ecs.Renderables {
		if s.world.IsAlive(id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := s.world.CenterPosition(ids[i]), s.world.CenterPosition(ids[j])
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		r := s.ecs.Renderables[id]
		center := ctx.Screen3DPosition(s.world.CenterPosition(id))
		radius := ctx.ScreenVector(geom.WVec{X: int(r.Radius * geom.UnitsPerCell)}).X

		if id == selected {
			surface.FillCircle(center, radius+2*config.UnitStrokeWidth, config.SelectionColor)
		}
		if r.HasStroke {
			surface.FillCircle(center, radius+config.UnitStrokeWidth, config.UnitStrokeColor)
		}
		surface.FillCircle(center, radius, s.ownerColor(id))
	}

	for _, e := range effects {
		e.Render(ctx)
	}
}

func (s *RenderSystem) ownerColor(id types.EntityID) color.RGBA {
	if p := s.world.Player(s.world.Owner(id)); p != nil {
		return p.Color
	}
	return config.NeutralOwnerColor
}
