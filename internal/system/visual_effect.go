// internal/system/visual_effect.go
package system

import (
	"image/color"
	"sort"

	"go-mind-control/internal/component"
	"go-mind-control/internal/config"
	"go-mind-control/internal/entity"
	"go-mind-control/internal/event"
	"go-mind-control/internal/types"
	"go-mind-control/internal/utils"
	"go-mind-control/internal/world"
	"go-mind-control/pkg/geom"
	"go-mind-control/pkg/render"
)

// VisualEffectSystem управляет визуальными эффектами, такими как вспышки
// при захвате и освобождении юнита.
type VisualEffectSystem struct {
	ecs   *entity.ECS
	world *world.World
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(w *world.World) *VisualEffectSystem {
	s := &VisualEffectSystem{ecs: w.ECS, world: w}
	w.Events.Subscribe(event.ControlLinked, s)
	w.Events.Subscribe(event.ControlRevoked, s)
	return s
}

func (s *VisualEffectSystem) OnEvent(e event.Event) {
	data, ok := e.Data.(event.ControlData)
	if !ok {
		return
	}
	switch e.Type {
	case event.ControlLinked:
		s.Flash(data.Controlled, config.LinkFlashColor)
	case event.ControlRevoked:
		s.Flash(data.Controlled, config.RevokeFlashColor)
	}
}

// Flash starts (or restarts) a ring around id.
func (s *VisualEffectSystem) Flash(id types.EntityID, c color.RGBA) {
	if !s.world.IsAlive(id) {
		return
	}
	s.ecs.ControlFlashes[id] = &component.ControlFlash{
		Duration:  config.FlashDuration,
		MaxRadius: config.FlashMaxRadius,
		Color:     c,
	}
}

// Update обновляет все активные визуальные эффекты.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	for id, flash := range s.ecs.ControlFlashes {
		flash.Timer += deltaTime
		if flash.Timer >= flash.Duration || !s.world.IsAlive(id) {
			delete(s.ecs.ControlFlashes, id)
		}
	}
}

// Renderables returns one ring per running flash, growing and fading out.
func (s *VisualEffectSystem) Renderables() []render.Renderable {
	ids := make([]types.EntityID, 0, len(s.ecs.ControlFlashes))
	for id := range s.ecs.ControlFlashes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]render.Renderable, 0, len(ids))
	for _, id := range ids {
		flash := s.ecs.ControlFlashes[id]
		progress := utils.Clamp(flash.Timer/flash.Duration, 0, 1)
		radius := geom.WDist(utils.Lerp(0, float64(flash.MaxRadius)*geom.UnitsPerCell, progress))
		c := render.LerpColor(flash.Color, config.BackgroundColor, progress)
		out = append(out, render.NewRing(s.world.CenterPosition(id), radius, 0, config.FlashWidth, c))
	}
	return out
}
