package interfaces

import (
	"go-mind-control/internal/types"
	"go-mind-control/pkg/geom"
	"go-mind-control/pkg/render"
)

// Game is what the frontends drive.
type Game interface {
	Update(deltaTime float64)
	Draw(ctx render.Context)
	Control(controller, target types.EntityID) bool
	Revoke(id types.EntityID)
	EntityAt(pos geom.WPos) types.EntityID
}

// SoundPlayer plays a named sound cue at a world position.
type SoundPlayer interface {
	Play(name string, pos geom.WPos)
}
