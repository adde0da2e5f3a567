// internal/component/visual_effect.go
package component

import "image/color"

// ControlFlash is a short expanding ring drawn around an entity when it
// changes hands through mind control.
type ControlFlash struct {
	Timer     float64 // seconds elapsed
	Duration  float64
	MaxRadius float32 // in cells
	Color     color.RGBA
}
