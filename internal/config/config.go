// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06
	TickRate     = 25 // simulation ticks per second

	TileWidth  = 48.0 // pixels per cell
	TileHeight = 48.0

	TermTileWidth  = 4.0 // terminal cells per map cell
	TermTileHeight = 2.0

	DefaultFallbackOwner     = "Creeps"
	DefaultBoltWidth         = 48
	DefaultBoltSegmentLength = 384
	DefaultBoltFlickerTicks  = 3
	DefaultUnitRadius        = 0.3

	EmpDuration     = 4.0 // seconds
	EmpCondition    = "empdisable"
	FontSize        = 12
	HUDLineHeight   = 16
	UnitStrokeWidth = 2.0
	PickRadius      = 512 // world units
	FlashDuration   = 0.5 // seconds
	FlashMaxRadius  = 1.2 // cells
	FlashWidth      = 32  // world units
)

var (
	BackgroundColor   = color.RGBA{20, 20, 30, 255}
	TextLightColor    = color.RGBA{240, 240, 240, 255}
	UnitStrokeColor   = color.RGBA{255, 255, 255, 255}
	SelectionColor    = color.RGBA{255, 215, 0, 255}
	DefaultBoltColor  = color.RGBA{120, 200, 255, 255}
	NeutralOwnerColor = color.RGBA{128, 128, 128, 255}
	LinkFlashColor    = color.RGBA{200, 120, 255, 255}
	RevokeFlashColor  = color.RGBA{255, 255, 255, 255}
)
