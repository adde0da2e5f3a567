// internal/ui/info_panel.go
package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-mind-control/internal/config"
	"go-mind-control/internal/event"
	"go-mind-control/internal/types"
)

const (
	panelHeight    = 150
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 20
	columnSpacing  = 260
	linesPerColumn = 4
	buttonWidth    = 150
	buttonHeight   = 40
)

// Button представляет кликабельную кнопку в UI.
type Button struct {
	Rect image.Rectangle
	Text string
}

// InfoSource supplies what the panel shows about an entity.
type InfoSource interface {
	UnitInfo(id types.EntityID) (title string, lines []string)
	IsControlled(id types.EntityID) bool
}

// InfoPanel displays information about a selected entity.
type InfoPanel struct {
	IsVisible       bool
	TargetEntity    types.EntityID
	fontFace        font.Face
	currentY        float64
	targetY         float64
	RevokeButton    Button
	eventDispatcher *event.Dispatcher
}

// NewInfoPanel creates a new information panel.
func NewInfoPanel(face font.Face, dispatcher *event.Dispatcher) *InfoPanel {
	return &InfoPanel{
		fontFace:        face,
		currentY:        config.ScreenHeight,
		targetY:         config.ScreenHeight,
		eventDispatcher: dispatcher,
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains reports whether a screen point is over the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// Animate slides the panel one step towards its target position.
func (p *InfoPanel) Animate() {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	switch {
	case math.Abs(diff) < animationSpeed:
		p.currentY = p.targetY
	case diff > 0:
		p.currentY += animationSpeed
	default:
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.TargetEntity = types.InvalidEntity
	}
}

// Update animates the panel and handles clicks on its button.
func (p *InfoPanel) Update(src InfoSource) {
	p.Animate()

	if p.IsVisible && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cursorX, cursorY := ebiten.CursorPosition()
		if image.Pt(cursorX, cursorY).In(p.RevokeButton.Rect) && src.IsControlled(p.TargetEntity) {
			p.requestRevoke()
		}
	}
}

func (p *InfoPanel) requestRevoke() {
	p.eventDispatcher.Dispatch(event.Event{
		Type: event.RevokeRequest,
		Data: event.EntityData{Entity: p.TargetEntity},
	})
}

func (p *InfoPanel) Draw(screen *ebiten.Image, src InfoSource) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)

	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	if p.TargetEntity == types.InvalidEntity {
		return
	}

	title, lines := src.UnitInfo(p.TargetEntity)
	x, y := panelRect.Min.X+15, panelRect.Min.Y+15+lineHeight
	text.Draw(screen, title, p.fontFace, x, y, config.TextLightColor)
	for i, line := range lines {
		col, row := i/linesPerColumn, i%linesPerColumn
		text.Draw(screen, line, p.fontFace, x+col*columnSpacing, y+(row+1)*lineHeight, config.TextLightColor)
	}

	p.RevokeButton = Button{}
	if src.IsControlled(p.TargetEntity) {
		p.drawRevokeButton(screen, panelRect)
	}
}

func (p *InfoPanel) drawRevokeButton(screen *ebiten.Image, panelRect image.Rectangle) {
	p.RevokeButton.Rect = image.Rect(
		panelRect.Max.X-buttonWidth-20,
		panelRect.Max.Y-buttonHeight-20,
		panelRect.Max.X-20,
		panelRect.Max.Y-20,
	)
	p.RevokeButton.Text = "Revoke"

	btnColor := color.RGBA{R: 140, G: 60, B: 170, A: 255}
	vector.DrawFilledRect(screen, float32(p.RevokeButton.Rect.Min.X), float32(p.RevokeButton.Rect.Min.Y), buttonWidth, buttonHeight, btnColor, true)

	textBounds := text.BoundString(p.fontFace, p.RevokeButton.Text)
	textX := p.RevokeButton.Rect.Min.X + (buttonWidth-textBounds.Dx())/2
	textY := p.RevokeButton.Rect.Min.Y + (buttonHeight-textBounds.Dy())/2 - textBounds.Min.Y
	text.Draw(screen, p.RevokeButton.Text, p.fontFace, textX, textY, color.White)
}
