package view

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/voidshard/tilekit"
)

// hudMargin is the gap between the screen edge & the HUD, in px
const hudMargin = 4

// DrawHUD draws the entity's avatar in the top left of the screen. In dev
// mode the entity's position, facing & collision box are printed under it.
func (c *Cache) DrawHUD(screen *ebiten.Image, e *tilekit.Entity) {
	y := hudMargin
	if avatar := e.Avatar(); avatar != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(hudMargin, hudMargin)
		screen.DrawImage(c.Image(avatar), op)
		y += avatar.Bounds().Dy() + hudMargin
	}

	if !e.DevMode() {
		return
	}
	ebitenutil.DebugPrintAt(screen, status(e), hudMargin, y)
}

// status describes an entity for the HUD
func status(e *tilekit.Entity) string {
	pos := e.Position()
	box := e.CollisionBox()
	return fmt.Sprintf(
		"%s (%d,%d) %s\nbox %v\nblocks %d\nTPS: %.1f",
		e.Name, pos.X, pos.Y, e.Facing(), box, len(e.Blocks()), ebiten.ActualTPS(),
	)
}
