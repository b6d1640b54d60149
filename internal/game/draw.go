package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/thornvale/internal/core/visibility"
	"chosenoffset.com/thornvale/internal/render"
)

var (
	clearColor   = color.RGBA{34, 52, 30, 255}
	fallbackFill = color.RGBA{120, 90, 60, 255}
	playerFill   = color.RGBA{255, 255, 100, 255}
	debugColor   = color.RGBA{255, 80, 80, 255}
	textColor    = color.RGBA{255, 255, 255, 255}
)

// Draw renders the game to the screen: visible background objects, then the
// foreground by depth with the player slotted in at its rank.
func (g *Game) Draw(screen render.Image) {
	g.FrameCount++
	screen.Fill(clearColor)

	for item := range g.Index.PaintOrder(g.Body.Pos.Y) {
		switch item.Layer {
		case visibility.LayerPlayer:
			g.drawPlayer(screen)
		default:
			g.drawObject(screen, item.Object)
		}
	}

	g.drawUI(screen)
	if g.ShowDebug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawObject(screen render.Image, o *visibility.PlacedObject) {
	x, y := g.Camera.RectToScreen(o.Bounds())

	img := g.tileImage(o.Tile)
	if img == nil {
		g.Renderer.FillRect(screen, float32(x), float32(y), float32(o.W), float32(o.H), fallbackFill)
		return
	}
	drawScaled(screen, img, x, y, o.W, o.H)
}

func (g *Game) drawPlayer(screen render.Image) {
	x, y := g.Camera.RectToScreen(g.Body.Rect())

	frame := g.Player.CurrentFrame()
	if frame == nil {
		g.Renderer.FillRect(screen, float32(x), float32(y), float32(g.Body.Size.W), float32(g.Body.Size.H), playerFill)
		return
	}
	drawScaled(screen, frame, x, y, g.Body.Size.W, g.Body.Size.H)
}

// drawScaled draws img with its top-left at (x, y), stretched to w x h
func drawScaled(screen, img render.Image, x, y, w, h float64) {
	iw, ih := img.Size()
	opts := &render.DrawImageOptions{}
	opts.GeoM = render.NewGeoM()
	if iw > 0 && ih > 0 {
		opts.GeoM.Scale(w/float64(iw), h/float64(ih))
	}
	opts.GeoM.Translate(x, y)
	screen.DrawImage(img, opts)
}

func (g *Game) tileImage(key string) render.Image {
	if img, ok := g.tileCache[key]; ok {
		return img
	}
	if g.missing[key] || g.World.Tiles == nil {
		return nil
	}
	img, err := g.World.Tiles.TileImage(key)
	if err != nil {
		g.missing[key] = true
		g.log.WithError(err).WithField("tile", key).Warn("tile image unavailable, drawing placeholder")
		return nil
	}
	g.tileCache[key] = img
	return img
}

func (g *Game) drawUI(screen render.Image) {
	// Draw on-screen messages
	y := 50.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.Renderer.DrawText(screen, msg.Text, 20, int(y), color.RGBA{255, 255, 255, alpha}, 1.0)
		y += 20
	}
}

func (g *Game) drawDebug(screen render.Image) {
	for _, o := range g.Index.VisibleBackground() {
		x, y := g.Camera.RectToScreen(o.Bounds())
		g.Renderer.StrokeRect(screen, float32(x), float32(y), float32(o.W), float32(o.H), 1, debugColor)
	}
	for _, o := range g.Index.VisibleForegroundOrdered() {
		x, y := g.Camera.RectToScreen(o.Bounds())
		g.Renderer.StrokeRect(screen, float32(x), float32(y), float32(o.W), float32(o.H), 1, debugColor)
	}

	state := g.Player.State()
	stats := g.Index.Stats()
	lines := []string{
		fmt.Sprintf("%s facing %s  t=%.2f locked=%v", state.Kind, state.Dir, state.Elapsed, state.ActionLocked),
		fmt.Sprintf("pos (%.0f, %.0f)  rank %d/%d", g.Body.Pos.X, g.Body.Pos.Y,
			g.Index.PlayerInsertionRank(g.Body.Pos.Y), g.Index.ForegroundLen()),
		fmt.Sprintf("recomputes %d  reorders %d  candidates %d", stats.Recomputes, stats.Reorders, stats.Candidates),
	}
	for i, line := range lines {
		g.Renderer.DrawText(screen, line, 10, g.ScreenHeight-16*(len(lines)-i)-4, textColor, 1.0)
	}
}
