// Package termview is a terminal debug viewer for the action controller and
// the visibility index. It shows the world as glyphs, with the player slotted
// into the painter's order exactly as the game draws it.
package termview

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/core/geom"
	"chosenoffset.com/thornvale/internal/core/visibility"
	"chosenoffset.com/thornvale/internal/game"
	"chosenoffset.com/thornvale/internal/logging"
	"chosenoffset.com/thornvale/internal/simulation"
	"chosenoffset.com/thornvale/internal/world/atlas"
	"chosenoffset.com/thornvale/internal/world/maploader"
)

// World units covered by one terminal cell. Cells are about twice as tall as
// they are wide.
const (
	cellW = 16
	cellH = 32
)

// holdTime is how long a movement key counts as held. Terminals report
// presses and repeats but never releases.
const holdTime = 0.15

// Viewer drives one player over a map on a tcell screen
type Viewer struct {
	screen tcell.Screen
	cfg    *simulation.Config
	player *actor.Controller[rune]
	index  *visibility.Index
	body   game.KinematicBody
	camera game.Camera
	bounds geom.Rect
	log    *logrus.Entry

	intent   game.Intent
	heldLeft float64 // Seconds the last movement key stays active
	running  bool
	block    bool // Guard toggled on with k
}

// New builds a viewer for the map. Object sizes come from the atlas
// descriptions. A nil sounds plays nothing.
func New(screen tcell.Screen, m *maploader.MapData, atlases []atlas.AtlasConfig, cfg *simulation.Config, sounds actor.SoundPlayer) (*Viewer, error) {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	objects, err := m.PlacedObjects(newConfigTiles(atlases...))
	if err != nil {
		return nil, err
	}

	actorCfg, err := cfg.ActorConfig()
	if err != nil {
		return nil, err
	}
	player, err := actor.NewController(glyphAnimations(), sounds, actorCfg,
		actor.WithLogger(logging.For("actor").WithField("actor", "viewer")))
	if err != nil {
		return nil, err
	}

	visCfg, err := cfg.VisibilityConfig()
	if err != nil {
		return nil, err
	}
	index, err := visibility.New(visCfg, visibility.WithLogger(logging.For("visibility").WithField("world", m.Name)))
	if err != nil {
		return nil, err
	}
	if err := index.Build(objects); err != nil {
		return nil, err
	}

	v := &Viewer{
		screen: screen,
		cfg:    cfg,
		player: player,
		index:  index,
		bounds: m.Bounds(),
		body:   game.KinematicBody{Size: geom.Size{W: cellW, H: cellH}, Bounds: m.Bounds()},
		log:    logging.For("termview"),
	}
	v.body.Place(m.Spawn())
	if err := v.updateView(); err != nil {
		return nil, err
	}
	return v, nil
}

// HandleEvent applies one terminal event. It reports false once the user quits.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		if err := v.updateView(); err != nil {
			v.log.WithError(err).Warn("failed to refresh view after resize")
		}
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	dx, dy := 0.0, 0.0
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		dy = 1
	case tcell.KeyDown:
		dy = -1
	case tcell.KeyLeft:
		dx = -1
	case tcell.KeyRight:
		dx = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'w', 'W':
			dy = 1
		case 's', 'S':
			dy = -1
		case 'a', 'A':
			dx = -1
		case 'd', 'D':
			dx = 1
		case 'y':
			dx, dy = -1, 1
		case 'u':
			dx, dy = 1, 1
		case 'b':
			dx, dy = -1, -1
		case 'n':
			dx, dy = 1, -1
		case 'r':
			v.running = !v.running
		case 'j', ' ':
			v.intent.Attack = true
		case 'k':
			v.block = !v.block
		}
	}

	if dx != 0 || dy != 0 {
		scale := 1 / math.Hypot(dx, dy)
		if !v.running {
			scale *= v.cfg.Movement.RunThreshold
		}
		v.intent.DX, v.intent.DY = dx*scale, dy*scale
		v.heldLeft = holdTime
	}
	return true
}

// Step advances the player by dt seconds of the current input
func (v *Viewer) Step(dt float64) error {
	it := v.intent
	it.BlockHeld = v.block
	if v.heldLeft <= 0 {
		it.DX, it.DY = 0, 0
	}
	v.heldLeft -= dt
	v.intent.Attack = false

	if it.Attack {
		v.player.TriggerAttack()
	}
	if it.BlockHeld && v.player.Kind() != actor.Block {
		v.player.TriggerBlock()
	} else if !it.BlockHeld {
		v.player.ReleaseBlock()
	}
	if err := v.player.SetMovement(it.DX, it.DY); err != nil {
		return err
	}
	if err := v.player.Tick(dt); err != nil {
		return err
	}

	speed := v.cfg.Movement.Speed
	if v.player.Locked() {
		speed *= v.cfg.Movement.LockedSpeed
	}
	v.body.Move(it.DX*speed, it.DY*speed, dt)
	return v.updateView()
}

func (v *Viewer) updateView() error {
	w, h := v.screen.Size()
	// The last row is the status line
	v.camera.Viewport = geom.Size{W: float64(w * cellW), H: float64(max(h-1, 0) * cellH)}
	v.camera.Follow(v.body.Center(), v.bounds, v.cfg.Camera.ClampToMap)
	_, err := v.index.Update(v.camera.Center, v.camera.Viewport)
	return err
}

// Draw paints the visible world and the status line
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	rows := h - 1

	for item := range v.index.PaintOrder(v.body.Pos.Y) {
		if item.Layer == visibility.LayerPlayer {
			x, y := v.toCell(geom.Point{X: v.body.Pos.X, Y: v.body.Pos.Y})
			if x >= 0 && x < w && y >= 0 && y < rows {
				v.screen.SetContent(x, y, v.player.CurrentFrame(), nil, playerStyle)
			}
			continue
		}
		v.drawObject(item.Object, w, rows)
	}

	state := v.player.State()
	stats := v.index.Stats()
	mode := "walk"
	if v.running {
		mode = "run"
	}
	status := fmt.Sprintf(" %s %s t=%.1f lock=%v | %s | pos %.0f,%.0f rank %d/%d | recomputes %d reorders %d | q quits",
		state.Kind, state.Dir, state.Elapsed, state.ActionLocked, mode,
		v.body.Pos.X, v.body.Pos.Y, v.index.PlayerInsertionRank(v.body.Pos.Y), v.index.ForegroundLen(),
		stats.Recomputes, stats.Reorders)
	drawText(v.screen, 0, h-1, w, status, tcell.StyleDefault.Reverse(true))

	v.screen.Show()
}

func (v *Viewer) drawObject(o *visibility.PlacedObject, w, rows int) {
	g, ok := tileGlyphs[o.Tile]
	if !ok {
		g = unknownGlyph
	}
	b := o.Bounds()
	x0, y0 := v.toCell(geom.Point{X: b.Left(), Y: b.Top()})
	x1, y1 := v.toCell(geom.Point{X: b.Right(), Y: b.Bottom()})
	// Every object covers at least its anchor cell
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	for y := max(y0, 0); y < min(y1, rows); y++ {
		for x := max(x0, 0); x < min(x1, w); x++ {
			v.screen.SetContent(x, y, g.r, nil, g.style)
		}
	}
}

// toCell maps a world point to the terminal cell containing it
func (v *Viewer) toCell(p geom.Point) (int, int) {
	x, y := v.camera.ToScreen(p)
	return int(math.Floor(x / cellW)), int(math.Floor(y / cellH))
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}

// Run polls events and steps the viewer at fps until the user quits
func (v *Viewer) Run(fps int) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	dt := 1 / float64(fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := v.Step(dt); err != nil {
				return err
			}
			v.Draw()
		}
	}
}

// Player exposes the controller for inspection
func (v *Viewer) Player() *actor.Controller[rune] { return v.player }

// Index exposes the visibility index for inspection
func (v *Viewer) Index() *visibility.Index { return v.index }

// Body returns the player's body
func (v *Viewer) Body() game.KinematicBody { return v.body }
