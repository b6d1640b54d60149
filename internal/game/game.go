package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/audio"
	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/core/geom"
	"chosenoffset.com/thornvale/internal/core/visibility"
	"chosenoffset.com/thornvale/internal/logging"
	"chosenoffset.com/thornvale/internal/render"
	"chosenoffset.com/thornvale/internal/simulation"
)

// ErrQuit is returned from Update when the player asks to leave
var ErrQuit = errors.New("quit")

// TileImages resolves a placed object's tile key to an image
type TileImages interface {
	TileImage(key string) (render.Image, error)
}

// MusicPlayer controls the background track
type MusicPlayer interface {
	PlayMusic(volume float64)
	PauseMusic()
	ResumeMusic()
	MusicPlaying() bool
}

// World is everything loaded from a world directory
type World struct {
	Name       string
	Bounds     geom.Rect
	Spawn      geom.Point
	Objects    []*visibility.PlacedObject
	Tiles      TileImages
	PlayerSize geom.Size
	Animations actor.AnimationSet[render.Image]
}

// Deps are the engine services a game talks to
type Deps struct {
	Renderer render.Renderer
	Input    render.InputManager
	Sounds   actor.SoundPlayer // nil for silence
	Music    MusicPlayer       // nil for no music
}

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	World  World
	Config *simulation.Config
	Player *actor.Controller[render.Image]
	Body   KinematicBody
	Camera Camera
	Index  *visibility.Index

	Renderer render.Renderer
	InputMgr render.InputManager
	Music    MusicPlayer

	// UI state
	Messages  []Message
	ShowDebug bool

	blockHeld  bool
	tileCache  map[string]render.Image
	missing    map[string]bool
	log        *logrus.Entry
	FrameCount int
}

// New assembles a game for world. The player spawns at the world's spawn
// point, facing the configured initial direction.
func New(world World, cfg *simulation.Config, deps Deps, width, height int) (*Game, error) {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	actorCfg, err := cfg.ActorConfig()
	if err != nil {
		return nil, err
	}
	visCfg, err := cfg.VisibilityConfig()
	if err != nil {
		return nil, err
	}

	log := logging.For("game").WithField("world", world.Name)

	sounds := deps.Sounds
	if sounds == nil {
		sounds = audio.Silent{}
	}
	player, err := actor.NewController(world.Animations, sounds, actorCfg,
		actor.WithLogger(logging.For("actor").WithField("actor", "player")))
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	index, err := visibility.New(visCfg, visibility.WithLogger(logging.For("visibility").WithField("world", world.Name)))
	if err != nil {
		return nil, fmt.Errorf("failed to create visibility index: %w", err)
	}
	if err := index.Build(world.Objects); err != nil {
		return nil, fmt.Errorf("failed to index objects: %w", err)
	}

	g := &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		World:        world,
		Config:       cfg,
		Player:       player,
		Body:         KinematicBody{Size: world.PlayerSize, Bounds: world.Bounds},
		Camera:       Camera{Viewport: geom.Size{W: float64(width), H: float64(height)}},
		Index:        index,
		Renderer:     deps.Renderer,
		InputMgr:     deps.Input,
		Music:        deps.Music,
		tileCache:    make(map[string]render.Image),
		missing:      make(map[string]bool),
		log:          log,
	}
	g.Body.Place(world.Spawn)
	if err := g.updateView(); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"objects": len(world.Objects),
		"spawn_x": g.Body.Pos.X,
		"spawn_y": g.Body.Pos.Y,
	}).Info("world loaded")
	return g, nil
}

// Update handles game logic updates.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF3) {
		g.ShowDebug = !g.ShowDebug
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyM) {
		g.ToggleMusic()
	}

	g.updateMessages(dt)
	return g.Step(ReadIntent(g.InputMgr), dt)
}

// Step advances the player and the view by one tick of input
func (g *Game) Step(it Intent, dt float64) error {
	if it.Attack {
		g.Player.TriggerAttack()
	}
	switch {
	case it.BlockHeld && !g.blockHeld:
		g.Player.TriggerBlock()
	case !it.BlockHeld && g.blockHeld:
		g.Player.ReleaseBlock()
	}
	g.blockHeld = it.BlockHeld

	if err := g.Player.SetMovement(it.DX, it.DY); err != nil {
		g.log.WithError(err).Warn("dropping movement input")
		it.DX, it.DY = 0, 0
	}
	if err := g.Player.Tick(dt); err != nil {
		return err
	}

	speed := g.Config.Movement.Speed
	if g.Player.Locked() {
		speed *= g.Config.Movement.LockedSpeed
	}
	g.Body.Move(it.DX*speed, it.DY*speed, dt)

	return g.updateView()
}

func (g *Game) updateView() error {
	g.Camera.Follow(g.Body.Center(), g.World.Bounds, g.Config.Camera.ClampToMap)
	if _, err := g.Index.Update(g.Camera.Center, g.Camera.Viewport); err != nil {
		return fmt.Errorf("failed to update visibility: %w", err)
	}
	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.ScreenWidth || outsideHeight != g.ScreenHeight {
		g.Resize(outsideWidth, outsideHeight)
	}
	return g.ScreenWidth, g.ScreenHeight
}

// Resize changes the viewport. The next visibility update recomputes.
func (g *Game) Resize(width, height int) {
	g.ScreenWidth = width
	g.ScreenHeight = height
	g.Camera.Viewport = geom.Size{W: float64(width), H: float64(height)}
	if err := g.updateView(); err != nil {
		g.log.WithError(err).Warn("failed to refresh view after resize")
	}
}

// StartMusic begins the background track, if any
func (g *Game) StartMusic() {
	if g.Music == nil || g.Config.Audio.Disabled {
		return
	}
	g.Music.PlayMusic(g.Config.Audio.MusicVolume)
}

// Pause holds the background track, e.g. when the game leaves the foreground
func (g *Game) Pause() {
	if g.Music != nil {
		g.Music.PauseMusic()
	}
}

// Resume continues the background track
func (g *Game) Resume() {
	if g.Music != nil && !g.Config.Audio.Disabled {
		g.Music.ResumeMusic()
	}
}

// ToggleMusic pauses or resumes the background track
func (g *Game) ToggleMusic() {
	if g.Music == nil {
		return
	}
	if g.Music.MusicPlaying() {
		g.Pause()
		g.ShowMessage("Music paused")
	} else {
		g.Resume()
		g.ShowMessage("Music resumed")
	}
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	g.log.WithField("message", text).Debug("message shown")
}
