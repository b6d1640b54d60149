package game

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/core/geom"
	"chosenoffset.com/thornvale/internal/gamescanner"
	"chosenoffset.com/thornvale/internal/logging"
	"chosenoffset.com/thornvale/internal/render"
	"chosenoffset.com/thornvale/internal/simulation"
	"chosenoffset.com/thornvale/internal/ui/menu"
	"chosenoffset.com/thornvale/internal/world/atlas"
	"chosenoffset.com/thornvale/internal/world/maploader"
)

// AudioLibrary is a sound player that can load files, such as audio.Bank
type AudioLibrary interface {
	actor.SoundPlayer
	MusicPlayer
	Register(id, path string) error
	LoadMusic(path string) error
}

// Manager handles the overall game state, including menu and gameplay.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        menu.GameState
	MainMenu     *menu.MainMenu
	Game         *Game
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Loader       render.ResourceLoader
	Audio        AudioLibrary // nil for silence

	log *logrus.Entry
}

// NewManager creates a new game manager.
func NewManager(r render.Renderer, input render.InputManager, loader render.ResourceLoader, width, height int) *Manager {
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		State:        menu.StateMainMenu,
		Renderer:     r,
		InputMgr:     input,
		Loader:       loader,
		log:          logging.For("manager"),
	}
}

// SetMainMenu sets the main menu.
func (m *Manager) SetMainMenu(mainMenu *menu.MainMenu) {
	m.MainMenu = mainMenu
}

// Update updates the game state.
func (m *Manager) Update() error {
	switch m.State {
	case menu.StateMainMenu:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return ErrQuit
		}
		if m.MainMenu == nil {
			return nil
		}
		chosen, world := m.MainMenu.Update()
		if chosen {
			if err := m.LoadGame(world); err != nil {
				m.log.WithError(err).WithField("world", world.Name).Error("failed to load world")
				m.MainMenu.SetStatus(err.Error())
				return nil
			}
			m.MainMenu.SetStatus("")
		}
	case menu.StatePlaying:
		if m.Game == nil {
			m.State = menu.StateMainMenu
			return nil
		}
		err := m.Game.Update()
		if errors.Is(err, ErrQuit) {
			m.Game.Pause()
			if m.MainMenu == nil {
				return ErrQuit
			}
			m.State = menu.StateMainMenu
			return nil
		}
		return err
	}
	return nil
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case menu.StateMainMenu:
		if m.MainMenu != nil {
			m.MainMenu.Draw(screen)
		}
	case menu.StatePlaying:
		if m.Game != nil {
			m.Game.Draw(screen)
		}
	}
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		if m.MainMenu != nil {
			m.MainMenu.SetSize(outsideWidth, outsideHeight)
		}
		if m.Game != nil {
			m.Game.Resize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// LoadGame loads a world directory and starts playing it.
func (m *Manager) LoadGame(entry gamescanner.WorldEntry) error {
	log := m.log.WithField("world", entry.Name)
	log.Info("loading world")

	cfg, err := simulation.LoadConfig(entry.SimulationPath())
	if err != nil {
		return err
	}

	gameMap, err := maploader.LoadMap(entry.MapPath(), m.Loader)
	if err != nil {
		return err
	}
	objects, err := gameMap.PlacedObjects()
	if err != nil {
		return fmt.Errorf("failed to place objects: %w", err)
	}

	player, err := atlas.LoadActor(entry.ActorPath(), m.Loader)
	if err != nil {
		return err
	}

	var sounds actor.SoundPlayer
	var music MusicPlayer
	if m.Audio != nil && !cfg.Audio.Disabled {
		sounds = m.Audio
		for id, path := range player.Sounds {
			if err := m.Audio.Register(id, path); err != nil {
				// The cue stays silent; the bank logs it on first use
				log.WithError(err).WithField("sound", id).Warn("failed to load sound")
			}
		}
		if path := musicPath(gameMap, cfg, entry); path != "" {
			if err := m.Audio.LoadMusic(path); err != nil {
				log.WithError(err).Warn("failed to load music")
			} else {
				music = m.Audio
			}
		}
	}

	world := World{
		Name:       gameMap.Data.Name,
		Bounds:     gameMap.Data.Bounds(),
		Spawn:      gameMap.Data.Spawn(),
		Objects:    objects,
		Tiles:      gameMap,
		PlayerSize: geom.Size{W: player.Definition.Width, H: player.Definition.Height},
		Animations: player.Animations,
	}
	deps := Deps{Renderer: m.Renderer, Input: m.InputMgr, Sounds: sounds, Music: music}
	g, err := New(world, cfg, deps, m.ScreenWidth, m.ScreenHeight)
	if err != nil {
		return err
	}

	if m.Game != nil {
		m.Game.Pause()
	}
	m.Game = g
	m.State = menu.StatePlaying
	g.StartMusic()

	log.Info("world loaded successfully")
	return nil
}

// musicPath prefers the map's track over the simulation config's
func musicPath(gameMap *maploader.Map, cfg *simulation.Config, entry gamescanner.WorldEntry) string {
	if p := gameMap.MusicPath(); p != "" {
		return p
	}
	if cfg.Audio.Music == "" || filepath.IsAbs(cfg.Audio.Music) {
		return cfg.Audio.Music
	}
	return filepath.Join(entry.Dir, cfg.Audio.Music)
}
