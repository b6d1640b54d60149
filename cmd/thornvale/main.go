package main

import (
	"errors"
	"flag"
	"os"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"chosenoffset.com/thornvale/internal/audio"
	"chosenoffset.com/thornvale/internal/game"
	"chosenoffset.com/thornvale/internal/gamescanner"
	"chosenoffset.com/thornvale/internal/logging"
	ebitenrender "chosenoffset.com/thornvale/internal/render/ebiten"
	"chosenoffset.com/thornvale/internal/simulation"
	"chosenoffset.com/thornvale/internal/ui/menu"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding world folders")
	worldName := flag.String("world", "", "start this world directly, skipping the menu")
	mute := flag.Bool("mute", false, "disable all audio")
	flag.Parse()

	logging.Init()
	log := logging.For("main")

	screenWidth := 1280
	screenHeight := 800

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	// Scan data directory for available worlds
	log.WithField("dir", *dataDir).Info("scanning data directory for worlds")
	worlds, err := gamescanner.ScanDataDirectory(*dataDir)
	if err != nil {
		log.WithError(err).Fatal("failed to scan data directory")
	}

	mainMenu := menu.NewMainMenu(worlds, renderer, inputMgr, screenWidth, screenHeight)
	gameManager := game.NewManager(renderer, inputMgr, loader, screenWidth, screenHeight)
	gameManager.SetMainMenu(mainMenu)

	// One audio context per process; its rate comes from the stock tuning
	var bank *audio.Bank
	if !*mute {
		ctx := eaudio.NewContext(simulation.DefaultConfig().Audio.SampleRate)
		bank = audio.NewBank(ctx)
		gameManager.Audio = bank
	}

	if *worldName != "" {
		entry, ok := gamescanner.Find(worlds, *worldName)
		if !ok {
			log.WithField("world", *worldName).Fatal("world not found")
		}
		if err := gameManager.LoadGame(entry); err != nil {
			log.WithError(err).WithField("world", *worldName).Fatal("failed to load world")
		}
	}

	// Set up the window
	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle("Thornvale")
	engine.SetWindowResizable(true)

	log.Info("starting game")
	err = engine.RunGame(gameManager)
	if bank != nil {
		if cerr := bank.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to release audio")
		}
	}
	if err != nil && !errors.Is(err, game.ErrQuit) {
		log.WithError(err).Error("game exited with an error")
		os.Exit(1)
	}
}
