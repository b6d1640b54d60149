package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/thornvale/internal/audio"
	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/logging"
	"chosenoffset.com/thornvale/internal/placeholders"
	"chosenoffset.com/thornvale/internal/ui/termview"
	"chosenoffset.com/thornvale/internal/world/atlas"
)

func main() {
	opts := placeholders.DefaultOptions()
	opts.Sounds = false
	flag.Uint64Var(&opts.Seed, "seed", opts.Seed, "world seed")
	flag.IntVar(&opts.Objects, "objects", opts.Objects, "number of scattered objects")
	mode := flag.String("mode", "viewport", "visibility mode: viewport or radius")
	sound := flag.Bool("sound", false, "play synthesized cues")
	fps := flag.Int("fps", 30, "ticks per second")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if err := run(opts, *mode, *sound, *fps, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts placeholders.Options, mode string, sound bool, fps int, logPath string) error {
	// The terminal belongs to tcell, so logs go to a file or nowhere
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logging.InitWithOutput(out)

	cfg := placeholders.SampleConfig()
	cfg.Visibility.Mode = mode
	if err := cfg.Validate(); err != nil {
		return err
	}

	var sounds actor.SoundPlayer
	if sound {
		synth := audio.NewSynth(cfg.Audio.SampleRate)
		if err := synth.Start(); err != nil {
			logging.For("visdebug").WithError(err).Warn("audio unavailable, running silent")
		} else {
			defer synth.Close()
			sounds = synth
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	m := placeholders.SampleMap(opts)
	atlases := []atlas.AtlasConfig{placeholders.GroundAtlasConfig(), placeholders.ObjectAtlasConfig()}
	v, err := termview.New(screen, &m, atlases, cfg, sounds)
	if err != nil {
		return err
	}
	return v.Run(fps)
}
