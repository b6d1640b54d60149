package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"chosenoffset.com/thornvale/internal/logging"
	"chosenoffset.com/thornvale/internal/placeholders"
)

func main() {
	opts := placeholders.DefaultOptions()
	out := flag.String("out", filepath.Join("data", "thornvale"), "world directory to write")
	flag.StringVar(&opts.Name, "name", opts.Name, "world name shown in the menu")
	flag.IntVar(&opts.Width, "width", opts.Width, "map width in pixels")
	flag.IntVar(&opts.Height, "height", opts.Height, "map height in pixels")
	flag.IntVar(&opts.Objects, "objects", opts.Objects, "number of scattered objects")
	flag.Uint64Var(&opts.Seed, "seed", opts.Seed, "placement seed")
	flag.BoolVar(&opts.Sounds, "sounds", opts.Sounds, "render sound cues and music")
	flag.IntVar(&opts.SampleRate, "rate", opts.SampleRate, "sample rate for rendered sounds")
	flag.Parse()

	logging.Init()

	fmt.Println("Thornvale Placeholder World Generator")
	fmt.Println("=====================================")
	fmt.Println()

	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := placeholders.GenerateAndSave(*out, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Done! Sample world written to %s.\n", *out)
	fmt.Println("Run the game to walk around in it!")
}
