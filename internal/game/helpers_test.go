package game

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/core/geom"
	"chosenoffset.com/thornvale/internal/core/visibility"
	"chosenoffset.com/thornvale/internal/render"
	"chosenoffset.com/thornvale/internal/simulation"
)

func init() {
	render.NewGeoM = func() render.GeoM { return &fakeGeoM{} }
}

type fakeGeoM struct{}

func (*fakeGeoM) Translate(float64, float64) {}
func (*fakeGeoM) Scale(float64, float64)     {}

// fakeImage is a named image; a screen records the names drawn onto it
type fakeImage struct {
	name   string
	bounds image.Rectangle
	drawn  []string
}

func newFakeImage(name string, w, h int) *fakeImage {
	return &fakeImage{name: name, bounds: image.Rect(0, 0, w, h)}
}

func (f *fakeImage) Bounds() image.Rectangle { return f.bounds }
func (f *fakeImage) Size() (int, int)        { return f.bounds.Dx(), f.bounds.Dy() }
func (f *fakeImage) SubImage(r image.Rectangle) render.Image {
	return &fakeImage{name: f.name, bounds: r.Intersect(f.bounds)}
}
func (f *fakeImage) Fill(color.Color) {}
func (f *fakeImage) DrawImage(src render.Image, _ *render.DrawImageOptions) {
	f.drawn = append(f.drawn, src.(*fakeImage).name)
}

// fakeRenderer records filled rectangles on the screen's draw list as "fill"
type fakeRenderer struct {
	texts []string
}

func (r *fakeRenderer) FillRect(dst render.Image, _, _, _, _ float32, _ color.Color) {
	if img, ok := dst.(*fakeImage); ok {
		img.drawn = append(img.drawn, "fill")
	}
}
func (r *fakeRenderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
}
func (r *fakeRenderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color, _ float64) {
	r.texts = append(r.texts, text)
}

// fakeInput reports whatever keys and buttons a test sets
type fakeInput struct {
	pressed map[render.Key]bool
	just    map[render.Key]bool
	buttons map[render.Button]bool
	tapped  map[render.Button]bool
	dx, dy  float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		pressed: make(map[render.Key]bool),
		just:    make(map[render.Key]bool),
		buttons: make(map[render.Button]bool),
		tapped:  make(map[render.Button]bool),
	}
}

func (f *fakeInput) IsKeyPressed(k render.Key) bool           { return f.pressed[k] }
func (f *fakeInput) IsKeyJustPressed(k render.Key) bool       { return f.just[k] }
func (f *fakeInput) Axes() (float64, float64)                 { return f.dx, f.dy }
func (f *fakeInput) IsButtonPressed(b render.Button) bool     { return f.buttons[b] }
func (f *fakeInput) IsButtonJustPressed(b render.Button) bool { return f.tapped[b] }

// recordingSounds is a SoundPlayer whose cues play until stopped
type recordingSounds struct {
	playing map[string]bool
	played  []string
}

func newRecordingSounds() *recordingSounds {
	return &recordingSounds{playing: make(map[string]bool)}
}

func (s *recordingSounds) Play(cue actor.SoundCue) {
	s.played = append(s.played, cue.ID)
	s.playing[cue.ID] = true
}
func (s *recordingSounds) Stop(id string)           { s.playing[id] = false }
func (s *recordingSounds) IsPlaying(id string) bool { return s.playing[id] }

type fakeMusic struct {
	playing bool
	volume  float64
}

func (m *fakeMusic) PlayMusic(volume float64) { m.playing, m.volume = true, volume }
func (m *fakeMusic) PauseMusic()              { m.playing = false }
func (m *fakeMusic) ResumeMusic()             { m.playing = true }
func (m *fakeMusic) MusicPlaying() bool       { return m.playing }

// fakeAudio is an AudioLibrary that records what it was asked to load
type fakeAudio struct {
	*recordingSounds
	fakeMusic
	registered map[string]string
	music      string
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{recordingSounds: newRecordingSounds(), registered: make(map[string]string)}
}

func (a *fakeAudio) Register(id, path string) error {
	a.registered[id] = path
	return nil
}

func (a *fakeAudio) LoadMusic(path string) error {
	a.music = path
	return nil
}

type tileMap map[string]render.Image

func (m tileMap) TileImage(key string) (render.Image, error) {
	img, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("no tile %s", key)
	}
	return img, nil
}

// fakeLoader serves fixed-size images keyed by file name
type fakeLoader struct {
	sizes map[string]image.Point
}

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	name := filepath.Base(path)
	size, ok := l.sizes[name]
	if !ok {
		return nil, fmt.Errorf("no such image: %s", path)
	}
	return newFakeImage(name, size.X, size.Y), nil
}

// playerAnimations uses one image named "player" for every frame
func playerAnimations() actor.AnimationSet[render.Image] {
	frame := newFakeImage("player", 32, 48)
	set := actor.NewAnimationSet[render.Image]()
	for _, dir := range actor.Directions {
		frames := []render.Image{frame, frame}
		set.Put(actor.Idle, dir, &actor.AnimationSpec[render.Image]{Frames: frames, FrameDuration: 0.5, Loop: true})
		set.Put(actor.Walk, dir, &actor.AnimationSpec[render.Image]{Frames: frames, FrameDuration: 0.25, Loop: true,
			Sound: actor.SoundCue{ID: "walk", Volume: 0.05, Loop: true}})
		set.Put(actor.Run, dir, &actor.AnimationSpec[render.Image]{Frames: frames, FrameDuration: 0.15, Loop: true,
			Sound: actor.SoundCue{ID: "run", Volume: 0.05, Loop: true}})
		set.Put(actor.Attack, dir, &actor.AnimationSpec[render.Image]{Frames: frames, FrameDuration: 0.1,
			Sound: actor.SoundCue{ID: "swing", Volume: 0.2}})
		set.Put(actor.Block, dir, &actor.AnimationSpec[render.Image]{Frames: frames, FrameDuration: 0.1,
			Sound: actor.SoundCue{ID: "clank", Volume: 0.2}})
	}
	return set
}

// testWorld is a 2000x2000 meadow with a ground tile, a tree behind the spawn
// point and a rock in front of it
func testWorld() World {
	return World{
		Name:   "meadow",
		Bounds: geom.Rect{W: 2000, H: 2000},
		Spawn:  geom.Point{X: 1000, Y: 300},
		Objects: []*visibility.PlacedObject{
			{Name: "ground", Tile: "ground/grass", W: 2000, H: 2000, Background: true},
			{Name: "tree", Tile: "objects/tree", X: 950, Y: 500, W: 40, H: 80},
			{Name: "rock", Tile: "objects/rock", X: 1050, Y: 100, W: 40, H: 40},
		},
		Tiles: tileMap{
			"ground/grass": newFakeImage("grass", 32, 32),
			"objects/tree": newFakeImage("tree", 32, 64),
			"objects/rock": newFakeImage("rock", 32, 32),
		},
		PlayerSize: geom.Size{W: 32, H: 48},
		Animations: playerAnimations(),
	}
}

type testGame struct {
	*Game
	input  *fakeInput
	sounds *recordingSounds
	music  *fakeMusic
}

func newTestGame(t interface {
	Fatalf(string, ...interface{})
}, cfg *simulation.Config) *testGame {
	tg := &testGame{input: newFakeInput(), sounds: newRecordingSounds(), music: &fakeMusic{}}
	deps := Deps{Renderer: &fakeRenderer{}, Input: tg.input, Sounds: tg.sounds, Music: tg.music}
	g, err := New(testWorld(), cfg, deps, 800, 600)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	tg.Game = g
	return tg
}
