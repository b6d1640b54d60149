package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/render"
)

// SoundDefinition attaches a sound file to an action
type SoundDefinition struct {
	ID     string  `json:"id"`   // Cue ID, defaults to the action name
	Path   string  `json:"path"` // Relative to the actor file
	Volume float64 `json:"volume"`
	Loop   bool    `json:"loop"`
}

// ActionDefinition describes the sprite sheet of one action. Frames lists,
// for each direction in actor.Directions order, the sheet cells to play;
// cells are numbered row by row from the top-left.
type ActionDefinition struct {
	Action        string           `json:"action"` // e.g., "walk"
	Sheet         string           `json:"sheet"`  // Relative to the actor file
	Cols          int              `json:"cols"`
	Rows          int              `json:"rows"`
	FrameDuration float64          `json:"frame_duration"` // Seconds
	Loop          bool             `json:"loop"`
	Frames        [8][]int         `json:"frames"`
	Sound         *SoundDefinition `json:"sound,omitempty"`
}

// ActorDefinition is the JSON description of an animated actor
type ActorDefinition struct {
	Name    string             `json:"name"`
	Width   float64            `json:"width"`  // World units
	Height  float64            `json:"height"` // World units
	Actions []ActionDefinition `json:"actions"`
}

// Actor is a loaded actor: its animations plus the sound files they reference
type Actor struct {
	Definition *ActorDefinition
	Animations actor.AnimationSet[render.Image]
	Sounds     map[string]string // Cue ID to resolved file path
}

// ParseActorDefinition decodes and validates an actor description
func ParseActorDefinition(data []byte) (*ActorDefinition, error) {
	var def ActorDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks sizes, sheet grids and that every action is described once
func (d *ActorDefinition) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid actor size: %vx%v", d.Width, d.Height)
	}

	seen := make(map[actor.ActionKind]bool)
	for i, a := range d.Actions {
		kind, ok := actor.ParseActionKind(a.Action)
		if !ok {
			return fmt.Errorf("action %d: unknown action %q", i, a.Action)
		}
		if seen[kind] {
			return fmt.Errorf("action %s described twice", a.Action)
		}
		seen[kind] = true

		if a.Sheet == "" {
			return fmt.Errorf("action %s: sheet is required", a.Action)
		}
		if a.Cols <= 0 || a.Rows <= 0 {
			return fmt.Errorf("action %s: invalid sheet grid %dx%d", a.Action, a.Cols, a.Rows)
		}
		if !(a.FrameDuration > 0) {
			return fmt.Errorf("action %s: invalid frame duration %v", a.Action, a.FrameDuration)
		}
		for dir, frames := range a.Frames {
			if len(frames) == 0 {
				return fmt.Errorf("action %s: no frames for %s", a.Action, actor.Direction(dir))
			}
			for _, cell := range frames {
				if cell < 0 || cell >= a.Cols*a.Rows {
					return fmt.Errorf("action %s: frame %d for %s outside a %dx%d sheet",
						a.Action, cell, actor.Direction(dir), a.Cols, a.Rows)
				}
			}
		}
		if a.Sound != nil && a.Sound.Path == "" {
			return fmt.Errorf("action %s: sound path is required", a.Action)
		}
	}

	for _, kind := range actor.ActionKinds {
		if !seen[kind] {
			return fmt.Errorf("missing action %s", kind)
		}
	}
	return nil
}

// LoadActor reads an actor file and slices its sheets
func LoadActor(path string, loader render.ResourceLoader) (*Actor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read actor %s: %w", path, err)
	}

	def, err := ParseActorDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse actor %s: %w", path, err)
	}

	sheets := make(map[string]render.Image)
	load := func(sheet string) (render.Image, error) {
		if img, ok := sheets[sheet]; ok {
			return img, nil
		}
		img, err := loader.LoadImage(resolve(path, sheet))
		if err != nil {
			return nil, fmt.Errorf("failed to load sheet %s: %w", sheet, err)
		}
		sheets[sheet] = img
		return img, nil
	}

	a, err := BuildActor(def, load)
	if err != nil {
		return nil, fmt.Errorf("failed to build actor %s: %w", path, err)
	}
	for id, p := range a.Sounds {
		a.Sounds[id] = resolve(path, p)
	}
	return a, nil
}

// BuildActor slices each action's sheet into per-direction animations
func BuildActor(def *ActorDefinition, load func(sheet string) (render.Image, error)) (*Actor, error) {
	anims := actor.NewAnimationSet[render.Image]()
	sounds := make(map[string]string)

	for _, a := range def.Actions {
		kind, _ := actor.ParseActionKind(a.Action)
		sheet, err := load(a.Sheet)
		if err != nil {
			return nil, err
		}
		cells, err := sliceSheet(sheet, a.Cols, a.Rows)
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", a.Action, err)
		}

		var cue actor.SoundCue
		if a.Sound != nil {
			cue = actor.SoundCue{ID: a.Sound.ID, Volume: a.Sound.Volume, Loop: a.Sound.Loop}
			if cue.ID == "" {
				cue.ID = a.Action
			}
			if prev, ok := sounds[cue.ID]; ok && prev != a.Sound.Path {
				return nil, fmt.Errorf("sound %s bound to both %s and %s", cue.ID, prev, a.Sound.Path)
			}
			sounds[cue.ID] = a.Sound.Path
		}

		for _, dir := range actor.Directions {
			frames := make([]render.Image, len(a.Frames[dir]))
			for i, cell := range a.Frames[dir] {
				frames[i] = cells[cell]
			}
			anims.Put(kind, dir, &actor.AnimationSpec[render.Image]{
				Frames:        frames,
				FrameDuration: a.FrameDuration,
				Loop:          a.Loop,
				Sound:         cue,
			})
		}
	}

	if err := anims.Validate(); err != nil {
		return nil, err
	}
	return &Actor{Definition: def, Animations: anims, Sounds: sounds}, nil
}

// sliceSheet cuts an image into a cols x rows grid, row by row
func sliceSheet(sheet render.Image, cols, rows int) ([]render.Image, error) {
	b := sheet.Bounds()
	if b.Dx()%cols != 0 || b.Dy()%rows != 0 {
		return nil, fmt.Errorf("sheet %dx%d does not divide into %dx%d cells", b.Dx(), b.Dy(), cols, rows)
	}
	w, h := b.Dx()/cols, b.Dy()/rows

	cells := make([]render.Image, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := b.Min.X+c*w, b.Min.Y+r*h
			cells = append(cells, sheet.SubImage(image.Rect(x, y, x+w, y+h)))
		}
	}
	return cells, nil
}
