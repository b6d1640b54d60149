package atlas

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/render"
)

// actorJSON describes every action on an 8x4 sheet of 32px cells; each
// direction owns one row half.
func actorJSON(mutate func(action string) string) string {
	var actions []string
	for _, kind := range actor.ActionKinds {
		loop := kind != actor.Attack
		extra := ""
		if mutate != nil {
			extra = mutate(kind.String())
		}
		actions = append(actions, fmt.Sprintf(`{
			"action": %q, "sheet": "player_%s.png", "cols": 8, "rows": 4,
			"frame_duration": 0.1, "loop": %v,
			"frames": [[0,1,2,3],[4,5,6,7],[8,9,10,11],[12,13,14,15],
			           [16,17,18,19],[20,21,22,23],[24,25,26,27],[28,29,30,31]]%s
		}`, kind, kind, loop, extra))
	}
	return `{"name": "player", "width": 64, "height": 64, "actions": [` + strings.Join(actions, ",") + `]}`
}

func sheetLoader() *fakeLoader {
	sizes := make(map[string]image.Point)
	for _, kind := range actor.ActionKinds {
		sizes["player_"+kind.String()+".png"] = image.Point{256, 128}
	}
	return &fakeLoader{sizes: sizes}
}

func TestLoadActor(t *testing.T) {
	dir := t.TempDir()
	body := actorJSON(func(action string) string {
		if action == "walk" {
			return `, "sound": {"path": "sounds/steps.wav", "volume": 0.5, "loop": true}`
		}
		if action == "attack" {
			return `, "sound": {"id": "swing", "path": "sounds/swing.ogg", "volume": 1}`
		}
		return ""
	})
	path := writeFile(t, dir, "actor.json", body)

	a, err := LoadActor(path, sheetLoader())
	if err != nil {
		t.Fatalf("LoadActor failed: %v", err)
	}

	spec, ok := a.Animations.Get(actor.Walk, actor.Left)
	if !ok {
		t.Fatal("Expected walk/left animation")
	}
	if len(spec.Frames) != 4 {
		t.Fatalf("Expected 4 frames, got %d", len(spec.Frames))
	}
	// Cell 8 is the first cell of the second row
	if want := image.Rect(0, 32, 32, 64); spec.Frames[0].Bounds() != want {
		t.Errorf("Expected first left frame at %v, got %v", want, spec.Frames[0].Bounds())
	}
	if spec.Sound.ID != "walk" || !spec.Sound.Loop || spec.Sound.Volume != 0.5 {
		t.Errorf("Expected looping walk cue, got %+v", spec.Sound)
	}

	attack, _ := a.Animations.Get(actor.Attack, actor.UpRight)
	if attack.Loop {
		t.Error("Expected attack not to loop")
	}
	if attack.Sound.ID != "swing" {
		t.Errorf("Expected swing cue, got %q", attack.Sound.ID)
	}

	if got := a.Sounds["swing"]; got != dir+"/sounds/swing.ogg" {
		t.Errorf("Expected resolved sound path, got %q", got)
	}
	if len(a.Sounds) != 2 {
		t.Errorf("Expected 2 sounds, got %d", len(a.Sounds))
	}
}

func TestLoadActorLoadsEachSheetOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "actor.json", actorJSON(nil))
	loader := sheetLoader()

	if _, err := LoadActor(path, loader); err != nil {
		t.Fatalf("LoadActor failed: %v", err)
	}
	if len(loader.loaded) != len(actor.ActionKinds) {
		t.Errorf("Expected %d sheet loads, got %d", len(actor.ActionKinds), len(loader.loaded))
	}
}

func TestActorDefinitionValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"frame out of range", actorJSON(func(action string) string {
			if action == "run" {
				return `, "frames": [[32],[0],[0],[0],[0],[0],[0],[0]]`
			}
			return ""
		})},
		{"empty direction", actorJSON(func(action string) string {
			if action == "idle" {
				return `, "frames": [[],[0],[0],[0],[0],[0],[0],[0]]`
			}
			return ""
		})},
		{"missing size", strings.Replace(actorJSON(nil), `"width": 64`, `"width": 0`, 1)},
		{"missing action", `{"name": "x", "width": 1, "height": 1, "actions": []}`},
		{"unknown action", `{"name": "x", "width": 1, "height": 1, "actions": [{"action": "dance"}]}`},
		{"sound without path", actorJSON(func(action string) string {
			if action == "block" {
				return `, "sound": {"id": "clank"}`
			}
			return ""
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseActorDefinition([]byte(tt.body)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestBuildActorRejectsLoopingAttack(t *testing.T) {
	def, err := ParseActorDefinition([]byte(actorJSON(func(action string) string {
		if action == "attack" {
			return `, "loop": true`
		}
		return ""
	})))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	loader := sheetLoader()
	_, err = BuildActor(def, func(sheet string) (render.Image, error) { return loader.LoadImage(sheet) })
	if !errors.Is(err, actor.ErrInvalidAnimation) {
		t.Errorf("Expected ErrInvalidAnimation, got %v", err)
	}
}

func TestBuildActorRejectsUnevenSheet(t *testing.T) {
	def, _ := ParseActorDefinition([]byte(actorJSON(nil)))
	_, err := BuildActor(def, func(string) (render.Image, error) { return newFakeImage(250, 128), nil })
	if err == nil {
		t.Error("Expected error for a sheet that does not divide evenly")
	}
}
