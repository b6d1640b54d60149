package menu

import (
	"testing"

	"chosenoffset.com/thornvale/internal/gamescanner"
	"chosenoffset.com/thornvale/internal/render"
)

type stubInput struct {
	just map[render.Key]bool
}

func (s *stubInput) IsKeyPressed(render.Key) bool           { return false }
func (s *stubInput) IsKeyJustPressed(k render.Key) bool     { return s.just[k] }
func (s *stubInput) Axes() (float64, float64)               { return 0, 0 }
func (s *stubInput) IsButtonPressed(render.Button) bool     { return false }
func (s *stubInput) IsButtonJustPressed(render.Button) bool { return false }

func press(in *stubInput, keys ...render.Key) {
	in.just = make(map[render.Key]bool)
	for _, k := range keys {
		in.just[k] = true
	}
}

func TestMenuNavigationWraps(t *testing.T) {
	worlds := []gamescanner.WorldEntry{{Name: "ashmoor"}, {Name: "thornvale"}, {Name: "wyrmfen"}}
	in := &stubInput{}
	m := NewMainMenu(worlds, nil, in, 800, 600)

	press(in, render.KeyUp)
	m.Update()
	if m.Selected() != 2 {
		t.Errorf("Expected wrap to 2, got %d", m.Selected())
	}

	press(in, render.KeyDown)
	m.Update()
	if m.Selected() != 0 {
		t.Errorf("Expected wrap to 0, got %d", m.Selected())
	}

	press(in, render.KeyDown)
	m.Update()
	press(in, render.KeyEnter)
	chosen, world := m.Update()
	if !chosen || world.Name != "thornvale" {
		t.Errorf("Expected thornvale chosen, got %v %v", chosen, world.Name)
	}
}

func TestMenuWithoutWorlds(t *testing.T) {
	in := &stubInput{}
	m := NewMainMenu(nil, nil, in, 800, 600)
	press(in, render.KeyEnter)
	if chosen, _ := m.Update(); chosen {
		t.Error("Expected nothing chosen from an empty menu")
	}
}
