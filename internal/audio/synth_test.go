package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"chosenoffset.com/thornvale/internal/core/actor"
)

const testRate = 8000

func drain(s *Synth, d time.Duration) {
	buf := make([][2]float64, 512)
	for n := beep.SampleRate(testRate).N(d); n > 0; n -= len(buf) {
		s.Mixer().Stream(buf)
	}
}

func TestSynthPlayIsIdempotent(t *testing.T) {
	s := NewSynth(testRate)
	cue := actor.SoundCue{ID: "walk", Volume: 1, Loop: true}

	s.Play(cue)
	s.Play(cue)

	if got := s.mixer.Len(); got != 1 {
		t.Errorf("Expected 1 voice on the mixer, got %d", got)
	}
	if !s.IsPlaying("walk") {
		t.Error("Expected walk to be playing")
	}
}

func TestSynthOneShotFinishes(t *testing.T) {
	s := NewSynth(testRate)
	s.Play(actor.SoundCue{ID: "swing", Volume: 1})

	if !s.IsPlaying("swing") {
		t.Fatal("Expected swing to be playing")
	}
	drain(s, 500*time.Millisecond)
	if s.IsPlaying("swing") {
		t.Error("Expected swing to finish")
	}

	// A finished one-shot can be played again
	s.Play(actor.SoundCue{ID: "swing", Volume: 1})
	if !s.IsPlaying("swing") {
		t.Error("Expected swing to restart")
	}
}

func TestSynthLoopKeepsPlaying(t *testing.T) {
	s := NewSynth(testRate)
	s.Play(actor.SoundCue{ID: "run", Volume: 0.5, Loop: true})
	drain(s, 2*time.Second)

	if !s.IsPlaying("run") {
		t.Error("Expected looping run to keep playing")
	}
}

func TestSynthStop(t *testing.T) {
	s := NewSynth(testRate)
	s.Play(actor.SoundCue{ID: "block", Volume: 1})
	s.Stop("block")
	s.Stop("block")
	s.Stop("never-played")

	if s.IsPlaying("block") {
		t.Error("Expected block to be stopped")
	}
	drain(s, 10*time.Millisecond)
	if got := s.mixer.Len(); got != 0 {
		t.Errorf("Expected stopped voice removed from mixer, got %d", got)
	}
}

func TestSynthUnknownAndEmptyCues(t *testing.T) {
	s := NewSynth(testRate)
	s.Play(actor.SoundCue{ID: "roar", Volume: 1})
	s.Play(actor.SoundCue{})

	if s.mixer.Len() != 0 {
		t.Errorf("Expected no voices, got %d", s.mixer.Len())
	}
}

func TestSynthOutputInRange(t *testing.T) {
	s := NewSynth(testRate)
	s.Play(actor.SoundCue{ID: "block", Volume: 1})
	s.Play(actor.SoundCue{ID: "swing", Volume: 1})

	buf := make([][2]float64, 1024)
	s.Mixer().Stream(buf)
	for i, frame := range buf {
		if frame[0] < -2 || frame[0] > 2 {
			t.Fatalf("Sample %d out of range: %f", i, frame[0])
		}
	}
}

func TestSilent(t *testing.T) {
	var p actor.SoundPlayer = Silent{}
	p.Play(actor.SoundCue{ID: "walk"})
	if p.IsPlaying("walk") {
		t.Error("Expected silent player to never play")
	}
}
