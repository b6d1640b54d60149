package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteWAVDecodes(t *testing.T) {
	s := NewSynth(testRate)
	gen, ok := s.Cue("swing")
	if !ok {
		t.Fatal("Expected a swing cue")
	}

	path := filepath.Join(t.TempDir(), "swing.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := WriteWAV(f, gen, testRate); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	pcm, err := decode("swing.wav", data, testRate)
	if err != nil {
		t.Fatalf("Failed to decode written WAV: %v", err)
	}
	// 180ms of 16-bit stereo
	if want := testRate * 180 / 1000 * 4; len(pcm) != want {
		t.Errorf("Expected %d bytes of PCM, got %d", want, len(pcm))
	}
}

func TestCueUnknown(t *testing.T) {
	s := NewSynth(testRate)
	if _, ok := s.Cue("roar"); ok {
		t.Error("Expected no cue for an unregistered ID")
	}
}

func TestWriteWAVRejectsBadRate(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()
	if err := WriteWAV(f, Drone(time.Second), 0); err == nil {
		t.Error("Expected an error for a zero sample rate")
	}
}
