package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Cue returns the generator registered for id
func (s *Synth) Cue(id string) (Generator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.cues[id]
	return gen, ok
}

// WriteWAV renders one pass of gen as 16-bit stereo WAV
func WriteWAV(w io.WriteSeeker, gen Generator, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	format := beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2}
	return wav.Encode(w, gen(format.SampleRate), format)
}

// Drone is a slow pad cycling through a few chords, one every d/len(chords)
func Drone(d time.Duration, chords ...[]float64) Generator {
	if len(chords) == 0 {
		chords = [][]float64{{110, 164.8}, {98, 146.8}, {130.8, 196}, {110, 164.8}}
	}
	return func(rate beep.SampleRate) beep.Streamer {
		each := rate.N(d) / len(chords)
		var parts []beep.Streamer
		for _, chord := range chords {
			var notes []beep.Streamer
			for _, f := range chord {
				notes = append(notes, &tone{
					n:    each,
					rate: rate,
					freq: func(float64) float64 { return f },
					amp:  func(t float64) float64 { return 0.15 * math.Sin(math.Pi*t) },
				})
			}
			parts = append(parts, beep.Mix(notes...))
		}
		return beep.Seq(parts...)
	}
}
