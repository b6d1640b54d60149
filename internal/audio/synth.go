package audio

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/logging"
)

// Generator builds a fresh, finite streamer for one pass of a cue
type Generator func(rate beep.SampleRate) beep.Streamer

// voice is one cue on the mixer. done is set from the speaker goroutine when
// a one-shot runs out.
type voice struct {
	ctrl *beep.Ctrl
	done bool
}

// Synth renders procedural cues on the beep speaker
type Synth struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	cues    map[string]Generator
	voices  map[string]*voice
	started bool
	log     *logrus.Entry
}

// NewSynth creates a synth with the default cue set registered
func NewSynth(sampleRate int) *Synth {
	s := &Synth{
		rate:   beep.SampleRate(sampleRate),
		mixer:  &beep.Mixer{},
		cues:   make(map[string]Generator),
		voices: make(map[string]*voice),
		log:    logging.For("synth"),
	}
	s.Register("walk", footstep(90, 450*time.Millisecond))
	s.Register("run", footstep(120, 280*time.Millisecond))
	s.Register("swing", swing)
	s.Register("block", clank)
	return s
}

// Register maps a cue ID to a generator, replacing any previous one
func (s *Synth) Register(id string, gen Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cues[id] = gen
}

// Start opens the speaker and begins mixing
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.started = true
	return nil
}

// Close stops every voice and releases the speaker
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.voices = make(map[string]*voice)
	s.mixer = &beep.Mixer{}
	s.started = false
}

// Mixer exposes the output stream, e.g. for offline rendering
func (s *Synth) Mixer() beep.Streamer {
	return s.mixer
}

func (s *Synth) lockSpeaker() func() {
	if !s.started {
		return func() {}
	}
	speaker.Lock()
	return speaker.Unlock
}

func (s *Synth) Play(cue actor.SoundCue) {
	if !cue.HasSound() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	gen, ok := s.cues[cue.ID]
	if !ok {
		s.log.WithField("id", cue.ID).Debug("no synth voice for cue")
		return
	}

	unlock := s.lockSpeaker()
	defer unlock()

	// If already playing, don't restart
	if v, ok := s.voices[cue.ID]; ok && !v.ctrl.Paused && !v.done {
		return
	}

	v := &voice{}
	var stream beep.Streamer
	if cue.Loop {
		stream = beep.Iterate(func() beep.Streamer { return gen(s.rate) })
	} else {
		stream = beep.Seq(gen(s.rate), beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker lock held
			v.done = true
		}))
	}
	v.ctrl = &beep.Ctrl{Streamer: withVolume(stream, cue.Volume)}
	s.voices[cue.ID] = v
	s.mixer.Add(v.ctrl)
}

func (s *Synth) Stop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.voices[id]
	if !ok {
		return
	}
	unlock := s.lockSpeaker()
	v.ctrl.Paused = true
	v.ctrl.Streamer = nil // Lets the mixer drop it
	unlock()
	delete(s.voices, id)
}

func (s *Synth) IsPlaying(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.voices[id]
	if !ok {
		return false
	}
	unlock := s.lockSpeaker()
	defer unlock()
	return !v.ctrl.Paused && !v.done
}

// withVolume scales a stream linearly. math.Log2(0) is -Inf, so zero is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a finite oscillator whose frequency and amplitude follow curves
// over normalized time in [0, 1)
type tone struct {
	pos, n int
	phase  float64
	rate   beep.SampleRate
	freq   func(t float64) float64
	amp    func(t float64) float64
	noise  float64 // Mix of white noise, 0..1
}

func (g *tone) Stream(samples [][2]float64) (int, bool) {
	if g.pos >= g.n {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.n {
			return i, true
		}
		t := float64(g.pos) / float64(g.n)
		v := (1-g.noise)*math.Sin(2*math.Pi*g.phase) + g.noise*(rand.Float64()*2-1)
		v *= g.amp(t)
		samples[i][0] = v
		samples[i][1] = v

		g.phase += g.freq(t) / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }

func decay(k float64) func(float64) float64 {
	return func(t float64) float64 { return math.Exp(-k * t) }
}

// footstep is a soft thump followed by silence until the next step
func footstep(freq float64, period time.Duration) Generator {
	return func(rate beep.SampleRate) beep.Streamer {
		thump := 60 * time.Millisecond
		step := &tone{
			n:     rate.N(thump),
			rate:  rate,
			freq:  func(t float64) float64 { return freq * (1 - 0.4*t) },
			amp:   func(t float64) float64 { return 0.5 * math.Exp(-6*t) },
			noise: 0.2,
		}
		return beep.Seq(step, beep.Silence(rate.N(period-thump)))
	}
}

func swing(rate beep.SampleRate) beep.Streamer {
	return &tone{
		n:     rate.N(180 * time.Millisecond),
		rate:  rate,
		freq:  func(t float64) float64 { return 300 + 900*t },
		amp:   func(t float64) float64 { return 0.35 * math.Sin(math.Pi*t) },
		noise: 0.7,
	}
}

func clank(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		&tone{n: rate.N(250 * time.Millisecond), rate: rate, freq: func(float64) float64 { return 660 }, amp: decay(9)},
		&tone{n: rate.N(250 * time.Millisecond), rate: rate, freq: func(float64) float64 { return 1290 }, amp: func(t float64) float64 { return 0.4 * math.Exp(-14*t) }},
	)
}
