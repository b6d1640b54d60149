package actor

import "strings"

// recordingPlayer is a SoundPlayer that remembers every call.
// Looping cues stay playing until stopped; one-shots stay playing until finish is called.
type recordingPlayer struct {
	playing map[string]bool
	calls   []string
}

func newRecordingPlayer() *recordingPlayer {
	return &recordingPlayer{playing: make(map[string]bool)}
}

func (p *recordingPlayer) Play(cue SoundCue) {
	p.calls = append(p.calls, "play:"+cue.ID)
	p.playing[cue.ID] = true
}

func (p *recordingPlayer) Stop(id string) {
	p.calls = append(p.calls, "stop:"+id)
	p.playing[id] = false
}

func (p *recordingPlayer) IsPlaying(id string) bool {
	return p.playing[id]
}

func (p *recordingPlayer) finish(id string) {
	p.playing[id] = false
}

func (p *recordingPlayer) count(prefix string) int {
	n := 0
	for _, c := range p.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// frame identifies a frame in tests as "kind/dir#index"
type frame string

// testAnimations mirrors the stock player: idle 2 frames, walk/run 4 looping
// frames, attack and block 3 one-shot frames.
func testAnimations() AnimationSet[frame] {
	set := NewAnimationSet[frame]()
	for _, dir := range Directions {
		set.Put(Idle, dir, testSpec(Idle, dir, 2, 0.5, true, SoundCue{}))
		set.Put(Walk, dir, testSpec(Walk, dir, 4, 0.25, true, SoundCue{ID: "walk", Volume: 0.05, Loop: true}))
		set.Put(Run, dir, testSpec(Run, dir, 4, 0.15, true, SoundCue{ID: "run", Volume: 0.05, Loop: true}))
		set.Put(Attack, dir, testSpec(Attack, dir, 3, 0.1, false, SoundCue{ID: "swing", Volume: 0.2}))
		set.Put(Block, dir, testSpec(Block, dir, 3, 0.1, false, SoundCue{ID: "block", Volume: 0.2}))
	}
	return set
}

func testSpec(kind ActionKind, dir Direction, n int, d float64, loop bool, cue SoundCue) *AnimationSpec[frame] {
	frames := make([]frame, n)
	for i := range frames {
		frames[i] = frame(Key{Kind: kind, Dir: dir}.String() + "#" + string(rune('0'+i)))
	}
	return &AnimationSpec[frame]{Frames: frames, FrameDuration: d, Loop: loop, Sound: cue}
}

func newTestController(t interface {
	Fatalf(string, ...interface{})
}) (*Controller[frame], *recordingPlayer) {
	sounds := newRecordingPlayer()
	c, err := NewController(testAnimations(), sounds, DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create controller: %v", err)
	}
	return c, sounds
}
