package actor

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMissingAnimation is returned when an (ActionKind, Direction) pair has no spec
	ErrMissingAnimation = errors.New("missing animation")
	// ErrInvalidAnimation is returned when a spec cannot be played
	ErrInvalidAnimation = errors.New("invalid animation")
)

// SoundCue names a sound and how it should be played. A zero ID means no sound.
type SoundCue struct {
	ID     string
	Volume float64
	Loop   bool
}

// HasSound reports whether the cue refers to a sound
func (c SoundCue) HasSound() bool {
	return c.ID != ""
}

// AnimationSpec describes one directional animation. F is the renderer's frame handle.
type AnimationSpec[F any] struct {
	Frames        []F
	FrameDuration float64 // Seconds per frame
	Loop          bool
	Sound         SoundCue
}

// Duration returns the length of one playthrough in seconds
func (s *AnimationSpec[F]) Duration() float64 {
	return float64(len(s.Frames)) * s.FrameDuration
}

// Finished reports whether a non-looping animation has played through at time t.
// Looping animations never finish.
func (s *AnimationSpec[F]) Finished(t float64) bool {
	return !s.Loop && t >= s.Duration()
}

// FrameIndex returns the frame shown at time t. Time is reduced to one
// playthrough before conversion so any elapsed time maps to a valid index.
func (s *AnimationSpec[F]) FrameIndex(t float64) int {
	n := len(s.Frames)
	if n <= 1 || !(t > 0) {
		return 0
	}
	if s.Loop {
		if math.IsInf(t, 0) {
			return 0
		}
		t = math.Mod(t, s.Duration())
	} else if t >= s.Duration() {
		return n - 1
	}
	return min(int(t/s.FrameDuration), n-1)
}

// FrameAt returns the frame shown at time t
func (s *AnimationSpec[F]) FrameAt(t float64) F {
	return s.Frames[s.FrameIndex(t)]
}

func (s *AnimationSpec[F]) validate() error {
	if len(s.Frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrInvalidAnimation)
	}
	if !(s.FrameDuration > 0) || math.IsInf(s.FrameDuration, 0) {
		return fmt.Errorf("%w: frame duration %v", ErrInvalidAnimation, s.FrameDuration)
	}
	if s.Sound.HasSound() && (s.Sound.Volume < 0 || math.IsNaN(s.Sound.Volume)) {
		return fmt.Errorf("%w: sound %s volume %v", ErrInvalidAnimation, s.Sound.ID, s.Sound.Volume)
	}
	return nil
}

// Key identifies an animation by action and facing
type Key struct {
	Kind ActionKind
	Dir  Direction
}

func (k Key) String() string {
	return k.Kind.String() + "/" + k.Dir.String()
}

// AnimationSet holds every directional animation of an actor
type AnimationSet[F any] map[Key]*AnimationSpec[F]

// NewAnimationSet returns an empty set
func NewAnimationSet[F any]() AnimationSet[F] {
	return make(AnimationSet[F])
}

// Put stores the spec for (kind, dir)
func (s AnimationSet[F]) Put(kind ActionKind, dir Direction, spec *AnimationSpec[F]) {
	s[Key{Kind: kind, Dir: dir}] = spec
}

// Get returns the spec for (kind, dir)
func (s AnimationSet[F]) Get(kind ActionKind, dir Direction) (*AnimationSpec[F], bool) {
	spec, ok := s[Key{Kind: kind, Dir: dir}]
	return spec, ok && spec != nil
}

// Validate checks that every (ActionKind, Direction) pair has a playable spec.
// Attack animations must not loop, otherwise the actor would never unlock.
func (s AnimationSet[F]) Validate() error {
	for _, kind := range ActionKinds {
		for _, dir := range Directions {
			key := Key{Kind: kind, Dir: dir}
			spec, ok := s.Get(kind, dir)
			if !ok {
				return fmt.Errorf("%w: %s", ErrMissingAnimation, key)
			}
			if err := spec.validate(); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if kind == Attack && spec.Loop {
				return fmt.Errorf("%s: %w: attack must not loop", key, ErrInvalidAnimation)
			}
		}
	}
	return nil
}
