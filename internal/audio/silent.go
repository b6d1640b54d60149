// Package audio plays the sound cues attached to actor animations.
//
// Three players share the actor.SoundPlayer contract: Bank streams decoded
// files through ebiten's audio context, Synth renders procedural cues on the
// beep speaker, and Silent does nothing. All of them are idempotent: playing
// a cue that is already audible and stopping one that is not are no-ops.
package audio

import "chosenoffset.com/thornvale/internal/core/actor"

// Silent satisfies actor.SoundPlayer without producing sound
type Silent struct{}

func (Silent) Play(actor.SoundCue) {}

func (Silent) Stop(string) {}

func (Silent) IsPlaying(string) bool { return false }
