package actor

// SoundPlayer is the audio collaborator. Calls are fire-and-forget: a missing
// or broken sound must not fail the caller. Play and Stop are idempotent.
type SoundPlayer interface {
	// Play starts the cue unless it is already playing
	Play(cue SoundCue)
	// Stop halts the sound if it is playing
	Stop(id string)
	// IsPlaying reports whether the sound is currently audible
	IsPlaying(id string) bool
}

type silentPlayer struct{}

func (silentPlayer) Play(SoundCue)         {}
func (silentPlayer) Stop(string)           {}
func (silentPlayer) IsPlaying(string) bool { return false }
