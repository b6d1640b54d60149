package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/core/actor"
	"chosenoffset.com/thornvale/internal/logging"
)

// ErrUnsupportedFormat is returned when a sound file has an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const musicID = "\x00music"

// track is the part of an ebiten audio player the bank drives
type track interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
	Close() error
}

type channel struct {
	track track
	loop  bool
}

// Bank plays sound files decoded up front into PCM. Each cue ID owns at most
// one player, so a cue can never overlap itself.
type Bank struct {
	sampleRate int
	newTrack   func(src io.Reader) (track, error)
	log        *logrus.Entry

	clips    map[string][]byte
	channels map[string]*channel
	warned   map[string]bool

	musicVolume float64
	musicPaused bool
}

// NewBank creates a bank that plays through ctx
func NewBank(ctx *eaudio.Context) *Bank {
	return newBank(ctx.SampleRate(), func(src io.Reader) (track, error) {
		return ctx.NewPlayer(src)
	})
}

func newBank(sampleRate int, newTrack func(io.Reader) (track, error)) *Bank {
	return &Bank{
		sampleRate: sampleRate,
		newTrack:   newTrack,
		log:        logging.For("audio"),
		clips:      make(map[string][]byte),
		channels:   make(map[string]*channel),
		warned:     make(map[string]bool),
	}
}

// Register decodes the file at path and stores it under id
func (b *Bank) Register(id, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read sound %s: %w", path, err)
	}
	return b.RegisterBytes(id, filepath.Base(path), data)
}

// RegisterBytes decodes data, using name's extension to pick the decoder
func (b *Bank) RegisterBytes(id, name string, data []byte) error {
	pcm, err := decode(name, data, b.sampleRate)
	if err != nil {
		return fmt.Errorf("failed to decode sound %s: %w", name, err)
	}
	b.clips[id] = pcm
	if ch, ok := b.channels[id]; ok {
		ch.track.Close()
		delete(b.channels, id)
	}
	b.log.WithFields(logrus.Fields{"id": id, "bytes": len(pcm)}).Debug("sound registered")
	return nil
}

// decode converts a wav, ogg or mp3 file into 16-bit stereo PCM at sampleRate
func decode(name string, data []byte, sampleRate int) ([]byte, error) {
	src := bytes.NewReader(data)
	var (
		stream io.Reader
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, src)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, src)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

// Has reports whether id was registered
func (b *Bank) Has(id string) bool {
	_, ok := b.clips[id]
	return ok
}

// Play starts the cue unless it is already playing. Unknown IDs are logged
// once and otherwise ignored.
func (b *Bank) Play(cue actor.SoundCue) {
	if !cue.HasSound() {
		return
	}
	ch, err := b.channel(cue.ID, cue.Loop)
	if err != nil {
		b.warnOnce(cue.ID, err)
		return
	}
	if ch.track.IsPlaying() {
		return
	}
	if err := ch.track.Rewind(); err != nil {
		b.log.WithError(err).WithField("id", cue.ID).Warn("failed to rewind sound")
	}
	ch.track.SetVolume(cue.Volume)
	ch.track.Play()
}

// Stop halts the cue and rewinds it
func (b *Bank) Stop(id string) {
	ch, ok := b.channels[id]
	if !ok || !ch.track.IsPlaying() {
		return
	}
	ch.track.Pause()
	if err := ch.track.Rewind(); err != nil {
		b.log.WithError(err).WithField("id", id).Warn("failed to rewind sound")
	}
}

// IsPlaying reports whether the cue is audible
func (b *Bank) IsPlaying(id string) bool {
	ch, ok := b.channels[id]
	return ok && ch.track.IsPlaying()
}

func (b *Bank) channel(id string, loop bool) (*channel, error) {
	if ch, ok := b.channels[id]; ok {
		if ch.loop == loop {
			return ch, nil
		}
		ch.track.Close()
		delete(b.channels, id)
	}

	pcm, ok := b.clips[id]
	if !ok {
		return nil, fmt.Errorf("sound %q not registered", id)
	}

	var src io.Reader = bytes.NewReader(pcm)
	if loop {
		src = eaudio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	}
	t, err := b.newTrack(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create player for %q: %w", id, err)
	}

	ch := &channel{track: t, loop: loop}
	b.channels[id] = ch
	return ch, nil
}

func (b *Bank) warnOnce(id string, err error) {
	if b.warned[id] {
		return
	}
	b.warned[id] = true
	b.log.WithError(err).WithField("id", id).Warn("sound cue unavailable")
}

// LoadMusic registers the background track
func (b *Bank) LoadMusic(path string) error {
	return b.Register(musicID, path)
}

// PlayMusic loops the background track from the start at volume
func (b *Bank) PlayMusic(volume float64) {
	b.musicVolume = volume
	b.musicPaused = false
	b.Stop(musicID)
	b.Play(actor.SoundCue{ID: musicID, Volume: volume, Loop: true})
}

// PauseMusic holds the background track at its current position
func (b *Bank) PauseMusic() {
	ch, ok := b.channels[musicID]
	if !ok || !ch.track.IsPlaying() {
		return
	}
	ch.track.Pause()
	b.musicPaused = true
}

// ResumeMusic continues a paused background track
func (b *Bank) ResumeMusic() {
	ch, ok := b.channels[musicID]
	if !ok || !b.musicPaused {
		return
	}
	b.musicPaused = false
	ch.track.SetVolume(b.musicVolume)
	ch.track.Play()
}

// MusicPlaying reports whether the background track is audible
func (b *Bank) MusicPlaying() bool {
	return b.IsPlaying(musicID)
}

// Close releases every player
func (b *Bank) Close() error {
	var errs []error
	for id, ch := range b.channels {
		if err := ch.track.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
		delete(b.channels, id)
	}
	return errors.Join(errs...)
}
