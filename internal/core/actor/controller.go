package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/logging"
)

// ErrInvalidInput is returned for non-finite stick values or a negative/non-finite dt
var ErrInvalidInput = errors.New("invalid input")

// Config holds the controller's tuning
type Config struct {
	RunThreshold     float64   // Stick magnitude above which the actor runs
	AngleEpsilon     float64   // Magnitudes at or below this count as a centered stick
	InitialDirection Direction // Facing before any input
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		RunThreshold:     0.5,
		AngleEpsilon:     1e-4,
		InitialDirection: Down,
	}
}

func (c Config) validate() error {
	if !(c.RunThreshold > 0) || math.IsInf(c.RunThreshold, 0) {
		return fmt.Errorf("%w: run threshold %v", ErrInvalidInput, c.RunThreshold)
	}
	if c.AngleEpsilon < 0 || c.AngleEpsilon >= c.RunThreshold || math.IsNaN(c.AngleEpsilon) {
		return fmt.Errorf("%w: angle epsilon %v", ErrInvalidInput, c.AngleEpsilon)
	}
	return nil
}

// ActorState is the controller-owned state of one actor
type ActorState struct {
	Kind         ActionKind
	Dir          Direction
	Elapsed      float64 // Seconds spent in the current (Kind, Dir) pair
	ActionLocked bool    // Attack or Block in progress
	BlockHeld    bool
}

// Option customizes a Controller
type Option func(*options)

type options struct {
	log *logrus.Entry
}

// WithLogger routes transition logs to entry
func WithLogger(entry *logrus.Entry) Option {
	return func(o *options) {
		o.log = entry
	}
}

// Controller owns one actor's action state machine. It never moves the actor;
// callers must suppress movement while Locked reports true.
// Not safe for concurrent use.
type Controller[F any] struct {
	cfg    Config
	anims  AnimationSet[F]
	sounds SoundPlayer
	state  ActorState
	log    *logrus.Entry
}

// NewController validates the animation set and returns an idle controller.
// A nil sounds plays nothing.
func NewController[F any](anims AnimationSet[F], sounds SoundPlayer, cfg Config, opts ...Option) (*Controller[F], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := anims.Validate(); err != nil {
		return nil, fmt.Errorf("animation set: %w", err)
	}
	if sounds == nil {
		sounds = silentPlayer{}
	}

	o := options{log: logging.For("actor")}
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[F]{
		cfg:    cfg,
		anims:  anims,
		sounds: sounds,
		state:  ActorState{Kind: Idle, Dir: cfg.InitialDirection},
		log:    o.log,
	}, nil
}

// SetMovement feeds the stick vector. It is ignored entirely while an action is locked.
func (c *Controller[F]) SetMovement(dx, dy float64) error {
	if !finite(dx) || !finite(dy) {
		return fmt.Errorf("%w: movement (%v, %v)", ErrInvalidInput, dx, dy)
	}
	if c.state.ActionLocked {
		return nil
	}

	length := math.Hypot(dx, dy)
	if length <= c.cfg.AngleEpsilon {
		c.transition(Idle, c.state.Dir)
		return nil
	}

	dir := ClassifyDirection(dx, dy, c.cfg.AngleEpsilon, c.state.Dir)
	if length > c.cfg.RunThreshold {
		c.transition(Run, dir)
	} else {
		c.transition(Walk, dir)
	}
	return nil
}

// TriggerAttack starts an attack at the current facing unless an action is locked
func (c *Controller[F]) TriggerAttack() {
	if c.state.ActionLocked {
		return
	}
	c.transition(Attack, c.state.Dir)
	c.state.ActionLocked = true
}

// TriggerBlock raises the guard unless an action is locked
func (c *Controller[F]) TriggerBlock() {
	if c.state.ActionLocked {
		return
	}
	c.state.BlockHeld = true
	c.transition(Block, c.state.Dir)
	c.state.ActionLocked = true
}

// ReleaseBlock lets go of the guard. The block ends on the next Tick.
func (c *Controller[F]) ReleaseBlock() {
	c.state.BlockHeld = false
}

// Tick advances the state clock by dt seconds and ends finished actions
func (c *Controller[F]) Tick(dt float64) error {
	if !finite(dt) || dt < 0 {
		return fmt.Errorf("%w: dt %v", ErrInvalidInput, dt)
	}
	c.state.Elapsed += dt

	switch c.state.Kind {
	case Attack:
		if c.Spec().Finished(c.state.Elapsed) {
			c.state.ActionLocked = false
			c.transition(Idle, c.state.Dir)
		}
	case Block:
		if !c.state.BlockHeld {
			c.state.ActionLocked = false
			c.transition(Idle, c.state.Dir)
		}
	}
	return nil
}

// CurrentFrame returns the frame for the current state. It does not advance time.
func (c *Controller[F]) CurrentFrame() F {
	return c.Spec().FrameAt(c.state.Elapsed)
}

// Spec returns the animation of the current (ActionKind, Direction)
func (c *Controller[F]) Spec() *AnimationSpec[F] {
	spec, _ := c.anims.Get(c.state.Kind, c.state.Dir)
	return spec
}

// State returns a copy of the actor state
func (c *Controller[F]) State() ActorState { return c.state }

// Kind returns the active action
func (c *Controller[F]) Kind() ActionKind { return c.state.Kind }

// Direction returns the current facing
func (c *Controller[F]) Direction() Direction { return c.state.Dir }

// Elapsed returns seconds spent in the current state
func (c *Controller[F]) Elapsed() float64 { return c.state.Elapsed }

// Locked reports whether an attack or block is in progress
func (c *Controller[F]) Locked() bool { return c.state.ActionLocked }

// transition moves to (kind, dir). Re-entering the current pair is a no-op so
// per-tick re-evaluation of unchanged input does not restart the animation.
func (c *Controller[F]) transition(kind ActionKind, dir Direction) {
	if c.state.Kind == kind && c.state.Dir == dir {
		return
	}

	prev := c.Spec().Sound
	next := c.spec(kind, dir).Sound

	if prev.HasSound() && prev.ID != next.ID && c.sounds.IsPlaying(prev.ID) {
		c.sounds.Stop(prev.ID)
	}

	from := c.state
	c.state.Kind = kind
	c.state.Dir = dir
	c.state.Elapsed = 0

	if next.HasSound() && !c.sounds.IsPlaying(next.ID) {
		c.sounds.Play(next)
	}

	c.log.WithFields(logrus.Fields{
		"from": Key{Kind: from.Kind, Dir: from.Dir}.String(),
		"to":   Key{Kind: kind, Dir: dir}.String(),
	}).Debug("action transition")
}

func (c *Controller[F]) spec(kind ActionKind, dir Direction) *AnimationSpec[F] {
	spec, _ := c.anims.Get(kind, dir)
	return spec
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
