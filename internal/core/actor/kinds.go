// Package actor drives a single character's directional action state:
// which action is active, which way the actor faces, how long it has been in
// that state, and which sound cue accompanies it.
package actor

// ActionKind is the discrete behaviour mode of an actor
type ActionKind int

const (
	Idle ActionKind = iota
	Walk
	Run
	Attack
	Block
)

// ActionKinds lists every action in declaration order
var ActionKinds = []ActionKind{Idle, Walk, Run, Attack, Block}

func (k ActionKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Walk:
		return "walk"
	case Run:
		return "run"
	case Attack:
		return "attack"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Locking reports whether the action holds the actor until it finishes or is released
func (k ActionKind) Locking() bool {
	return k == Attack || k == Block
}

// ParseActionKind maps a name produced by String back to its ActionKind
func ParseActionKind(name string) (ActionKind, bool) {
	for _, k := range ActionKinds {
		if k.String() == name {
			return k, true
		}
	}
	return Idle, false
}

// Direction is one of the eight facing buckets
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
	DownLeft
	DownRight
	UpLeft
	UpRight
)

// Directions lists every direction in declaration order.
// Sprite sheet frame maps are written in this order.
var Directions = []Direction{Down, Up, Left, Right, DownLeft, DownRight, UpLeft, UpRight}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	case DownLeft:
		return "down_left"
	case DownRight:
		return "down_right"
	case UpLeft:
		return "up_left"
	case UpRight:
		return "up_right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a name produced by String back to its Direction
func ParseDirection(name string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == name {
			return d, true
		}
	}
	return Down, false
}
