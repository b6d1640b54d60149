package actor

import "math"

// Sector boundaries, measured as the absolute angle from Up in degrees
const (
	upBoundary        = 22.5
	diagonalUpBound   = 67.5
	sideBoundary      = 112.5
	diagonalDownBound = 157.5

	// Angles within this many degrees of a boundary count as on it
	boundaryTolerance = 1e-9
)

// Angle returns the signed angle in degrees between (dx, dy) and the up
// vector (0, 1), normalized to (-180, 180]. Positive angles lie to the right.
func Angle(dx, dy float64) float64 {
	a := math.Atan2(dx, dy) * 180 / math.Pi
	if a <= -180 {
		a += 360
	}
	return a
}

// ClassifyDirection buckets a stick vector into one of eight directions.
// A vector no longer than epsilon keeps prev so a stick returning to center
// does not flicker the facing.
//
// A boundary angle belongs to the sector farther from Up: 22.5° is UpRight,
// 67.5° is Right, 112.5° is DownRight and ±157.5° is Down.
func ClassifyDirection(dx, dy, epsilon float64, prev Direction) Direction {
	if math.Hypot(dx, dy) <= epsilon {
		return prev
	}

	a := Angle(dx, dy)
	right := a > 0
	abs := math.Abs(a) + boundaryTolerance

	switch {
	case abs < upBoundary:
		return Up
	case abs < diagonalUpBound:
		if right {
			return UpRight
		}
		return UpLeft
	case abs < sideBoundary:
		if right {
			return Right
		}
		return Left
	case abs < diagonalDownBound:
		if right {
			return DownRight
		}
		return DownLeft
	default:
		return Down
	}
}
