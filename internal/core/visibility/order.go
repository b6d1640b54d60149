package visibility

import "iter"

// Layer tells a renderer what kind of draw call a DrawItem is
type Layer int

const (
	LayerBackground Layer = iota
	LayerForeground
	LayerPlayer
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerForeground:
		return "foreground"
	case LayerPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// DrawItem is one step of the paint order. Object is nil for LayerPlayer.
// Rank is the position within the layer; for the player it is the foreground
// insertion rank.
type DrawItem struct {
	Layer  Layer
	Object *PlacedObject
	Rank   int
}

// VisibleForegroundOrdered yields (rank, object) pairs by descending depth key.
// The sequence can be ranged over any number of times; each pass sees the
// order as of the call, even if a later Update re-sorts.
func (ix *Index) VisibleForegroundOrdered() iter.Seq2[int, *PlacedObject] {
	objects := ix.foreground
	return func(yield func(int, *PlacedObject) bool) {
		for i, o := range objects {
			if !yield(i, o) {
				return
			}
		}
	}
}

// PaintOrder yields a single-pass painter's algorithm: every visible
// background object, then the foreground with the player interleaved at its
// insertion rank. The player is yielded exactly once.
func (ix *Index) PaintOrder(playerDepthKey float64) iter.Seq[DrawItem] {
	background := ix.background
	foreground := ix.foreground
	rank := ix.PlayerInsertionRank(playerDepthKey)

	return func(yield func(DrawItem) bool) {
		for i, o := range background {
			if !yield(DrawItem{Layer: LayerBackground, Object: o, Rank: i}) {
				return
			}
		}
		for i, o := range foreground {
			if i == rank && !yield(DrawItem{Layer: LayerPlayer, Rank: rank}) {
				return
			}
			if !yield(DrawItem{Layer: LayerForeground, Object: o, Rank: i}) {
				return
			}
		}
		if rank >= len(foreground) {
			yield(DrawItem{Layer: LayerPlayer, Rank: rank})
		}
	}
}
