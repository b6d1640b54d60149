// Package visibility keeps the subset of placed world objects near a
// reference point and the painter's-algorithm order they are drawn in.
//
// Recomputing visibility is O(N) in the number of placed objects, so it only
// happens when the reference has moved farther than the configured threshold
// since the last recomputation. Between recomputations every query is served
// from the cached sets.
package visibility

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/thornvale/internal/core/geom"
	"chosenoffset.com/thornvale/internal/logging"
)

// Stats counts the work the index has done
type Stats struct {
	Recomputes int // Visible-set evaluations
	Reorders   int // Foreground sorts
	Candidates int // Objects tested in the last recomputation
}

// Option customizes an Index
type Option func(*Index)

// WithLogger routes recompute logs to entry
func WithLogger(entry *logrus.Entry) Option {
	return func(ix *Index) {
		ix.log = entry
	}
}

// Index owns the placed objects of a world and their current visible subset.
// Not safe for concurrent use.
type Index struct {
	cfg Config
	log *logrus.Entry

	objects []*PlacedObject
	order   map[*PlacedObject]int // Ingestion position, the stable tie-break
	broad   broadPhase
	built   bool

	evaluated    bool
	last         geom.Point
	lastViewport geom.Size

	background []*PlacedObject
	foreground []*PlacedObject // Descending depth key
	fgKeys     []float64       // Depth keys captured when foreground was sorted
	fgMembers  map[*PlacedObject]struct{}

	stats Stats
}

// New returns an empty index
func New(cfg Config, opts ...Option) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ix := &Index{
		cfg:       cfg,
		log:       logging.For("visibility"),
		order:     make(map[*PlacedObject]int),
		broad:     scanAll{},
		fgMembers: make(map[*PlacedObject]struct{}),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// Build ingests the world's objects. It may be called once; the collection is
// immutable afterwards. Nothing is visible until the first Update.
func (ix *Index) Build(objects []*PlacedObject) error {
	if ix.built {
		return ErrAlreadyBuilt
	}
	for i, o := range objects {
		if o == nil {
			return fmt.Errorf("object %d is nil", i)
		}
		if _, dup := ix.order[o]; dup {
			return fmt.Errorf("object %d (%s) added twice", i, o.Name)
		}
		ix.order[o] = i
	}

	ix.objects = slices.Clone(objects)
	if ix.cfg.CellSize > 0 {
		ix.broad = newCellGrid(ix.objects, ix.order, ix.cfg.CellSize)
	} else {
		ix.broad = scanAll{objects: ix.objects}
	}
	ix.built = true

	background := 0
	for _, o := range ix.objects {
		if o.Background {
			background++
		}
	}
	ix.log.WithFields(logrus.Fields{
		"objects":    len(ix.objects),
		"background": background,
		"mode":       ix.cfg.Mode.String(),
	}).Info("visibility index built")
	return nil
}

// Update re-evaluates the visible sets around ref when this is the first call,
// ref moved more than RecomputeThreshold since the last evaluation, or the
// viewport size changed. It reports whether a recomputation happened.
func (ix *Index) Update(ref geom.Point, viewport geom.Size) (bool, error) {
	if !ref.IsFinite() || !(geom.Point{X: viewport.W, Y: viewport.H}).IsFinite() || viewport.W < 0 || viewport.H < 0 {
		return false, fmt.Errorf("%w: reference %v viewport %v", ErrInvalidInput, ref, viewport)
	}

	if ix.evaluated && viewport == ix.lastViewport && ref.DistanceTo(ix.last) <= ix.cfg.RecomputeThreshold {
		return false, nil
	}

	ix.recompute(ref, viewport)
	ix.evaluated = true
	ix.last = ref
	ix.lastViewport = viewport
	return true, nil
}

// Invalidate forces the next Update to recompute
func (ix *Index) Invalidate() {
	ix.evaluated = false
}

func (ix *Index) recompute(ref geom.Point, viewport geom.Size) {
	query := ix.queryRect(ref, viewport)
	candidates := ix.broad.candidates(query)

	var background, foreground []*PlacedObject
	for _, o := range candidates {
		if !ix.includes(o, ref, query) {
			continue
		}
		if o.Background {
			background = append(background, o)
		} else {
			foreground = append(foreground, o)
		}
	}

	ix.background = background
	ix.stats.Recomputes++
	ix.stats.Candidates = len(candidates)

	switch {
	case !ix.sameForeground(foreground):
		ix.fgMembers = make(map[*PlacedObject]struct{}, len(foreground))
		for _, o := range foreground {
			ix.fgMembers[o] = struct{}{}
		}
		ix.sortForeground(foreground)
	case !ix.foregroundSorted():
		// Same members but depth keys moved since the last sort
		ix.sortForeground(slices.Clone(ix.foreground))
	}

	ix.log.WithFields(logrus.Fields{
		"x":          ref.X,
		"y":          ref.Y,
		"candidates": len(candidates),
		"background": len(ix.background),
		"foreground": len(ix.foreground),
	}).Debug("recalculated visible objects")
}

func (ix *Index) queryRect(ref geom.Point, viewport geom.Size) geom.Rect {
	if ix.cfg.Mode == ModeRadius {
		r := ix.cfg.Radius
		return geom.Rect{X: ref.X - r, Y: ref.Y - r, W: 2 * r, H: 2 * r}
	}
	return geom.CenteredAt(ref, viewport).Inflate(ix.cfg.ViewportMargin)
}

func (ix *Index) includes(o *PlacedObject, ref geom.Point, query geom.Rect) bool {
	if ix.cfg.Mode == ModeRadius {
		return o.Bounds().DistanceTo(ref) <= ix.cfg.Radius
	}
	return query.Intersects(o.Bounds())
}

func (ix *Index) sameForeground(foreground []*PlacedObject) bool {
	if len(foreground) != len(ix.fgMembers) {
		return false
	}
	for _, o := range foreground {
		if _, ok := ix.fgMembers[o]; !ok {
			return false
		}
	}
	return true
}

func (ix *Index) foregroundSorted() bool {
	for i, o := range ix.foreground {
		if o.DepthKey() != ix.fgKeys[i] {
			return false
		}
	}
	return true
}

// sortForeground orders objects by descending depth key, ties by ingestion
// order, and snapshots the keys. objects must not alias the previous order so
// sequences handed out earlier keep their view.
func (ix *Index) sortForeground(objects []*PlacedObject) {
	slices.SortFunc(objects, func(a, b *PlacedObject) int {
		if c := cmp.Compare(b.DepthKey(), a.DepthKey()); c != 0 {
			return c
		}
		return ix.order[a] - ix.order[b]
	})

	keys := make([]float64, len(objects))
	for i, o := range objects {
		keys[i] = o.DepthKey()
	}
	ix.foreground = objects
	ix.fgKeys = keys
	ix.stats.Reorders++
}

// VisibleBackground returns the visible background objects. Order carries no meaning.
func (ix *Index) VisibleBackground() []*PlacedObject {
	return slices.Clone(ix.background)
}

// ForegroundLen returns the number of visible foreground objects
func (ix *Index) ForegroundLen() int {
	return len(ix.foreground)
}

// PlayerInsertionRank returns the position in the foreground order at which a
// sprite with the given depth key must be drawn: before the first object whose
// key is smaller. It returns ForegroundLen when no object is in front.
func (ix *Index) PlayerInsertionRank(playerDepthKey float64) int {
	if math.IsNaN(playerDepthKey) {
		return len(ix.fgKeys)
	}
	keys := ix.fgKeys
	return sort.Search(len(keys), func(i int) bool {
		return keys[i] < playerDepthKey
	})
}

// Objects returns every ingested object in ingestion order
func (ix *Index) Objects() []*PlacedObject {
	return slices.Clone(ix.objects)
}

// LastReference returns the reference position of the last recomputation
func (ix *Index) LastReference() (geom.Point, bool) {
	return ix.last, ix.evaluated
}

// Stats returns work counters
func (ix *Index) Stats() Stats {
	return ix.stats
}

// Config returns the tuning in use
func (ix *Index) Config() Config {
	return ix.cfg
}
