package visibility

import (
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"chosenoffset.com/thornvale/internal/core/geom"
)

// broadPhase narrows the objects worth testing against a query rectangle.
// Candidates come back in ingestion order.
type broadPhase interface {
	candidates(query geom.Rect) []*PlacedObject
}

// scanAll tests every object
type scanAll struct {
	objects []*PlacedObject
}

func (s scanAll) candidates(geom.Rect) []*PlacedObject {
	return s.objects
}

// maxGridCells bounds the resolv space; cells grow when a world would need more
const maxGridCells = 1 << 20

// cellGrid buckets objects into a resolv space so a query only touches the
// cells under the query rectangle
type cellGrid struct {
	space  *resolv.Space
	origin geom.Point // World position of cell (0, 0)
	cols   int
	rows   int
	order  map[*PlacedObject]int
	stamp  map[*PlacedObject]uint64
	query  uint64
}

func newCellGrid(objects []*PlacedObject, order map[*PlacedObject]int, cellSize float64) *cellGrid {
	g := &cellGrid{
		order: order,
		stamp: make(map[*PlacedObject]uint64, len(objects)),
	}
	if len(objects) == 0 {
		return g
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, o := range objects {
		minX = math.Min(minX, o.X)
		minY = math.Min(minY, o.Y)
		maxX = math.Max(maxX, o.X+o.W)
		maxY = math.Max(maxY, o.Y+o.H)
	}
	g.origin = geom.Point{X: minX, Y: minY}

	cell := max(math.Ceil(cellSize), 1)
	for {
		cols := math.Ceil((maxX-minX)/cell) + 1
		rows := math.Ceil((maxY-minY)/cell) + 1
		if cols*rows <= maxGridCells {
			g.cols, g.rows = int(cols), int(rows)
			break
		}
		cell *= 2
	}

	c := int(cell)
	g.space = resolv.NewSpace(g.cols*c, g.rows*c, c, c)
	for _, o := range objects {
		// resolv covers [X, X+W-1]; anything under a unit still needs its own cell
		obj := resolv.NewObject(o.X-minX, o.Y-minY, max(o.W, 1), max(o.H, 1))
		obj.Data = o
		g.space.Add(obj)
	}
	return g
}

func (g *cellGrid) candidates(query geom.Rect) []*PlacedObject {
	if g.space == nil {
		return nil
	}
	g.query++

	// resolv registers an object up to its far edge minus one unit
	x0, y0 := g.space.WorldToSpace(query.Left()-g.origin.X-1, query.Bottom()-g.origin.Y-1)
	x1, y1 := g.space.WorldToSpace(query.Right()-g.origin.X, query.Top()-g.origin.Y)
	x0, x1 = max(x0, 0), min(x1, g.cols-1)
	y0, y1 = max(y0, 0), min(y1, g.rows-1)

	var out []*PlacedObject
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			cell := g.space.Cell(cx, cy)
			if cell == nil {
				continue
			}
			for _, obj := range cell.Objects {
				o, ok := obj.Data.(*PlacedObject)
				if !ok || g.stamp[o] == g.query {
					continue
				}
				g.stamp[o] = g.query
				out = append(out, o)
			}
		}
	}

	slices.SortFunc(out, func(a, b *PlacedObject) int {
		return g.order[a] - g.order[b]
	})
	return out
}
