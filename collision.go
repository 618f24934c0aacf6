package tilekit

import (
	"image"
	"sort"

	"github.com/solarlune/resolv"
)

const (
	tagBlock = "block"

	// cell size used when a BlockSpace is built without a hint
	defaultCell = 16
	// upper bound on cells per side for ad hoc spaces
	maxCells = 64
)

// BlockSpace buckets blocking rects into a resolv.Space so movement only
// has to test the blocks near an entity.
//
// Queries reposition a shared search object; a BlockSpace is not safe for
// concurrent use.
type BlockSpace struct {
	rects  []image.Rectangle
	origin image.Point

	space  *resolv.Space
	index  map[*resolv.Object]int
	search *resolv.Object
}

// NewBlockSpace indexes `rects` using cells of size `cell`. A zero cell
// picks a size from the extent of the rects.
func NewBlockSpace(rects []image.Rectangle, cell image.Point) *BlockSpace {
	s := &BlockSpace{rects: rects, index: map[*resolv.Object]int{}}

	bounds := image.Rectangle{}
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		bounds = bounds.Union(r)
	}
	if bounds.Empty() {
		return s
	}

	if cell.X <= 0 || cell.Y <= 0 {
		cell = autoCell(bounds)
	}

	// resolv works in a space starting at (0,0)
	s.origin = bounds.Min
	cols := (bounds.Dx() + cell.X - 1) / cell.X
	rows := (bounds.Dy() + cell.Y - 1) / cell.Y
	s.space = resolv.NewSpace(cols*cell.X, rows*cell.Y, cell.X, cell.Y)

	for i, r := range rects {
		if r.Empty() {
			continue
		}
		at := r.Sub(s.origin)
		w, h := float64(at.Dx()), float64(at.Dy())
		obj := resolv.NewObject(float64(at.Min.X), float64(at.Min.Y), w, h, tagBlock)
		obj.SetShape(resolv.NewRectangle(0, 0, w, h))
		s.space.Add(obj)
		s.index[obj] = i
	}

	s.search = resolv.NewObject(0, 0, 0, 0)
	s.space.Add(s.search)

	return s
}

// autoCell returns a cell size that keeps the grid at most maxCells on
// a side.
func autoCell(bounds image.Rectangle) image.Point {
	size := func(extent int) int {
		c := (extent + maxCells - 1) / maxCells
		if c < defaultCell {
			return defaultCell
		}
		return c
	}
	return image.Pt(size(bounds.Dx()), size(bounds.Dy()))
}

// Rects returns every rect the space was built from, in the order given.
func (s *BlockSpace) Rects() []image.Rectangle {
	return s.rects
}

// Near returns the rects that overlap `area`, in the order they were given
// to NewBlockSpace.
func (s *BlockSpace) Near(area image.Rectangle) []image.Rectangle {
	if s.space == nil || area.Empty() {
		return nil
	}

	at := area.Sub(s.origin)
	s.search.X = float64(at.Min.X)
	s.search.Y = float64(at.Min.Y)
	s.search.W = float64(at.Dx())
	s.search.H = float64(at.Dy())
	s.search.Update()

	hit := s.search.Check(0, 0, tagBlock)
	if hit == nil {
		return nil
	}

	found := []int{}
	for _, obj := range hit.Objects {
		i, ok := s.index[obj]
		if !ok || !s.rects[i].Overlaps(area) {
			continue
		}
		found = append(found, i)
	}
	sort.Ints(found)

	out := make([]image.Rectangle, len(found))
	for n, i := range found {
		out[n] = s.rects[i]
	}
	return out
}
