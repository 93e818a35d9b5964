package flatten

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/mesh"
)

/*
PackIslands translates the island charts in UV space into rows, tallest island first, leaving margin between
neighbours. Rows are filled up to the side of a square holding the total chart area. Returns the extent of the
layout.
*/
func PackIslands(m *mesh.Mesh, islands [][]int, margin float64) (width, height float64) {
	type box struct {
		idx    int
		lo, hi r2.Vec
	}
	var (
		boxes  = make([]box, len(islands))
		area   float64
		widest float64
	)
	for i, island := range islands {
		lo, hi := m.UVBounds(island)
		boxes[i] = box{i, lo, hi}
		area += (hi.X - lo.X + margin) * (hi.Y - lo.Y + margin)
		widest = math.Max(widest, hi.X-lo.X)
	}
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].hi.Y-boxes[i].lo.Y > boxes[j].hi.Y-boxes[j].lo.Y
	})
	var (
		rowWidth     = math.Max(math.Sqrt(area), widest)
		x, y, rowTop float64
	)
	for _, b := range boxes {
		w, h := b.hi.X-b.lo.X, b.hi.Y-b.lo.Y
		if x > 0 && x+w > rowWidth {
			x = 0
			y = rowTop + margin
		}
		m.TranslateUV(islands[b.idx], r2.Sub(r2.Vec{X: x, Y: y}, b.lo))
		width = math.Max(width, x+w)
		rowTop = math.Max(rowTop, y+h)
		x += w + margin
	}
	height = rowTop
	return
}
