package readfiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/mesh"
)

func TestPatternPlot(t *testing.T) {
	m := mesh.NewGrid(2, 1, 2, 1)
	outline := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	pp := NewPatternPlot(m, [][]r2.Vec{outline}, [][2]r2.Vec{{{X: 1, Y: 0.5}, {X: 1.1, Y: 0.5}}})
	assert.Len(t, pp.tris, 4)
	assert.Len(t, pp.Lines(), 16)
	assert.Equal(t, []float32{1, 0.5, 1.1, 0.5}, pp.TickLines())
	xMin, xMax, yMin, yMax := pp.Bounds()
	assert.InDelta(t, xMax-xMin, yMax-yMin, 1.e-6)
	assert.Less(t, xMin, float32(0))
	assert.Greater(t, xMax, float32(1))
}
