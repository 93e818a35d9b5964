package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/cutter"
	"github.com/notargets/gopattern/mesh"
)

func TestTraceIslands(t *testing.T) {
	{ // Cube faces each have one square outline
		m := mesh.NewCube()
		mesh.MarkAllSeams(m)
		islands, err := cutter.Cut(m, &cutter.Split{})
		require.NoError(t, err)
		outlines := TraceAll(m, islands)
		require.Len(t, outlines, 6)
		for _, groups := range outlines {
			require.Len(t, groups, 1)
			g := groups[0]
			assert.True(t, g.Closed)
			assert.Len(t, g.Loops, 4)
			assert.Len(t, g.Points, 5)
			assert.Equal(t, g.Points[0], g.Points[4])
			assert.True(t, g.Curve().Closed())
		}
		assert.Equal(t, []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}},
			outlines[0][0].Points)
	}
	{ // An opened tube has one outline holding every boundary edge
		m := mesh.NewTube(8, 2, 1, 1)
		islands, err := cutter.Cut(m, &cutter.Split{})
		require.NoError(t, err)
		groups := TraceAll(m, islands)[0]
		require.Len(t, groups, 1)
		assert.True(t, groups[0].Closed)
		assert.Len(t, groups[0].Loops, 20)
		assert.Len(t, groups[0].Curve().Vertices(), 20)
	}
	{ // A hole gives a second outline
		m := mesh.NewGrid(3, 3, 3, 3)
		m.DeleteFaces(mesh.NewIndexSet(4))
		var island []int
		for f := range m.Faces {
			island = append(island, f)
		}
		groups := TraceIsland(m, m.BuildTopology(), island)
		require.Len(t, groups, 2)
		assert.Len(t, groups[0].Loops, 12)
		assert.Len(t, groups[1].Loops, 4)
		for _, g := range groups {
			assert.True(t, g.Closed)
			assert.True(t, g.Curve().Connected())
		}
	}
}

func TestTrace(t *testing.T) {
	uv := func(v int) r2.Vec { return r2.Vec{X: float64(v)} }
	loop := func(a, b int) Loop { return Loop{From: a, To: b, UVFrom: uv(a), UVTo: uv(b)} }
	{ // A loop stored backwards is reversed into the walk
		groups := Trace([]Loop{loop(0, 1), loop(2, 1), loop(2, 0)})
		require.Len(t, groups, 1)
		g := groups[0]
		assert.True(t, g.Closed)
		assert.Equal(t, []r2.Vec{uv(0), uv(1), uv(2), uv(0)}, g.Points)
		assert.Equal(t, 1, g.Loops[1].From)
		assert.Equal(t, 2, g.Loops[1].To)
	}
	{ // An open chain ends at its last vertex
		groups := Trace([]Loop{loop(0, 1), loop(1, 2), loop(5, 6)})
		require.Len(t, groups, 2)
		assert.False(t, groups[0].Closed)
		assert.Equal(t, []r2.Vec{uv(0), uv(1), uv(2)}, groups[0].Points)
		assert.Equal(t, []r2.Vec{uv(5), uv(6)}, groups[1].Points)
	}
	{
		assert.Len(t, Trace(nil), 0)
	}
}
