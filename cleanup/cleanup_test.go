package cleanup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/cutter"
	"github.com/notargets/gopattern/mesh"
)

// chainSelection selects the horizontal edges of grid row j
func chainSelection(t *testing.T, m *mesh.Mesh, nx, j int) (sel mesh.IndexSet) {
	sel = mesh.NewIndexSet()
	for i := 0; i < nx; i++ {
		e, ok := m.FindEdge(mesh.GridVert(nx, i, j), mesh.GridVert(nx, i+1, j))
		require.True(t, ok)
		sel.Add(e)
	}
	return
}

func quietOptions() (opt Options) {
	opt = DefaultOptions()
	opt.RelaxIterations = 0
	opt.NeighborRadius = 0
	return
}

func TestCollapse(t *testing.T) {
	{ // One short edge collapses to its midpoint
		m := mesh.NewGrid(6, 2, 6, 2)
		m.Verts[mesh.GridVert(6, 4, 1)].X = 3.001
		sel := chainSelection(t, m, 6, 1)
		res, err := Run(m, sel, quietOptions())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Collapsed)
		assert.Equal(t, 1, res.Merged)
		assert.Equal(t, 20, len(m.Verts))
		assert.Equal(t, 12, len(m.Faces))
		assert.Equal(t, 5, res.Selection.Len())
		assert.InDelta(t, 3.0005, m.Verts[mesh.GridVert(6, 3, 1)].X, 1.e-12)
	}
	{ // Nothing to do leaves the mesh alone
		m := mesh.NewGrid(6, 2, 6, 2)
		before := append([]r3.Vec{}, m.Verts...)
		sel := chainSelection(t, m, 6, 1)
		res, err := Run(m, sel, quietOptions())
		require.NoError(t, err)
		assert.Equal(t, 0, res.Collapsed)
		assert.Equal(t, 0, res.Merged)
		assert.Equal(t, before, m.Verts)
		assert.Equal(t, sel, res.Selection)
	}
	{ // A chain of short edges collapses until the pinned ends stop it
		m := mesh.NewGrid(5, 2, 0.005, 2)
		sel := chainSelection(t, m, 5, 1)
		opt := quietOptions()
		opt.MinEdgeLength = 0.0025
		res, err := Run(m, sel, opt)
		require.NoError(t, err)
		fmt.Printf("collapsed %d, merged %d, %d edges left\n", res.Collapsed, res.Merged, res.Selection.Len())
		assert.Greater(t, res.Collapsed, 0)
		assert.LessOrEqual(t, res.Collapsed, 5)
		if res.Selection.Len() > 1 {
			for e := range res.Selection {
				a, b := m.Edges[e].Verts[0], m.Edges[e].Verts[1]
				assert.GreaterOrEqual(t, r3.Norm(r3.Sub(m.Verts[a], m.Verts[b])), opt.MinEdgeLength-1.e-12)
			}
		}
		// the boundary ends never move
		assert.Equal(t, 0., m.Verts[mesh.GridVert(5, 0, 1)].X)
	}
	{ // The merge set keeps a pinned position and refuses two pinned roots
		m := mesh.NewGrid(2, 1, 2, 1)
		ms := newMergeSet(m, []int{0, 1, 2}, mesh.NewIndexSet(0, 2))
		assert.True(t, ms.union(1, 0))
		assert.Equal(t, m.Verts[0], ms.pos[ms.find(1)])
		assert.False(t, ms.union(ms.find(1), 2))
	}
}

func TestCleanupCutBoundary(t *testing.T) {
	// A sheet cut along row 1, the cut has one edge shorter than the default threshold
	m := mesh.NewGrid(6, 2, 6, 2)
	m.Verts[mesh.GridVert(6, 4, 1)].X = 3.001
	for i := 0; i < 6; i++ {
		require.NoError(t, m.SetSeam(mesh.GridVert(6, i, 1), mesh.GridVert(6, i+1, 1), true))
	}
	islands, err := cutter.Cut(m, &cutter.Split{})
	require.NoError(t, err)
	require.Len(t, islands, 2)
	sel := SelectBoundary(m)
	assert.Equal(t, 28, sel.Len())
	{ // Nothing on a closed cut boundary is held by the delimiters
		verts, nbrs := chainGraph(m, sel)
		assert.Empty(t, pinnedVerts(m, sel, verts, nbrs, DefaultOptions()))
	}
	res, err := Run(m, sel, DefaultOptions())
	require.NoError(t, err)
	fmt.Printf("collapsed %d, merged %d, relaxed %d\n", res.Collapsed, res.Merged, res.Relaxed)
	// the short edge collapses on each side of the cut
	assert.Equal(t, 2, res.Collapsed)
	assert.Equal(t, 2, res.Merged)
	assert.Greater(t, res.Relaxed, 0)
	assert.Equal(t, 26, res.Selection.Len())
	// the two sides stay apart
	islands = m.BuildTopology().Islands(m)
	require.Len(t, islands, 2)
	shared := mesh.NewIndexSet(m.IslandVerts(islands[0])...)
	for _, v := range m.IslandVerts(islands[1]) {
		assert.False(t, shared.Has(v), "vertex %d is used by both sides", v)
	}
}

func TestRelax(t *testing.T) {
	{
		m := mesh.NewGrid(4, 2, 4, 2)
		m.Verts[mesh.GridVert(4, 2, 1)].Y = 1.5
		sel := chainSelection(t, m, 4, 1)
		opt := quietOptions()
		opt.MinEdgeLength = 0
		opt.RelaxIterations = 1
		res, err := Run(m, sel, opt)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Relaxed)
		assert.InDelta(t, 1.05, m.Verts[mesh.GridVert(4, 1, 1)].Y, 1.e-12)
		assert.InDelta(t, 1.4, m.Verts[mesh.GridVert(4, 2, 1)].Y, 1.e-12)
		assert.InDelta(t, 1.05, m.Verts[mesh.GridVert(4, 3, 1)].Y, 1.e-12)
		assert.InDelta(t, 1., m.Verts[mesh.GridVert(4, 1, 1)].X, 1.e-12)
		// boundary ends are pinned
		assert.Equal(t, 1., m.Verts[mesh.GridVert(4, 0, 1)].Y)
		assert.Equal(t, 1., m.Verts[mesh.GridVert(4, 4, 1)].Y)
	}
	{ // Without the boundary delimiter the ends have one chain neighbour and still stay put
		m := mesh.NewGrid(4, 2, 4, 2)
		sel := chainSelection(t, m, 4, 1)
		opt := quietOptions()
		opt.DelimitBoundary = false
		opt.RelaxIterations = 3
		res, err := Run(m, sel, opt)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Relaxed)
		assert.Equal(t, 0., m.Verts[mesh.GridVert(4, 0, 1)].X)
	}
}

func TestSmooth(t *testing.T) {
	m := mesh.NewGrid(4, 4, 4, 4)
	bump := mesh.GridVert(4, 2, 3)
	m.Verts[bump].Y = 3.4
	sel := chainSelection(t, m, 4, 2)
	opt := quietOptions()
	opt.MinEdgeLength = 0
	opt.NeighborRadius = 1
	opt.NeighborSmooth = 1
	res, err := Run(m, sel, opt)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Smoothed)
	assert.InDelta(t, 3., m.Verts[bump].Y, 0.05)
	assert.InDelta(t, 2., m.Verts[bump].X, 1.e-12)
	for i := 0; i <= 4; i++ {
		assert.Equal(t, 2., m.Verts[mesh.GridVert(4, i, 2)].Y)
		// the boundary row is left alone
		assert.Equal(t, 4., m.Verts[mesh.GridVert(4, i, 4)].Y)
	}
	assert.InDelta(t, 0.5, opt.SmoothFactor(), 1.e-12)
	opt.NeighborSmooth = 0.5
	assert.InDelta(t, 0.03125, opt.SmoothFactor(), 1.e-12)
}

func TestSelect(t *testing.T) {
	{
		m := mesh.NewGrid(4, 2, 4, 2)
		sel := SelectBoundary(m)
		assert.Equal(t, 12, sel.Len())
	}
	{ // An interior seam chain ending on the boundary keeps only the edges away from the star ends
		m := mesh.NewGrid(4, 2, 4, 2)
		for i := 0; i < 4; i++ {
			require.NoError(t, m.SetSeam(mesh.GridVert(4, i, 1), mesh.GridVert(4, i+1, 1), true))
		}
		assert.Equal(t, 2, SelectSeamChain(m).Len())
	}
	{ // Splitting poles on a bowtie chain
		m := mesh.NewMesh("bowtie")
		for _, p := range []r3.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}, {X: 2}, {X: 2, Y: 1}} {
			m.AddVertex(p)
		}
		_, err := m.AddFace([]int{0, 1, 2}, nil)
		require.NoError(t, err)
		_, err = m.AddFace([]int{1, 3, 4}, nil)
		require.NoError(t, err)
		e, _ := m.FindEdge(0, 1)
		opt := quietOptions()
		opt.RemovePoles = true
		res, err := Run(m, mesh.NewIndexSet(e), opt)
		require.NoError(t, err)
		assert.Equal(t, 1, res.PolesSplit)
		assert.Equal(t, 6, len(m.Verts))
		assert.Equal(t, 1, res.Selection.Len())
	}
}
