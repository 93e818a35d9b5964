package cutter

import (
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/types"
)

func edgeCounts(m *mesh.Mesh) (boundary, wire, seams int) {
	tp := m.BuildTopology()
	for e := range m.Edges {
		switch {
		case tp.IsBoundaryEdge(e):
			boundary++
		case tp.IsWireEdge(e):
			wire++
		}
		if m.Edges[e].Seam {
			seams++
		}
	}
	return
}

func TestCut(t *testing.T) {
	{ // Every cube edge cut gives six unit squares
		m := mesh.NewCube()
		mesh.MarkAllSeams(m)
		islands, err := Cut(m, NewBeveler(types.BevelSplit, 0))
		require.NoError(t, err)
		fmt.Println(m)
		assert.Equal(t, [][]int{{0}, {1}, {2}, {3}, {4}, {5}}, islands)
		assert.Len(t, m.Verts, 24)
		assert.Len(t, m.Edges, 48)
		for f := range m.Faces {
			assert.InDelta(t, 1., m.FaceArea(f), 1.e-12)
		}
		boundary, wire, seams := edgeCounts(m)
		assert.Equal(t, 24, boundary)
		assert.Equal(t, 24, wire)
		assert.Equal(t, 48, seams)
		// the bottom face keeps the original corner vertices
		assert.Equal(t, []int{0, 3, 2, 1}, m.Faces[0].Verts)
	}
	{ // A tube opens into a single sheet
		m := mesh.NewTube(8, 2, 1, 1)
		islands, err := Cut(m, &Split{})
		require.NoError(t, err)
		require.Len(t, islands, 1)
		assert.Len(t, islands[0], 16)
		assert.Len(t, m.Verts, 27)
		assert.Len(t, m.Edges, 45)
		boundary, wire, seams := edgeCounts(m)
		assert.Equal(t, 20, boundary)
		assert.Equal(t, 3, wire)
		assert.Equal(t, 7, seams)
		assert.InDelta(t, 16*0.5*2*math.Sin(math.Pi/8), m.Area(nil), 1.e-12)
	}
	{ // A chain across a sheet splits it in two
		m := mesh.NewGrid(4, 2, 4, 2)
		for i := 0; i < 4; i++ {
			require.NoError(t, m.SetSeam(mesh.GridVert(4, i, 1), mesh.GridVert(4, i+1, 1), true))
		}
		islands, err := Cut(m, &Split{})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}}, islands)
		assert.Len(t, m.Verts, 20)
		_, wire, _ := edgeCounts(m)
		assert.Equal(t, 5, wire)
	}
	{ // Seams only on the boundary cannot be cut
		m := mesh.NewGrid(1, 1, 1, 1)
		require.NoError(t, m.SetSeam(0, 1, true))
		_, err := Cut(m, &Split{})
		assert.True(t, errors.Is(err, ErrBoundarySeam))
		assert.Len(t, m.Verts, 4)
	}
	{ // Offset pulls each side toward its own faces
		m := mesh.NewCube()
		mesh.MarkAllSeams(m)
		islands, err := Cut(m, NewBeveler(types.BevelOffset, 0.1))
		require.NoError(t, err)
		assert.Len(t, islands, 6)
		for f := range m.Faces {
			area := m.FaceArea(f)
			assert.Less(t, area, 1.)
			assert.Greater(t, area, 0.5)
		}
	}
}

func TestSplitNonManifoldVerts(t *testing.T) {
	m := mesh.NewMesh("bowtie")
	for _, p := range []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {X: -1}, {X: -1, Y: -1}} {
		m.AddVertex(p)
	}
	_, err := m.AddFace([]int{0, 1, 2}, nil)
	require.NoError(t, err)
	_, err = m.AddFace([]int{0, 3, 4}, nil)
	require.NoError(t, err)
	split, err := SplitNonManifoldVerts(m)
	require.NoError(t, err)
	assert.Equal(t, 1, split)
	assert.Len(t, m.Verts, 6)
	assert.Equal(t, []int{5, 3, 4}, m.Faces[1].Verts)
	split, err = SplitNonManifoldVerts(m)
	require.NoError(t, err)
	assert.Equal(t, 0, split)
}
