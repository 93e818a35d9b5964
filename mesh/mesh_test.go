package mesh

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMeshBuild(t *testing.T) {
	{ // Cube
		m := NewCube()
		fmt.Println(m)
		assert.Equal(t, 8, len(m.Verts))
		assert.Equal(t, 12, len(m.Edges))
		assert.Equal(t, 6, len(m.Faces))
		assert.InDelta(t, 1., m.Volume(), 1.e-12)
		assert.InDelta(t, 6., m.Area(nil), 1.e-12)
		assert.InDelta(t, 6., m.UVArea([]int{0, 1, 2, 3, 4, 5}), 1.e-12)
		n, ok := m.FaceNormal(0)
		require.True(t, ok)
		assert.InDelta(t, -1., n.Z, 1.e-12)
		assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 1}, m.FaceCenter(1))
		assert.Len(t, m.Triangles(), 12)
		assert.False(t, m.HasSeams())

		e, ok := m.FindEdge(1, 0)
		require.True(t, ok)
		assert.Equal(t, e, m.AddEdge(0, 1))
		_, ok = m.FindEdge(0, 6)
		assert.False(t, ok)
		assert.Error(t, m.SetSeam(0, 6, true))
		require.NoError(t, m.SetSeam(0, 1, true))
		assert.Equal(t, []int{e}, m.SeamEdges().Sorted())

		_, err := m.AddFace([]int{0, 1}, nil)
		assert.Error(t, err)
		_, err = m.AddFace([]int{0, 1, 1}, nil)
		assert.Error(t, err)
		_, err = m.AddFace([]int{0, 1, 99}, nil)
		assert.Error(t, err)
	}
	{ // Clone is independent
		m := NewCube()
		m.Attributes[AttrInitialVolume] = 1
		mc := m.Clone()
		mc.Verts[0].X = 5
		mc.Faces[0].UVs[0].X = 5
		mc.Edges[0].Seam = true
		mc.Attributes[AttrInitialVolume] = 2
		assert.Equal(t, 0., m.Verts[0].X)
		assert.Equal(t, 0., m.Faces[0].UVs[0].X)
		assert.False(t, m.Edges[0].Seam)
		assert.Equal(t, 1., m.Attributes[AttrInitialVolume])
		_, ok := mc.FindEdge(0, 1)
		assert.True(t, ok)
	}
	{ // Attributes are written once unless overwritten
		m := NewCube()
		assert.True(t, m.SetAttribute(AttrInitialVolume, 1, false))
		assert.False(t, m.SetAttribute(AttrInitialVolume, 2, false))
		assert.True(t, m.SetAttribute(AttrUVtoWorldScale, 3, true))
		assert.Equal(t, []string{AttrInitialVolume, AttrUVtoWorldScale}, m.AttributeNames())
	}
}

func TestTopology(t *testing.T) {
	{ // Closed cube
		m := NewCube()
		tp := m.BuildTopology()
		for e := range m.Edges {
			assert.True(t, tp.IsManifoldEdge(e))
		}
		for v := range m.Verts {
			assert.Len(t, tp.VertEdges[v], 3)
			assert.Len(t, tp.VertFaces[v], 3)
			assert.False(t, tp.BoundaryVert(v))
		}
		assert.Equal(t, [][]int{{0, 1, 2, 3, 4, 5}}, tp.Islands(m))
		assert.ElementsMatch(t, []int{1, 3, 4}, tp.Neighbors(m, 0))
	}
	{ // Deleting faces keeps the edges
		m := NewCube()
		assert.Equal(t, 1, m.DeleteFaces(NewIndexSet(1)))
		assert.Equal(t, 12, len(m.Edges))
		tp := m.BuildTopology()
		var boundary int
		for e := range m.Edges {
			if tp.IsBoundaryEdge(e) {
				boundary++
			}
		}
		assert.Equal(t, 4, boundary)
		assert.Equal(t, []int{4, 5, 6, 7}, tp.BoundaryVerts(m).Sorted())
		// Remove every face, every edge is now a wire edge
		m.DeleteFaces(NewIndexSet(0, 1, 2, 3, 4))
		tp = m.BuildTopology()
		for e := range m.Edges {
			assert.True(t, tp.IsWireEdge(e))
		}
	}
	{ // Disconnected faces form separate islands
		m := NewCube()
		m.DeleteFaces(NewIndexSet(2, 3, 4, 5))
		tp := m.BuildTopology()
		assert.Equal(t, [][]int{{0}, {1}}, tp.Islands(m))
		assert.Equal(t, []int{4, 5, 6, 7}, m.IslandVerts([]int{1}))
	}
}

func TestEdit(t *testing.T) {
	{ // Subdivide a cube edge
		m := NewCube()
		e, _ := m.FindEdge(0, 1)
		// the bottom face registered this edge as [1,0]
		require.Equal(t, [2]int{1, 0}, m.Edges[e].Verts)
		newVerts := m.SubdivideEdge(e, 2)
		require.Len(t, newVerts, 2)
		assert.InDelta(t, 2./3, m.Verts[newVerts[0]].X, 1.e-12)
		assert.InDelta(t, 1./3, m.Verts[newVerts[1]].X, 1.e-12)
		assert.Equal(t, 14, len(m.Edges))
		assert.Equal(t, [2]int{1, newVerts[0]}, m.Edges[e].Verts)
		assert.Equal(t, []int{0, 3, 2, 1, newVerts[0], newVerts[1]}, m.Faces[0].Verts)
		assert.Equal(t, []int{0, newVerts[1], newVerts[0], 1, 5, 4}, m.Faces[2].Verts)
		assert.InDelta(t, 1./3, m.Faces[2].UVs[1].X, 1.e-12)
		assert.InDelta(t, 1., m.Volume(), 1.e-12)
		tp := m.BuildTopology()
		for e := range m.Edges {
			assert.True(t, tp.IsManifoldEdge(e))
		}
	}
	{ // Seam flags follow the subdivided segments
		m := NewCube()
		require.NoError(t, m.SetSeam(0, 1, true))
		e, _ := m.FindEdge(0, 1)
		m.SubdivideEdge(e, 3)
		assert.Equal(t, 4, m.SeamEdges().Len())
	}
	{ // Split a face into triangles
		m := NewCube()
		faces, err := m.SplitFace(0, [][3]int{{0, 1, 2}, {0, 2, 3}})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 6}, faces)
		assert.Equal(t, 7, len(m.Faces))
		assert.Equal(t, 13, len(m.Edges))
		assert.Equal(t, []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, m.Faces[6].UVs)
		assert.InDelta(t, 1., m.Volume(), 1.e-12)
		_, err = m.SplitFace(1, [][3]int{{0, 1, 7}})
		assert.Error(t, err)
	}
	{ // Weld collapses faces and edges
		m := NewGrid(1, 1, 1, 1)
		newIndex := m.WeldVertices([]int{0, 0, 2, 3})
		assert.Equal(t, []int{0, 0, 1, 2}, newIndex)
		assert.Equal(t, 3, len(m.Verts))
		assert.Equal(t, 3, len(m.Edges))
		require.Len(t, m.Faces, 1)
		// face 0,1,3,2 loses corner 1 and keeps its winding
		assert.Equal(t, []int{0, 2, 1}, m.Faces[0].Verts)
		assert.Len(t, m.Faces[0].UVs, 3)
	}
	{ // Merge by distance
		m := NewCube()
		v := m.AddVertex(r3.Vec{X: 1.e-6})
		m.AddEdge(v, 6)
		m.Edges[len(m.Edges)-1].Seam = true
		newIndex, merged := m.MergeByDistance(NewIndexSet(0, v, 6), 1.e-4)
		assert.Equal(t, 1, merged)
		assert.Equal(t, 0, newIndex[v])
		assert.Equal(t, 8, len(m.Verts))
		assert.Equal(t, 13, len(m.Edges))
		e, ok := m.FindEdge(0, 6)
		require.True(t, ok)
		assert.True(t, m.Edges[e].Seam)
		_, merged = m.MergeByDistance(NewIndexSet(0, 1, 2, 3), 1.e-4)
		assert.Equal(t, 0, merged)
	}
}

func TestFixtures(t *testing.T) {
	{
		m := NewGrid(2, 2, 2, 1)
		assert.Equal(t, 9, len(m.Verts))
		assert.Equal(t, 4, len(m.Faces))
		assert.InDelta(t, 2., m.Area(nil), 1.e-12)
		assert.InDelta(t, 1., m.UVArea([]int{0, 1, 2, 3}), 1.e-12)
		lo, hi := m.UVBounds([]int{0, 1, 2, 3})
		assert.Equal(t, r2.Vec{}, lo)
		assert.Equal(t, r2.Vec{X: 1, Y: 1}, hi)
		m.TranslateUV([]int{0}, r2.Vec{X: 1})
		assert.Equal(t, 1., m.Faces[0].UVs[0].X)
		assert.Equal(t, 4, GridVert(2, 1, 1))
	}
	{
		m := NewTube(8, 2, 1, 1)
		assert.Equal(t, 24, len(m.Verts))
		assert.Equal(t, 16, len(m.Faces))
		assert.Equal(t, 2, m.SeamEdges().Len())
		n, ok := m.FaceNormal(0)
		require.True(t, ok)
		c := m.FaceCenter(0)
		assert.Greater(t, n.X*c.X+n.Y*c.Y, 0.)
		tp := m.BuildTopology()
		assert.Len(t, tp.BoundaryVerts(m), 16)
	}
}
