package pattern

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopattern/InputParameters"
	"github.com/notargets/gopattern/mesh"
)

func seamedCube() *mesh.Mesh {
	m := mesh.NewCube()
	mesh.MarkAllSeams(m)
	return m
}

// labelCounts counts how many ticks carry each label
func labelCounts(labels []string) (counts map[string]int) {
	counts = make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	return
}

func TestRun(t *testing.T) {
	{ // A cube cut along every edge unfolds into six unit squares
		m := seamedCube()
		pp := InputParameters.Defaults()
		var calls int
		res, err := Run(m, pp, func(done, total int) { calls++ })
		require.NoError(t, err)
		require.Len(t, res.Islands, 6)
		assert.Greater(t, calls, 0)
		assert.Equal(t, 6, res.Flatten.Flattened)
		assert.NoError(t, res.Flatten.Skipped)
		assert.InDelta(t, 1., res.Flatten.Ratio, 1.e-9)
		for _, island := range res.Islands {
			assert.Len(t, island, 1)
			assert.InDelta(t, 1., res.Mesh.Area(island), 1.e-9)
			assert.InDelta(t, 1., res.Mesh.UVArea(island), 1.e-9)
		}
		vol, ok := res.Mesh.Attribute(mesh.AttrInitialVolume)
		require.True(t, ok)
		assert.InDelta(t, 1., vol, 1.e-12)
		ratio, ok := res.Mesh.Attribute(mesh.AttrUVtoWorldScale)
		require.True(t, ok)
		assert.InDelta(t, 1., ratio, 1.e-9)
		// the input is untouched when working on a duplicate
		assert.Len(t, m.Verts, 8)
		assert.Len(t, m.Faces, 6)
		_, ok = m.Attribute(mesh.AttrUVtoWorldScale)
		assert.False(t, ok)
		assert.Len(t, res.Mesh.Verts, 24)
	}
	{ // Without seams the run is cancelled before anything changes
		m := mesh.NewGrid(2, 2, 2, 2)
		before := m.Clone()
		pp := InputParameters.Defaults()
		pp.WorkOnDuplicate = false
		res, err := Run(m, pp, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoSeams))
		assert.Nil(t, res)
		assert.Equal(t, before.Verts, m.Verts)
		assert.Equal(t, before.Faces, m.Faces)
		assert.Empty(t, m.Attributes)
	}
	{ // Seams on the boundary or on a fan face alone cut nothing, the mesh is left as it was
		boundarySeams := mesh.NewGrid(2, 2, 2, 2)
		tp := boundarySeams.BuildTopology()
		for e := range boundarySeams.Edges {
			if tp.IsBoundaryEdge(e) {
				boundarySeams.Edges[e].Seam = true
			}
		}
		fan := mesh.NewGrid(3, 3, 3, 3)
		for _, pair := range [][2]int{{5, 6}, {6, 10}, {10, 9}, {9, 5}} {
			require.NoError(t, fan.SetSeam(pair[0], pair[1], true))
		}
		for _, m := range []*mesh.Mesh{boundarySeams, fan} {
			before := m.Clone()
			pp := InputParameters.Defaults()
			pp.WorkOnDuplicate = false
			pp.SeamMaxEdgeLength = 0.4
			res, err := Run(m, pp, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoSeams))
			assert.Nil(t, res)
			assert.Equal(t, before.Verts, m.Verts)
			assert.Equal(t, before.Faces, m.Faces)
			assert.Equal(t, before.SeamEdges(), m.SeamEdges())
			assert.Empty(t, m.Attributes)
		}
	}
	{ // Kept UVs smaller than the surface are scaled back, the ratio lands on the document scale
		m := seamedCube()
		for f := range m.Faces {
			for c := range m.Faces[f].UVs {
				m.Faces[f].UVs[c].X *= 0.5
				m.Faces[f].UVs[c].Y *= 0.25
			}
		}
		pp := InputParameters.Defaults()
		pp.UnwrapMethod = "keep-existing"
		res, err := Run(m, pp, nil)
		require.NoError(t, err)
		require.Len(t, res.Islands, 6)
		assert.InDelta(t, 2*math.Sqrt2, res.Flatten.Ratio, 1.e-9)
		ratio, ok := res.Mesh.Attribute(mesh.AttrUVtoWorldScale)
		require.True(t, ok)
		assert.InDelta(t, 2*math.Sqrt2, ratio, 1.e-9)
		for _, island := range res.Islands {
			assert.InDelta(t, 1., res.Mesh.Area(island), 1.e-9)
			assert.InDelta(t, 0.125, res.Mesh.UVArea(island), 1.e-9)
		}
		doc, _, _, err := Layout(res.Mesh, pp)
		require.NoError(t, err)
		assert.InDelta(t, pp.DocumentSize*2*math.Sqrt2, doc.Scale, 1.e-6)
	}
	{ // Keeping UVs needs a UV layer
		m := seamedCube()
		m.HasUV = false
		pp := InputParameters.Defaults()
		pp.UnwrapMethod = "keep-existing"
		_, err := Run(m, pp, nil)
		assert.True(t, errors.Is(err, ErrNoUVLayer))
	}
	{ // Bad parameters are refused up front
		pp := InputParameters.Defaults()
		pp.MarkerMode = "everything"
		_, err := Run(seamedCube(), pp, nil)
		assert.Error(t, err)
	}
	{ // A tube opened along one seam unrolls into a single sheet
		m := mesh.NewTube(8, 2, 1, 1)
		pp := InputParameters.Defaults()
		pp.WorkOnDuplicate = false
		res, err := Run(m, pp, nil)
		require.NoError(t, err)
		require.Len(t, res.Islands, 1)
		assert.Len(t, res.Islands[0], 16)
		assert.InDelta(t, 1., res.Flatten.Ratio, 1.e-6)
		assert.Same(t, m, res.Mesh)
	}
	{ // Modifiers run before the cut
		m := seamedCube()
		pp := InputParameters.Defaults()
		pp.ApplyModifiers = true
		pp.Modifiers = []string{"triangulate", "scale:2"}
		res, err := Run(m, pp, nil)
		require.NoError(t, err)
		require.Len(t, res.Islands, 6)
		for _, island := range res.Islands {
			assert.Len(t, island, 2)
			assert.InDelta(t, 4., res.Mesh.Area(island), 1.e-9)
		}
		vol, _ := res.Mesh.Attribute(mesh.AttrInitialVolume)
		assert.InDelta(t, 8., vol, 1.e-9)
	}
}

func TestLayout(t *testing.T) {
	{ // Cube corners join three pieces, every label is on three ticks
		pp := InputParameters.Defaults()
		res, err := Run(seamedCube(), pp, nil)
		require.NoError(t, err)
		doc, outlines, marks, err := Layout(res.Mesh, pp)
		require.NoError(t, err)
		assert.Len(t, outlines, 6)
		require.Len(t, doc.Paths, 6)
		for _, p := range doc.Paths {
			assert.True(t, p.Closed)
		}
		assert.Len(t, marks, 24)
		require.Len(t, doc.Ticks, 24)
		var labels []string
		for _, tk := range doc.Ticks {
			labels = append(labels, tk.Label)
		}
		counts := labelCounts(labels)
		assert.Len(t, counts, 8)
		tp := res.Mesh.BuildTopology()
		for label, n := range counts {
			assert.Equal(t, 3, n)
			// the printed label is the lowest wire seam edge index at the corner
			e, err := strconv.Atoi(label)
			require.NoError(t, err)
			assert.True(t, tp.IsWireEdge(e))
		}
		for _, mk := range marks {
			for _, e := range tp.VertEdges[mk.Vert] {
				if tp.IsWireEdge(e) {
					assert.LessOrEqual(t, mk.Label, e)
				}
			}
		}
		assert.InDelta(t, pp.DocumentSize, doc.Scale, 1.e-6)
	}
	{ // Both sides of the tube seam get the same labels
		pp := InputParameters.Defaults()
		res, err := Run(mesh.NewTube(8, 2, 1, 1), pp, nil)
		require.NoError(t, err)
		doc, _, _, err := Layout(res.Mesh, pp)
		require.NoError(t, err)
		require.Len(t, doc.Paths, 1)
		assert.True(t, doc.Paths[0].Closed)
		require.Len(t, doc.Ticks, 6)
		var labels []string
		for _, tk := range doc.Ticks {
			labels = append(labels, tk.Label)
		}
		counts := labelCounts(labels)
		assert.Len(t, counts, 3)
		for _, n := range counts {
			assert.Equal(t, 2, n)
		}
	}
	{ // Markers off
		pp := InputParameters.Defaults()
		pp.MarkerMode = "off"
		res, err := Run(seamedCube(), pp, nil)
		require.NoError(t, err)
		doc, _, _, err := Layout(res.Mesh, pp)
		require.NoError(t, err)
		assert.Empty(t, doc.Ticks)
	}
	{
		m := mesh.NewCube()
		m.HasUV = false
		_, _, _, err := Layout(m, InputParameters.Defaults())
		assert.True(t, errors.Is(err, ErrNoUVLayer))
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	pp := InputParameters.Defaults()
	res, err := Run(seamedCube(), pp, nil)
	require.NoError(t, err)
	{
		files, err := Export(res.Mesh, pp, filepath.Join(dir, "cube.svg"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		info, err := os.Stat(files[0])
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	{
		pp.OutputFormat = "tiles"
		files, err := Export(res.Mesh, pp, filepath.Join(dir, "cube.svg"))
		require.NoError(t, err)
		assert.Greater(t, len(files), 1)
		for _, f := range files {
			_, err = os.Stat(f)
			assert.NoError(t, err)
		}
	}
	{
		pp.OutputFormat = "dxf"
		files, err := Export(res.Mesh, pp, filepath.Join(dir, "cube.dxf"))
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "cube.dxf")}, files)
	}
}

func TestCleanup(t *testing.T) {
	m := mesh.NewGrid(4, 2, 4, 2)
	for i := 0; i < 4; i++ {
		require.NoError(t, m.SetSeam(mesh.GridVert(4, i, 1), mesh.GridVert(4, i+1, 1), true))
	}
	pp := InputParameters.Defaults()
	res, err := Cleanup(m, pp, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Collapsed)
	assert.Equal(t, 2, res.Selection.Len())

	pp.Cleanup.Boundary = true
	res, err = Cleanup(m, pp, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Selection.Len())

	// nothing selected
	res, err = Cleanup(mesh.NewGrid(1, 1, 1, 1), InputParameters.Defaults(), nil)
	require.NoError(t, err)
	assert.Nil(t, res.Selection)
}
