package cleanup

import (
	"github.com/pkg/errors"

	"github.com/notargets/gopattern/cutter"
	"github.com/notargets/gopattern/mesh"
)

type Result struct {
	PolesSplit int
	Collapsed  int
	Merged     int
	Relaxed    int
	Smoothed   int
	Selection  mesh.IndexSet // the selected edges after the clean up
}

/*
Run cleans up the selected edge chain in place: it splits poles when asked, collapses short chain edges and
welds the merged vertices, relaxes the chain and finally smooths the rings of vertices around
it. The selection is carried through the edits by its vertex pairs.
*/
func Run(m *mesh.Mesh, selection mesh.IndexSet, opt Options) (res Result, err error) {
	keys := selectionKeys(m, selection)
	sel := selection.Clone()
	if opt.RemovePoles {
		verts, _ := chainGraph(m, sel)
		if res.PolesSplit, err = cutter.SplitVerts(m, verts); err != nil {
			return res, errors.Wrap(err, "splitting poles")
		}
		sel, keys = resolve(m, keys, nil)
	}
	verts, nbrs := chainGraph(m, sel)
	pinned := pinnedVerts(m, sel, verts, nbrs, opt)
	if opt.MinEdgeLength > 0 && sel.Len() > 0 {
		edges := make([][2]int, 0, sel.Len())
		for _, e := range sel.Sorted() {
			edges = append(edges, m.Edges[e].Verts)
		}
		var groups [][]int
		res.Collapsed, groups = collapse(m, verts, edges, pinned, opt.MinEdgeLength, opt.Progress)
		if len(groups) > 0 {
			var newIndex []int
			newIndex, res.Merged = weldGroups(m, groups)
			sel, keys = resolve(m, keys, newIndex)
			verts, nbrs = chainGraph(m, sel)
			pinned = remapSet(pinned, newIndex)
		}
	}
	res.Relaxed = relax(m, verts, nbrs, pinned, opt.RelaxIterations)
	if opt.NeighborRadius > 0 {
		ring := ringVerts(m, verts, opt.NeighborRadius, opt.DelimitBoundary)
		smooth(m, ring, opt.SmoothFactor(), smoothPasses)
		res.Smoothed = len(ring)
	}
	res.Selection = sel
	log.Infof("clean up: %d collapsed, %d merged, %d relaxed, %d smoothed, %d selected edges left",
		res.Collapsed, res.Merged, res.Relaxed, res.Smoothed, len(keys))
	return
}

/*
weldGroups welds every merge group into its lowest vertex. Only members of one group are welded together, so the
two sides of a cut that collapse onto the same point stay apart.
*/
func weldGroups(m *mesh.Mesh, groups [][]int) (newIndex []int, merged int) {
	target := make([]int, len(m.Verts))
	for v := range target {
		target[v] = v
	}
	for _, g := range groups {
		for _, v := range g[1:] {
			target[v] = g[0]
			merged++
		}
	}
	newIndex = m.WeldVertices(target)
	return
}

func remapSet(s mesh.IndexSet, newIndex []int) (r mesh.IndexSet) {
	r = mesh.NewIndexSet()
	for v := range s {
		if nv := newIndex[v]; nv >= 0 {
			r.Add(nv)
		}
	}
	return
}
