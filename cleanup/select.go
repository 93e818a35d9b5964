package cleanup

import (
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/topology"
	"github.com/notargets/gopattern/types"
)

// SelectSeamChain selects the seam edges that do not touch a star junction
func SelectSeamChain(m *mesh.Mesh) mesh.IndexSet {
	return topology.Classify(m).Removable
}

// SelectBoundary selects every edge bordering exactly one face
func SelectBoundary(m *mesh.Mesh) (sel mesh.IndexSet) {
	tp := m.BuildTopology()
	sel = mesh.NewIndexSet()
	for e := range m.Edges {
		if tp.IsBoundaryEdge(e) {
			sel.Add(e)
		}
	}
	return
}

func selectionKeys(m *mesh.Mesh, sel mesh.IndexSet) (keys []types.EdgeKey) {
	for _, e := range sel.Sorted() {
		keys = append(keys, m.Edges[e].Key())
	}
	return
}

// resolve maps edge keys back to edge indices after vertices were renumbered by newIndex, nil keeps indices
func resolve(m *mesh.Mesh, keys []types.EdgeKey, newIndex []int) (sel mesh.IndexSet, kept []types.EdgeKey) {
	sel = mesh.NewIndexSet()
	for _, key := range keys {
		verts := key.GetVertices(false)
		if newIndex != nil {
			verts[0], verts[1] = newIndex[verts[0]], newIndex[verts[1]]
		}
		if e, ok := m.FindEdge(verts[0], verts[1]); ok && !sel.Has(e) {
			sel.Add(e)
			kept = append(kept, m.Edges[e].Key())
		}
	}
	return
}

// chainGraph lists the chain vertices of the selection in ascending order with their chain neighbours
func chainGraph(m *mesh.Mesh, sel mesh.IndexSet) (verts []int, nbrs map[int][]int) {
	nbrs = make(map[int][]int)
	set := mesh.NewIndexSet()
	for _, e := range sel.Sorted() {
		a, b := m.Edges[e].Verts[0], m.Edges[e].Verts[1]
		nbrs[a] = append(nbrs[a], b)
		nbrs[b] = append(nbrs[b], a)
		set.Add(a)
		set.Add(b)
	}
	return set.Sorted(), nbrs
}

/*
pinnedVerts applies the delimiters to the chain vertices. A vertex is held where more than two chain edges meet,
where an unselected boundary edge reaches the chain, or where an unselected seam bordering faces does. Wire seams
left between the two sides of a cut do not hold anything.
*/
func pinnedVerts(m *mesh.Mesh, sel mesh.IndexSet, verts []int, nbrs map[int][]int, opt Options) (pinned mesh.IndexSet) {
	tp := m.BuildTopology()
	pinned = mesh.NewIndexSet()
	for _, v := range verts {
		if opt.DelimitIntersections && len(nbrs[v]) > 2 {
			pinned.Add(v)
			continue
		}
		for _, e := range tp.VertEdges[v] {
			if sel.Has(e) {
				continue
			}
			if (opt.DelimitBoundary && tp.IsBoundaryEdge(e)) ||
				(opt.DelimitSeams && m.Edges[e].Seam && !tp.IsWireEdge(e)) {
				pinned.Add(v)
				break
			}
		}
	}
	return
}
