package cutter

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

// corner addresses vertex v as used by face f
type corner struct {
	face, vert int
}

/*
wedgeClasses groups the faces around v into fans that are joined across edges at v which are not cut and
border more than one face. Classes are ordered by their lowest face index.
*/
func wedgeClasses(tp *mesh.Topology, v int, cut mesh.IndexSet) (classes [][]int) {
	parent := make(map[int]int, len(tp.VertFaces[v]))
	for _, f := range tp.VertFaces[v] {
		parent[f] = f
	}
	find := func(f int) int {
		for parent[f] != f {
			parent[f] = parent[parent[f]]
			f = parent[f]
		}
		return f
	}
	for _, e := range tp.VertEdges[v] {
		if cut.Has(e) {
			continue
		}
		ef := tp.EdgeFaces[e]
		for i := 1; i < len(ef); i++ {
			ra, rb := find(ef[0]), find(ef[i])
			switch {
			case ra < rb:
				parent[rb] = ra
			case rb < ra:
				parent[ra] = rb
			}
		}
	}
	byRoot := make(map[int][]int)
	for f := range parent {
		r := find(f)
		byRoot[r] = append(byRoot[r], f)
	}
	roots := make([]int, 0, len(byRoot))
	for r := range byRoot {
		roots = append(roots, r)
	}
	sort.Ints(roots)
	for _, r := range roots {
		class := byRoot[r]
		sort.Ints(class)
		classes = append(classes, class)
	}
	return
}

/*
splitVerts gives every face class around each listed vertex its own copy of the vertex. The first class keeps
the original index. With width > 0 each copy is pulled toward the centre of its class faces by at most width.
*/
func splitVerts(m *mesh.Mesh, tp *mesh.Topology, verts []int, cut mesh.IndexSet,
	width float64) (remap map[corner]int, split int) {
	remap = make(map[corner]int)
	for _, v := range verts {
		classes := wedgeClasses(tp, v, cut)
		if len(classes) < 2 {
			continue
		}
		p := m.Verts[v]
		for k, class := range classes {
			nv := v
			if k > 0 {
				nv = m.AddVertex(p)
				split++
			}
			if width > 0 {
				m.Verts[nv] = pullToward(m, class, p, width)
			}
			for _, f := range class {
				remap[corner{f, v}] = nv
			}
		}
	}
	return
}

func pullToward(m *mesh.Mesh, faces []int, p r3.Vec, width float64) r3.Vec {
	centers := make([]r3.Vec, len(faces))
	for i, f := range faces {
		centers[i] = m.FaceCenter(f)
	}
	d := r3.Sub(utils.Mean3(centers), p)
	dist := r3.Norm(d)
	if dist < utils.GEOMTOL {
		return p
	}
	step := width
	if step > 0.5*dist {
		step = 0.5 * dist
	}
	return r3.Add(p, r3.Scale(step/dist, d))
}

/*
rebuild renumbers face corners through remap and regenerates the edge list from the snapshot tp. Edges keep
their original order and seam flags, an edge split in two passes its flag to both copies. Face indices are
unchanged.
*/
func rebuild(m *mesh.Mesh, tp *mesh.Topology, remap map[corner]int) (err error) {
	newVert := func(f, v int) int {
		if nv, ok := remap[corner{f, v}]; ok {
			return nv
		}
		return v
	}
	nm := mesh.NewMesh(m.Name)
	nm.Verts = m.Verts
	nm.HasUV = m.HasUV
	nm.Attributes = m.Attributes
	for e, edge := range m.Edges {
		a, b := edge.Verts[0], edge.Verts[1]
		if len(tp.EdgeFaces[e]) == 0 {
			ne := nm.AddEdge(a, b)
			nm.Edges[ne].Seam = nm.Edges[ne].Seam || edge.Seam
			continue
		}
		for _, f := range tp.EdgeFaces[e] {
			ne := nm.AddEdge(newVert(f, a), newVert(f, b))
			nm.Edges[ne].Seam = nm.Edges[ne].Seam || edge.Seam
		}
	}
	for f, face := range m.Faces {
		verts := make([]int, face.Len())
		for c, v := range face.Verts {
			verts[c] = newVert(f, v)
		}
		if _, err = nm.AddFace(verts, face.UVs); err != nil {
			return
		}
	}
	*m = *nm
	return
}

/*
SplitNonManifoldVerts separates faces that meet only at a vertex, giving each edge connected fan around such a
vertex its own copy. Returns the number of vertices added.
*/
func SplitNonManifoldVerts(m *mesh.Mesh) (split int, err error) {
	return SplitVerts(m, nil)
}

// SplitVerts is SplitNonManifoldVerts limited to the listed vertices, nil lists every vertex
func SplitVerts(m *mesh.Mesh, verts []int) (split int, err error) {
	tp := m.BuildTopology()
	if verts == nil {
		verts = make([]int, len(m.Verts))
		for v := range verts {
			verts[v] = v
		}
	}
	var remap map[corner]int
	if remap, split = splitVerts(m, tp, verts, mesh.NewIndexSet(), 0); split == 0 {
		return
	}
	err = rebuild(m, tp, remap)
	return
}
