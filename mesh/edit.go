package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/utils"
)

/*
DeleteFaces removes the listed faces and keeps every edge and vertex, so edges that bordered a deleted face
become boundary or wire edges. Face indices above a deleted face shift down, edge and vertex indices are
unchanged.
*/
func (m *Mesh) DeleteFaces(faces IndexSet) (deleted int) {
	kept := m.Faces[:0]
	for f, face := range m.Faces {
		if faces.Has(f) {
			deleted++
			continue
		}
		kept = append(kept, face)
	}
	m.Faces = kept
	return
}

/*
WeldVertices merges each vertex v into target[v] (target[v] == v leaves it alone, chains are followed).
Faces drop the repeated corners this creates and disappear below three corners, edges that collapse to a point
are removed and duplicate edges keep the union of their seam flags. Vertices no longer used by a face or edge
are then compacted away. newIndex maps every old vertex to the new index of the vertex it was welded into,
-1 when that vertex was removed.
*/
func (m *Mesh) WeldVertices(target []int) (newIndex []int) {
	if len(target) != len(m.Verts) {
		panic(fmt.Errorf("weld target has %d entries for %d vertices", len(target), len(m.Verts)))
	}
	root := func(v int) int {
		for i := 0; target[v] != v; i++ {
			if i > len(target) {
				panic(fmt.Errorf("weld target has a cycle through vertex %d", v))
			}
			v = target[v]
		}
		return v
	}
	var (
		oldEdges = m.Edges
		oldFaces = m.Faces
	)
	m.Edges = nil
	m.Faces = nil
	m.edgeIndex = make(map[types.EdgeKey]int)
	for _, e := range oldEdges {
		a, b := root(e.Verts[0]), root(e.Verts[1])
		if a == b {
			continue
		}
		ne := m.AddEdge(a, b)
		m.Edges[ne].Seam = m.Edges[ne].Seam || e.Seam
	}
	for _, face := range oldFaces {
		var (
			verts []int
			uvs   []r2.Vec
		)
		for c, v := range face.Verts {
			rv := root(v)
			if len(verts) > 0 && verts[len(verts)-1] == rv {
				continue
			}
			verts = append(verts, rv)
			if face.UVs != nil {
				uvs = append(uvs, face.UVs[c])
			}
		}
		for len(verts) > 1 && verts[0] == verts[len(verts)-1] {
			verts = verts[:len(verts)-1]
			if uvs != nil {
				uvs = uvs[:len(uvs)-1]
			}
		}
		if len(verts) < 3 {
			continue
		}
		if _, err := m.AddFace(verts, uvs); err != nil {
			panic(err)
		}
	}
	compact := m.Compact()
	newIndex = make([]int, len(target))
	for v := range target {
		newIndex[v] = compact[root(v)]
	}
	return
}

// Compact removes vertices not referenced by any face or edge and renumbers the rest in order
func (m *Mesh) Compact() (newIndex []int) {
	used := make([]bool, len(m.Verts))
	for _, e := range m.Edges {
		used[e.Verts[0]], used[e.Verts[1]] = true, true
	}
	for _, face := range m.Faces {
		for _, v := range face.Verts {
			used[v] = true
		}
	}
	newIndex = make([]int, len(m.Verts))
	verts := m.Verts[:0]
	for v, p := range m.Verts {
		if !used[v] {
			newIndex[v] = -1
			continue
		}
		newIndex[v] = len(verts)
		verts = append(verts, p)
	}
	m.Verts = verts
	for e := range m.Edges {
		m.Edges[e].Verts[0] = newIndex[m.Edges[e].Verts[0]]
		m.Edges[e].Verts[1] = newIndex[m.Edges[e].Verts[1]]
	}
	for f := range m.Faces {
		for c, v := range m.Faces[f].Verts {
			m.Faces[f].Verts[c] = newIndex[v]
		}
	}
	m.reindex()
	return
}

/*
SubdivideEdge inserts cuts evenly spaced vertices on edge e and splices them into every face using the edge,
interpolating the corner UVs. Edge e is reused for the first segment and the remaining segments are appended,
so other edge indices stay valid. The new vertices are returned in order from e.Verts[0] to e.Verts[1].
*/
func (m *Mesh) SubdivideEdge(e, cuts int) (newVerts []int) {
	if cuts < 1 {
		return
	}
	var (
		edge   = m.Edges[e]
		a, b   = edge.Verts[0], edge.Verts[1]
		pa, pb = m.Verts[a], m.Verts[b]
	)
	for i := 1; i <= cuts; i++ {
		t := float64(i) / float64(cuts+1)
		newVerts = append(newVerts, m.AddVertex(utils.Lerp3(pa, pb, t)))
	}
	chain := append(append([]int{a}, newVerts...), b)
	delete(m.edgeIndex, edge.Key())
	m.Edges[e].Verts = [2]int{chain[0], chain[1]}
	m.edgeIndex[m.Edges[e].Key()] = e
	for i := 1; i+1 < len(chain); i++ {
		ne := m.AddEdge(chain[i], chain[i+1])
		m.Edges[ne].Seam = edge.Seam
	}
	for f := range m.Faces {
		face := &m.Faces[f]
		for c := 0; c < face.Len(); c++ {
			n := face.Next(c)
			u, w := face.Verts[c], face.Verts[n]
			if !(u == a && w == b) && !(u == b && w == a) {
				continue
			}
			insert := make([]int, cuts)
			for i := range insert {
				if u == a {
					insert[i] = newVerts[i]
				} else {
					insert[i] = newVerts[cuts-1-i]
				}
			}
			verts := make([]int, 0, face.Len()+cuts)
			verts = append(verts, face.Verts[:c+1]...)
			verts = append(verts, insert...)
			verts = append(verts, face.Verts[c+1:]...)
			if face.UVs != nil {
				uvc, uvn := face.UVs[c], face.UVs[n]
				uvs := make([]r2.Vec, 0, face.Len()+cuts)
				uvs = append(uvs, face.UVs[:c+1]...)
				for i := 1; i <= cuts; i++ {
					t := float64(i) / float64(cuts+1)
					uvs = append(uvs, r2.Add(uvc, r2.Scale(t, r2.Sub(uvn, uvc))))
				}
				uvs = append(uvs, face.UVs[c+1:]...)
				face.UVs = uvs
			}
			face.Verts = verts
			break
		}
	}
	return
}

/*
SplitFace replaces face f by triangles whose entries are corner positions within f. The first triangle takes
over index f, the others are appended. New diagonals are registered as non-seam edges.
*/
func (m *Mesh) SplitFace(f int, tris [][3]int) (faces []int, err error) {
	if len(tris) == 0 {
		return nil, fmt.Errorf("face %d: no triangles to replace it with", f)
	}
	face := m.Faces[f]
	build := func(tri [3]int) (verts []int, uvs []r2.Vec) {
		verts = []int{face.Verts[tri[0]], face.Verts[tri[1]], face.Verts[tri[2]]}
		if face.UVs != nil {
			uvs = []r2.Vec{face.UVs[tri[0]], face.UVs[tri[1]], face.UVs[tri[2]]}
		}
		return
	}
	for i, tri := range tris {
		for _, c := range tri {
			if c < 0 || c >= face.Len() {
				return nil, fmt.Errorf("face %d: corner %d out of range", f, c)
			}
		}
		verts, uvs := build(tri)
		if i == 0 {
			m.Faces[f] = Face{Verts: verts, UVs: uvs}
			for j := range verts {
				m.AddEdge(verts[j], verts[(j+1)%3])
			}
			faces = append(faces, f)
			continue
		}
		var nf int
		if nf, err = m.AddFace(verts, uvs); err != nil {
			return
		}
		faces = append(faces, nf)
	}
	return
}
