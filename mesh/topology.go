package mesh

/*
Topology is a snapshot of the mesh adjacency. It is not updated by edits, callers rebuild it after any
structural change.
*/
type Topology struct {
	EdgeFaces [][]int // faces using each edge
	VertEdges [][]int // edges incident to each vertex
	VertFaces [][]int // faces using each vertex
}

func (m *Mesh) BuildTopology() (tp *Topology) {
	tp = &Topology{
		EdgeFaces: make([][]int, len(m.Edges)),
		VertEdges: make([][]int, len(m.Verts)),
		VertFaces: make([][]int, len(m.Verts)),
	}
	for e, edge := range m.Edges {
		for _, v := range edge.Verts {
			tp.VertEdges[v] = append(tp.VertEdges[v], e)
		}
	}
	for f := range m.Faces {
		for _, v := range m.Faces[f].Verts {
			tp.VertFaces[v] = append(tp.VertFaces[v], f)
		}
		for _, e := range m.FaceEdges(f) {
			tp.EdgeFaces[e] = append(tp.EdgeFaces[e], f)
		}
	}
	return
}

// IsBoundaryEdge is true for an edge bordering exactly one face
func (tp *Topology) IsBoundaryEdge(e int) bool { return len(tp.EdgeFaces[e]) == 1 }

// IsWireEdge is true for an edge with no adjacent face
func (tp *Topology) IsWireEdge(e int) bool { return len(tp.EdgeFaces[e]) == 0 }

func (tp *Topology) IsManifoldEdge(e int) bool { return len(tp.EdgeFaces[e]) == 2 }

func (tp *Topology) BoundaryVert(v int) bool {
	for _, e := range tp.VertEdges[v] {
		if tp.IsBoundaryEdge(e) {
			return true
		}
	}
	return false
}

// BoundaryVerts returns every vertex touching a boundary edge
func (tp *Topology) BoundaryVerts(m *Mesh) (verts IndexSet) {
	verts = NewIndexSet()
	for e := range tp.EdgeFaces {
		if tp.IsBoundaryEdge(e) {
			verts.Add(m.Edges[e].Verts[0])
			verts.Add(m.Edges[e].Verts[1])
		}
	}
	return
}

// Neighbors returns the vertices joined to v by an edge
func (tp *Topology) Neighbors(m *Mesh, v int) (nbrs []int) {
	for _, e := range tp.VertEdges[v] {
		ev := m.Edges[e].Verts
		if ev[0] == v {
			nbrs = append(nbrs, ev[1])
		} else {
			nbrs = append(nbrs, ev[0])
		}
	}
	return
}

/*
Islands flood fills the faces through edges shared by two or more faces. Each island lists its faces in
ascending order and islands are ordered by their lowest face index, so the result is deterministic.
*/
func (tp *Topology) Islands(m *Mesh) (islands [][]int) {
	var (
		nf    = len(m.Faces)
		label = make([]int, nf)
	)
	for f := range label {
		label[f] = -1
	}
	for seed := 0; seed < nf; seed++ {
		if label[seed] >= 0 {
			continue
		}
		id := len(islands)
		island := []int{seed}
		label[seed] = id
		for stack := []int{seed}; len(stack) > 0; {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range m.FaceEdges(f) {
				if len(tp.EdgeFaces[e]) < 2 {
					continue
				}
				for _, g := range tp.EdgeFaces[e] {
					if label[g] < 0 {
						label[g] = id
						island = append(island, g)
						stack = append(stack, g)
					}
				}
			}
		}
		islands = append(islands, NewIndexSet(island...).Sorted())
	}
	return
}

// IslandVerts returns the sorted vertices used by the faces of one island
func (m *Mesh) IslandVerts(island []int) []int {
	verts := NewIndexSet()
	for _, f := range island {
		for _, v := range m.Faces[f].Verts {
			verts.Add(v)
		}
	}
	return verts.Sorted()
}
