package mesh

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/types"
)

const (
	AttrInitialVolume  = "InitialVolume"
	AttrUVtoWorldScale = "UVtoWorldScale"
)

/*
Face is an ordered vertex loop. UVs holds one coordinate per corner, parallel to Verts, and is nil
when the mesh carries no UV layer.
*/
type Face struct {
	Verts []int
	UVs   []r2.Vec
}

func (f Face) Len() int { return len(f.Verts) }

// Corner returns the position of vertex v in the face loop, or -1
func (f Face) Corner(v int) int {
	for c, fv := range f.Verts {
		if fv == v {
			return c
		}
	}
	return -1
}

// Next returns the corner following c in loop order
func (f Face) Next(c int) int { return (c + 1) % len(f.Verts) }

func (f Face) Prev(c int) int { return (c + len(f.Verts) - 1) % len(f.Verts) }

func (f Face) UV(c int) (uv r2.Vec) {
	if f.UVs != nil {
		uv = f.UVs[c]
	}
	return
}

type Edge struct {
	Verts [2]int
	Seam  bool
}

func (e Edge) Key() types.EdgeKey { return types.NewEdgeKey(e.Verts) }

/*
Mesh is the explicit handle passed between every pipeline stage. The caller owns it, stages mutate it in
place. Any structural edit (cut, weld, subdivide) invalidates Topology snapshots and previously held
edge or face indices unless the edit documents otherwise.
*/
type Mesh struct {
	Name       string
	Verts      []r3.Vec
	Edges      []Edge
	Faces      []Face
	HasUV      bool
	Attributes map[string]float64
	edgeIndex  map[types.EdgeKey]int
}

func NewMesh(name string) (m *Mesh) {
	m = &Mesh{
		Name:       name,
		Attributes: make(map[string]float64),
		edgeIndex:  make(map[types.EdgeKey]int),
	}
	return
}

func (m *Mesh) AddVertex(p r3.Vec) int {
	m.Verts = append(m.Verts, p)
	return len(m.Verts) - 1
}

// AddEdge returns the index of edge a-b, creating it when absent
func (m *Mesh) AddEdge(a, b int) int {
	if a == b {
		panic(fmt.Errorf("degenerate edge [%d,%d]", a, b))
	}
	key := types.NewEdgeKey([2]int{a, b})
	if e, ok := m.edgeIndex[key]; ok {
		return e
	}
	m.Edges = append(m.Edges, Edge{Verts: [2]int{a, b}})
	m.edgeIndex[key] = len(m.Edges) - 1
	return len(m.Edges) - 1
}

func (m *Mesh) FindEdge(a, b int) (e int, ok bool) {
	if a == b || a < 0 || b < 0 {
		return -1, false
	}
	e, ok = m.edgeIndex[types.NewEdgeKey([2]int{a, b})]
	return
}

func (m *Mesh) SetSeam(a, b int, seam bool) (err error) {
	e, ok := m.FindEdge(a, b)
	if !ok {
		return fmt.Errorf("no edge between vertices %d and %d", a, b)
	}
	m.Edges[e].Seam = seam
	return
}

// AddFace appends a face and registers its edges. uvs may be nil.
func (m *Mesh) AddFace(verts []int, uvs []r2.Vec) (f int, err error) {
	if len(verts) < 3 {
		return -1, fmt.Errorf("face needs at least 3 vertices, have %d", len(verts))
	}
	if uvs != nil && len(uvs) != len(verts) {
		return -1, fmt.Errorf("face has %d vertices but %d UVs", len(verts), len(uvs))
	}
	for i, v := range verts {
		if v < 0 || v >= len(m.Verts) {
			return -1, fmt.Errorf("face vertex %d out of range [0,%d)", v, len(m.Verts))
		}
		if v == verts[(i+1)%len(verts)] {
			return -1, fmt.Errorf("face repeats vertex %d in consecutive corners", v)
		}
	}
	face := Face{Verts: append([]int(nil), verts...)}
	if uvs != nil {
		face.UVs = append([]r2.Vec(nil), uvs...)
	}
	m.Faces = append(m.Faces, face)
	for i, v := range verts {
		m.AddEdge(v, verts[(i+1)%len(verts)])
	}
	return len(m.Faces) - 1, nil
}

// FaceEdges lists the edge indices of face f in corner order, edge c joins corner c and c+1
func (m *Mesh) FaceEdges(f int) (edges []int) {
	face := m.Faces[f]
	edges = make([]int, face.Len())
	for c, v := range face.Verts {
		e, ok := m.FindEdge(v, face.Verts[face.Next(c)])
		if !ok {
			panic(fmt.Errorf("face %d edge [%d,%d] is not registered", f, v, face.Verts[face.Next(c)]))
		}
		edges[c] = e
	}
	return
}

func (m *Mesh) Clone() (mc *Mesh) {
	mc = NewMesh(m.Name)
	mc.Verts = append([]r3.Vec(nil), m.Verts...)
	mc.Edges = append([]Edge(nil), m.Edges...)
	mc.Faces = make([]Face, len(m.Faces))
	for i, f := range m.Faces {
		mc.Faces[i].Verts = append([]int(nil), f.Verts...)
		if f.UVs != nil {
			mc.Faces[i].UVs = append([]r2.Vec(nil), f.UVs...)
		}
	}
	mc.HasUV = m.HasUV
	for k, v := range m.Attributes {
		mc.Attributes[k] = v
	}
	mc.reindex()
	return
}

func (m *Mesh) reindex() {
	m.edgeIndex = make(map[types.EdgeKey]int, len(m.Edges))
	for i, e := range m.Edges {
		m.edgeIndex[e.Key()] = i
	}
}

func (m *Mesh) SeamEdges() (seams IndexSet) {
	seams = NewIndexSet()
	for i, e := range m.Edges {
		if e.Seam {
			seams.Add(i)
		}
	}
	return
}

func (m *Mesh) HasSeams() bool {
	for _, e := range m.Edges {
		if e.Seam {
			return true
		}
	}
	return false
}

func (m *Mesh) EdgeLength(e int) float64 {
	ev := m.Edges[e].Verts
	return r3.Norm(r3.Sub(m.Verts[ev[1]], m.Verts[ev[0]]))
}

// Attribute reads a custom object attribute
func (m *Mesh) Attribute(name string) (val float64, ok bool) {
	val, ok = m.Attributes[name]
	return
}

// SetAttribute writes a custom object attribute unless it already exists, returning whether it was written
func (m *Mesh) SetAttribute(name string, val float64, overwrite bool) bool {
	if _, ok := m.Attributes[name]; ok && !overwrite {
		return false
	}
	m.Attributes[name] = val
	return true
}

func (m *Mesh) AttributeNames() (names []string) {
	for k := range m.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

func (m *Mesh) String() string {
	var seams int
	for _, e := range m.Edges {
		if e.Seam {
			seams++
		}
	}
	return fmt.Sprintf("mesh %q: %d verts, %d edges (%d seams), %d faces, uv=%v",
		m.Name, len(m.Verts), len(m.Edges), seams, len(m.Faces), m.HasUV)
}
