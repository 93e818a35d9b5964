package topology

import (
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

var log = utils.NamedLogger("topology")

// Classification flags seam edges, vertices and faces. It does not modify the mesh.
type Classification struct {
	SeamDegree []int         // number of seam edges at each vertex
	Boundary   mesh.IndexSet // vertices on the mesh boundary
	Star       mesh.IndexSet // seam edges touching a star junction, protected from collapse
	Removable  mesh.IndexSet // the remaining seam edges
	Fans       mesh.IndexSet // degenerate fan faces
}

/*
Classify sorts the seam edges of m. A vertex is a star junction when more than two seam edges meet there or
when it lies on the mesh boundary. A seam edge with a star junction at either end is protected, every other
seam edge is removable. A face is a degenerate fan when it has at least one seam edge, every seam edge at each
of its vertices belongs to the face itself, and none of its edges is on the boundary.
*/
func Classify(m *mesh.Mesh) (c *Classification) {
	tp := m.BuildTopology()
	c = &Classification{
		SeamDegree: make([]int, len(m.Verts)),
		Boundary:   tp.BoundaryVerts(m),
		Star:       mesh.NewIndexSet(),
		Removable:  mesh.NewIndexSet(),
		Fans:       mesh.NewIndexSet(),
	}
	for _, edge := range m.Edges {
		if edge.Seam {
			c.SeamDegree[edge.Verts[0]]++
			c.SeamDegree[edge.Verts[1]]++
		}
	}
	for e, edge := range m.Edges {
		if !edge.Seam {
			continue
		}
		if c.IsStarVert(edge.Verts[0]) || c.IsStarVert(edge.Verts[1]) {
			c.Star.Add(e)
		} else {
			c.Removable.Add(e)
		}
	}
	for f := range m.Faces {
		if isFan(m, tp, f) {
			c.Fans.Add(f)
		}
	}
	log.Debugf("%d star seams, %d removable seams, %d fan faces", c.Star.Len(), c.Removable.Len(), c.Fans.Len())
	return
}

func (c *Classification) IsStarVert(v int) bool {
	return c.SeamDegree[v] > 2 || c.Boundary.Has(v)
}

func isFan(m *mesh.Mesh, tp *mesh.Topology, f int) bool {
	var (
		faceEdges = m.FaceEdges(f)
		own       = mesh.NewIndexSet(faceEdges...)
		seams     int
	)
	for _, e := range faceEdges {
		if tp.IsBoundaryEdge(e) {
			return false
		}
		if m.Edges[e].Seam {
			seams++
		}
	}
	if seams == 0 {
		return false
	}
	for _, v := range m.Faces[f].Verts {
		for _, e := range tp.VertEdges[v] {
			if m.Edges[e].Seam && !own.Has(e) {
				return false
			}
		}
	}
	return true
}

// ClearFanSeams removes the seam flag from every edge of the listed faces so the cut does not leave slivers
func ClearFanSeams(m *mesh.Mesh, fans mesh.IndexSet) (cleared int) {
	for _, f := range fans.Sorted() {
		for _, e := range m.FaceEdges(f) {
			if m.Edges[e].Seam {
				m.Edges[e].Seam = false
				cleared++
			}
		}
	}
	if cleared > 0 {
		log.Infof("cleared %d seam edges on %d degenerate fan faces", cleared, fans.Len())
	}
	return
}
