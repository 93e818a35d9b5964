package markers

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/utils"
)

var log = utils.NamedLogger("markers")

// Marker is an alignment tick at a boundary vertex. Both sides of one cut share Label and Color.
type Marker struct {
	Vert  int
	Pos   r2.Vec // UV position of the vertex
	Dir   r2.Vec // unit outward direction in UV space
	Label int    // lowest wire seam edge index of the connected seam component
	Color string
}

// MarkWireSeams flags every edge without faces as a seam
func MarkWireSeams(m *mesh.Mesh, tp *mesh.Topology) (marked int) {
	for e := range m.Edges {
		if tp.IsWireEdge(e) && !m.Edges[e].Seam {
			m.Edges[e].Seam = true
			marked++
		}
	}
	return
}

/*
Generate places a marker on every boundary vertex touching a wire seam edge. Wire seam edges are grouped into
components joined through shared vertices and a component is labelled with its lowest edge index. The mode auto
first marks every wire edge as a seam.
*/
func Generate(m *mesh.Mesh, mode types.MarkerMode) (markers []Marker) {
	if mode == types.MarkersOff {
		return
	}
	tp := m.BuildTopology()
	if mode == types.MarkersAuto {
		if n := MarkWireSeams(m, tp); n > 0 {
			log.Debugf("marked %d wire edges as seams", n)
		}
	}
	anchors := componentAnchors(m, tp)
	if len(anchors) == 0 {
		return
	}
	labels := make(map[int]bool)
	verts := make([]int, 0, len(anchors))
	for v := range anchors {
		verts = append(verts, v)
	}
	sort.Ints(verts)
	for _, v := range verts {
		if !tp.BoundaryVert(v) {
			continue
		}
		dir, ok := tickDirection(m, tp, v)
		if !ok {
			log.Warnf("vertex %d: no boundary direction, marker skipped", v)
			continue
		}
		label := anchors[v]
		labels[label] = true
		markers = append(markers, Marker{
			Vert:  v,
			Pos:   vertexUV(m, tp, v),
			Dir:   dir,
			Label: label,
			Color: AnchorColor(label),
		})
	}
	log.Infof("%d alignment markers, %d labels", len(markers), len(labels))
	return
}

// componentAnchors maps every vertex of a wire seam edge to the anchor of its component
func componentAnchors(m *mesh.Mesh, tp *mesh.Topology) (anchors map[int]int) {
	var (
		g     = simple.NewUndirectedGraph()
		wires []int
	)
	for e, edge := range m.Edges {
		if !edge.Seam || !tp.IsWireEdge(e) {
			continue
		}
		wires = append(wires, e)
		g.SetEdge(g.NewEdge(simple.Node(edge.Verts[0]), simple.Node(edge.Verts[1])))
	}
	anchors = make(map[int]int)
	if len(wires) == 0 {
		return
	}
	component := make(map[int]int)
	for id, nodes := range topo.ConnectedComponents(g) {
		for _, n := range nodes {
			component[int(n.ID())] = id
		}
	}
	lowest := make(map[int]int)
	for _, e := range wires {
		id := component[m.Edges[e].Verts[0]]
		if low, ok := lowest[id]; !ok || e < low {
			lowest[id] = e
		}
	}
	for v, id := range component {
		anchors[v] = lowest[id]
	}
	return
}

/*
tickDirection sums the UV direction of every boundary edge at v, taken along its own face loop, and turns the
resulting boundary tangent a quarter turn clockwise. For a counter-clockwise chart that points out of the island.
*/
func tickDirection(m *mesh.Mesh, tp *mesh.Topology, v int) (dir r2.Vec, ok bool) {
	var tangent r2.Vec
	for _, e := range tp.VertEdges[v] {
		if !tp.IsBoundaryEdge(e) {
			continue
		}
		face := m.Faces[tp.EdgeFaces[e][0]]
		for c := range face.Verts {
			n := face.Next(c)
			a, b := face.Verts[c], face.Verts[n]
			if (a == m.Edges[e].Verts[0] && b == m.Edges[e].Verts[1]) ||
				(a == m.Edges[e].Verts[1] && b == m.Edges[e].Verts[0]) {
				tangent = r2.Add(tangent, r2.Sub(face.UV(n), face.UV(c)))
				break
			}
		}
	}
	return utils.Normalize2(utils.Perp2(tangent))
}

func vertexUV(m *mesh.Mesh, tp *mesh.Topology, v int) r2.Vec {
	var uvs []r2.Vec
	for _, f := range tp.VertFaces[v] {
		if c := m.Faces[f].Corner(v); c >= 0 {
			uvs = append(uvs, m.Faces[f].UV(c))
		}
	}
	return utils.Mean2(uvs)
}

// AnchorColor is a fully saturated colour whose hue comes from a multiplicative hash of the anchor
func AnchorColor(anchor int) string {
	h := float64(uint32(anchor)*2654435761) / math.Exp2(32)
	return utils.HexColor(utils.HSVToRGB(h, 1, 1))
}
