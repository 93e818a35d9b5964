package unwrap

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

/*
AngleBased develops the island face by face. The largest face is laid out flat first, then a breadth first walk
across shared edges unfolds each neighbour about the edge it shares with the face it was reached from, which
keeps every face's angles and edge lengths exact. A vertex keeps the position it received first.
*/
type AngleBased struct{}

func (ab *AngleBased) Unwrap(m *mesh.Mesh, island []int) (err error) {
	if len(island) == 0 {
		return errors.Wrap(ErrUnwrapFailed, "empty island")
	}
	var (
		tp      = m.BuildTopology()
		inside  = mesh.NewIndexSet(island...)
		visited = mesh.NewIndexSet()
		uv      = make(map[int]r2.Vec)
		root    = island[0]
	)
	for _, f := range island {
		if m.FaceArea(f) > m.FaceArea(root) {
			root = f
		}
	}
	if err = placeRoot(m, root, uv); err != nil {
		return
	}
	visited.Add(root)
	for queue := []int{root}; len(queue) > 0; queue = queue[1:] {
		f := queue[0]
		for _, e := range m.FaceEdges(f) {
			for _, g := range tp.EdgeFaces[e] {
				if !inside.Has(g) || visited.Has(g) {
					continue
				}
				visited.Add(g)
				developAcross(m, g, m.Edges[e].Verts, uv)
				queue = append(queue, g)
			}
		}
	}
	if visited.Len() != len(island) {
		return errors.Wrapf(ErrUnwrapFailed, "reached %d of %d faces from face %d", visited.Len(), len(island), root)
	}
	return setVertexUVs(m, island, uv)
}

// localFrame returns the in-plane axes of face f with x along p0->p1
func localFrame(m *mesh.Mesh, f int, p0, p1 r3.Vec) (ex, ey r3.Vec, ok bool) {
	n, ok := m.FaceNormal(f)
	if !ok {
		return
	}
	if ex, ok = utils.Normalize3(r3.Sub(p1, p0)); !ok {
		return
	}
	ey = r3.Cross(n, ex)
	return
}

func placeRoot(m *mesh.Mesh, f int, uv map[int]r2.Vec) (err error) {
	var (
		verts  = m.Faces[f].Verts
		p0, p1 = m.Verts[verts[0]], m.Verts[verts[1]]
	)
	ex, ey, ok := localFrame(m, f, p0, p1)
	if !ok {
		return errors.Wrapf(ErrUnwrapFailed, "root face %d is degenerate", f)
	}
	for _, v := range verts {
		d := r3.Sub(m.Verts[v], p0)
		uv[v] = r2.Vec{X: r3.Dot(d, ex), Y: r3.Dot(d, ey)}
	}
	return
}

/*
developAcross places the unplaced corners of face g. The shared edge is already in the chart, g is rotated about
it into the chart plane on the side given by its own orientation.
*/
func developAcross(m *mesh.Mesh, g int, shared [2]int, uv map[int]r2.Vec) {
	face := m.Faces[g]
	c := face.Corner(shared[0])
	a, b := shared[0], shared[1]
	if face.Verts[face.Next(c)] != b {
		a, b = b, a
	}
	pa, pb := m.Verts[a], m.Verts[b]
	ex, ey, ok := localFrame(m, g, pa, pb)
	if !ok {
		// a zero area face collapses onto the shared edge
		ex, _ = utils.Normalize3(r3.Sub(pb, pa))
	}
	ua, ub := uv[a], uv[b]
	dx, okUV := utils.Normalize2(r2.Sub(ub, ua))
	if !okUV {
		dx = r2.Vec{X: 1}
	}
	dy := r2.Vec{X: -dx.Y, Y: dx.X}
	for _, v := range face.Verts {
		if _, placed := uv[v]; placed {
			continue
		}
		d := r3.Sub(m.Verts[v], pa)
		s, h := r3.Dot(d, ex), r3.Dot(d, ey)
		uv[v] = r2.Add(ua, r2.Add(r2.Scale(s, dx), r2.Scale(h, dy)))
	}
}
