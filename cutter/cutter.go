package cutter

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/utils"
)

var (
	log             = utils.NamedLogger("cutter")
	ErrBoundarySeam = errors.New("no interior seam edge to cut, seams on the mesh boundary are ignored")
)

/*
Beveler opens the mesh along the cut edges. Faces on either side of a cut edge stop sharing vertices and are
joined by new strip faces, which are returned so the caller can delete them.
*/
type Beveler interface {
	Bevel(m *mesh.Mesh, cut mesh.IndexSet) (strip mesh.IndexSet, err error)
}

func NewBeveler(kind types.BevelKind, width float64) Beveler {
	switch kind {
	case types.BevelOffset:
		return &Offset{Width: width}
	default:
		return &Split{}
	}
}

// Split duplicates the seam vertices in place, the two sides of the cut stay coincident
type Split struct{}

func (bv *Split) Bevel(m *mesh.Mesh, cut mesh.IndexSet) (strip mesh.IndexSet, err error) {
	return bevel(m, cut, 0)
}

// Offset pulls each side of the cut away from the seam line by Width
type Offset struct {
	Width float64
}

func (bv *Offset) Bevel(m *mesh.Mesh, cut mesh.IndexSet) (strip mesh.IndexSet, err error) {
	return bevel(m, cut, bv.Width)
}

type stripFace struct {
	verts [4]int
	uvs   [4]r2.Vec
}

func bevel(m *mesh.Mesh, cut mesh.IndexSet, width float64) (strip mesh.IndexSet, err error) {
	var (
		tp    = m.BuildTopology()
		verts = mesh.NewIndexSet()
	)
	for e := range cut {
		verts.Add(m.Edges[e].Verts[0])
		verts.Add(m.Edges[e].Verts[1])
	}
	remap, split := splitVerts(m, tp, verts.Sorted(), cut, width)
	newVert := func(f, v int) int {
		if nv, ok := remap[corner{f, v}]; ok {
			return nv
		}
		return v
	}
	var quads []stripFace
	for _, e := range cut.Sorted() {
		faces := tp.EdgeFaces[e]
		if len(faces) != 2 {
			continue
		}
		f1, f2 := faces[0], faces[1]
		// x -> y is the direction face f1 walks the edge
		c1 := edgeCorner(m.Faces[f1], m.Edges[e].Verts)
		x, y := m.Faces[f1].Verts[c1], m.Faces[f1].Verts[m.Faces[f1].Next(c1)]
		cx2, cy2 := m.Faces[f2].Corner(x), m.Faces[f2].Corner(y)
		quads = append(quads, stripFace{
			verts: [4]int{newVert(f1, y), newVert(f1, x), newVert(f2, x), newVert(f2, y)},
			uvs: [4]r2.Vec{m.Faces[f1].UV(m.Faces[f1].Next(c1)), m.Faces[f1].UV(c1),
				m.Faces[f2].UV(cx2), m.Faces[f2].UV(cy2)},
		})
	}
	if err = rebuild(m, tp, remap); err != nil {
		return nil, errors.Wrap(err, "rebuilding cut faces")
	}
	strip = mesh.NewIndexSet()
	for _, q := range quads {
		fv, fuv := dedupe(q)
		if len(fv) < 3 {
			continue
		}
		if !m.HasUV {
			fuv = nil
		}
		var f int
		if f, err = m.AddFace(fv, fuv); err != nil {
			return nil, errors.Wrap(err, "adding strip face")
		}
		strip.Add(f)
		for _, pair := range [][2]int{{q.verts[1], q.verts[2]}, {q.verts[3], q.verts[0]}} {
			if pair[0] != pair[1] {
				if err = m.SetSeam(pair[0], pair[1], true); err != nil {
					return
				}
			}
		}
	}
	log.Debugf("bevel: %d vertices split, %d strip faces", split, strip.Len())
	return
}

// edgeCorner finds the corner of face where the face walks along edge verts in either direction
func edgeCorner(face mesh.Face, verts [2]int) int {
	for c, v := range face.Verts {
		w := face.Verts[face.Next(c)]
		if (v == verts[0] && w == verts[1]) || (v == verts[1] && w == verts[0]) {
			return c
		}
	}
	return -1
}

func dedupe(q stripFace) (verts []int, uvs []r2.Vec) {
	for i, v := range q.verts {
		if v == q.verts[(i+1)%4] {
			continue
		}
		verts = append(verts, v)
		uvs = append(uvs, q.uvs[i])
	}
	return
}

/*
Cut opens m along every seam edge that borders two faces, deletes the strip faces the bevel creates and splits
vertices left shared between separate fans. The edges and vertices of the strip stay behind, the cross edges
as wire seam edges. Returns the face islands of the result.
*/
func Cut(m *mesh.Mesh, bv Beveler) (islands [][]int, err error) {
	var (
		tp      = m.BuildTopology()
		cut     = mesh.NewIndexSet()
		skipped int
	)
	for _, e := range m.SeamEdges().Sorted() {
		if tp.IsManifoldEdge(e) {
			cut.Add(e)
		} else {
			skipped++
		}
	}
	if skipped > 0 {
		log.Warnf("%d seam edges on the boundary or outside any face are not cut", skipped)
	}
	if cut.Len() == 0 {
		return nil, ErrBoundarySeam
	}
	var strip mesh.IndexSet
	if strip, err = bv.Bevel(m, cut); err != nil {
		return
	}
	deleted := m.DeleteFaces(strip)
	var split int
	if split, err = SplitNonManifoldVerts(m); err != nil {
		return nil, errors.Wrap(err, "splitting non manifold vertices")
	}
	islands = m.BuildTopology().Islands(m)
	log.Infof("cut %d seam edges, %d strip faces removed, %d vertices split, %d islands",
		cut.Len(), deleted, split, len(islands))
	return
}
