package densify

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/geometry2D"
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

var log = utils.NamedLogger("densify")

/*
CutGroups buckets the listed edges that are longer than maxLen by the number of cut points each needs,
floor(length/maxLen). Every edge of one bucket is subdivided with the same cut count.
*/
func CutGroups(m *mesh.Mesh, edges mesh.IndexSet, maxLen float64) (groups map[int][]int) {
	groups = make(map[int][]int)
	if maxLen <= 0 {
		return
	}
	for _, e := range edges.Sorted() {
		l := m.EdgeLength(e)
		if l <= maxLen {
			continue
		}
		cuts := int(math.Floor(l / maxLen))
		groups[cuts] = append(groups[cuts], e)
	}
	return
}

/*
Seams subdivides every seam edge longer than maxLen and re-triangulates the faces that picked up new
corners. A mesh without seams, or a non positive maxLen, is left alone. Returns the number of vertices added.
*/
func Seams(m *mesh.Mesh, maxLen float64, progress utils.Progress) (added int, err error) {
	groups := CutGroups(m, m.SeamEdges(), maxLen)
	if len(groups) == 0 {
		return
	}
	if added, err = subdivide(m, groups, progress); err != nil {
		return
	}
	log.Infof("seam densify: %d cut groups, %d vertices added", len(groups), added)
	return
}

/*
Remesh refines the whole mesh to roughly targetTris triangles. The target edge length is the side of an
equilateral triangle carrying an equal share of the surface area, every longer edge is subdivided and then all
faces are triangulated.
*/
func Remesh(m *mesh.Mesh, targetTris int, progress utils.Progress) (added int, err error) {
	if targetTris <= 0 {
		return 0, errors.Errorf("remesh target of %d triangles", targetTris)
	}
	area := m.Area(nil)
	if area < utils.GEOMTOL {
		return 0, errors.Errorf("mesh %q has no surface area to remesh", m.Name)
	}
	var (
		maxLen = math.Sqrt(4 * area / float64(targetTris) / math.Sqrt(3))
		all    = mesh.NewIndexSet()
	)
	for e := range m.Edges {
		all.Add(e)
	}
	if added, err = subdivide(m, CutGroups(m, all, maxLen), progress); err != nil {
		return
	}
	faces := mesh.NewIndexSet()
	for f := range m.Faces {
		faces.Add(f)
	}
	if _, err = TriangulateFaces(m, faces); err != nil {
		return
	}
	log.Infof("remesh: edge length %8.5f, %d vertices added, %d faces", maxLen, added, len(m.Faces))
	return
}

func subdivide(m *mesh.Mesh, groups map[int][]int, progress utils.Progress) (added int, err error) {
	var (
		tp          = m.BuildTopology()
		touched     = mesh.NewIndexSet()
		counts      = make([]int, 0, len(groups))
		total, done int
	)
	for cuts, edges := range groups {
		counts = append(counts, cuts)
		total += len(edges)
	}
	sort.Ints(counts)
	for _, cuts := range counts {
		for _, e := range groups[cuts] {
			for _, f := range tp.EdgeFaces[e] {
				touched.Add(f)
			}
			added += len(m.SubdivideEdge(e, cuts))
			done++
			progress.Report(done, total)
		}
	}
	_, err = TriangulateFaces(m, touched)
	return
}

// TriangulateFaces splits every listed face with more than three corners using the beauty triangulation
func TriangulateFaces(m *mesh.Mesh, faces mesh.IndexSet) (created int, err error) {
	for _, f := range faces.Sorted() {
		face := m.Faces[f]
		if face.Len() <= 3 {
			continue
		}
		pts := make([]r3.Vec, face.Len())
		for c, v := range face.Verts {
			pts[c] = m.Verts[v]
		}
		tris := geometry2D.BeautyTriangulate(geometry2D.ProjectToPlane(pts))
		if _, err = m.SplitFace(f, tris); err != nil {
			return created, errors.Wrapf(err, "triangulating face %d", f)
		}
		created += len(tris) - 1
	}
	return
}
