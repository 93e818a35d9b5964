package cleanup

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

// snapshot copies the vertex positions into an N x 3 matrix
func snapshot(m *mesh.Mesh) (P *mat.Dense) {
	P = mat.NewDense(len(m.Verts), 3, nil)
	for v, p := range m.Verts {
		P.SetRow(v, []float64{p.X, p.Y, p.Z})
	}
	return
}

func row(P *mat.Dense, v int) r3.Vec {
	return r3.Vec{X: P.At(v, 0), Y: P.At(v, 1), Z: P.At(v, 2)}
}

/*
relax moves every unpinned chain vertex with exactly two chain neighbours a fixed fraction of the way to their
midpoint. Each iteration reads the positions from before the iteration.
*/
func relax(m *mesh.Mesh, verts []int, nbrs map[int][]int, pinned mesh.IndexSet, iterations int) (moved int) {
	var targets []int
	for _, v := range verts {
		if len(nbrs[v]) == 2 && !pinned.Has(v) {
			targets = append(targets, v)
		}
	}
	if len(targets) == 0 {
		return
	}
	for it := 0; it < iterations; it++ {
		P := snapshot(m)
		for _, v := range targets {
			mid := utils.Mid3(row(P, nbrs[v][0]), row(P, nbrs[v][1]))
			m.Verts[v] = utils.Lerp3(row(P, v), mid, relaxFactor)
		}
	}
	return len(targets)
}

/*
ringVerts grows the chain by whole faces radius times and returns the vertices reached that are not on the
chain, leaving out boundary vertices when the boundary delimits.
*/
func ringVerts(m *mesh.Mesh, chain []int, radius int, excludeBoundary bool) (ring []int) {
	var (
		tp      = m.BuildTopology()
		reached = mesh.NewIndexSet(chain...)
		front   = chain
	)
	for r := 0; r < radius; r++ {
		var next []int
		for _, v := range front {
			for _, f := range tp.VertFaces[v] {
				for _, w := range m.Faces[f].Verts {
					if !reached.Has(w) {
						reached.Add(w)
						next = append(next, w)
					}
				}
			}
		}
		front = next
	}
	onChain := mesh.NewIndexSet(chain...)
	for _, v := range reached.Sorted() {
		if onChain.Has(v) || (excludeBoundary && tp.BoundaryVert(v)) {
			continue
		}
		ring = append(ring, v)
	}
	return
}

/*
smooth applies Laplacian smoothing to the listed vertices. The umbrella operator is a sparse matrix whose
row for each smoothed vertex averages its edge neighbours, every pass moves the vertices by factor toward it.
*/
func smooth(m *mesh.Mesh, verts []int, factor float64, passes int) {
	if len(verts) == 0 || factor <= 0 {
		return
	}
	var (
		tp = m.BuildTopology()
		L  = utils.NewDOK(len(verts), len(m.Verts), "umbrella")
	)
	for i, v := range verts {
		nbrs := tp.Neighbors(m, v)
		for _, w := range nbrs {
			L.Add(i, w, 1/float64(len(nbrs)))
		}
	}
	Lc := L.ToCSR()
	for pass := 0; pass < passes; pass++ {
		P := snapshot(m)
		avg := make([][]float64, 3)
		for d := 0; d < 3; d++ {
			avg[d] = Lc.MulVec(mat.Col(nil, d, P))
		}
		for i, v := range verts {
			if len(tp.VertEdges[v]) == 0 {
				continue
			}
			target := r3.Vec{X: avg[0][i], Y: avg[1][i], Z: avg[2][i]}
			m.Verts[v] = utils.Lerp3(row(P, v), target, factor)
		}
	}
}
