package unwrap

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

/*
Conformal is a least squares conformal map. Every face is fanned into triangles, each triangle contributes the
real and imaginary rows of its Cauchy-Riemann residual weighted by 1/sqrt(2*area), and the two vertices furthest
apart along the longest bounding box axis are pinned. The overdetermined sparse system is solved by conjugate
gradients on the normal equations.
*/
type Conformal struct {
	Tolerance     float64
	MaxIterations int
}

func (cf *Conformal) Unwrap(m *mesh.Mesh, island []int) (err error) {
	var (
		verts = m.IslandVerts(island)
		local = make(map[int]int, len(verts))
		tris  [][3]int
	)
	if len(verts) < 3 {
		return errors.Wrapf(ErrUnwrapFailed, "island has %d vertices", len(verts))
	}
	for i, v := range verts {
		local[v] = i
	}
	for _, f := range island {
		fv := m.Faces[f].Verts
		for i := 1; i+1 < len(fv); i++ {
			tris = append(tris, [3]int{fv[0], fv[i], fv[i+1]})
		}
	}
	pin0, pin1 := pinVerts(m, verts)
	var (
		pinned = map[int]r2.Vec{
			pin0: {},
			pin1: {X: r3.Norm(r3.Sub(m.Verts[pin1], m.Verts[pin0]))},
		}
		col = make(map[int]int, len(verts))
	)
	for _, v := range verts {
		if _, ok := pinned[v]; !ok {
			col[v] = 2 * len(col)
		}
	}
	var (
		nCols = 2 * len(col)
		A     = utils.NewDOK(2*len(tris), nCols, "LSCM")
		rhs   = make([]float64, 2*len(tris))
	)
	for t, tri := range tris {
		xy, area, ok := triangleCoords(m, tri)
		if !ok {
			continue
		}
		w := 1 / math.Sqrt(2*area)
		for j := 0; j < 3; j++ {
			var (
				k, l = (j + 1) % 3, (j + 2) % 3
				wRe  = (xy[l].X - xy[k].X) * w
				wIm  = (xy[l].Y - xy[k].Y) * w
				v    = tri[j]
			)
			if p, ok := pinned[v]; ok {
				rhs[2*t] -= wRe*p.X - wIm*p.Y
				rhs[2*t+1] -= wIm*p.X + wRe*p.Y
				continue
			}
			c := col[v]
			A.Add(2*t, c, wRe)
			A.Add(2*t, c+1, -wIm)
			A.Add(2*t+1, c, wIm)
			A.Add(2*t+1, c+1, wRe)
		}
	}
	x, iters, err := cf.solve(A.ToCSR(), rhs)
	if err != nil {
		return
	}
	log.Debugf("conformal map of %d vertices converged in %d iterations", len(verts), iters)
	uv := make(map[int]r2.Vec, len(verts))
	for v, p := range pinned {
		uv[v] = p
	}
	for v, c := range col {
		uv[v] = r2.Vec{X: x[c], Y: x[c+1]}
	}
	return setVertexUVs(m, island, uv)
}

// pinVerts picks the vertices with the smallest and largest coordinate along the longest bounding box axis
func pinVerts(m *mesh.Mesh, verts []int) (lo, hi int) {
	coord := func(p r3.Vec, axis int) float64 {
		return [3]float64{p.X, p.Y, p.Z}[axis]
	}
	var (
		axis   int
		extent = -1.
	)
	for ax := 0; ax < 3; ax++ {
		mn, mx := math.Inf(1), math.Inf(-1)
		for _, v := range verts {
			c := coord(m.Verts[v], ax)
			mn, mx = math.Min(mn, c), math.Max(mx, c)
		}
		if mx-mn > extent {
			axis, extent = ax, mx-mn
		}
	}
	lo, hi = verts[0], verts[0]
	for _, v := range verts {
		c := coord(m.Verts[v], axis)
		if c < coord(m.Verts[lo], axis) {
			lo = v
		}
		if c > coord(m.Verts[hi], axis) {
			hi = v
		}
	}
	return
}

// triangleCoords lays a 3D triangle into its own plane with the first vertex at the origin
func triangleCoords(m *mesh.Mesh, tri [3]int) (xy [3]r2.Vec, area float64, ok bool) {
	p0, p1, p2 := m.Verts[tri[0]], m.Verts[tri[1]], m.Verts[tri[2]]
	n := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
	area = 0.5 * r3.Norm(n)
	if area < utils.GEOMTOL*utils.GEOMTOL {
		return
	}
	ex, _ := utils.Normalize3(r3.Sub(p1, p0))
	ey := r3.Cross(r3.Scale(0.5/area, n), ex)
	for i, p := range []r3.Vec{p0, p1, p2} {
		d := r3.Sub(p, p0)
		xy[i] = r2.Vec{X: r3.Dot(d, ex), Y: r3.Dot(d, ey)}
	}
	return xy, area, true
}

// solve minimises |A x - b| with CGLS
func (cf *Conformal) solve(A utils.CSR, b []float64) (x []float64, iters int, err error) {
	_, nc := A.Dims()
	maxIter := cf.MaxIterations
	if maxIter <= 0 {
		maxIter = 10*nc + 100
	}
	tol := cf.Tolerance
	if tol <= 0 {
		tol = 1.e-10
	}
	x = make([]float64, nc)
	r := append([]float64(nil), b...)
	s := A.MulTransVec(r)
	p := append([]float64(nil), s...)
	gamma := floats.Dot(s, s)
	stop := tol * tol * math.Max(gamma, 1)
	for iters = 0; iters < maxIter && gamma > stop; iters++ {
		q := A.MulVec(p)
		qq := floats.Dot(q, q)
		if qq == 0 {
			break
		}
		alpha := gamma / qq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		s = A.MulTransVec(r)
		gammaNew := floats.Dot(s, s)
		beta := gammaNew / gamma
		gamma = gammaNew
		floats.Scale(beta, p)
		floats.Add(p, s)
	}
	if floats.HasNaN(x) {
		return nil, iters, errors.Wrap(ErrUnwrapFailed, "conformal solve diverged")
	}
	return
}
