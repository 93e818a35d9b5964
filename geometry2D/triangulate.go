package geometry2D

import (
	"math"

	"github.com/notargets/avs/geometry"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/utils"
)

func IsIllegalEdge(prX, prY, piX, piY, pjX, pjY, pkX, pkY float64) bool {
	/*
		pr is a new point for candidate triangle pi-pj-pr
		pi-pj is a shared edge between pi-pj-pk and pi-pj-pr
		if pr lies inside the circle defined by pi-pj-pk:
			- The edge pi-pj should be swapped with pr-pk to make two new triangles:
				pi-pr-pk and pr-pj-pk
	*/
	inCircle := func(ax, ay, bx, by, cx, cy, dx, dy float64) (inside bool) {
		// Calculate handedness, counter-clockwise is (positive) and clockwise is (negative)
		signBit := math.Signbit((bx-ax)*(cy-ay) - (cx-ax)*(by-ay))
		ax_ := ax - dx
		ay_ := ay - dy
		bx_ := bx - dx
		by_ := by - dy
		cx_ := cx - dx
		cy_ := cy - dy
		det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
			(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
			(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
		if signBit {
			return det < 0
		} else {
			return det > 0
		}
	}
	return inCircle(piX, piY, pjX, pjY, pkX, pkY, prX, prY)
}

// Orient2D is twice the signed area of a-b-c, positive when counter-clockwise
func Orient2D(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

func SignedArea(poly []r2.Vec) (area float64) {
	n := len(poly)
	for i := range poly {
		area += r2.Cross(poly[i], poly[(i+1)%n])
	}
	return 0.5 * area
}

// MinAngle returns the smallest interior angle of triangle a-b-c in radians
func MinAngle(a, b, c r2.Vec) float64 {
	angle := func(p, q, r r2.Vec) float64 {
		u, v := r2.Sub(q, p), r2.Sub(r, p)
		lu, lv := r2.Norm(u), r2.Norm(v)
		if lu < utils.NODETOL || lv < utils.NODETOL {
			return 0
		}
		return math.Acos(utils.Clamp(r2.Dot(u, v)/(lu*lv), -1, 1))
	}
	return math.Min(angle(a, b, c), math.Min(angle(b, c, a), angle(c, a, b)))
}

/*
ProjectToPlane maps a planar or nearly planar 3D polygon onto 2D coordinates in the plane of its Newell
normal, keeping the polygon winding so that a counter-clockwise face seen from its normal stays counter-clockwise.
*/
func ProjectToPlane(pts []r3.Vec) (proj []r2.Vec) {
	var n r3.Vec
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	nu, ok := utils.Normalize3(n)
	if !ok {
		nu = r3.Vec{Z: 1}
	}
	// any axis not parallel to the normal seeds the in-plane basis
	seed := r3.Vec{X: 1}
	if math.Abs(nu.X) > 0.9 {
		seed = r3.Vec{Y: 1}
	}
	e1, _ := utils.Normalize3(r3.Cross(seed, nu))
	e2 := r3.Cross(nu, e1)
	proj = make([]r2.Vec, len(pts))
	for i, p := range pts {
		proj[i] = r2.Vec{X: r3.Dot(p, e1), Y: r3.Dot(p, e2)}
	}
	return
}

/*
Triangulate splits a simple polygon into len(poly)-2 triangles by ear clipping. At each step the ear with the
largest minimum angle is clipped, which avoids long slivers. The triangles index into poly and are counter-clockwise
when poly is counter-clockwise.
*/
func Triangulate(poly []r2.Vec) (tris [][3]int) {
	n := len(poly)
	if n < 3 {
		return
	}
	var (
		idx = make([]int, n)
		ccw = SignedArea(poly) >= 0
	)
	for i := range idx {
		idx[i] = i
	}
	orient := func(a, b, c int) float64 {
		o := Orient2D(poly[a], poly[b], poly[c])
		if !ccw {
			o = -o
		}
		return o
	}
	isEar := func(k int) bool {
		m := len(idx)
		a, b, c := idx[(k+m-1)%m], idx[k], idx[(k+1)%m]
		if orient(a, b, c) <= utils.NODETOL {
			return false
		}
		for _, p := range idx {
			if p == a || p == b || p == c {
				continue
			}
			if orient(a, b, p) >= 0 && orient(b, c, p) >= 0 && orient(c, a, p) >= 0 {
				return false
			}
		}
		return true
	}
	for len(idx) > 3 {
		var (
			m         = len(idx)
			best      = -1
			bestAngle = -1.
		)
		for k := 0; k < m; k++ {
			if !isEar(k) {
				continue
			}
			a, b, c := idx[(k+m-1)%m], idx[k], idx[(k+1)%m]
			if ang := MinAngle(poly[a], poly[b], poly[c]); ang > bestAngle {
				best, bestAngle = k, ang
			}
		}
		if best < 0 {
			// degenerate input, clip the most convex corner
			bestTurn := math.Inf(-1)
			for k := 0; k < m; k++ {
				if o := orient(idx[(k+m-1)%m], idx[k], idx[(k+1)%m]); o > bestTurn {
					best, bestTurn = k, o
				}
			}
		}
		tris = append(tris, [3]int{idx[(best+m-1)%m], idx[best], idx[(best+1)%m]})
		idx = append(idx[:best], idx[best+1:]...)
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	return
}

/*
LegalizeTriangles flips interior diagonals of a triangulated polygon until every diagonal is locally Delaunay.
Only shared edges are candidates, so the polygon outline is never changed. Returns the number of flips.
*/
func LegalizeTriangles(pts []r2.Vec, tris [][3]int) (flips int) {
	type opposite struct {
		tri, vert int
	}
	maxPasses := len(tris)*len(tris) + 1
	for pass := 0; pass < maxPasses; pass++ {
		half := make(map[[2]int]opposite, 3*len(tris))
		for t, tri := range tris {
			for c := 0; c < 3; c++ {
				half[[2]int{tri[c], tri[(c+1)%3]}] = opposite{t, tri[(c+2)%3]}
			}
		}
		flipped := false
		for t1 := range tris {
			for c := 0; c < 3; c++ {
				i, j, k := tris[t1][c], tris[t1][(c+1)%3], tris[t1][(c+2)%3]
				op, ok := half[[2]int{j, i}]
				if !ok {
					continue
				}
				r := op.vert
				pi, pj, pk, pr := pts[i], pts[j], pts[k], pts[r]
				if !IsIllegalEdge(pr.X, pr.Y, pi.X, pi.Y, pj.X, pj.Y, pk.X, pk.Y) {
					continue
				}
				// the quad i-r-j-k must stay convex for the flip to be valid
				if Orient2D(pi, pr, pk) <= utils.NODETOL || Orient2D(pr, pj, pk) <= utils.NODETOL {
					continue
				}
				tris[t1] = [3]int{i, r, k}
				tris[op.tri] = [3]int{r, j, k}
				flips++
				flipped = true
				break
			}
			if flipped {
				break
			}
		}
		if !flipped {
			return
		}
	}
	return
}

// BeautyTriangulate is Triangulate followed by LegalizeTriangles
func BeautyTriangulate(poly []r2.Vec) (tris [][3]int) {
	tris = Triangulate(poly)
	if SignedArea(poly) < 0 {
		// legalization works on counter-clockwise triangles
		mirrored := make([]r2.Vec, len(poly))
		for i, p := range poly {
			mirrored[i] = r2.Vec{X: -p.X, Y: p.Y}
		}
		// mirroring flips the winding of the polygon and of its triangles together
		LegalizeTriangles(mirrored, tris)
		return
	}
	LegalizeTriangles(poly, tris)
	return
}

// ToGraphMesh packs the triangulation into the plotting mesh layout, XY pairs and int64 triangle vertices
func ToGraphMesh(pts []r2.Vec, tris [][3]int) (tMesh geometry.TriMesh) {
	tMesh = geometry.TriMesh{
		XY:       make([]float32, 2*len(pts)),
		TriVerts: make([][3]int64, len(tris)),
	}
	for i, pt := range pts {
		tMesh.XY[2*i] = float32(pt.X)
		tMesh.XY[2*i+1] = float32(pt.Y)
	}
	for k, tri := range tris {
		for n := 0; n < 3; n++ {
			tMesh.TriVerts[k][n] = int64(tri[n])
		}
	}
	return
}
