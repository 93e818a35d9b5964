package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var unitSquareUV = []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

/*
NewCube builds the closed unit cube [0,1]^3 with outward facing quads and a full [0,1]^2 UV square
on every face. Face order: bottom, top, front (y=0), right (x=1), back (y=1), left (x=0).
*/
func NewCube() (m *Mesh) {
	m = NewMesh("cube")
	for _, p := range []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	} {
		m.AddVertex(p)
	}
	for _, f := range [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	} {
		if _, err := m.AddFace(f, unitSquareUV); err != nil {
			panic(err)
		}
	}
	m.HasUV = true
	return
}

// MarkAllSeams flags every edge of m as a seam
func MarkAllSeams(m *Mesh) {
	for e := range m.Edges {
		m.Edges[e].Seam = true
	}
}

// GridVert is the index of grid vertex (i,j) in a NewGrid mesh with nx columns of cells
func GridVert(nx, i, j int) int { return j*(nx+1) + i }

// NewGrid builds a flat w x h sheet of nx*ny quads in the z=0 plane, facing +z, with UV = (x/w, y/h)
func NewGrid(nx, ny int, w, h float64) (m *Mesh) {
	m = NewMesh("grid")
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.AddVertex(r3.Vec{X: w * float64(i) / float64(nx), Y: h * float64(j) / float64(ny)})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			verts := []int{GridVert(nx, i, j), GridVert(nx, i+1, j), GridVert(nx, i+1, j+1), GridVert(nx, i, j+1)}
			uvs := make([]r2.Vec, 4)
			for c, v := range verts {
				uvs[c] = r2.Vec{X: m.Verts[v].X / w, Y: m.Verts[v].Y / h}
			}
			if _, err := m.AddFace(verts, uvs); err != nil {
				panic(err)
			}
		}
	}
	m.HasUV = true
	return
}

/*
NewTube builds an open cylinder of the given radius and height around the z axis with outward facing quads.
The vertical edge chain at angle zero is marked as a seam, so cutting it opens the tube into one sheet.
Vertex (i,j) is ring j, segment i, at index j*segments + i.
*/
func NewTube(segments, rings int, radius, height float64) (m *Mesh) {
	m = NewMesh("tube")
	vert := func(i, j int) int { return j*segments + i%segments }
	for j := 0; j <= rings; j++ {
		z := height * float64(j) / float64(rings)
		for i := 0; i < segments; i++ {
			theta := 2 * math.Pi * float64(i) / float64(segments)
			m.AddVertex(r3.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta), Z: z})
		}
	}
	for j := 0; j < rings; j++ {
		for i := 0; i < segments; i++ {
			verts := []int{vert(i, j), vert(i+1, j), vert(i+1, j+1), vert(i, j+1)}
			u0, u1 := float64(i)/float64(segments), float64(i+1)/float64(segments)
			v0, v1 := float64(j)/float64(rings), float64(j+1)/float64(rings)
			uvs := []r2.Vec{{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u1, Y: v1}, {X: u0, Y: v1}}
			if _, err := m.AddFace(verts, uvs); err != nil {
				panic(err)
			}
		}
	}
	for j := 0; j < rings; j++ {
		if err := m.SetSeam(vert(0, j), vert(0, j+1), true); err != nil {
			panic(err)
		}
	}
	m.HasUV = true
	return
}
