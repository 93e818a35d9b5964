package mesh

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangles fans every face from its first corner into sdfx triangles
func (m *Mesh) Triangles() (tris []*sdf.Triangle3) {
	toV3 := func(p r3.Vec) v3.Vec { return v3.Vec{X: p.X, Y: p.Y, Z: p.Z} }
	for _, face := range m.Faces {
		p0 := toV3(m.Verts[face.Verts[0]])
		for i := 1; i+1 < face.Len(); i++ {
			tris = append(tris, &sdf.Triangle3{p0,
				toV3(m.Verts[face.Verts[i]]), toV3(m.Verts[face.Verts[i+1]])})
		}
	}
	return
}

// SaveSTL writes the faces as a binary STL, the rest shape input of a cloth simulation
func (m *Mesh) SaveSTL(path string) (err error) {
	tris := m.Triangles()
	if len(tris) == 0 {
		return errors.Errorf("mesh %q has no faces to write", m.Name)
	}
	if err = render.SaveSTL(path, tris); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return
}
