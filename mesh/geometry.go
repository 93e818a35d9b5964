package mesh

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/utils"
)

// faceNewell is the Newell normal of face f, its length is twice the face area
func (m *Mesh) faceNewell(f int) (n r3.Vec) {
	verts := m.Faces[f].Verts
	for i := range verts {
		a, b := m.Verts[verts[i]], m.Verts[verts[(i+1)%len(verts)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return
}

func (m *Mesh) FaceArea(f int) float64 {
	return 0.5 * r3.Norm(m.faceNewell(f))
}

// FaceNormal returns the unit normal of face f, ok is false for a zero area face
func (m *Mesh) FaceNormal(f int) (n r3.Vec, ok bool) {
	return utils.Normalize3(m.faceNewell(f))
}

// FaceCenter is the mean of the face vertex positions
func (m *Mesh) FaceCenter(f int) (c r3.Vec) {
	verts := m.Faces[f].Verts
	for _, v := range verts {
		c = r3.Add(c, m.Verts[v])
	}
	return r3.Scale(1/float64(len(verts)), c)
}

// Area sums the area of the listed faces, or of all faces when faces is nil
func (m *Mesh) Area(faces []int) (area float64) {
	if faces == nil {
		for f := range m.Faces {
			area += m.FaceArea(f)
		}
		return
	}
	for _, f := range faces {
		area += m.FaceArea(f)
	}
	return
}

// FaceUVArea is the signed UV area of face f, positive when the UV loop is counter-clockwise
func (m *Mesh) FaceUVArea(f int) (area float64) {
	uvs := m.Faces[f].UVs
	for i := range uvs {
		area += r2.Cross(uvs[i], uvs[(i+1)%len(uvs)])
	}
	return 0.5 * area
}

func (m *Mesh) UVArea(faces []int) (area float64) {
	for _, f := range faces {
		area += m.FaceUVArea(f)
	}
	return
}

/*
Volume is the enclosed volume by the divergence theorem, each face fanned into triangles from its first
vertex. It is only meaningful for a closed, consistently oriented mesh.
*/
func (m *Mesh) Volume() (vol float64) {
	for _, face := range m.Faces {
		p0 := m.Verts[face.Verts[0]]
		for i := 1; i+1 < face.Len(); i++ {
			p1, p2 := m.Verts[face.Verts[i]], m.Verts[face.Verts[i+1]]
			vol += r3.Dot(p0, r3.Cross(p1, p2))
		}
	}
	return vol / 6
}

// UVBounds returns the UV bounding box of the listed faces
func (m *Mesh) UVBounds(faces []int) (lo, hi r2.Vec) {
	first := true
	for _, f := range faces {
		for _, uv := range m.Faces[f].UVs {
			if first {
				lo, hi = uv, uv
				first = false
				continue
			}
			lo.X, lo.Y = min(lo.X, uv.X), min(lo.Y, uv.Y)
			hi.X, hi.Y = max(hi.X, uv.X), max(hi.Y, uv.Y)
		}
	}
	return
}

// TranslateUV shifts every UV of the listed faces by d
func (m *Mesh) TranslateUV(faces []int, d r2.Vec) {
	for _, f := range faces {
		for c := range m.Faces[f].UVs {
			m.Faces[f].UVs[c] = r2.Add(m.Faces[f].UVs[c], d)
		}
	}
}
