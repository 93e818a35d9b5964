package unwrap

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/utils"
)

var (
	log             = utils.NamedLogger("unwrap")
	ErrUnwrapFailed = errors.New("uv unwrap failed")
)

// Unwrapper writes a UV chart into the corner UVs of the faces of one island
type Unwrapper interface {
	Unwrap(m *mesh.Mesh, island []int) error
}

func New(method types.UnwrapMethod) Unwrapper {
	switch method {
	case types.UnwrapConformal:
		return &Conformal{Tolerance: 1.e-10}
	case types.UnwrapKeepExisting:
		return &KeepExisting{}
	default:
		return &AngleBased{}
	}
}

// KeepExisting uses the UVs already on the mesh
type KeepExisting struct{}

func (ke *KeepExisting) Unwrap(m *mesh.Mesh, island []int) (err error) {
	if !m.HasUV {
		return errors.Wrapf(ErrUnwrapFailed, "mesh %q has no UV layer to keep", m.Name)
	}
	for _, f := range island {
		if len(m.Faces[f].UVs) != m.Faces[f].Len() {
			return errors.Wrapf(ErrUnwrapFailed, "face %d has no UVs", f)
		}
	}
	return
}

/*
setVertexUVs writes one UV per island vertex into the face corners, then makes the chart counter-clockwise,
scales it to the island's surface area and moves its lower left corner to the origin.
*/
func setVertexUVs(m *mesh.Mesh, island []int, uv map[int]r2.Vec) (err error) {
	for _, f := range island {
		face := &m.Faces[f]
		face.UVs = make([]r2.Vec, face.Len())
		for c, v := range face.Verts {
			p, ok := uv[v]
			if !ok || math.IsNaN(p.X) || math.IsNaN(p.Y) {
				return errors.Wrapf(ErrUnwrapFailed, "vertex %d of face %d was not placed", v, f)
			}
			face.UVs[c] = p
		}
	}
	return normalize(m, island)
}

func normalize(m *mesh.Mesh, island []int) (err error) {
	uvArea := m.UVArea(island)
	if uvArea < 0 {
		for _, f := range island {
			for c := range m.Faces[f].UVs {
				m.Faces[f].UVs[c].X = -m.Faces[f].UVs[c].X
			}
		}
		uvArea = -uvArea
	}
	area := m.Area(island)
	if uvArea <= utils.GEOMTOL*area {
		return errors.Wrapf(ErrUnwrapFailed, "island of %d faces has a degenerate chart", len(island))
	}
	s := math.Sqrt(area / uvArea)
	for _, f := range island {
		for c := range m.Faces[f].UVs {
			m.Faces[f].UVs[c] = r2.Scale(s, m.Faces[f].UVs[c])
		}
	}
	lo, _ := m.UVBounds(island)
	m.TranslateUV(island, r2.Scale(-1, lo))
	return
}
