package flatten

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/utils"
)

var (
	log                 = utils.NamedLogger("flatten")
	ErrDegenerateIsland = errors.New("degenerate island")
)

type Options struct {
	Offset     float64 // distance each island is moved along its normal
	Correction types.AreaCorrection
	Progress   utils.Progress
}

type Result struct {
	Ratio     float64 // sqrt(total area before / total area after), the UV to world scale
	Flattened int
	Skipped   error // one entry per island that could not be flattened
}

// uvMiddle is the reference point of the frame estimate, the middle of the unit UV square
const uvMiddle = 0.5

/*
Frame maps an island's UV chart back into 3D. Tangent and Bitangent are orthonormal and span the plane the
island is laid into, Normal completes them.
*/
type Frame struct {
	Center    r3.Vec
	MeanUV    r2.Vec
	Tangent   r3.Vec
	Bitangent r3.Vec
	Normal    r3.Vec
}

/*
IslandFrame estimates the UV to 3D basis of an island. The raw tangent and bitangent are the sums over corners
of (p - center)*(u - 0.5) and (p - center)*(v - 0.5), taken about the middle of the unit UV square. Their normalised sum is straightened into the plane
of the normal and rotated by -45 and +45 degrees, which gives an orthonormal pair symmetric about the raw axes.
*/
func IslandFrame(m *mesh.Mesh, island []int) (fr Frame, err error) {
	if len(island) == 0 {
		return fr, errors.Wrap(ErrDegenerateIsland, "no faces")
	}
	var (
		centers = make([]r3.Vec, len(island))
		uvs     []r2.Vec
	)
	for i, f := range island {
		centers[i] = m.FaceCenter(f)
		if len(m.Faces[f].UVs) != m.Faces[f].Len() {
			return fr, errors.Wrapf(ErrDegenerateIsland, "face %d has no UVs", f)
		}
		uvs = append(uvs, m.Faces[f].UVs...)
	}
	fr.Center = utils.Mean3(centers)
	fr.MeanUV = utils.Mean2(uvs)
	var t, b r3.Vec
	for _, f := range island {
		face := m.Faces[f]
		for c, v := range face.Verts {
			d := r3.Sub(m.Verts[v], fr.Center)
			t = r3.Add(t, r3.Scale(face.UVs[c].X-uvMiddle, d))
			b = r3.Add(b, r3.Scale(face.UVs[c].Y-uvMiddle, d))
		}
	}
	var okT, okB bool
	t, okT = utils.Normalize3(t)
	b, okB = utils.Normalize3(b)
	if !okT || !okB {
		return fr, errors.Wrap(ErrDegenerateIsland, "zero length tangent or bitangent")
	}
	n, ok := utils.Normalize3(r3.Cross(t, b))
	if !ok {
		var sum r3.Vec
		for _, f := range island {
			if fn, okF := m.FaceNormal(f); okF {
				sum = r3.Add(sum, fn)
			}
		}
		if n, ok = utils.Normalize3(sum); !ok {
			return fr, errors.Wrap(ErrDegenerateIsland, "no normal")
		}
	}
	half, ok := utils.Normalize3(r3.Add(t, b))
	if ok {
		half, ok = utils.Normalize3(r3.Cross(r3.Cross(n, half), n))
	}
	if !ok {
		return fr, errors.Wrap(ErrDegenerateIsland, "tangent and bitangent cancel")
	}
	fr.Normal = n
	fr.Tangent = r3.NewRotation(-math.Pi/4, n).Rotate(half)
	fr.Bitangent = r3.NewRotation(math.Pi/4, n).Rotate(half)
	return
}

// Place returns the 3D position of UV coordinate uv laid flat by the frame
func (fr Frame) Place(uv r2.Vec, offset float64) r3.Vec {
	p := r3.Sub(fr.Center, r3.Scale(uv.X-fr.MeanUV.X, fr.Tangent))
	p = r3.Sub(p, r3.Scale(uv.Y-fr.MeanUV.Y, fr.Bitangent))
	return r3.Add(p, r3.Scale(offset, fr.Normal))
}

// lay moves every island vertex to the mean of the positions its corners map to
func lay(m *mesh.Mesh, island []int, fr Frame, offset float64) {
	var (
		sum   = make(map[int]r3.Vec)
		count = make(map[int]int)
	)
	for _, f := range island {
		face := m.Faces[f]
		for c, v := range face.Verts {
			sum[v] = r3.Add(sum[v], fr.Place(face.UVs[c], offset))
			count[v]++
		}
	}
	for v, p := range sum {
		m.Verts[v] = r3.Scale(1/float64(count[v]), p)
	}
}

func scaleAbout(m *mesh.Mesh, island []int, pivot r3.Vec, s float64) {
	for _, v := range m.IslandVerts(island) {
		m.Verts[v] = r3.Add(pivot, r3.Scale(s, r3.Sub(m.Verts[v], pivot)))
	}
}

/*
Islands lays every island flat in the plane of its frame and rescales it to its area before flattening. With
the global correction one ratio, computed from the area totals of all islands, scales each island about its own
centre. A degenerate island is left where it is and reported, the call fails only when no island could be
flattened. The ratio is stored on the mesh as the UV to world scale.
*/
func Islands(m *mesh.Mesh, islands [][]int, opt Options) (res Result, err error) {
	type placed struct {
		island        []int
		pivot         r3.Vec
		before, after float64
	}
	var (
		done        []placed
		totalBefore float64
		totalAfter  float64
	)
	for i, island := range islands {
		opt.Progress.Report(i+1, len(islands))
		before := m.Area(island)
		if before < utils.GEOMTOL {
			res.Skipped = multierr.Append(res.Skipped,
				errors.Wrapf(ErrDegenerateIsland, "island %d has no area", i))
			log.Warnf("island %d: no surface area, skipped", i)
			continue
		}
		fr, errF := IslandFrame(m, island)
		if errF != nil {
			res.Skipped = multierr.Append(res.Skipped, errors.Wrapf(errF, "island %d", i))
			log.Warnf("island %d: %v, skipped", i, errF)
			continue
		}
		lay(m, island, fr, opt.Offset)
		after := m.Area(island)
		if after < utils.GEOMTOL {
			res.Skipped = multierr.Append(res.Skipped,
				errors.Wrapf(ErrDegenerateIsland, "island %d collapsed when laid flat", i))
			log.Warnf("island %d: collapsed when laid flat", i)
			continue
		}
		done = append(done, placed{island, r3.Add(fr.Center, r3.Scale(opt.Offset, fr.Normal)), before, after})
		totalBefore += before
		totalAfter += after
	}
	if len(done) == 0 {
		if res.Skipped == nil {
			res.Skipped = errors.Wrap(ErrDegenerateIsland, "no islands")
		}
		return res, res.Skipped
	}
	res.Flattened = len(done)
	res.Ratio = math.Sqrt(totalBefore / totalAfter)
	for _, pl := range done {
		s := res.Ratio
		if opt.Correction == types.CorrectPerIsland {
			s = math.Sqrt(pl.before / pl.after)
		}
		scaleAbout(m, pl.island, pl.pivot, s)
	}
	m.SetAttribute(mesh.AttrUVtoWorldScale, res.Ratio, true)
	log.Infof("flattened %d of %d islands, %s area ratio %8.5f", res.Flattened, len(islands), opt.Correction, res.Ratio)
	return
}
