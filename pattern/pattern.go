package pattern

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/InputParameters"
	"github.com/notargets/gopattern/cutter"
	"github.com/notargets/gopattern/densify"
	"github.com/notargets/gopattern/flatten"
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/topology"
	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/unwrap"
	"github.com/notargets/gopattern/utils"
)

var (
	log          = utils.NamedLogger("pattern")
	ErrNoSeams   = errors.New("no seam edges, mark the sewing seams first")
	ErrNoUVLayer = errors.New("mesh has no UV layer")
)

// Result of one seams to pattern run
type Result struct {
	Mesh      *mesh.Mesh // the flattened mesh, a copy when working on a duplicate
	Islands   [][]int
	FansFixed int
	Densified int
	Flatten   flatten.Result
	Width     float64 // extent of the packed UV layout
	Height    float64
}

/*
check runs before anything is touched, a failed precondition leaves the mesh as it was. The cut needs a seam
between two faces that survives the fan clearing, seams on the boundary alone are not enough.
*/
func check(m *mesh.Mesh, pp *InputParameters.PatternParameters) (method types.UnwrapMethod, fans mesh.IndexSet,
	err error) {
	if err = pp.Validate(); err != nil {
		return
	}
	if !m.HasSeams() {
		return method, nil, errors.Wrapf(ErrNoSeams, "mesh %q", m.Name)
	}
	fans = topology.Classify(m).Fans
	if cuttableSeams(m, fans) == 0 {
		return method, nil, errors.Wrapf(ErrNoSeams, "mesh %q has no seam between two faces to cut", m.Name)
	}
	method, _ = types.NewUnwrapMethod(pp.UnwrapMethod)
	if method == types.UnwrapKeepExisting && !m.HasUV {
		return method, nil, errors.Wrapf(ErrNoUVLayer, "mesh %q cannot keep its UVs", m.Name)
	}
	return
}

// cuttableSeams counts the seam edges bordering two faces that do not belong to a fan face
func cuttableSeams(m *mesh.Mesh, fans mesh.IndexSet) (n int) {
	var (
		tp      = m.BuildTopology()
		fanEdge = mesh.NewIndexSet()
	)
	for f := range fans {
		for _, e := range m.FaceEdges(f) {
			fanEdge.Add(e)
		}
	}
	for e := range m.SeamEdges() {
		if tp.IsManifoldEdge(e) && !fanEdge.Has(e) {
			n++
		}
	}
	return
}

/*
Run turns the seam marked mesh into a flat sewing pattern: fan seam removal, optional modifiers and remesh, seam
densify, the cut, a UV unwrap of every island and finally flattening with area correction and UV packing.
A failed unwrap or structural edit fails the whole run. Islands that cannot be flattened are skipped and
reported in Flatten.Skipped.
*/
func Run(m *mesh.Mesh, pp *InputParameters.PatternParameters, progress utils.Progress) (res *Result, err error) {
	var (
		method types.UnwrapMethod
		fans   mesh.IndexSet
	)
	if method, fans, err = check(m, pp); err != nil {
		log.Errorf("cancelled: %v", err)
		return
	}
	res = &Result{Mesh: m}
	if pp.WorkOnDuplicate {
		res.Mesh = m.Clone()
		res.Mesh.Name = m.Name + "_pattern"
	}
	work := res.Mesh
	// fan faces are found on the input, face indices match the duplicate
	res.FansFixed = topology.ClearFanSeams(work, fans)
	if pp.ApplyModifiers {
		if err = applyModifiers(work, pp); err != nil {
			return
		}
	}
	work.SetAttribute(mesh.AttrInitialVolume, work.Volume(), false)

	if pp.UseRemesh {
		if _, err = densify.Remesh(work, pp.RemeshTriangles, progress); err != nil {
			return nil, errors.Wrap(err, "remesh")
		}
	}
	if res.Densified, err = densify.Seams(work, pp.SeamMaxEdgeLength, progress); err != nil {
		return nil, errors.Wrap(err, "seam densify")
	}
	bevel, _ := types.NewBevelKind(pp.Bevel)
	if res.Islands, err = cutter.Cut(work, cutter.NewBeveler(bevel, pp.BevelWidth)); err != nil {
		return nil, errors.Wrap(err, "cut")
	}
	unwrapper := unwrap.New(method)
	for i, island := range res.Islands {
		progress.Report(i+1, len(res.Islands))
		if err = unwrapper.Unwrap(work, island); err != nil {
			return nil, errors.Wrapf(err, "island %d", i)
		}
	}
	work.HasUV = true

	correction, _ := types.NewAreaCorrection(pp.AreaCorrection)
	if res.Flatten, err = flatten.Islands(work, res.Islands, flatten.Options{
		Offset:     pp.IslandOffset,
		Correction: correction,
		Progress:   progress,
	}); err != nil {
		return nil, errors.Wrap(err, "flatten")
	}
	res.Width, res.Height = flatten.PackIslands(work, res.Islands, pp.PackMargin)
	log.Infof("%q: %d islands, %d skipped, area ratio %8.5f, layout %.3f x %.3f", work.Name, len(res.Islands),
		len(res.Islands)-res.Flatten.Flattened, res.Flatten.Ratio, res.Width, res.Height)
	return
}

func applyModifiers(m *mesh.Mesh, pp *InputParameters.PatternParameters) (err error) {
	var mods []InputParameters.Modifier
	if mods, err = pp.ParseModifiers(); err != nil {
		return
	}
	for _, mod := range mods {
		switch mod.Name {
		case "triangulate":
			all := mesh.NewIndexSet()
			for f := range m.Faces {
				all.Add(f)
			}
			var created int
			if created, err = densify.TriangulateFaces(m, all); err != nil {
				return errors.Wrap(err, "triangulate modifier")
			}
			log.Debugf("triangulate: %d faces created", created)
		case "weld":
			all := mesh.NewIndexSet()
			for v := range m.Verts {
				all.Add(v)
			}
			_, merged := m.MergeByDistance(all, utils.MERGETOL)
			log.Debugf("weld: %d vertices merged", merged)
		case "scale":
			for v := range m.Verts {
				m.Verts[v] = r3.Scale(mod.Value, m.Verts[v])
			}
		}
	}
	return
}
