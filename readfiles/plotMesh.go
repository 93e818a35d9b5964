package readfiles

import (
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	avsUtils "github.com/notargets/avs/utils"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/geometry2D"
	"github.com/notargets/gopattern/mesh"
)

// PatternPlot holds the UV layout of a flattened mesh in the plotting formats
type PatternPlot struct {
	Mesh     *mesh.Mesh
	Outlines [][]r2.Vec  // closed or open polylines, one per boundary loop group
	Ticks    [][2]r2.Vec // marker tick segments
	xy       []r2.Vec    // UV triangle vertices
	tris     [][3]int    // triangles into xy
}

func NewPatternPlot(m *mesh.Mesh, outlines [][]r2.Vec, ticks [][2]r2.Vec) (pp *PatternPlot) {
	pp = &PatternPlot{
		Mesh:     m,
		Outlines: outlines,
		Ticks:    ticks,
	}
	for _, face := range m.Faces {
		if face.UVs == nil {
			continue
		}
		base := len(pp.xy)
		pp.xy = append(pp.xy, face.UVs...)
		for _, tri := range geometry2D.Triangulate(face.UVs) {
			pp.tris = append(pp.tris, [3]int{base + tri[0], base + tri[1], base + tri[2]})
		}
	}
	return
}

// Lines packs the outlines as x1,y1,x2,y2 segment runs
func (pp *PatternPlot) Lines() (line []float32) {
	for _, outline := range pp.Outlines {
		for i := 1; i < len(outline); i++ {
			a, b := outline[i-1], outline[i]
			line = append(line, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))
		}
	}
	return
}

func (pp *PatternPlot) TickLines() (line []float32) {
	for _, tk := range pp.Ticks {
		line = append(line, float32(tk[0].X), float32(tk[0].Y), float32(tk[1].X), float32(tk[1].Y))
	}
	return
}

// Bounds returns a square box around the layout with a 10% margin
func (pp *PatternPlot) Bounds() (xMin, xMax, yMin, yMax float32) {
	lo := r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(p r2.Vec) {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	for _, p := range pp.xy {
		grow(p)
	}
	for _, outline := range pp.Outlines {
		for _, p := range outline {
			grow(p)
		}
	}
	if math.IsInf(lo.X, 1) {
		return -1, 1, -1, 1
	}
	var (
		cx, cy = (lo.X + hi.X) / 2, (lo.Y + hi.Y) / 2
		half   = 0.55 * math.Max(math.Max(hi.X-lo.X, hi.Y-lo.Y), 1.e-6)
	)
	return float32(cx - half), float32(cx + half), float32(cy - half), float32(cy + half)
}

// Plot opens a chart window with the UV triangles, boundary outlines and marker ticks, then waits for delay
func (pp *PatternPlot) Plot(delay time.Duration) {
	xMin, xMax, yMin, yMax := pp.Bounds()
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax, 1024, 1024,
		avsUtils.WHITE, avsUtils.BLACK, 0.9)
	if len(pp.tris) > 0 {
		ch.AddTriMesh(geometry2D.ToGraphMesh(pp.xy, pp.tris))
	}
	if line := pp.Lines(); len(line) > 0 {
		ch.AddLine(line, avsUtils.GREEN)
	}
	if line := pp.TickLines(); len(line) > 0 {
		ch.AddLine(line, avsUtils.RED)
	}
	time.Sleep(delay)
}
