package export

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/boundary"
	"github.com/notargets/gopattern/markers"
	"github.com/notargets/gopattern/utils"
)

var log = utils.NamedLogger("export")

const (
	TickLength  = 8.  // document units
	LabelOffset = 3.  // gap between the tick end and its label
	FontSize    = 10. // document units
)

// Path is one traced boundary in document coordinates
type Path struct {
	Island int
	Points []r2.Vec
	Closed bool
}

// Tick is an alignment marker in document coordinates
type Tick struct {
	From, To r2.Vec
	Label    string
	LabelPos r2.Vec
	Color    string
	Anchor   string // text-anchor, start or end
	Baseline string // dominant-baseline, hanging or auto
}

/*
Document is the pattern laid out for output. The origin is the top left corner and y runs down:
a UV point maps to x = (u - left) * Scale, y = (top - v) * Scale where left is min(0, lowest u) and top is
max(1, highest v), which is y = (1 - v) * Scale for a layout inside the unit square.
*/
type Document struct {
	Name          string
	Scale         float64
	Width, Height float64
	Paths         []Path
	Ticks         []Tick

	left, top float64
}

/*
NewDocument lays out the traced outlines of every island and the alignment markers. scale is the document size
per world unit times the UV to world ratio of the flattened mesh.
*/
func NewDocument(name string, outlines [][]boundary.Group, marks []markers.Marker, scale float64) (doc *Document) {
	doc = &Document{Name: name, Scale: scale}
	var (
		lo = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
		hi = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	)
	extend := func(p r2.Vec) {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	for _, groups := range outlines {
		for _, g := range groups {
			for _, p := range g.Points {
				extend(p)
			}
		}
	}
	for _, mk := range marks {
		extend(mk.Pos)
	}
	if math.IsInf(lo.X, 1) {
		lo, hi = r2.Vec{}, r2.Vec{X: 1, Y: 1}
	}
	doc.left, doc.top = math.Min(0, lo.X), math.Max(1, hi.Y)
	doc.Width = (math.Max(1, hi.X) - doc.left) * scale
	doc.Height = (doc.top - math.Min(0, lo.Y)) * scale

	for island, groups := range outlines {
		for _, g := range groups {
			path := Path{Island: island, Closed: g.Closed, Points: make([]r2.Vec, len(g.Points))}
			for i, p := range g.Points {
				path.Points[i] = doc.ToDocument(p)
			}
			doc.Paths = append(doc.Paths, path)
		}
	}
	for _, mk := range marks {
		doc.Ticks = append(doc.Ticks, doc.tick(mk))
	}
	log.Debugf("document %q: %.1f x %.1f, %d paths, %d ticks", name, doc.Width, doc.Height, len(doc.Paths),
		len(doc.Ticks))
	return
}

// ToDocument maps a UV point to document coordinates
func (doc *Document) ToDocument(uv r2.Vec) r2.Vec {
	return r2.Vec{X: (uv.X - doc.left) * doc.Scale, Y: (doc.top - uv.Y) * doc.Scale}
}

// tick points away from the outline. Its label sits past the tick end, anchored so it reads away from the stroke.
func (doc *Document) tick(mk markers.Marker) (tk Tick) {
	dir := r2.Vec{X: mk.Dir.X, Y: -mk.Dir.Y}
	tk.From = doc.ToDocument(mk.Pos)
	tk.To = r2.Add(tk.From, r2.Scale(TickLength, dir))
	tk.LabelPos = r2.Add(tk.To, r2.Scale(LabelOffset, dir))
	tk.Label = strconv.Itoa(mk.Label)
	tk.Color = mk.Color
	tk.Anchor, tk.Baseline = "start", "auto"
	if dir.X < 0 {
		tk.Anchor = "end"
	}
	if dir.Y > 0 {
		tk.Baseline = "hanging"
	}
	return
}
