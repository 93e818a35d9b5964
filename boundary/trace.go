package boundary

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/utils"
)

var log = utils.NamedLogger("boundary")

// Loop is a boundary half-edge, the corner of Face walking from vertex From to vertex To along Edge
type Loop struct {
	Face, Corner, Edge int
	From, To           int
	UVFrom, UVTo       r2.Vec
}

func (l Loop) reversed() Loop {
	l.From, l.To = l.To, l.From
	l.UVFrom, l.UVTo = l.UVTo, l.UVFrom
	return l
}

// Group is one traced boundary polyline. Points holds one UV per loop plus the closing or end point.
type Group struct {
	Loops  []Loop
	Points []r2.Vec
	Closed bool
}

// Curve returns the group as directed vertex edges
func (g Group) Curve() (c types.Curve) {
	c = make(types.Curve, len(g.Loops))
	for i, l := range g.Loops {
		c[i] = types.NewEdgeInt([2]int{l.From, l.To})
	}
	return
}

// Loops collects the half-edges of the island faces that lie on an edge bordering a single face
func Loops(m *mesh.Mesh, tp *mesh.Topology, island []int) (loops []Loop) {
	for _, f := range island {
		face := m.Faces[f]
		for c, e := range m.FaceEdges(f) {
			if !tp.IsBoundaryEdge(e) {
				continue
			}
			n := face.Next(c)
			loops = append(loops, Loop{
				Face: f, Corner: c, Edge: e,
				From: face.Verts[c], To: face.Verts[n],
				UVFrom: face.UV(c), UVTo: face.UV(n),
			})
		}
	}
	return
}

/*
Trace stitches unordered loops into groups. Each group starts from the first unused loop and repeatedly takes
an unused loop starting at the vertex it has reached. A loop ending there instead is walked backwards. A group
is closed when the walk returns to its starting vertex and open when no loop continues it. Loops starting or
ending at a vertex are found through maps, so the walk is linear in the number of loops.
*/
func Trace(loops []Loop) (groups []Group) {
	var (
		byStart = make(map[int][]int)
		byEnd   = make(map[int][]int)
		used    = make([]bool, len(loops))
	)
	for i, l := range loops {
		byStart[l.From] = append(byStart[l.From], i)
		byEnd[l.To] = append(byEnd[l.To], i)
	}
	next := func(index map[int][]int, v int) int {
		for _, i := range index[v] {
			if !used[i] {
				return i
			}
		}
		return -1
	}
	for seed := range loops {
		if used[seed] {
			continue
		}
		used[seed] = true
		var (
			g     = Group{Loops: []Loop{loops[seed]}}
			start = loops[seed].From
			match = loops[seed].To
		)
		for steps := 0; steps < len(loops); steps++ {
			if match == start {
				g.Closed = true
				break
			}
			if i := next(byStart, match); i >= 0 {
				used[i] = true
				g.Loops = append(g.Loops, loops[i])
				match = loops[i].To
				continue
			}
			if i := next(byEnd, match); i >= 0 {
				used[i] = true
				g.Loops = append(g.Loops, loops[i].reversed())
				match = loops[i].From
				continue
			}
			break
		}
		for _, l := range g.Loops {
			g.Points = append(g.Points, l.UVFrom)
		}
		if g.Closed {
			g.Points = append(g.Points, g.Points[0])
		} else {
			g.Points = append(g.Points, g.Loops[len(g.Loops)-1].UVTo)
			log.Warnf("open boundary group of %d loops from vertex %d", len(g.Loops), start)
		}
		groups = append(groups, g)
	}
	return
}

// TraceIsland traces the boundary of one island
func TraceIsland(m *mesh.Mesh, tp *mesh.Topology, island []int) []Group {
	return Trace(Loops(m, tp, island))
}

// TraceAll traces every island against one topology snapshot
func TraceAll(m *mesh.Mesh, islands [][]int) (outlines [][]Group) {
	tp := m.BuildTopology()
	outlines = make([][]Group, len(islands))
	for i, island := range islands {
		outlines[i] = TraceIsland(m, tp, island)
	}
	return
}
