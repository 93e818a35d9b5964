package cleanup

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

/*
mergeSet is a disjoint set over the chain vertices. Each set carries the position of the merged node and
whether it holds a pinned vertex.
*/
type mergeSet struct {
	parent []int
	pos    []r3.Vec
	pinned []bool
}

func newMergeSet(m *mesh.Mesh, verts []int, pinned mesh.IndexSet) (ms *mergeSet) {
	ms = &mergeSet{
		parent: make([]int, len(verts)),
		pos:    make([]r3.Vec, len(verts)),
		pinned: make([]bool, len(verts)),
	}
	for i, v := range verts {
		ms.parent[i] = i
		ms.pos[i] = m.Verts[v]
		ms.pinned[i] = pinned.Has(v)
	}
	return
}

func (ms *mergeSet) find(i int) int {
	for ms.parent[i] != i {
		ms.parent[i] = ms.parent[ms.parent[i]]
		i = ms.parent[i]
	}
	return i
}

// union merges two roots at their midpoint, or at the pinned one. Both pinned is refused.
func (ms *mergeSet) union(a, b int) bool {
	switch {
	case ms.pinned[a] && ms.pinned[b]:
		return false
	case ms.pinned[b]:
		a, b = b, a
	case !ms.pinned[a]:
		ms.pos[a] = utils.Mid3(ms.pos[a], ms.pos[b])
	}
	ms.parent[b] = a
	return true
}

/*
collapse repeatedly merges the two ends of the shortest chain edge while it is shorter than threshold. It runs
at most once per initial edge and stops when at most one edge is left. Merged positions are written back to
every vertex of a set, and the sets with more than one member are returned in ascending vertex order for the
caller to weld.
*/
func collapse(m *mesh.Mesh, verts []int, edges [][2]int, pinned mesh.IndexSet, threshold float64,
	progress utils.Progress) (collapsed int, groups [][]int) {
	if threshold <= 0 || len(edges) == 0 {
		return
	}
	var (
		ms    = newMergeSet(m, verts, pinned)
		local = make(map[int]int, len(verts))
		alive = make([]bool, len(edges))
	)
	for i, v := range verts {
		local[v] = i
	}
	for i := range alive {
		alive[i] = true
	}
	for iter := 0; iter < len(edges); iter++ {
		progress.Report(iter+1, len(edges))
		var (
			best    = -1
			bestLen = math.Inf(1)
			count   int
		)
		for i, e := range edges {
			if !alive[i] {
				continue
			}
			ra, rb := ms.find(local[e[0]]), ms.find(local[e[1]])
			if ra == rb {
				alive[i] = false
				continue
			}
			count++
			if l := r3.Norm(r3.Sub(ms.pos[ra], ms.pos[rb])); l < bestLen {
				best, bestLen = i, l
			}
		}
		if count <= 1 || bestLen >= threshold {
			break
		}
		alive[best] = false
		if ms.union(ms.find(local[edges[best][0]]), ms.find(local[edges[best][1]])) {
			collapsed++
		}
	}
	members := make(map[int][]int)
	for i, v := range verts {
		r := ms.find(i)
		m.Verts[v] = ms.pos[r]
		members[r] = append(members[r], v)
	}
	// verts is ascending, so groups come out ordered by their lowest vertex
	for i := range verts {
		if g := members[ms.find(i)]; len(g) > 1 && g[0] == verts[i] {
			groups = append(groups, g)
		}
	}
	return
}
