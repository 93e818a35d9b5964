package mesh

import (
	"github.com/dhconnelly/rtreego"
)

type vertexItem struct {
	v     int
	where rtreego.Rect
}

func (vi *vertexItem) Bounds() rtreego.Rect { return vi.where }

/*
MergeByDistance welds candidate vertices lying within eps of each other. Every vertex of a cluster is merged
into the lowest index of the cluster, keeping that vertex's position. Returns the old to new vertex map from
WeldVertices and the number of vertices removed.
*/
func (m *Mesh) MergeByDistance(candidates IndexSet, eps float64) (newIndex []int, merged int) {
	if eps <= 0 {
		eps = 1.e-12
	}
	var (
		tree   = rtreego.NewTree(3, 25, 50)
		target = make([]int, len(m.Verts))
		order  = candidates.Sorted()
	)
	for v := range target {
		target[v] = v
	}
	for _, v := range order {
		p := m.Verts[v]
		pt := rtreego.Point{p.X, p.Y, p.Z}
		hits := tree.SearchIntersect(pt.ToRect(eps))
		best := -1
		for _, h := range hits {
			u := h.(*vertexItem).v
			q := m.Verts[u]
			dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
			if dx*dx+dy*dy+dz*dz > eps*eps {
				continue
			}
			if best < 0 || u < best {
				best = u
			}
		}
		if best >= 0 {
			target[v] = best
			merged++
			continue
		}
		tree.Insert(&vertexItem{v: v, where: pt.ToRect(eps)})
	}
	newIndex = m.WeldVertices(target)
	return
}
