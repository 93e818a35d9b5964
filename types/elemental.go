package types

import (
	"fmt"
	"math"
)

/*
EdgeKey identifies an undirected mesh edge by its two vertex indices. The pair is packed into
a uint64 in ascending index order, so the edge [7,2] and the edge [2,7] share the key 2 + 7<<32.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	i1, i2 := verts[0], verts[1]
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	packed = EdgeKey(uint64(i1) | uint64(i2)<<32)
	return
}

// GetVertices returns the packed indices in ascending order, or descending if rev is set
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[0] = int(ek & math.MaxUint32)
	verts[1] = int(ek >> 32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// Other returns the vertex at the opposite end of the edge from v
func (ek EdgeKey) Other(v int) int {
	verts := ek.GetVertices(false)
	if verts[0] == v {
		return verts[1]
	}
	return verts[0]
}

// Contains reports whether v is one of the edge endpoints
func (ek EdgeKey) Contains(v int) bool {
	verts := ek.GetVertices(false)
	return verts[0] == v || verts[1] == v
}

func (ek EdgeKey) String() string {
	verts := ek.GetVertices(false)
	return fmt.Sprintf("[%d,%d]", verts[0], verts[1])
}

/*
EdgeInt stores an edge with its direction, so a boundary half-edge [7,2] can be told apart from [2,7].
The magnitude is the EdgeKey packing, the sign is set when the first vertex is the larger index.
*/
type EdgeInt int64

func NewEdgeInt(verts [2]int) (packed EdgeInt) {
	var (
		limit = math.MaxUint32 >> 1 // leaves room for the sign bit of an int64
		sign  bool
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into an int64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	i1, i2 := verts[0], verts[1]
	if i1 > i2 {
		sign = true
		i1, i2 = i2, i1
	}
	packed = EdgeInt(i1 + i2<<32)
	if sign {
		packed = -packed
	}
	return
}

func (e EdgeInt) GetVertices() (verts [2]int) {
	var sign bool
	if e < 0 {
		sign = true
		e = -e
	}
	verts[1] = int(e >> 32)
	verts[0] = int(e & math.MaxUint32)
	if sign {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

func (e EdgeInt) GetKey() (ek EdgeKey) {
	ek = NewEdgeKey(e.GetVertices())
	return
}

func (e EdgeInt) Reverse() EdgeInt {
	verts := e.GetVertices()
	return NewEdgeInt([2]int{verts[1], verts[0]})
}

// Curve is an ordered chain of directed edges, head to tail
type Curve []EdgeInt

// Connected reports whether every edge starts where the previous one ends
func (c Curve) Connected() bool {
	for i := 1; i < len(c); i++ {
		if c[i-1].GetVertices()[1] != c[i].GetVertices()[0] {
			return false
		}
	}
	return true
}

// Closed reports whether the chain is connected and returns to its first vertex
func (c Curve) Closed() bool {
	if len(c) < 2 || !c.Connected() {
		return false
	}
	return c[len(c)-1].GetVertices()[1] == c[0].GetVertices()[0]
}

// Vertices lists the chain vertices in walk order, without repeating the start of a closed chain
func (c Curve) Vertices() (verts []int) {
	if len(c) == 0 {
		return
	}
	verts = make([]int, 0, len(c)+1)
	for _, e := range c {
		verts = append(verts, e.GetVertices()[0])
	}
	if !c.Closed() {
		verts = append(verts, c[len(c)-1].GetVertices()[1])
	}
	return
}
