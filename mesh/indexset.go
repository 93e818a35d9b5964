package mesh

import "sort"

// IndexSet is a selection of vertex, edge or face indices
type IndexSet map[int]struct{}

func NewIndexSet(idx ...int) (s IndexSet) {
	s = make(IndexSet, len(idx))
	for _, i := range idx {
		s[i] = struct{}{}
	}
	return
}

func (s IndexSet) Add(i int)      { s[i] = struct{}{} }
func (s IndexSet) Remove(i int)   { delete(s, i) }
func (s IndexSet) Len() int       { return len(s) }
func (s IndexSet) Has(i int) bool { _, ok := s[i]; return ok }

func (s IndexSet) Union(o IndexSet) {
	for i := range o {
		s[i] = struct{}{}
	}
}

// Sorted returns the members in ascending order
func (s IndexSet) Sorted() (idx []int) {
	idx = make([]int, 0, len(s))
	for i := range s {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return
}

func (s IndexSet) Clone() (c IndexSet) {
	c = make(IndexSet, len(s))
	c.Union(s)
	return
}
