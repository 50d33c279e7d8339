package lowerbound

import (
	"container/heap"

	"github.com/arrowtsp/arrow/costmatrix"
)

// CBST computes the constrained bottleneck spanning tree bound: the
// maximum edge weight in a minimum spanning tree, grown by Prim's
// algorithm from vertex 0 using an indexed binary min-heap (spec.md §3's
// "MST heap (CBST/Prim)": insert/decrease_key/extract_min/contains in
// O(log n)/O(1)), grounded on the teacher's prim_kruskal/prim.go.
//
// forbidden, if non-nil, excludes the given undirected edges from
// consideration — the "current tree" hint of spec.md §4.6 used to
// enumerate alternate MSTs at the same bottleneck value.
func CBST(c *costmatrix.CostMatrix, forbidden map[[2]int]struct{}) (Result, error) {
	n := c.Size()
	if n < 2 {
		return Result{}, ErrTooSmall
	}

	return timed(func() int {
		const inf = 1 << 30
		key := make([]int, n)
		inTree := make([]bool, n)
		for i := range key {
			key[i] = inf
		}
		key[0] = 0

		h := &vertexHeap{items: make([]*heapItem, 0, n), pos: make([]int, n)}
		for i := 0; i < n; i++ {
			h.pos[i] = -1
		}
		heap.Init(h)
		h.push(&heapItem{vertex: 0, key: 0})

		bottleneck := 0
		treeSize := 0
		for h.Len() > 0 && treeSize < n {
			item := h.pop()
			u := item.vertex
			if inTree[u] {
				continue
			}
			inTree[u] = true
			treeSize++
			if item.key > bottleneck {
				bottleneck = item.key
			}

			for v := 0; v < n; v++ {
				if v == u || inTree[v] || isForbidden(forbidden, u, v) {
					continue
				}
				w := c.Cost(u, v)
				if w < key[v] {
					key[v] = w
					if h.pos[v] == -1 {
						h.push(&heapItem{vertex: v, key: w})
					} else {
						h.decreaseKey(v, w)
					}
				}
			}
		}
		if treeSize != n {
			return infeasibleObj(c) // disconnected: no spanning tree exists
		}

		return bottleneck
	}), nil
}

func isForbidden(forbidden map[[2]int]struct{}, u, v int) bool {
	if forbidden == nil {
		return false
	}
	_, a := forbidden[[2]int{u, v}]
	_, b := forbidden[[2]int{v, u}]

	return a || b
}

type heapItem struct {
	vertex int
	key    int
}

// vertexHeap is an indexed binary min-heap keyed by key, with pos[v]
// tracking each vertex's current slot so decreaseKey runs in O(log n)
// and contains (pos[v] != -1) runs in O(1), matching spec.md §3's
// contract.
type vertexHeap struct {
	items []*heapItem
	pos   []int // pos[vertex] = index into items, or -1 if absent
}

func (h vertexHeap) Len() int            { return len(h.items) }
func (h vertexHeap) Less(i, j int) bool  { return h.items[i].key < h.items[j].key }
func (h *vertexHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].vertex] = i
	h.pos[h.items[j].vertex] = j
}

func (h *vertexHeap) Push(x interface{}) {
	item := x.(*heapItem)
	h.pos[item.vertex] = len(h.items)
	h.items = append(h.items, item)
}

func (h *vertexHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	h.pos[item.vertex] = -1

	return item
}

func (h *vertexHeap) push(item *heapItem) { heap.Push(h, item) }

func (h *vertexHeap) pop() *heapItem { return heap.Pop(h).(*heapItem) }

func (h *vertexHeap) decreaseKey(vertex, newKey int) {
	idx := h.pos[vertex]
	h.items[idx].key = newKey
	heap.Fix(h, idx)
}
