package search

import "container/heap"

// frontier is the open set: discovered, not yet settled cells, identified by
// row-major index. Membership is unique. PopMin removes and returns the cell
// with the smallest key, breaking exact ties by earliest insertion.
type frontier interface {
	Len() int
	Contains(idx int) bool
	Push(idx int)
	// Update must be called after the key of idx has decreased.
	Update(idx int)
	PopMin() int
	Clear()
}

// keyFunc returns the current ordering key of a cell.
type keyFunc func(idx int) float64

func newFrontier(kind FrontierKind, size int, key keyFunc) frontier {
	if kind == FrontierHeap {
		pos := make([]int, size)
		for i := range pos {
			pos[i] = -1
		}
		return &heapFrontier{pq: cellPQ{key: key, pos: pos}}
	}
	return &listFrontier{key: key, member: make([]bool, size)}
}

// listFrontier keeps cells in insertion order and scans for the minimum.
// Removal preserves the order of the remaining cells, so the first minimum
// found by the scan is always the earliest inserted.
type listFrontier struct {
	key    keyFunc
	items  []int
	member []bool
}

func (l *listFrontier) Len() int              { return len(l.items) }
func (l *listFrontier) Contains(idx int) bool { return l.member[idx] }
func (l *listFrontier) Update(int)            {}

func (l *listFrontier) Push(idx int) {
	l.items = append(l.items, idx)
	l.member[idx] = true
}

// PopMin is O(n). The caller must ensure the list is non-empty.
func (l *listFrontier) PopMin() int {
	best := 0
	bestKey := l.key(l.items[0])
	for i := 1; i < len(l.items); i++ {
		if k := l.key(l.items[i]); k < bestKey {
			best, bestKey = i, k
		}
	}
	idx := l.items[best]
	l.items = append(l.items[:best], l.items[best+1:]...)
	l.member[idx] = false

	return idx
}

func (l *listFrontier) Clear() {
	for _, idx := range l.items {
		l.member[idx] = false
	}
	l.items = l.items[:0]
}

// heapFrontier orders cells by (key, insertion sequence) in a binary heap.
type heapFrontier struct {
	pq  cellPQ
	seq uint64
}

func (h *heapFrontier) Len() int              { return h.pq.Len() }
func (h *heapFrontier) Contains(idx int) bool { return h.pq.pos[idx] >= 0 }

func (h *heapFrontier) Push(idx int) {
	h.seq++
	heap.Push(&h.pq, cellItem{idx: idx, seq: h.seq})
}

func (h *heapFrontier) Update(idx int) {
	if p := h.pq.pos[idx]; p >= 0 {
		heap.Fix(&h.pq, p)
	}
}

func (h *heapFrontier) PopMin() int {
	return heap.Pop(&h.pq).(cellItem).idx
}

func (h *heapFrontier) Clear() {
	for _, it := range h.pq.items {
		h.pq.pos[it.idx] = -1
	}
	h.pq.items = h.pq.items[:0]
	h.seq = 0
}

// cellItem is a heap entry: a cell and the sequence number it was inserted with.
type cellItem struct {
	idx int
	seq uint64
}

// cellPQ is a min-heap of cells ordered by key ascending, then sequence ascending.
// Keys are read live through key, so every decrease must be followed by heap.Fix.
// pos tracks each cell's heap position (-1 when absent).
type cellPQ struct {
	items []cellItem
	key   keyFunc
	pos   []int
}

// Len returns the number of items in the heap.
func (pq cellPQ) Len() int { return len(pq.items) }

// Less orders by key, then by insertion sequence.
func (pq cellPQ) Less(i, j int) bool {
	ki, kj := pq.key(pq.items[i].idx), pq.key(pq.items[j].idx)
	if ki != kj {
		return ki < kj
	}
	return pq.items[i].seq < pq.items[j].seq
}

// Swap swaps two elements and keeps pos in sync.
func (pq cellPQ) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.pos[pq.items[i].idx] = i
	pq.pos[pq.items[j].idx] = j
}

// Push appends x; called by heap.Push.
func (pq *cellPQ) Push(x interface{}) {
	it := x.(cellItem)
	pq.pos[it.idx] = len(pq.items)
	pq.items = append(pq.items, it)
}

// Pop removes the last element; called by heap.Pop.
func (pq *cellPQ) Pop() interface{} {
	old := pq.items
	n := len(old)
	it := old[n-1]
	pq.items = old[:n-1]
	pq.pos[it.idx] = -1

	return it
}
