// Package queue provides the value-based binary heap used by k-nearest searches.
package queue

// Item is a search candidate: an id and its distance to the query.
type Item struct {
	ID       uint64
	Distance float64
}

// less orders by distance and then by id, so equal distances are deterministic.
func less(a, b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ID < b.ID
}

// PriorityQueue is a value-based binary heap of Items.
// A max heap keeps the worst candidate on top, which is what a bounded
// top-k search needs.
type PriorityQueue struct {
	isMaxHeap bool
	items     []Item
}

// NewMin initializes a new priority queue with minimum priority.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{
		isMaxHeap: false,
		items:     make([]Item, 0, capacity),
	}
}

// NewMax initializes a new priority queue with maximum priority.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{
		isMaxHeap: true,
		items:     make([]Item, 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Top returns the top element of the heap.
func (pq *PriorityQueue) Top() (Item, bool) {
	if len(pq.items) == 0 {
		return Item{}, false
	}
	return pq.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) Push(item Item) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// Pop removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue) Pop() (Item, bool) {
	n := len(pq.items)
	if n == 0 {
		return Item{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// PushBounded pushes item into a max heap holding at most k items.
// If the heap is full, item replaces the current worst only if it is better.
func (pq *PriorityQueue) PushBounded(item Item, k int) {
	if len(pq.items) < k {
		pq.Push(item)
		return
	}
	if k == 0 || !less(item, pq.items[0]) {
		return
	}
	pq.items[0] = item
	pq.siftDown(0)
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue) Reset() {
	pq.items = pq.items[:0]
}

// Sorted drains the queue and returns its items in ascending order.
func (pq *PriorityQueue) Sorted() []Item {
	out := make([]Item, len(pq.items))
	if pq.isMaxHeap {
		for i := len(out) - 1; i >= 0; i-- {
			out[i], _ = pq.Pop()
		}
		return out
	}
	for i := range out {
		out[i], _ = pq.Pop()
	}
	return out
}

func (pq *PriorityQueue) before(i, j int) bool {
	if pq.isMaxHeap {
		return less(pq.items[j], pq.items[i])
	}
	return less(pq.items[i], pq.items[j])
}

func (pq *PriorityQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.before(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.before(r, l) {
			best = r
		}
		if !pq.before(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
