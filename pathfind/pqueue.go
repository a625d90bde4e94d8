package pathfind

import "container/heap"

// pqueue is a min-heap of *nodeState ordered by F cost (G + H), with ties
// broken by lower H then by insertion order — generalizing the teacher's
// PriorityQueue (container/heap over *Node, keyed by F) to the nodeState
// type shared by every algorithm in this package.
type pqueue struct {
	items []*nodeState
}

func newPQueue() *pqueue {
	pq := &pqueue{}
	heap.Init(pq)
	return pq
}

func (pq *pqueue) Len() int { return len(pq.items) }

func (pq *pqueue) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (pq *pqueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].heapIndex = i
	pq.items[j].heapIndex = j
}

func (pq *pqueue) Push(x interface{}) {
	n := x.(*nodeState)
	n.heapIndex = len(pq.items)
	pq.items = append(pq.items, n)
}

func (pq *pqueue) Pop() interface{} {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]
	item.heapIndex = -1
	return item
}

// push inserts n into the queue, or fixes its position if already present.
func (pq *pqueue) push(n *nodeState) {
	if n.heapIndex >= 0 {
		heap.Fix(pq, n.heapIndex)
		return
	}
	heap.Push(pq, n)
}

// pop removes and returns the lowest-F node, or nil if empty.
func (pq *pqueue) pop() *nodeState {
	if pq.Len() == 0 {
		return nil
	}
	return heap.Pop(pq).(*nodeState)
}
