package gridpath

// searchNode is the per-search record of a discovered cell. Nodes live in an
// arena slice and refer to their predecessor by index, so the whole tree is
// dropped with the arena once the search ends.
type searchNode struct {
	coord        Coord
	gScore       int
	hScore       int
	parent       int32
	indexInQueue int
	closed       bool
}

func (n *searchNode) fCost() int { return n.gScore + n.hScore }

// priorityQueue orders open arena indices by f cost. Equal costs are ordered by
// arena index, which is discovery order, so the earliest found node wins.
type priorityQueue struct {
	nodes *[]searchNode
	items []int32
}

func (queue *priorityQueue) Len() int { return len(queue.items) }

func (queue *priorityQueue) Less(i, j int) bool {
	a, b := queue.items[i], queue.items[j]
	nodeA, nodeB := &(*queue.nodes)[a], &(*queue.nodes)[b]
	if fa, fb := nodeA.fCost(), nodeB.fCost(); fa != fb {
		return fa < fb
	}
	return a < b
}

func (queue *priorityQueue) Swap(i, j int) {
	queue.items[i], queue.items[j] = queue.items[j], queue.items[i]
	(*queue.nodes)[queue.items[i]].indexInQueue = i
	(*queue.nodes)[queue.items[j]].indexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	index := x.(int32)
	(*queue.nodes)[index].indexInQueue = len(queue.items)
	queue.items = append(queue.items, index)
}

func (queue *priorityQueue) Pop() any {
	n := len(queue.items)
	index := queue.items[n-1]
	queue.items = queue.items[:n-1]
	(*queue.nodes)[index].indexInQueue = -1
	return index
}
