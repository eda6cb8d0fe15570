package unbounded

import (
	"container/heap"
)

// pathNode is one A* search node. Identity is the point; cost and parent
// are the best known so far.
type pathNode struct {
	pt     Point
	g      int
	h      int
	seq    int
	parent *pathNode
	closed bool
	index  int
}

func (n *pathNode) f() int {
	return n.g + n.h
}

// pathQueue is the open set ordered by f, then h, then insertion order
type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f() != pq[j].f() {
		return pq[i].f() < pq[j].f()
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}
	return pq[i].seq < pq[j].seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x interface{}) {
	node := x.(*pathNode)
	node.index = len(*pq)
	*pq = append(*pq, node)
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[0 : n-1]
	return node
}

// FindPath runs A* from start to goal over orthogonal unit steps. passable
// decides which tiles may be entered; the goal is always enterable since it
// is usually occupied by whatever is being chased. The route excludes start
// and ends at goal. ok is false when the goal can't be reached.
func FindPath(start, goal Point, passable func(Point) bool) (route []Point, ok bool) {
	if start == goal {
		return []Point{}, true
	}

	nodes := make(map[Point]*pathNode)
	open := make(pathQueue, 0)
	seq := 0

	first := &pathNode{pt: start, h: start.Manhattan(goal), seq: seq}
	nodes[start] = first
	heap.Push(&open, first)

	for open.Len() > 0 {
		current := heap.Pop(&open).(*pathNode)

		if current.pt == goal {
			return unwindPath(current), true
		}

		current.closed = true

		for _, d := range Ordinal {
			next := current.pt.Add(d, 1)
			if next != goal && !passable(next) {
				continue
			}

			g := current.g + 1
			node, seen := nodes[next]

			switch {
			case !seen:
				seq++
				node = &pathNode{pt: next, g: g, h: next.Manhattan(goal), seq: seq, parent: current}
				nodes[next] = node
				heap.Push(&open, node)
			case g < node.g:
				node.g = g
				node.parent = current
				if node.closed {
					node.closed = false
					seq++
					node.seq = seq
					heap.Push(&open, node)
				} else {
					heap.Fix(&open, node.index)
				}
			}
		}
	}

	return nil, false
}

func unwindPath(end *pathNode) []Point {
	route := make([]Point, 0, end.g)
	for node := end; node.parent != nil; node = node.parent {
		route = append(route, node.pt)
	}

	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}

	return route
}
