package unbounded

import (
	"container/heap"
	"testing"
)

func inGrid(width, height int, blocked map[Point]bool) func(Point) bool {
	return func(p Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height && !blocked[p]
	}
}

func checkRoute(t *testing.T, start, goal Point, route []Point, passable func(Point) bool) {
	t.Helper()

	if len(route) == 0 || route[len(route)-1] != goal {
		t.Fatalf("route %v does not end at %v", route, goal)
	}

	prev := start
	for i, p := range route {
		if prev.Manhattan(p) != 1 {
			t.Fatalf("step %d from %v to %v is not a single orthogonal step", i, prev, p)
		}
		if p != goal && !passable(p) {
			t.Fatalf("step %d enters blocked %v", i, p)
		}
		prev = p
	}
}

func TestFindPathOpenGrid(t *testing.T) {
	passable := inGrid(10, 10, nil)
	start, goal := Point{X: 0, Y: 0}, Point{X: 3, Y: 4}

	route, ok := FindPath(start, goal, passable)
	if !ok {
		t.Fatal("no path on an open grid")
	}
	if len(route) != start.Manhattan(goal) {
		t.Errorf("route is %d long, want %d", len(route), start.Manhattan(goal))
	}
	checkRoute(t, start, goal, route, passable)
}

func TestFindPathAroundWall(t *testing.T) {
	blocked := map[Point]bool{}
	for y := 0; y < 4; y++ {
		blocked[Point{X: 2, Y: y}] = true
	}
	passable := inGrid(5, 5, blocked)
	start, goal := Point{X: 0, Y: 0}, Point{X: 4, Y: 0}

	route, ok := FindPath(start, goal, passable)
	if !ok {
		t.Fatal("should find the gap at the top")
	}
	if len(route) != 12 {
		t.Errorf("route is %d long, want 12", len(route))
	}
	checkRoute(t, start, goal, route, passable)
}

func TestFindPathNoPath(t *testing.T) {
	blocked := map[Point]bool{}
	for y := 0; y < 10; y++ {
		blocked[Point{X: 5, Y: y}] = true
	}

	if route, ok := FindPath(Point{X: 0, Y: 0}, Point{X: 7, Y: 0}, inGrid(10, 10, blocked)); ok {
		t.Errorf("found a route through a solid wall: %v", route)
	}
}

func TestFindPathGoalExempt(t *testing.T) {
	goal := Point{X: 3, Y: 0}
	passable := inGrid(5, 1, map[Point]bool{goal: true})

	route, ok := FindPath(Point{X: 0, Y: 0}, goal, passable)
	if !ok || len(route) != 3 {
		t.Fatalf("occupied goal should still be reachable, got %v %v", route, ok)
	}
}

func TestFindPathStartIsGoal(t *testing.T) {
	route, ok := FindPath(Point{X: 2, Y: 2}, Point{X: 2, Y: 2}, inGrid(5, 5, nil))
	if !ok || len(route) != 0 {
		t.Errorf("got %v %v", route, ok)
	}
}

func TestPathQueueOrder(t *testing.T) {
	pq := make(pathQueue, 0)
	nodes := []*pathNode{
		{pt: Point{X: 1}, g: 4, h: 2, seq: 0},
		{pt: Point{X: 2}, g: 2, h: 4, seq: 1},
		{pt: Point{X: 3}, g: 1, h: 2, seq: 2},
		{pt: Point{X: 4}, g: 2, h: 4, seq: 3},
	}
	for _, n := range nodes {
		heap.Push(&pq, n)
	}

	want := []int{3, 1, 2, 4}
	for i, x := range want {
		n := heap.Pop(&pq).(*pathNode)
		if n.pt.X != x {
			t.Errorf("pop %d gave node %d, want %d", i, n.pt.X, x)
		}
	}
}
