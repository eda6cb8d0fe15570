package unbounded

import (
	"math/rand"
	"testing"
)

func gridOpacity(walls map[Point]bool) func(Point) bool {
	return func(p Point) bool { return walls[p] }
}

func TestFieldOfViewOpenGrid(t *testing.T) {
	fov := NewFieldOfView(11, 11, gridOpacity(nil))
	visible := fov.Compute(Point{X: 5, Y: 5}, 4)

	if !visible.Has(Point{X: 5, Y: 5}) {
		t.Error("origin must be visible")
	}
	for _, p := range []Point{{5, 8}, {2, 5}, {7, 7}, {5, 2}} {
		if !visible.Has(p) {
			t.Errorf("%v should be visible", p)
		}
	}
	if visible.Has(Point{X: 5, Y: 9}) || visible.Has(Point{X: 1, Y: 5}) {
		t.Error("rows at the radius are out of range")
	}
}

func TestFieldOfViewZeroRadius(t *testing.T) {
	fov := NewFieldOfView(5, 5, gridOpacity(nil))
	visible := fov.Compute(Point{X: 2, Y: 2}, 0)

	if visible.Size() != 1 || !visible.Has(Point{X: 2, Y: 2}) {
		t.Errorf("only the origin should be visible, got %d points", visible.Size())
	}
}

func TestFieldOfViewWallBlocks(t *testing.T) {
	walls := make(map[Point]bool)
	for y := 0; y < 11; y++ {
		walls[Point{X: 7, Y: y}] = true
	}

	visible := NewFieldOfView(11, 11, gridOpacity(walls)).Compute(Point{X: 5, Y: 5}, 10)

	if !visible.Has(Point{X: 7, Y: 5}) {
		t.Error("the wall itself should be visible")
	}
	for y := 0; y < 11; y++ {
		for x := 8; x < 11; x++ {
			if visible.Has(Point{X: x, Y: y}) {
				t.Errorf("%v is behind the wall", Point{X: x, Y: y})
			}
		}
	}
}

func TestFieldOfViewSymmetric(t *testing.T) {
	const size = 15
	rng := rand.New(rand.NewSource(7))

	walls := make(map[Point]bool)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			border := x == 0 || y == 0 || x == size-1 || y == size-1
			if border || rng.Intn(6) == 0 {
				walls[Point{X: x, Y: y}] = true
			}
		}
	}

	fov := NewFieldOfView(size, size, gridOpacity(walls))
	views := make(map[Point]map[Point]bool)
	for x := 1; x < size-1; x++ {
		for y := 1; y < size-1; y++ {
			p := Point{X: x, Y: y}
			if walls[p] {
				continue
			}
			seen := make(map[Point]bool)
			fov.Compute(p, size).Each(func(q Point) { seen[q] = true })
			views[p] = seen
		}
	}

	for a, seen := range views {
		for b := range seen {
			if walls[b] || a == b {
				continue
			}
			if !views[b][a] {
				t.Errorf("%v sees %v but not the other way around", a, b)
			}
		}
	}
}
