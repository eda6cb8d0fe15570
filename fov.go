package unbounded

import (
	"github.com/zyedidia/generic/mapset"
)

// FieldOfView computes visibility with symmetric recursive shadowcasting over
// one chunk's opacity. Each quadrant is scanned row by row moving away from
// the origin; opaque tiles split a row into narrower child rows.
type FieldOfView struct {
	width  int
	height int
	opaque func(Point) bool
}

// NewFieldOfView builds a solver for a width x height grid
func NewFieldOfView(width, height int, opaque func(Point) bool) *FieldOfView {
	return &FieldOfView{width: width, height: height, opaque: opaque}
}

// slope is an exact fraction num/den with den > 0. Slopes are kept as
// integers so that column rounding at exact halves is never off by one.
type slope struct {
	num int
	den int
}

// tileSlope is the slope of the edge of a tile at (depth, col) nearest the origin's left
func tileSlope(depth, col int) slope {
	return slope{num: 2*col - 1, den: 2 * depth}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

type fovRow struct {
	depth int
	start slope
	end   slope
}

// columns gives the column range of the row: depth*start rounded with ties
// up, to depth*end rounded with ties down
func (r fovRow) columns() (int, int) {
	minCol := floorDiv(2*r.depth*r.start.num+r.start.den, 2*r.start.den)
	maxCol := ceilDiv(2*r.depth*r.end.num-r.end.den, 2*r.end.den)
	return minCol, maxCol
}

func (r fovRow) next() fovRow {
	return fovRow{depth: r.depth + 1, start: r.start, end: r.end}
}

// symmetric is true when col lies inside the row's slope window
func (r fovRow) symmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num && col*r.end.den <= r.depth*r.end.num
}

type quadrant struct {
	cardinal Direction
	origin   Point
	width    int
	height   int
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// transform maps (depth, col) in the quadrant to grid coordinates
func (q quadrant) transform(depth, col int) Point {
	var p Point
	switch q.cardinal {
	case DIRECTIONUP:
		p = Point{X: q.origin.X + col, Y: q.origin.Y - depth}
	case DIRECTIONDOWN:
		p = Point{X: q.origin.X + col, Y: q.origin.Y + depth}
	case DIRECTIONRIGHT:
		p = Point{X: q.origin.X + depth, Y: q.origin.Y + col}
	default:
		p = Point{X: q.origin.X - depth, Y: q.origin.Y + col}
	}
	return Point{X: clamp(p.X, 0, q.width-1), Y: clamp(p.Y, 0, q.height-1)}
}

// Compute returns every point visible from origin. Rows at depth radius and
// beyond are not scanned.
func (fov *FieldOfView) Compute(origin Point, radius int) mapset.Set[Point] {
	visible := mapset.New[Point]()
	visible.Put(origin)

	for _, cardinal := range Ordinal {
		q := quadrant{cardinal: cardinal, origin: origin, width: fov.width, height: fov.height}
		fov.scan(q, fovRow{depth: 1, start: slope{-1, 1}, end: slope{1, 1}}, radius, visible)
	}

	return visible
}

func (fov *FieldOfView) scan(q quadrant, row fovRow, radius int, visible mapset.Set[Point]) {
	if row.depth >= radius {
		return
	}

	minCol, maxCol := row.columns()
	hasPrev, prevWall := false, false

	for col := minCol; col <= maxCol; col++ {
		p := q.transform(row.depth, col)
		wall := fov.opaque(p)

		if wall || row.symmetric(col) {
			visible.Put(p)
		}

		if hasPrev && prevWall && !wall {
			row.start = tileSlope(row.depth, col)
		}

		if hasPrev && !prevWall && wall {
			child := row.next()
			child.end = tileSlope(row.depth, col)
			fov.scan(q, child, radius, visible)
		}

		hasPrev, prevWall = true, wall
	}

	if hasPrev && !prevWall {
		fov.scan(q, row.next(), radius, visible)
	}
}
