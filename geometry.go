package unbounded

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Point represents an (X,Y) pair in a chunk or in the world
type Point struct {
	X int `json:""`
	Y int `json:""`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Add moves a point n steps in a direction
func (p Point) Add(d Direction, n int) Point {
	v := VectorForDirection[d]
	return Point{X: p.X + v.X*n, Y: p.Y + v.Y*n}
}

// Offset applies a vector to a point
func (p Point) Offset(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Vector Gets the vector between two points such that v = p.Vector(q); p.Offset(v) == q
func (p Point) Vector(q Point) Vector {
	return Vector{X: q.X - p.X, Y: q.Y - p.Y}
}

// Distance is the straight line distance between two points
func (p Point) Distance(q Point) float64 {
	v := p.Vector(q)
	return v.Magnitude()
}

// Manhattan is the grid distance between two points
func (p Point) Manhattan(q Point) int {
	return abs(q.X-p.X) + abs(q.Y-p.Y)
}

// ToBytes flushes point to buffer
func (p Point) ToBytes(buf io.Writer) {
	binary.Write(buf, binary.LittleEndian, [2]int32{int32(p.X), int32(p.Y)})
}

// Bytes dumps a point into a byte array, used as a database key
func (p Point) Bytes() []byte {
	buf := new(bytes.Buffer)
	p.ToBytes(buf)
	return buf.Bytes()
}

// PointFromBytes rehydrates a point struct
func PointFromBytes(ptBytes []byte) (Point, error) {
	var raw [2]int32
	if err := binary.Read(bytes.NewReader(ptBytes), binary.LittleEndian, &raw); err != nil {
		return Point{}, err
	}
	return Point{X: int(raw[0]), Y: int(raw[1])}, nil
}

// Vector is for doing point-to-point comparisons
type Vector struct {
	X int
	Y int
}

// Magnitude returns the pythagorean theorem to a vector
func (v Vector) Magnitude() float64 {
	return math.Sqrt(float64(v.X*v.X + v.Y*v.Y))
}

// Direction is a cardinal direction
type Direction byte

// Cardinal directions. Up is toward larger Y.
const (
	DIRECTIONUP Direction = iota
	DIRECTIONDOWN
	DIRECTIONLEFT
	DIRECTIONRIGHT
)

// Ordinal is the order directions are visited in whenever a loop has to pick one
var Ordinal = []Direction{DIRECTIONUP, DIRECTIONDOWN, DIRECTIONLEFT, DIRECTIONRIGHT}

// VectorForDirection maps directions to a distance vector
var VectorForDirection map[Direction]Vector

// DirectionForVector maps vectors to directions
var DirectionForVector map[Vector]Direction

func (d Direction) String() string {
	switch d {
	case DIRECTIONUP:
		return "up"
	case DIRECTIONDOWN:
		return "down"
	case DIRECTIONLEFT:
		return "left"
	case DIRECTIONRIGHT:
		return "right"
	}
	return "?"
}

// Vertical is true for up and down
func (d Direction) Vertical() bool {
	return d == DIRECTIONUP || d == DIRECTIONDOWN
}

// IsNeighbor is true when the two directions are perpendicular
func (d Direction) IsNeighbor(o Direction) bool {
	return d.Vertical() != o.Vertical()
}

// Opposite gives the direction pointing the other way
func (d Direction) Opposite() Direction {
	switch d {
	case DIRECTIONUP:
		return DIRECTIONDOWN
	case DIRECTIONDOWN:
		return DIRECTIONUP
	case DIRECTIONLEFT:
		return DIRECTIONRIGHT
	}
	return DIRECTIONLEFT
}

// DirectionBetween finds the direction of a single orthogonal step from a to b
func DirectionBetween(a, b Point) (Direction, bool) {
	d, ok := DirectionForVector[a.Vector(b)]
	return d, ok
}

// Room is an axis aligned rectangle carved into a dungeon
type Room struct {
	X      int  `json:""`
	Y      int  `json:""`
	Width  int  `json:""`
	Height int  `json:""`
	Locked bool `json:""`
}

// Left edge
func (r Room) Left() int { return min(r.X, r.X+r.Width) }

// Right edge
func (r Room) Right() int { return max(r.X, r.X+r.Width) }

// Bottom edge
func (r Room) Bottom() int { return min(r.Y, r.Y+r.Height) }

// Top edge
func (r Room) Top() int { return max(r.Y, r.Y+r.Height) }

// Center of the room, rounded toward the bottom left
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p falls inside the room's rectangle
func (r Room) Contains(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Bottom() && p.Y < r.Top()
}

// axisGap is the space between [lo1,hi1) and [lo2,hi2) when they don't overlap
func axisGap(lo1, hi1, lo2, hi2 int) (int, bool) {
	if lo1 >= hi2 {
		return lo1 - hi2, true
	}
	if hi1 <= lo2 {
		return lo2 - hi1, true
	}
	return 0, false
}

// DistanceFrom measures the gap between two rooms. separated is false when the
// rectangles overlap on both axes; otherwise gap is the gap on the separated
// axis, or the sum of both gaps when separated on both. A gap of 0 means the
// rooms touch.
func (r Room) DistanceFrom(other Room) (gap int, separated bool) {
	vertical, vok := axisGap(r.Bottom(), r.Top(), other.Bottom(), other.Top())
	horizontal, hok := axisGap(r.Left(), r.Right(), other.Left(), other.Right())

	switch {
	case vok && hok:
		return vertical + horizontal, true
	case vok:
		return vertical, true
	case hok:
		return horizontal, true
	}
	return 0, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func init() {
	VectorForDirection = map[Direction]Vector{
		DIRECTIONUP:    {X: 0, Y: 1},
		DIRECTIONDOWN:  {X: 0, Y: -1},
		DIRECTIONLEFT:  {X: -1, Y: 0},
		DIRECTIONRIGHT: {X: 1, Y: 0}}
	DirectionForVector = make(map[Vector]Direction)
	for k, v := range VectorForDirection {
		DirectionForVector[v] = k
	}
}
