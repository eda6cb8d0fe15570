package unbounded

import (
	"math"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// Room size bounds, [min, max)
const (
	minRoomSize = 8
	maxRoomSize = 18
)

// DungeonGenerator carves rooms joined by corridors, locks one room away
// behind doors with a trophy inside, and scatters keys, monsters, and lamps.
type DungeonGenerator struct {
	gridBuilder
	maxRoomTries int
}

// NewDungeonGenerator sets up a dungeon generator for the chunk
func NewDungeonGenerator(data *ChunkData, width, height, maxRoomTries int) *DungeonGenerator {
	return &DungeonGenerator{
		gridBuilder:  newGridBuilder(data, width, height, rand.New(rand.NewSource(data.Seed))),
		maxRoomTries: maxRoomTries,
	}
}

// Generate builds the dungeon
func (g *DungeonGenerator) Generate() *Chunk {
	g.fill(RoleBase)
	g.addRooms()
	g.buildPaths()
	g.buildPathWalls()
	if g.createLockedRoom() && !g.data.Populated {
		g.placeKeys()
	}
	g.fillInCorners()
	g.removeUnnecessaryTiles()

	if !g.data.Populated {
		g.populateMonsters()
		g.placeLamps()
	}

	log.WithFields(log.Fields{
		"seed":          g.data.Seed,
		"center":        g.data.Center,
		"rooms":         len(g.rooms),
		"mobs":          len(g.data.Mobs),
		"interactables": len(g.data.Interactables),
	}).Debug("Generated dungeon chunk")

	return g.finish()
}

// addRooms tries maxRoomTries times to drop a randomly sized room somewhere
// it neither overlaps nor touches an existing one
func (g *DungeonGenerator) addRooms() {
	for i := 0; i < g.maxRoomTries; i++ {
		width := g.nextInt(minRoomSize, maxRoomSize)
		height := g.nextInt(minRoomSize, maxRoomSize)
		x := g.nextInt(0, ((g.width-width)/2)*2+1)
		y := g.nextInt(0, ((g.height-height)/2)*2+1)

		room := Room{X: x, Y: y, Width: width, Height: height}
		if room.Right() > g.width || room.Top() > g.height {
			continue
		}

		fits := true
		for _, other := range g.rooms {
			if gap, separated := room.DistanceFrom(other); !separated || gap <= 0 {
				fits = false
				break
			}
		}

		if fits {
			g.rooms = append(g.rooms, room)
			g.buildRoom(room)
		}
	}
}

func (g *DungeonGenerator) buildRoom(room Room) {
	for x := room.X; x < room.X+room.Width; x++ {
		for y := room.Y; y < room.Y+room.Height; y++ {
			p := Point{x, y}
			if x == room.X || x >= room.X+room.Width-1 || y == room.Y || y >= room.Y+room.Height-1 {
				g.setRole(p, RoleWall)
			} else {
				g.setRole(p, RoleFloor)
			}
		}
	}
}

// isCorner is true for a wall tile that has wall neighbors on both axes
func (g *DungeonGenerator) isCorner(p Point) bool {
	if !g.isRole(p, RoleWall) {
		return false
	}

	vertical := g.isRole(p.Add(DIRECTIONUP, 1), RoleWall) || g.isRole(p.Add(DIRECTIONDOWN, 1), RoleWall)
	horizontal := g.isRole(p.Add(DIRECTIONLEFT, 1), RoleWall) || g.isRole(p.Add(DIRECTIONRIGHT, 1), RoleWall)

	return vertical && horizontal
}

type corridorStep struct {
	dir      Direction
	pt       Point
	distance float64
}

// buildPaths walks a corridor from each room's center to the next room's,
// wrapping around to the first
func (g *DungeonGenerator) buildPaths() {
	maxSteps := g.width * g.height

	for q := range g.rooms {
		start := g.rooms[q].Center()
		end := g.rooms[(q+1)%len(g.rooms)].Center()

		var prevDir Direction
		hasPrev := false

		for steps := 0; start.Distance(end) > 0; steps++ {
			if steps > maxSteps {
				log.WithFields(log.Fields{"seed": g.data.Seed, "from": g.rooms[q].Center(), "to": end}).Warn("Abandoned corridor")
				break
			}

			candidates := make([]corridorStep, 0, 4)
			for _, dir := range Ordinal {
				next := start.Add(dir, 1)
				if g.inBounds(next) && !g.isCorner(next) {
					candidates = append(candidates, corridorStep{dir: dir, pt: next, distance: next.Distance(end)})
				}
			}

			if len(candidates) == 0 {
				break
			}

			best := candidates[0]
			for _, c := range candidates[1:] {
				if c.distance < best.distance {
					best = c
				}
			}

			chosen := best
			if hasPrev {
				limit := math.Ceil(best.distance)
				for _, c := range candidates {
					if c.dir == prevDir && c.distance >= best.distance && c.distance <= limit {
						chosen = c
						break
					}
				}
			}

			if chosen == best {
				prevDir, hasPrev = best.dir, true
			}

			start = chosen.pt
			g.setRole(start, RoleFloor)
		}
	}
}

// buildPathWalls turns background next to any floor into wall
func (g *DungeonGenerator) buildPathWalls() {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := Point{x, y}
			if !g.isRole(p, RoleFloor) {
				continue
			}
			for _, dir := range Ordinal {
				if n := p.Add(dir, 1); g.isRole(n, RoleBase) {
					g.setRole(n, RoleWall)
				}
			}
		}
	}
}

// doorsAllowed is true when a room's outline is mostly intact
func (g *DungeonGenerator) doorsAllowed(room Room) bool {
	count := 0
	for x := room.X; x < room.X+room.Width; x++ {
		for y := room.Y; y < room.Y+room.Height; y++ {
			if g.isRole(Point{x, y}, RoleWall) {
				count++
			}
		}
	}

	expected := 2*room.Width + 2*room.Height - 4
	return count >= expected-2
}

// isDoorway is a floor tile squeezed between walls along one axis with no
// second opening beyond them
func (g *DungeonGenerator) isDoorway(p Point, a, b Direction) bool {
	closed := func(d Direction) bool {
		far := p.Add(d, 2)
		return g.isRole(p.Add(d, 1), RoleWall) && (!g.inBounds(far) || g.isRole(far, RoleWall))
	}
	return closed(a) && closed(b)
}

// createLockedRoom locks away the first room with an intact outline, as long
// as another room exists to hold its keys. Reports whether a room was locked.
func (g *DungeonGenerator) createLockedRoom() bool {
	if len(g.rooms) < 2 {
		return false
	}

	for i := range g.rooms {
		room := &g.rooms[i]
		if !g.doorsAllowed(*room) {
			continue
		}

		for x := room.X; x < room.X+room.Width; x++ {
			for y := room.Y; y < room.Y+room.Height; y++ {
				p := Point{x, y}
				if !g.isRole(p, RoleFloor) {
					continue
				}
				if g.isDoorway(p, DIRECTIONLEFT, DIRECTIONRIGHT) || g.isDoorway(p, DIRECTIONUP, DIRECTIONDOWN) {
					g.setTile(p, Tile{Type: TileLockedDoor})
					if !g.data.Populated {
						g.data.Interactables = append(g.data.Interactables, NewDoor(p))
					}
				}
			}
		}

		center := room.Center()
		g.setTile(center, Tile{Type: TileTrophy})
		if !g.data.Populated {
			g.data.Interactables = append(g.data.Interactables, NewTrophy(center))
		}
		room.Locked = true
		return true
	}

	return false
}

// placeKeys puts a key in the center of up to three unlocked rooms
func (g *DungeonGenerator) placeKeys() {
	count := 0
	for _, room := range g.rooms {
		if room.Locked {
			continue
		}
		center := room.Center()
		g.data.Interactables = append(g.data.Interactables, NewKey(center))
		g.occupied.Put(center)
		count++
		if count > 2 {
			break
		}
	}
}

// isUnnecessaryCornerTile finds background cut off by two perpendicular
// double-thick walls
func (g *DungeonGenerator) isUnnecessaryCornerTile(p Point) bool {
	count := 0
	var prevDir Direction
	hasPrev := false

	for _, dir := range Ordinal {
		p1, p2 := p.Add(dir, 1), p.Add(dir, 2)
		if !g.inBounds(p1) || !g.inBounds(p2) {
			continue
		}
		if g.isRole(p1, RoleWall) && g.isRole(p2, RoleWall) && (!hasPrev || prevDir.IsNeighbor(dir)) {
			count++
			prevDir, hasPrev = dir, true
		}
	}

	return count == 2
}

func (g *DungeonGenerator) fillInCorners() {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := Point{x, y}
			if g.isRole(p, RoleBase) && g.isUnnecessaryCornerTile(p) {
				g.setRole(p, RoleWall)
			}
		}
	}
}

func (g *DungeonGenerator) countNeighbors(p Point, role string) int {
	count := 0
	for _, dir := range Ordinal {
		if g.isRole(p.Add(dir, 1), role) {
			count++
		}
	}
	return count
}

// removeUnnecessaryTiles opens up stray walls inside rooms and walls off
// small pockets of background
func (g *DungeonGenerator) removeUnnecessaryTiles() {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := Point{x, y}
			switch {
			case g.isRole(p, RoleWall):
				floors := g.countNeighbors(p, RoleFloor)
				boundary := g.countNeighbors(p, RoleBase) > 0
				if floors >= 3 && !(boundary && floors == 3) {
					g.setRole(p, RoleFloor)
				}
			case g.isRole(p, RoleBase):
				if g.countNeighbors(p, RoleWall) >= 3 {
					g.setRole(p, RoleWall)
				}
			}
		}
	}
}

// spawnAttempts bounds the search for a free floor tile in a room
const spawnAttempts = 100

func (g *DungeonGenerator) randomFreeFloor(x0, x1, y0, y1 int) (Point, bool) {
	for i := 0; i < spawnAttempts; i++ {
		p := Point{g.nextInt(x0, x1), g.nextInt(y0, y1)}
		if g.isRole(p, RoleFloor) && !g.occupied.Has(p) {
			return p, true
		}
	}
	return Point{}, false
}

// populateMonsters puts 0-2 monsters on free floor in each room
func (g *DungeonGenerator) populateMonsters() {
	for _, room := range g.rooms {
		count := g.nextInt(0, 3)
		for i := 0; i < count; i++ {
			p, ok := g.randomFreeFloor(room.X, room.X+room.Width, room.Y, room.Y+room.Height)
			if !ok {
				break
			}
			g.data.Mobs = append(g.data.Mobs, g.newMonster(p))
		}
	}
}

// placeLamps puts at most one lamp in each room, away from the walls
func (g *DungeonGenerator) placeLamps() {
	for _, room := range g.rooms {
		if g.nextInt(0, 2) == 0 {
			continue
		}
		p, ok := g.randomFreeFloor(room.X+2, room.X+room.Width-2, room.Y+2, room.Y+room.Height-2)
		if !ok {
			continue
		}
		g.occupied.Put(p)
		g.data.Interactables = append(g.data.Interactables, NewLamp(p))
	}
}
