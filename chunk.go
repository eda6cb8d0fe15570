package unbounded

import (
	"github.com/sasha-s/go-deadlock"
	"github.com/zyedidia/generic/mapset"
)

// ChunkKind selects the generation algorithm for a chunk
type ChunkKind int

// Kinds of chunk
const (
	KindDungeon ChunkKind = iota
	KindOutside
)

func (k ChunkKind) String() string {
	switch k {
	case KindDungeon:
		return "dungeon"
	case KindOutside:
		return "outside"
	}
	return "unknown"
}

// ChunkData is the durable description of a chunk: enough to regenerate its
// grid, where it sits in the world, and the entities living in it.
type ChunkData struct {
	Seed    int64
	Kind    ChunkKind
	Center  Point
	Palette map[string]string
	Name    string

	North *ChunkData
	South *ChunkData
	East  *ChunkData
	West  *ChunkData

	Interactables []Interactable
	Mobs          []*Monster
	Populated     bool
}

// NewChunkData makes metadata for a chunk that hasn't been generated yet
func NewChunkData(seed int64, kind ChunkKind, center Point) *ChunkData {
	palette := DungeonPalette()
	if kind == KindOutside {
		palette = OutsidePalette()
	}

	return &ChunkData{
		Seed:    seed,
		Kind:    kind,
		Center:  center,
		Palette: palette,
	}
}

// Neighbor returns the linked chunk in a direction, if any
func (d *ChunkData) Neighbor(dir Direction) *ChunkData {
	switch dir {
	case DIRECTIONUP:
		return d.North
	case DIRECTIONDOWN:
		return d.South
	case DIRECTIONLEFT:
		return d.West
	case DIRECTIONRIGHT:
		return d.East
	}
	return nil
}

func (d *ChunkData) setNeighbor(dir Direction, other *ChunkData) {
	switch dir {
	case DIRECTIONUP:
		d.North = other
	case DIRECTIONDOWN:
		d.South = other
	case DIRECTIONLEFT:
		d.West = other
	case DIRECTIONRIGHT:
		d.East = other
	}
}

// Link joins two chunks in both directions
func (d *ChunkData) Link(dir Direction, other *ChunkData) {
	d.setNeighbor(dir, other)
	other.setNeighbor(dir.Opposite(), d)
}

// RoleTile is the tile a palette role draws as
func (d *ChunkData) RoleTile(role string) Tile {
	if id, ok := d.Palette[role]; ok {
		return Tile{Type: id}
	}
	return Tile{Type: TileNothing}
}

// RemoveInteractable drops an interactable from the chunk's list
func (d *ChunkData) RemoveInteractable(target Interactable) {
	for i, item := range d.Interactables {
		if item == target {
			d.Interactables = append(d.Interactables[:i], d.Interactables[i+1:]...)
			return
		}
	}
}

// RemoveMob drops a monster from the chunk's list
func (d *ChunkData) RemoveMob(target *Monster) {
	for i, mob := range d.Mobs {
		if mob == target {
			d.Mobs = append(d.Mobs[:i], d.Mobs[i+1:]...)
			return
		}
	}
}

// Chunk is a generated tile grid plus the metadata it was built from. Once a
// chunk is shared between the game loop and the worker pool, tile and entity
// access must happen with the chunk locked; the accessors below assume the
// caller holds it.
type Chunk struct {
	mu     deadlock.Mutex
	tiles  [][]Tile
	width  int
	height int
	data   *ChunkData
	rooms  []Room
}

func newChunk(tiles [][]Tile, data *ChunkData, rooms []Room) *Chunk {
	c := &Chunk{
		tiles: tiles,
		data:  data,
		rooms: rooms,
		width: len(tiles),
	}
	if c.width > 0 {
		c.height = len(tiles[0])
	}
	return c
}

// Lock takes the chunk's lock
func (c *Chunk) Lock() { c.mu.Lock() }

// Unlock releases the chunk's lock
func (c *Chunk) Unlock() { c.mu.Unlock() }

// Width of the grid
func (c *Chunk) Width() int { return c.width }

// Height of the grid
func (c *Chunk) Height() int { return c.height }

// Data is the chunk's metadata
func (c *Chunk) Data() *ChunkData { return c.data }

// Rooms carved into the chunk, in placement order
func (c *Chunk) Rooms() []Room { return c.rooms }

// InBounds is true when p is on the grid
func (c *Chunk) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.width && p.Y < c.height
}

// Tile at p; out of bounds reads as nothing
func (c *Chunk) Tile(p Point) Tile {
	if !c.InBounds(p) {
		return Tile{Type: TileNothing}
	}
	return c.tiles[p.X][p.Y]
}

// SetTile replaces the tile at p
func (c *Chunk) SetTile(p Point, t Tile) {
	if c.InBounds(p) {
		c.tiles[p.X][p.Y] = t
	}
}

// IsRole is true when the tile at p is the palette's tile for role
func (c *Chunk) IsRole(p Point, role string) bool {
	return c.InBounds(p) && c.tiles[p.X][p.Y].Type == c.data.RoleTile(role).Type
}

// Opaque is true for tiles that block sight
func (c *Chunk) Opaque(p Point) bool {
	return c.Tile(p).Opaque()
}

// Walkable is true when a mover may step onto p right now
func (c *Chunk) Walkable(p Point) bool {
	return c.InBounds(p) && c.tiles[p.X][p.Y].Walkable()
}

// Tiles copies the grid
func (c *Chunk) Tiles() [][]Tile {
	out := make([][]Tile, c.width)
	for x := range c.tiles {
		out[x] = append([]Tile(nil), c.tiles[x]...)
	}
	return out
}

// MonsterAt finds the live monster standing on p
func (c *Chunk) MonsterAt(p Point) *Monster {
	for _, mob := range c.data.Mobs {
		if mob.Location() == p {
			return mob
		}
	}
	return nil
}

// InteractablesAt lists the interactables sitting on p
func (c *Chunk) InteractablesAt(p Point) []Interactable {
	found := make([]Interactable, 0, 1)
	for _, item := range c.data.Interactables {
		if item.Location() == p {
			found = append(found, item)
		}
	}
	return found
}

// Lamps lists the chunk's lamps
func (c *Chunk) Lamps() []*Lamp {
	lamps := make([]*Lamp, 0)
	for _, item := range c.data.Interactables {
		if lamp, ok := item.(*Lamp); ok {
			lamps = append(lamps, lamp)
		}
	}
	return lamps
}

// FieldOfView is the set of points visible from origin
func (c *Chunk) FieldOfView(origin Point, radius int) mapset.Set[Point] {
	return NewFieldOfView(c.width, c.height, c.Opaque).Compute(origin, radius)
}

// bind attaches every interactable and then every mob to this chunk
func (c *Chunk) bind() {
	for _, item := range c.data.Interactables {
		item.Init(c)
	}
	for _, mob := range c.data.Mobs {
		mob.Init(c)
	}
}
