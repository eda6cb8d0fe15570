package unbounded

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// Generator produces a fully populated chunk. All randomness comes from one
// source seeded from the chunk's metadata, so the same metadata always yields
// the same chunk.
type Generator interface {
	Generate() *Chunk
}

// GeneratorOptions are the knobs shared by all generation algorithms
type GeneratorOptions struct {
	Width     int
	Height    int
	RoomTries int
	MobCount  int
}

// GeneratorOptionsFromConfig pulls generation settings out of a config
func GeneratorOptionsFromConfig(cfg Config) GeneratorOptions {
	return GeneratorOptions{
		Width:     cfg.StageWidth,
		Height:    cfg.StageHeight,
		RoomTries: cfg.RoomTries,
		MobCount:  cfg.OutsideMobCount,
	}
}

type generatorFunc func(data *ChunkData, opts GeneratorOptions) Generator

var generationAlgorithms map[ChunkKind]generatorFunc

// NewGenerator picks the generation algorithm for the chunk's kind
func NewGenerator(data *ChunkData, opts GeneratorOptions) Generator {
	algo, ok := generationAlgorithms[data.Kind]

	if !ok {
		panic(fmt.Sprintf("no generator for chunk kind %v", data.Kind))
	}

	return algo(data, opts)
}

// gridBuilder is the mutable state every generator works on
type gridBuilder struct {
	rng      *rand.Rand
	tiles    [][]Tile
	width    int
	height   int
	data     *ChunkData
	rooms    []Room
	occupied mapset.Set[Point]
}

func newGridBuilder(data *ChunkData, width, height int, rng *rand.Rand) gridBuilder {
	tiles := make([][]Tile, width)
	for x := range tiles {
		tiles[x] = make([]Tile, height)
	}

	return gridBuilder{
		rng:      rng,
		tiles:    tiles,
		width:    width,
		height:   height,
		data:     data,
		rooms:    make([]Room, 0),
		occupied: mapset.New[Point](),
	}
}

func (g *gridBuilder) inBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

func (g *gridBuilder) tile(p Point) Tile {
	return g.tiles[p.X][p.Y]
}

func (g *gridBuilder) setTile(p Point, t Tile) {
	g.tiles[p.X][p.Y] = t
}

func (g *gridBuilder) setRole(p Point, role string) {
	g.setTile(p, g.data.RoleTile(role))
}

// isRole is false for points off the grid
func (g *gridBuilder) isRole(p Point, role string) bool {
	return g.inBounds(p) && g.tiles[p.X][p.Y].Type == g.data.RoleTile(role).Type
}

func (g *gridBuilder) fill(role string) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			g.setRole(Point{x, y}, role)
		}
	}
}

// nextInt draws from [lo, hi)
func (g *gridBuilder) nextInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo)
}

func (g *gridBuilder) newMonster(p Point) *Monster {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		id = uuid.New()
	}

	g.occupied.Put(p)
	return NewMonster(id.String(), p)
}

// finish wraps the grid up as a chunk and binds the chunk's entities to it
func (g *gridBuilder) finish() *Chunk {
	if g.data.Name == "" {
		g.data.Name = RandomPlaceName(rand.New(rand.NewSource(g.data.Seed)))
	}
	g.data.Populated = true

	chunk := newChunk(g.tiles, g.data, g.rooms)
	chunk.bind()
	return chunk
}

func init() {
	generationAlgorithms = map[ChunkKind]generatorFunc{
		KindDungeon: func(data *ChunkData, opts GeneratorOptions) Generator {
			return NewDungeonGenerator(data, opts.Width, opts.Height, opts.RoomTries)
		},
		KindOutside: func(data *ChunkData, opts GeneratorOptions) Generator {
			return NewOutsideGenerator(data, opts.Width, opts.Height, opts.MobCount)
		},
	}
}
