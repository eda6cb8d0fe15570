package unbounded

import (
	"math/rand"

	"github.com/sasha-s/go-deadlock"
	log "github.com/sirupsen/logrus"
)

// WorldEngine hands out chunks and keeps the graph of visited chunks
// stitched together. Each chunk is generated from its stored seed, so
// coming back to a chunk rebuilds exactly what was there.
type WorldEngine struct {
	opts        GeneratorOptions
	seed        int64
	rng         *rand.Rand
	outsideSeed int64
	hasOutside  bool
	chunks      map[Point]*ChunkData

	mu      deadlock.Mutex
	current *Chunk
}

// NewWorldEngine starts an empty world. All chunk seeds are drawn from seed.
func NewWorldEngine(cfg Config, seed int64) *WorldEngine {
	return &WorldEngine{
		opts:   GeneratorOptionsFromConfig(cfg),
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		chunks: make(map[Point]*ChunkData),
	}
}

// Seed the world was started from
func (e *WorldEngine) Seed() int64 { return e.seed }

// Options are the generation settings used for every chunk
func (e *WorldEngine) Options() GeneratorOptions { return e.opts }

// Current is the chunk the player is in
func (e *WorldEngine) Current() *Chunk {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// SetCurrent swaps the chunk the player is in
func (e *WorldEngine) SetCurrent(c *Chunk) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = c
}

// ChunkData looks up the metadata for a chunk by its world center
func (e *WorldEngine) ChunkData(center Point) *ChunkData {
	return e.chunks[center]
}

// Visited lists the metadata of every chunk in the graph
func (e *WorldEngine) Visited() []*ChunkData {
	visited := make([]*ChunkData, 0, len(e.chunks))
	for _, data := range e.chunks {
		visited = append(visited, data)
	}
	return visited
}

func (e *WorldEngine) register(data *ChunkData) {
	e.chunks[data.Center] = data
}

// outsideNoiseSeed is shared by every outside chunk so terrain is continuous
func (e *WorldEngine) outsideNoiseSeed() int64 {
	if !e.hasOutside {
		e.outsideSeed = e.rng.Int63()
		e.hasOutside = true
	}
	return e.outsideSeed
}

// CreateDungeon makes a brand new dungeon chunk at center
func (e *WorldEngine) CreateDungeon(center Point) *Chunk {
	data := NewChunkData(e.rng.Int63(), KindDungeon, center)
	e.register(data)
	return e.Generate(data)
}

// CreateOutside makes a brand new outside chunk at center
func (e *WorldEngine) CreateOutside(center Point) *Chunk {
	data := NewChunkData(e.outsideNoiseSeed(), KindOutside, center)
	e.register(data)
	return e.Generate(data)
}

// Generate builds a chunk from its metadata, whether it's new or a revisit
func (e *WorldEngine) Generate(data *ChunkData) *Chunk {
	return NewGenerator(data, e.opts).Generate()
}

// neighborCenter is the world center of the chunk next to center in direction d
func (e *WorldEngine) neighborCenter(center Point, d Direction) Point {
	v := VectorForDirection[d]
	return Point{X: center.X + v.X*e.opts.Width, Y: center.Y + v.Y*e.opts.Height}
}

// entryPoint is where someone leaving through edge d at loc lands in the next chunk
func (e *WorldEngine) entryPoint(loc Point, d Direction) Point {
	switch d {
	case DIRECTIONUP:
		return Point{X: loc.X, Y: 0}
	case DIRECTIONDOWN:
		return Point{X: loc.X, Y: e.opts.Height - 1}
	case DIRECTIONLEFT:
		return Point{X: e.opts.Width - 1, Y: loc.Y}
	}
	return Point{X: 0, Y: loc.Y}
}

// TileNextChunk moves the player over the edge of the current chunk in
// direction d. Unknown territory becomes a new outside chunk. If the player
// can't stand where they would land, nothing happens.
func (e *WorldEngine) TileNextChunk(d Direction, p *Player) bool {
	current := e.Current()
	if current == nil {
		return false
	}
	data := current.Data()

	center := e.neighborCenter(data.Center, d)
	next := data.Neighbor(d)
	if next == nil {
		next = e.chunks[center]
	}

	created := false
	if next == nil {
		next = NewChunkData(e.outsideNoiseSeed(), KindOutside, center)
		created = true
	}

	chunk := e.Generate(next)
	spawn := e.entryPoint(p.Location(), d)

	if !p.EnterChunk(chunk, spawn) {
		log.WithFields(log.Fields{"direction": d, "center": center, "spawn": spawn}).Debug("Blocked at chunk edge")
		return false
	}

	if created {
		e.register(next)
	}
	data.Link(d, next)
	e.SetCurrent(chunk)

	log.WithFields(log.Fields{
		"direction": d,
		"center":    center,
		"kind":      next.Kind,
		"seed":      next.Seed,
		"new":       created,
	}).Info("Entered chunk")

	return true
}

// restore rebuilds the chunk graph from saved metadata. Seeds for chunks
// made after this point come from a stream offset by the number of chunks
// already known, so they don't repeat the ones handed out before the save.
func (e *WorldEngine) restore(chunks []*ChunkData, outsideSeed int64, hasOutside bool) {
	for _, data := range chunks {
		e.register(data)
	}
	e.outsideSeed, e.hasOutside = outsideSeed, hasOutside
	e.rng = rand.New(rand.NewSource(e.seed + int64(len(chunks))))
}
