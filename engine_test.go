package unbounded

import "testing"

// crossEast puts the player on the east edge of the current chunk and tries
// each row until one lets them walk into the next chunk
func crossEast(e *WorldEngine, p *Player) (int, bool) {
	c := e.Current()
	for y := 0; y < c.Height(); y++ {
		at := Point{X: c.Width() - 1, Y: y}
		c.Lock()
		ok := c.Walkable(at)
		c.Unlock()
		if ok && p.EnterChunk(c, at) && e.TileNextChunk(DIRECTIONRIGHT, p) {
			return y, true
		}
	}
	return 0, false
}

func TestTileNextChunkThereAndBack(t *testing.T) {
	cfg := testConfig(t)
	crossed := 0

	for seed := int64(1); seed <= 10; seed++ {
		e := NewWorldEngine(cfg, seed)
		start := e.CreateOutside(Point{X: 30, Y: 30})
		e.SetCurrent(start)
		origin := start.Data()

		p := NewPlayer()
		y, ok := crossEast(e, p)
		if !ok {
			continue
		}
		crossed++

		east := e.Current().Data()
		if east.Center != (Point{X: 30 + cfg.StageWidth, Y: 30}) {
			t.Errorf("seed %d: east chunk centered at %v", seed, east.Center)
		}
		if east.Kind != KindOutside {
			t.Errorf("seed %d: new neighbor is %v", seed, east.Kind)
		}
		if origin.East != east || east.West != origin {
			t.Errorf("seed %d: chunks not linked both ways", seed)
		}
		if e.ChunkData(east.Center) != east {
			t.Errorf("seed %d: new chunk not indexed", seed)
		}
		if p.Location() != (Point{X: 0, Y: y}) {
			t.Errorf("seed %d: player landed at %v", seed, p.Location())
		}

		if !e.TileNextChunk(DIRECTIONLEFT, p) {
			t.Fatalf("seed %d: could not walk back to where we came from", seed)
		}
		back := e.Current()
		if back.Data() != origin || back.Data().Seed != origin.Seed {
			t.Errorf("seed %d: walking back did not return to the first chunk", seed)
		}
		if p.Location() != (Point{X: cfg.StageWidth - 1, Y: y}) {
			t.Errorf("seed %d: player came back at %v", seed, p.Location())
		}
		if len(e.Visited()) != 2 {
			t.Errorf("seed %d: %d chunks in the graph", seed, len(e.Visited()))
		}
	}

	if crossed == 0 {
		t.Fatal("no seed had a walkable east edge")
	}
}

func TestTileNextChunkReusesIndexedChunk(t *testing.T) {
	cfg := testConfig(t)
	crossed := 0

	for seed := int64(1); seed <= 10; seed++ {
		e := NewWorldEngine(cfg, seed)
		start := e.CreateOutside(Point{X: 30, Y: 30})
		e.SetCurrent(start)

		eastCenter := Point{X: 30 + cfg.StageWidth, Y: 30}
		e.CreateOutside(eastCenter)
		known := e.ChunkData(eastCenter)

		p := NewPlayer()
		if _, ok := crossEast(e, p); !ok {
			continue
		}
		crossed++

		if e.Current().Data() != known {
			t.Errorf("seed %d: walked into a fresh chunk instead of the known one", seed)
		}
		if start.Data().East != known {
			t.Errorf("seed %d: known chunk not linked", seed)
		}
	}

	if crossed == 0 {
		t.Fatal("no seed had a walkable east edge")
	}
}

func TestTileNextChunkBlocked(t *testing.T) {
	cfg := testConfig(t)
	e := NewWorldEngine(cfg, 1)
	c := floorChunk(cfg.StageWidth, cfg.StageHeight)
	e.SetCurrent(c)
	e.register(c.Data())

	// A dungeon neighbor; its corner is never floor
	wall := NewChunkData(5, KindDungeon, Point{X: cfg.StageWidth, Y: 0})
	e.register(wall)

	p := NewPlayer()
	at := Point{X: cfg.StageWidth - 1, Y: 0}
	if !p.EnterChunk(c, at) {
		t.Fatal("could not place player")
	}

	if e.TileNextChunk(DIRECTIONRIGHT, p) {
		t.Fatal("walked into a wall")
	}
	if e.Current() != c || p.Chunk() != c || p.Location() != at {
		t.Error("a blocked crossing should change nothing")
	}
	if c.Data().East != nil {
		t.Error("a blocked crossing should not link chunks")
	}
}

func TestWorldEngineSeeds(t *testing.T) {
	cfg := testConfig(t)

	a := NewWorldEngine(cfg, 77)
	b := NewWorldEngine(cfg, 77)
	if a.CreateDungeon(Point{}).Data().Seed != b.CreateDungeon(Point{}).Data().Seed {
		t.Error("same world seed should hand out the same chunk seeds")
	}

	first := a.CreateOutside(Point{X: 100}).Data().Seed
	second := a.CreateOutside(Point{X: 200}).Data().Seed
	if first != second {
		t.Error("outside chunks should share a noise seed")
	}
}
