package unbounded

import (
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.ErrorLevel)
	os.Exit(m.Run())
}

// testConfig is the default config shrunk so whole games run quickly
func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.StageWidth = 61
	cfg.StageHeight = 61
	cfg.ViewportWidth = 40
	cfg.ViewportHeight = 20
	cfg.OutsideMobCount = 5
	cfg.HitPauseMillis = 0
	cfg.ShutdownGraceMillis = 100
	cfg.SaveFile = t.TempDir() + "/save.db"
	cfg.TilesFile = t.TempDir() + "/tiles.json"
	return cfg
}

// floorChunk is a width x height chunk of open dungeon floor
func floorChunk(width, height int) *Chunk {
	data := NewChunkData(1, KindDungeon, Point{})
	tiles := make([][]Tile, width)
	for x := range tiles {
		tiles[x] = make([]Tile, height)
		for y := range tiles[x] {
			tiles[x][y] = data.RoleTile(RoleFloor)
		}
	}
	return newChunk(tiles, data, nil)
}

// testGame puts a fresh player into c at loc, with no screen and no
// background tasks
func testGame(t *testing.T, c *Chunk, loc Point) *Game {
	t.Helper()

	cfg := testConfig(t)
	engine := NewWorldEngine(cfg, 1)
	engine.SetCurrent(c)

	player := NewPlayer()
	if !player.EnterChunk(c, loc) {
		t.Fatalf("could not place player at %v", loc)
	}

	return newGame(cfg, engine, player, false)
}
