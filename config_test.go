package unbounded

import (
	"os"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := t.TempDir() + "/" + name
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir() + "/nope.json")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, "config.json", `{"StageWidth": 81, "Listen": ":9999", "HitPauseMillis": 0}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StageWidth != 81 || cfg.Listen != ":9999" || cfg.HitPause() != 0 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.StageHeight != DefaultConfig().StageHeight {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeFile(t, "config.json", `{"StageWidth": `)

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadTileTypes(t *testing.T) {
	saved := TileTypes[TileFloor]
	defer registerTile(saved)

	if err := loadTileTypes(t.TempDir() + "/missing.json"); err != nil {
		t.Errorf("missing tiles file: %v", err)
	}

	path := writeFile(t, "tiles.json", `{"floor": {"Name": "Carpet", "Glyph": "_", "Walkable": true}}`)
	if err := loadTileTypes(path); err != nil {
		t.Fatal(err)
	}
	info := Tile{Type: TileFloor}.TypeInfo()
	if info.ID != TileFloor || info.Name != "Carpet" || info.Glyph != "_" || !info.Walkable {
		t.Errorf("override not applied: %+v", info)
	}

	bad := writeFile(t, "bad.json", `[1, 2`)
	if err := loadTileTypes(bad); err == nil {
		t.Error("expected a parse error")
	}
}
