package unbounded

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// Tile type IDs that gameplay code refers to directly
const (
	TileNothing    = "nothing"
	TileFloor      = "floor"
	TileWall       = "wall"
	TileLockedDoor = "locked-door"
	TileAvatar     = "avatar"
	TileAvatarHurt = "avatar-hurt"
	TileMonster    = "monster"
	TileMonsterHit = "monster-hurt"
	TileKey        = "key"
	TileTrophy     = "trophy"
	TileLamp       = "lamp"
	TileFlower     = "flower"
)

// Palette roles for dungeons
const (
	RoleBase  = "base"
	RoleFloor = "floor"
	RoleWall  = "wall"
)

// Biomes, ordered from lowest to highest noise value
var Biomes = []string{
	"deep-ocean",
	"ocean",
	"sea",
	"beach",
	"plains",
	"forest",
	"deep-forest",
	"hills",
	"cliffs",
	"mountains",
	"high-mountains",
	"icy-mountains",
	"ice",
}

// TileType stores rules about the different things a grid cell can hold.
// For 256 color colors check https://jonasjacek.github.io/colors/
type TileType struct {
	ID             string `json:""`
	Name           string `json:""`
	Glyph          string `json:""`           // SSH-display specific: unicode char to use to represent this cell on-screen
	FGColor        byte   `json:""`           // SSH-display specific: the 256 color xterm color for FG
	BGColor        byte   `json:""`           // SSH-display specific: the 256 color xterm color for BG
	Walkable       bool   `json:""`           // Movers can step here
	Opaque         bool   `json:""`           // Blocks sight
	AttackPassable bool   `json:",omitempty"` // Ranged attacks fly over it
}

// Tile is what a single grid cell holds
type Tile struct {
	Type  string `json:""`
	Light int    `json:",omitempty"`
}

// TileTypes is the registry of tile types
var TileTypes map[string]TileType

// TypeInfo looks up the tile's registered type; unknown tiles are blank and blocking
func (t Tile) TypeInfo() TileType {
	info, ok := TileTypes[t.Type]
	if !ok {
		return TileType{ID: t.Type, Glyph: "?"}
	}
	return info
}

// Walkable is true when a mover can step onto this tile
func (t Tile) Walkable() bool {
	return t.TypeInfo().Walkable
}

// Opaque is true when the tile blocks sight
func (t Tile) Opaque() bool {
	return t.TypeInfo().Opaque
}

// AttackPassable is true when a projectile can travel over this tile
func (t Tile) AttackPassable() bool {
	return t.TypeInfo().AttackPassable
}

// DungeonPalette maps dungeon roles to tile types
func DungeonPalette() map[string]string {
	return map[string]string{
		RoleBase:  TileNothing,
		RoleFloor: TileFloor,
		RoleWall:  TileWall,
	}
}

// OutsidePalette maps each biome role to its tile type
func OutsidePalette() map[string]string {
	palette := make(map[string]string, len(Biomes))
	for _, biome := range Biomes {
		palette[biome] = biome
	}
	return palette
}

func loadTileTypes(tileInfoFile string) error {
	data, err := os.ReadFile(tileInfoFile)
	if os.IsNotExist(err) {
		log.Debugf("No tile overrides at %s", tileInfoFile)
		return nil
	}

	var tileFileData map[string]TileType
	if err == nil {
		err = json.Unmarshal(data, &tileFileData)
	}

	if err != nil {
		return fmt.Errorf("parsing %s: %w", tileInfoFile, err)
	}

	for k, val := range tileFileData {
		val.ID = k
		TileTypes[k] = val
	}
	log.Printf("Loaded %d tile types from %s", len(tileFileData), tileInfoFile)

	return nil
}

// LoadResources loads data for the game
func LoadResources(cfg Config) error {
	return loadTileTypes(cfg.TilesFile)
}

func registerTile(t TileType) {
	TileTypes[t.ID] = t
}

func init() {
	TileTypes = make(map[string]TileType)

	registerTile(TileType{ID: TileNothing, Name: "Nothing", Glyph: " ", FGColor: 0, BGColor: 0})
	registerTile(TileType{ID: TileFloor, Name: "Floor", Glyph: "·", FGColor: 101, BGColor: 234, Walkable: true, AttackPassable: true})
	registerTile(TileType{ID: TileWall, Name: "Wall", Glyph: "#", FGColor: 130, BGColor: 236, Opaque: true})
	registerTile(TileType{ID: TileLockedDoor, Name: "Locked door", Glyph: "█", FGColor: 172, BGColor: 234, Opaque: true})
	registerTile(TileType{ID: TileAvatar, Name: "You", Glyph: "@", FGColor: 231, BGColor: 234})
	registerTile(TileType{ID: TileAvatarHurt, Name: "You", Glyph: "@", FGColor: 196, BGColor: 234})
	registerTile(TileType{ID: TileMonster, Name: "Monster", Glyph: "M", FGColor: 129, BGColor: 234})
	registerTile(TileType{ID: TileMonsterHit, Name: "Monster", Glyph: "M", FGColor: 196, BGColor: 234})
	registerTile(TileType{ID: TileKey, Name: "Key", Glyph: "⚷", FGColor: 220, BGColor: 234})
	registerTile(TileType{ID: TileTrophy, Name: "Trophy", Glyph: "♛", FGColor: 226, BGColor: 234})
	registerTile(TileType{ID: TileLamp, Name: "Lamp", Glyph: "☼", FGColor: 229, BGColor: 234})
	registerTile(TileType{ID: TileFlower, Name: "Flower", Glyph: "❀", FGColor: 213, BGColor: 234, AttackPassable: true})

	registerTile(TileType{ID: "deep-ocean", Name: "Deep ocean", Glyph: "≈", FGColor: 18, BGColor: 17})
	registerTile(TileType{ID: "ocean", Name: "Ocean", Glyph: "≈", FGColor: 20, BGColor: 18})
	registerTile(TileType{ID: "sea", Name: "Sea", Glyph: "~", FGColor: 33, BGColor: 25})
	registerTile(TileType{ID: "beach", Name: "Beach", Glyph: "∙", FGColor: 180, BGColor: 223, Walkable: true, AttackPassable: true})
	registerTile(TileType{ID: "plains", Name: "Plains", Glyph: "\"", FGColor: 40, BGColor: 22, Walkable: true, AttackPassable: true})
	registerTile(TileType{ID: "forest", Name: "Forest", Glyph: "♣", FGColor: 28, BGColor: 22, Walkable: true, AttackPassable: true})
	registerTile(TileType{ID: "deep-forest", Name: "Deep forest", Glyph: "♠", FGColor: 22, BGColor: 234, Walkable: true, AttackPassable: true})
	registerTile(TileType{ID: "hills", Name: "Hills", Glyph: "∩", FGColor: 100, BGColor: 58, Walkable: true, AttackPassable: true})
	registerTile(TileType{ID: "cliffs", Name: "Cliffs", Glyph: "▲", FGColor: 244, BGColor: 58})
	registerTile(TileType{ID: "mountains", Name: "Mountains", Glyph: "▲", FGColor: 250, BGColor: 240})
	registerTile(TileType{ID: "high-mountains", Name: "High mountains", Glyph: "▲", FGColor: 255, BGColor: 244})
	registerTile(TileType{ID: "icy-mountains", Name: "Icy mountains", Glyph: "▲", FGColor: 195, BGColor: 250})
	registerTile(TileType{ID: "ice", Name: "Ice", Glyph: "░", FGColor: 255, BGColor: 153})
}
