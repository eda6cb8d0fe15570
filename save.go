package unbounded

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func recordedCenter(data *ChunkData) *Point {
	if data == nil {
		return nil
	}
	center := data.Center
	return &center
}

func chunkRecord(data *ChunkData) ChunkRecord {
	return ChunkRecord{
		Seed:    data.Seed,
		Kind:    data.Kind,
		Center:  data.Center,
		Name:    data.Name,
		Palette: data.Palette,
		North:   recordedCenter(data.North),
		South:   recordedCenter(data.South),
		East:    recordedCenter(data.East),
		West:    recordedCenter(data.West),
	}
}

func interactableRecord(item Interactable) (InteractableRecord, bool) {
	switch it := item.(type) {
	case *Door:
		return InteractableRecord{Kind: INTERACTABLEDOOR, Location: it.loc, Open: it.State == DoorOpen}, true
	case *Key:
		return InteractableRecord{Kind: INTERACTABLEKEY, Location: it.loc}, true
	case *Trophy:
		return InteractableRecord{Kind: INTERACTABLETROPHY, Location: it.loc}, true
	case *Lamp:
		return InteractableRecord{Kind: INTERACTABLELAMP, Location: it.loc, On: it.On}, true
	}
	return InteractableRecord{}, false
}

func interactableFromRecord(record InteractableRecord) (Interactable, error) {
	switch record.Kind {
	case INTERACTABLEDOOR:
		door := NewDoor(record.Location)
		if record.Open {
			door.State = DoorOpen
		}
		return door, nil
	case INTERACTABLEKEY:
		return NewKey(record.Location), nil
	case INTERACTABLETROPHY:
		return NewTrophy(record.Location), nil
	case INTERACTABLELAMP:
		lamp := NewLamp(record.Location)
		lamp.On = record.On
		return lamp, nil
	}
	return nil, fmt.Errorf("%w: unknown interactable %q", ErrMalformedSave, record.Kind)
}

// record snapshots the game for saving
func (g *Game) record() ([]ChunkRecord, GameRecord) {
	chunks := make([]ChunkRecord, 0)
	for _, data := range g.engine.Visited() {
		chunks = append(chunks, chunkRecord(data))
	}

	current := g.engine.Current()
	current.Lock()
	defer current.Unlock()

	data := current.Data()
	game := GameRecord{
		WorldSeed:     g.engine.seed,
		OutsideSeed:   g.engine.outsideSeed,
		HasOutside:    g.engine.hasOutside,
		Current:       data.Center,
		Mobs:          make([]MobRecord, 0, len(data.Mobs)),
		Interactables: make([]InteractableRecord, 0, len(data.Interactables)),
		Player: PlayerRecord{
			Location: g.player.Location(),
			Facing:   g.player.Facing(),
			Vitals:   g.player.Vitals(),
			Keys:     g.player.InventorySize(),
		},
	}

	for _, mob := range data.Mobs {
		game.Mobs = append(game.Mobs, MobRecord{ID: mob.ID, Location: mob.loc, Vitals: mob.Vitals, Frozen: mob.Frozen})
	}
	for _, item := range data.Interactables {
		if record, ok := interactableRecord(item); ok {
			game.Interactables = append(game.Interactables, record)
		}
	}

	return chunks, game
}

// Save writes the world graph, the player and the current chunk's entities
// to file, replacing any earlier save
func (g *Game) Save(file string) error {
	g.tasks.Drain()

	store, err := OpenStore(file)
	if err != nil {
		return err
	}
	defer store.Close()

	chunks, game := g.record()
	if err := store.WriteSave(chunks, game); err != nil {
		return fmt.Errorf("saving to %s: %w", file, err)
	}

	log.WithFields(log.Fields{"file": file, "chunks": len(chunks)}).Info("Saved game")
	return nil
}

// restoreChunks rebuilds the chunk graph from records
func restoreChunks(records []ChunkRecord) (map[Point]*ChunkData, error) {
	chunks := make(map[Point]*ChunkData, len(records))
	for _, record := range records {
		palette := record.Palette
		if palette == nil {
			palette = NewChunkData(record.Seed, record.Kind, record.Center).Palette
		}
		chunks[record.Center] = &ChunkData{
			Seed:    record.Seed,
			Kind:    record.Kind,
			Center:  record.Center,
			Name:    record.Name,
			Palette: palette,
		}
	}

	link := func(center *Point) (*ChunkData, error) {
		if center == nil {
			return nil, nil
		}
		data, ok := chunks[*center]
		if !ok {
			return nil, fmt.Errorf("%w: neighbor %v was never saved", ErrMalformedSave, *center)
		}
		return data, nil
	}

	var err error
	for _, record := range records {
		data := chunks[record.Center]
		if data.North, err = link(record.North); err != nil {
			return nil, err
		}
		if data.South, err = link(record.South); err != nil {
			return nil, err
		}
		if data.East, err = link(record.East); err != nil {
			return nil, err
		}
		if data.West, err = link(record.West); err != nil {
			return nil, err
		}
	}

	return chunks, nil
}

// LoadGame picks a saved game back up. Chunks other than the one the player
// was in get fresh entities when they're next visited.
func LoadGame(cfg Config, file string, realtime bool) (*Game, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("no saved game at %s: %w", file, err)
	}

	store, err := OpenStore(file)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	records, err := store.Chunks()
	if err != nil {
		return nil, err
	}
	state, ok, err := store.Game()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no game state in %s", ErrMalformedSave, file)
	}

	chunks, err := restoreChunks(records)
	if err != nil {
		return nil, err
	}

	data, ok := chunks[state.Current]
	if !ok {
		return nil, fmt.Errorf("%w: current chunk %v was never saved", ErrMalformedSave, state.Current)
	}

	data.Populated = true
	for _, record := range state.Interactables {
		item, err := interactableFromRecord(record)
		if err != nil {
			return nil, err
		}
		data.Interactables = append(data.Interactables, item)
	}
	for _, record := range state.Mobs {
		mob := NewMonster(record.ID, record.Location)
		mob.Vitals = record.Vitals
		mob.Frozen = record.Frozen
		data.Mobs = append(data.Mobs, mob)
	}

	list := make([]*ChunkData, 0, len(chunks))
	for _, chunk := range chunks {
		list = append(list, chunk)
	}

	engine := NewWorldEngine(cfg, state.WorldSeed)
	engine.restore(list, state.OutsideSeed, state.HasOutside)

	chunk := engine.Generate(data)
	engine.SetCurrent(chunk)

	player := NewPlayer()
	player.facing = state.Player.Facing
	player.vitals = state.Player.Vitals
	for i := 0; i < state.Player.Keys; i++ {
		player.inventory = append(player.inventory, NewKey(Point{}))
	}
	if !player.EnterChunk(chunk, state.Player.Location) && !player.Spawn(chunk) {
		return nil, fmt.Errorf("%w: nowhere to put the player", ErrMalformedSave)
	}

	log.WithFields(log.Fields{"file": file, "chunks": len(chunks), "region": data.Name}).Info("Loaded game")

	g := newGame(cfg, engine, player, realtime)
	g.Log(MESSAGESYSTEM, fmt.Sprintf("Welcome back to %s.", data.Name))
	return g, nil
}
