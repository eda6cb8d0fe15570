package unbounded

import (
	"errors"
	"reflect"
	"testing"

	bolt "github.com/coreos/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	east := Point{X: 121, Y: 0}
	chunks := []ChunkRecord{
		{Seed: 11, Kind: KindDungeon, Center: Point{}, Name: "Blackstone", Palette: DungeonPalette(), East: &east},
		{Seed: 12, Kind: KindOutside, Center: east, Name: "Glenhole", Palette: OutsidePalette(), West: &Point{}},
	}
	game := GameRecord{
		WorldSeed:   42,
		OutsideSeed: 12,
		HasOutside:  true,
		Current:     east,
		Player:      PlayerRecord{Location: Point{X: 3, Y: 4}, Facing: DIRECTIONLEFT, Vitals: PlayerVitals, Keys: 2},
		Mobs:        []MobRecord{{ID: "abc", Location: Point{X: 5, Y: 5}, Vitals: MonsterVitals, Frozen: true}},
		Interactables: []InteractableRecord{
			{Kind: INTERACTABLEDOOR, Location: Point{X: 1, Y: 1}, Open: true},
			{Kind: INTERACTABLELAMP, Location: Point{X: 2, Y: 2}, On: true},
		},
	}

	if err := store.WriteSave(chunks, game); err != nil {
		t.Fatal(err)
	}

	gotChunks, err := store.Chunks()
	if err != nil {
		t.Fatal(err)
	}
	if len(gotChunks) != len(chunks) {
		t.Fatalf("got %d chunks back", len(gotChunks))
	}
	byCenter := make(map[Point]ChunkRecord)
	for _, record := range gotChunks {
		byCenter[record.Center] = record
	}
	for _, want := range chunks {
		if got := byCenter[want.Center]; !reflect.DeepEqual(got, want) {
			t.Errorf("chunk %v: got %+v, want %+v", want.Center, got, want)
		}
	}

	gotGame, ok, err := store.Game()
	if err != nil || !ok {
		t.Fatalf("game record: %v %v", ok, err)
	}
	if !reflect.DeepEqual(gotGame, game) {
		t.Errorf("got %+v, want %+v", gotGame, game)
	}
}

func TestStoreWriteSaveReplaces(t *testing.T) {
	store := openTestStore(t)

	if err := store.PutChunk(ChunkRecord{Seed: 1, Center: Point{X: 999}}); err != nil {
		t.Fatal(err)
	}
	if err := store.WriteSave([]ChunkRecord{{Seed: 2, Center: Point{}}}, GameRecord{}); err != nil {
		t.Fatal(err)
	}

	chunks, err := store.Chunks()
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0].Seed != 2 {
		t.Errorf("stale chunks survived: %+v", chunks)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Game(); ok || err != nil {
		t.Errorf("empty store: %v %v", ok, err)
	}
}

func TestStoreMalformedChunk(t *testing.T) {
	store := openTestStore(t)

	err := store.database.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketChunks)).Put(Point{}.Bytes(), []byte{0xc1, 0xff, 0x00})
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Chunks(); !errors.Is(err, ErrMalformedSave) {
		t.Errorf("got %v, want ErrMalformedSave", err)
	}
}

func TestStoreMalformedGame(t *testing.T) {
	store := openTestStore(t)

	err := store.database.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketGame)).Put(gameStateKey, []byte("not msgpack at all"))
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.Game(); !errors.Is(err, ErrMalformedSave) {
		t.Errorf("got %v, want ErrMalformedSave", err)
	}
}

func TestOpenStoreBadPath(t *testing.T) {
	if _, err := OpenStore(t.TempDir() + "/missing/dir/test.db"); err == nil {
		t.Error("opening in a missing directory should fail")
	}
}
