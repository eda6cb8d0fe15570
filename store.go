package unbounded

import (
	"errors"
	"fmt"

	bolt "github.com/coreos/bbolt"
	log "github.com/sirupsen/logrus"
)

// ErrMalformedSave is returned when a save file can't be turned back into a game
var ErrMalformedSave = errors.New("malformed save")

const (
	bucketChunks = "chunks"
	bucketGame   = "game"
)

var gameStateKey = []byte("state")

// ChunkRecord is the stored form of a chunk's metadata. Neighbors are kept as
// the centers of the linked chunks.
type ChunkRecord struct {
	Seed    int64             `json:""`
	Kind    ChunkKind         `json:""`
	Center  Point             `json:""`
	Name    string            `json:""`
	Palette map[string]string `json:""`
	North   *Point            `json:",omitempty"`
	South   *Point            `json:",omitempty"`
	East    *Point            `json:",omitempty"`
	West    *Point            `json:",omitempty"`
}

// PlayerRecord is the stored form of the player
type PlayerRecord struct {
	Location Point     `json:""`
	Facing   Direction `json:""`
	Vitals   Vitals    `json:""`
	Keys     int       `json:""`
}

// MobRecord is the stored form of a monster
type MobRecord struct {
	ID       string `json:""`
	Location Point  `json:""`
	Vitals   Vitals `json:""`
	Frozen   bool   `json:""`
}

// InteractableRecord is the stored form of a door, key, trophy or lamp
type InteractableRecord struct {
	Kind     string `json:""`
	Location Point  `json:""`
	Open     bool   `json:",omitempty"`
	On       bool   `json:",omitempty"`
}

// GameRecord is everything about a game that isn't chunk metadata. Only the
// current chunk's entities are kept.
type GameRecord struct {
	WorldSeed     int64                `json:""`
	OutsideSeed   int64                `json:""`
	HasOutside    bool                 `json:""`
	Current       Point                `json:""`
	Player        PlayerRecord         `json:""`
	Mobs          []MobRecord          `json:""`
	Interactables []InteractableRecord `json:""`
}

// Store keeps saved games in a bolt database
type Store struct {
	filename string
	database *bolt.DB
}

// OpenStore opens or creates the database at filename
func OpenStore(filename string) (*Store, error) {
	log.Debugf("Opening save database %s", filename)
	db, err := bolt.Open(filename, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	// Make default tables
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketChunks, bucketGame} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{filename: filename, database: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	if s.database == nil {
		return nil
	}
	return s.database.Close()
}

// WriteSave replaces whatever was saved before with chunks and game
func (s *Store) WriteSave(chunks []ChunkRecord, game GameRecord) error {
	return s.database.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketChunks)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(bucketChunks))
		if err != nil {
			return err
		}

		for _, record := range chunks {
			bytes, err := MSGPack(record)
			if err != nil {
				return err
			}
			if err := bucket.Put(record.Center.Bytes(), bytes); err != nil {
				return err
			}
		}

		bytes, err := MSGPack(game)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketGame)).Put(gameStateKey, bytes)
	})
}

// PutChunk stores one chunk's metadata
func (s *Store) PutChunk(record ChunkRecord) error {
	bytes, err := MSGPack(record)
	if err != nil {
		return err
	}

	return s.database.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketChunks)).Put(record.Center.Bytes(), bytes)
	})
}

// Chunks reads every stored chunk record
func (s *Store) Chunks() ([]ChunkRecord, error) {
	records := make([]ChunkRecord, 0)

	err := s.database.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketChunks)).ForEach(func(k, v []byte) error {
			var record ChunkRecord
			if err := MSGUnpack(v, &record); err != nil {
				return fmt.Errorf("%w: chunk record: %v", ErrMalformedSave, err)
			}

			center, err := PointFromBytes(k)
			if err != nil || center != record.Center {
				return fmt.Errorf("%w: chunk key does not match %v", ErrMalformedSave, record.Center)
			}

			records = append(records, record)
			return nil
		})
	})

	return records, err
}

// Game reads the stored game state. ok is false when nothing was ever saved.
func (s *Store) Game() (record GameRecord, ok bool, err error) {
	err = s.database.View(func(tx *bolt.Tx) error {
		bytes := tx.Bucket([]byte(bucketGame)).Get(gameStateKey)
		if bytes == nil {
			return nil
		}

		ok = true
		if err := MSGUnpack(bytes, &record); err != nil {
			return fmt.Errorf("%w: game record: %v", ErrMalformedSave, err)
		}
		return nil
	})

	return record, ok, err
}
