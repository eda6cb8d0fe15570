package unbounded

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config holds the tunables for a game and its front-ends
type Config struct {
	Listen              string `json:""`
	StageWidth          int    `json:""`
	StageHeight         int    `json:""`
	ViewportWidth       int    `json:""`
	ViewportHeight      int    `json:""`
	RoomTries           int    `json:""`
	MonsterAggroRange   int    `json:""`
	OutsideMobCount     int    `json:""`
	Workers             int    `json:""`
	HitPauseMillis      int    `json:""`
	ShutdownGraceMillis int    `json:""`
	SaveFile            string `json:""`
	TilesFile           string `json:""`
	LogFile             string `json:",omitempty"`
}

// DefaultConfig is what a game runs with when no config file is around
func DefaultConfig() Config {
	return Config{
		Listen:              ":2222",
		StageWidth:          121,
		StageHeight:         121,
		ViewportWidth:       95,
		ViewportHeight:      51,
		RoomTries:           100,
		MonsterAggroRange:   25,
		OutsideMobCount:     20,
		Workers:             8,
		HitPauseMillis:      100,
		ShutdownGraceMillis: 1000,
		SaveFile:            "./unbounded.db",
		TilesFile:           "./tiles.json",
	}
}

// LoadConfig reads a JSON config on top of the defaults. A missing file is not an error.
func LoadConfig(configFile string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(configFile)

	if os.IsNotExist(err) {
		log.Printf("No config at %s, using defaults", configFile)
		return config, nil
	}

	if err == nil {
		err = json.Unmarshal(data, &config)
	}

	if err != nil {
		return config, fmt.Errorf("parsing %s: %w", configFile, err)
	}

	return config, nil
}

// HitPause is the pacing delay after a mover takes damage
func (c Config) HitPause() time.Duration {
	return time.Duration(c.HitPauseMillis) * time.Millisecond
}

// ShutdownGrace is how long pending tasks get to finish on exit
func (c Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceMillis) * time.Millisecond
}
