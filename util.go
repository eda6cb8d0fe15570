package unbounded

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack"
)

// MessageType is a log message line type
type MessageType int

// Message types for log items
const (
	MESSAGESYSTEM MessageType = iota
	MESSAGEACTION
	MESSAGECOMBAT
)

// LogItem is an individual line of the in-game message log
type LogItem struct {
	Message     string      `json:""`
	Timestamp   time.Time   `json:""`
	MessageType MessageType `json:""`
}

// gradientBand is one named stretch of a gradient, ending at upTo
type gradientBand struct {
	name string
	upTo float64
}

// parseGradient lays "name:weight" entries end to end over [0, 1]. A missing
// weight counts as 1.
func parseGradient(entries []string) ([]gradientBand, error) {
	weights := make([]int, len(entries))
	names := make([]string, len(entries))
	total := 0

	for i, entry := range entries {
		name, weight, found := strings.Cut(entry, ":")
		names[i], weights[i] = name, 1
		if found {
			w, err := strconv.Atoi(weight)
			if err != nil || w < 0 {
				return nil, fmt.Errorf("bad weight in gradient entry %q", entry)
			}
			weights[i] = w
		}
		total += weights[i]
	}

	if total == 0 {
		return nil, fmt.Errorf("gradient %v has no weight", entries)
	}

	bands := make([]gradientBand, len(entries))
	sum := 0
	for i := range entries {
		sum += weights[i]
		bands[i] = gradientBand{name: names[i], upTo: float64(sum) / float64(total)}
	}
	return bands, nil
}

// MakeGradientTransitionFunction maps a number in [0, 1] onto a list of
// "name:weight" bands laid end to end. Values past the end land in the last
// band. Malformed weights panic, since gradients are fixed tables.
func MakeGradientTransitionFunction(entries []string) func(float64) string {
	bands, err := parseGradient(entries)
	if err != nil {
		panic(err)
	}

	return func(value float64) string {
		for _, band := range bands {
			if band.upTo > value {
				return band.name
			}
		}
		return bands[len(bands)-1].name
	}
}

// MSGPack packs to msgpack using JSON rules
func MSGPack(target interface{}) ([]byte, error) {
	var out bytes.Buffer

	encoder := msgpack.NewEncoder(&out)
	encoder.UseJSONTag(true)
	if err := encoder.Encode(target); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MSGUnpack unpacks from msgpack using JSON rules
func MSGUnpack(data []byte, target interface{}) error {
	decoder := msgpack.NewDecoder(bytes.NewReader(data))
	decoder.UseJSONTag(true)
	return decoder.Decode(target)
}
