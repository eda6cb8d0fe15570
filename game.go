package unbounded

import (
	"fmt"
	"strconv"
	"time"
	"unicode"

	"github.com/sasha-s/go-deadlock"
	log "github.com/sirupsen/logrus"
)

// GameStatus is where a game stands
type GameStatus int

// Game statuses
const (
	StatusInProgress GameStatus = iota
	StatusWon
	StatusLost
	StatusQuit
)

func (s GameStatus) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusQuit:
		return "quit"
	}
	return "unknown"
}

// regenEvery is how many turns pass between regeneration ticks
const regenEvery = 4

// regenAmount is how much health and mana a regeneration tick gives back
const regenAmount = 5

// maxMessages is how much of the message log is kept
const maxMessages = 50

// frameDelay paces ranged attack animation on a live screen
const frameDelay = 15 * time.Millisecond

// Game ties together one player, their world, and the workers acting in it.
// It's handed to anything that needs to see or change game state.
type Game struct {
	config   Config
	engine   *WorldEngine
	player   *Player
	tasks    *taskPool
	realtime bool

	mu       deadlock.Mutex
	status   GameStatus
	turns    int
	messages []LogItem
	screen   Screen
}

func newGame(cfg Config, engine *WorldEngine, player *Player, realtime bool) *Game {
	return &Game{
		config:   cfg,
		engine:   engine,
		player:   player,
		tasks:    newTaskPool(cfg.Workers, !realtime),
		realtime: realtime,
		messages: make([]LogItem, 0),
	}
}

// NewGame starts a fresh world from seed with a chunk of the given kind
// in the middle. In realtime games monsters move on their own after each
// player turn.
func NewGame(cfg Config, seed int64, kind ChunkKind, realtime bool) *Game {
	engine := NewWorldEngine(cfg, seed)
	center := Point{X: cfg.StageWidth / 2, Y: cfg.StageHeight / 2}

	var chunk *Chunk
	if kind == KindOutside {
		chunk = engine.CreateOutside(center)
	} else {
		chunk = engine.CreateDungeon(center)
	}
	engine.SetCurrent(chunk)

	player := NewPlayer()
	if !player.Spawn(chunk) {
		log.WithFields(log.Fields{"seed": seed, "kind": kind}).Warn("Nowhere to stand in the starting chunk")
	}

	log.WithFields(log.Fields{"seed": seed, "kind": kind, "region": chunk.Data().Name}).Info("New game")

	g := newGame(cfg, engine, player, realtime)
	g.Log(MESSAGESYSTEM, fmt.Sprintf("Welcome to %s.", chunk.Data().Name))
	return g
}

// Config the game runs with
func (g *Game) Config() Config { return g.config }

// Engine that owns the world
func (g *Game) Engine() *WorldEngine { return g.engine }

// Player of the game
func (g *Game) Player() *Player { return g.player }

// Status of the game
func (g *Game) Status() GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// SetStatus changes the status; a finished game stays finished
func (g *Game) SetStatus(status GameStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == StatusInProgress {
		g.status = status
	}
}

// Log adds a line to the in-game message log
func (g *Game) Log(messageType MessageType, message string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.messages = append(g.messages, LogItem{Message: message, Timestamp: time.Now().UTC(), MessageType: messageType})
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// Messages returns the last n log lines
func (g *Game) Messages(n int) []LogItem {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := max(len(g.messages)-n, 0)
	return append([]LogItem(nil), g.messages[start:]...)
}

// SetScreen attaches a renderer
func (g *Game) SetScreen(screen Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.screen = screen
}

func (g *Game) currentScreen() Screen {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.screen
}

// pause is the beat after something gets hit, so it shows on screen
func (g *Game) pause() {
	if g.currentScreen() == nil {
		return
	}
	if d := g.config.HitPause(); d > 0 {
		time.Sleep(d)
	}
}

// frame draws an animation frame. Called with the current chunk locked.
func (g *Game) frame() {
	screen := g.currentScreen()
	if screen == nil {
		return
	}
	screen.Render(g.buildFrame(g.engine.Current()))
	time.Sleep(frameDelay)
}

// Render draws the current state to the attached screen, if any
func (g *Game) Render() {
	screen := g.currentScreen()
	if screen == nil {
		return
	}

	c := g.engine.Current()
	c.Lock()
	frame := g.buildFrame(c)
	c.Unlock()

	screen.Render(frame)
}

// Close waits a little for pending tasks and lets the rest go
func (g *Game) Close() {
	g.tasks.Shutdown(g.config.ShutdownGrace())
}

// mobsSnapshot copies the current chunk's monster list
func (g *Game) mobsSnapshot(c *Chunk) []*Monster {
	c.Lock()
	defer c.Unlock()
	return append([]*Monster(nil), c.Data().Mobs...)
}

func (g *Game) tick() {
	g.mu.Lock()
	regen := g.turns >= regenEvery-1
	if regen {
		g.turns = 0
	} else {
		g.turns++
	}
	g.mu.Unlock()

	if regen {
		g.player.Regenerate(regenAmount)
	}
}

var keyDirections = map[rune]Direction{
	'w': DIRECTIONUP,
	's': DIRECTIONDOWN,
	'a': DIRECTIONLEFT,
	'd': DIRECTIONRIGHT,
}

// Run reads keys and plays them until the game ends, the player quits, or
// the input runs dry.
func (g *Game) Run(src InputSource) error {
	for g.Status() == StatusInProgress {
		g.tick()

		key, ok := src.NextKey()
		if !ok {
			return nil
		}

		if err := g.HandleKey(unicode.ToLower(key), src); err != nil {
			return err
		}
		g.Render()
	}

	log.WithField("status", g.Status()).Info("Game over")
	return nil
}

// HandleKey applies one keypress
func (g *Game) HandleKey(key rune, src InputSource) error {
	current := g.engine.Current()
	if g.player.Chunk() == nil {
		return nil
	}

	switch key {
	case ':':
		if next, ok := src.NextKey(); ok && unicode.ToLower(next) == 'q' {
			err := g.Save(g.config.SaveFile)
			g.SetStatus(StatusQuit)
			return err
		}
	case 'w', 'a', 's', 'd':
		dir := keyDirections[key]
		if !current.InBounds(g.player.Location().Add(dir, 1)) {
			g.tasks.Drain()
			g.engine.TileNextChunk(dir, g.player)
			return nil
		}

		g.player.Move(dir)
		if g.realtime {
			for _, mob := range g.mobsSnapshot(current) {
				mob := mob
				g.tasks.Go(func() { mob.Step(g) })
			}
		}
	case 'n':
		g.player.Interact(g)
	case 'm':
		g.tasks.Go(func() { g.player.Attack(g) })
		for _, mob := range g.mobsSnapshot(current) {
			mob.Attack(g)
		}
	case 'l':
		current.Lock()
		for _, lamp := range current.Lamps() {
			lamp.Toggle(g.player)
		}
		current.Unlock()
	}

	return nil
}

// readSeed collects digits up to the key that picks the world kind: d or s
// for a dungeon, o for the outdoors
func readSeed(src InputSource) (int64, ChunkKind, bool, error) {
	digits := make([]rune, 0)
	for {
		key, ok := src.NextKey()
		if !ok {
			return 0, KindDungeon, false, nil
		}

		var kind ChunkKind
		switch unicode.ToLower(key) {
		case 'd', 's':
			kind = KindDungeon
		case 'o':
			kind = KindOutside
		default:
			if unicode.IsDigit(key) {
				digits = append(digits, key)
			}
			continue
		}

		if len(digits) == 0 {
			return 0, kind, true, nil
		}
		seed, err := strconv.ParseInt(string(digits), 10, 64)
		if err != nil {
			return 0, kind, false, fmt.Errorf("bad seed %q: %w", string(digits), err)
		}
		return seed, kind, true, nil
	}
}

// StartGame reads the opening keys: n, a seed, and d/s/o starts a new world;
// l loads the saved game; q quits. A nil game means the player quit before
// starting or the input ran out.
func StartGame(cfg Config, src InputSource, realtime bool) (*Game, error) {
	for {
		key, ok := src.NextKey()
		if !ok {
			return nil, nil
		}

		switch unicode.ToLower(key) {
		case 'n':
			seed, kind, ok, err := readSeed(src)
			if err != nil || !ok {
				return nil, err
			}
			return NewGame(cfg, seed, kind, realtime), nil
		case 'l':
			return LoadGame(cfg, cfg.SaveFile, realtime)
		case 'q':
			return nil, nil
		}
	}
}

// Play runs a whole game from the input source, drawing to screen if given
func Play(cfg Config, src InputSource, screen Screen) (*Game, error) {
	game, err := StartGame(cfg, src, screen != nil)
	if err != nil || game == nil {
		return game, err
	}
	defer game.Close()

	game.SetScreen(screen)
	game.Render()

	return game, game.Run(src)
}

// PlayString plays a game from a literal string of keys, without a screen or
// monsters acting on their own, and returns the final grid.
func PlayString(cfg Config, input string) ([][]Tile, error) {
	game, err := Play(cfg, NewStringInput(input), nil)
	if err != nil || game == nil {
		return nil, err
	}

	c := game.Engine().Current()
	c.Lock()
	defer c.Unlock()
	return c.Tiles(), nil
}
