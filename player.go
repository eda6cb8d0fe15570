package unbounded

import (
	"github.com/sasha-s/go-deadlock"
	log "github.com/sirupsen/logrus"
)

// attackRange is how many tiles a ranged attack flies before fizzling
const attackRange = 15

// attackCost is the mana a ranged attack uses
const attackCost = 5

// Player is the avatar being steered around the world. Lock ordering is
// chunk first, then the player.
type Player struct {
	mu        deadlock.Mutex
	chunk     *Chunk
	loc       Point
	facing    Direction
	under     Tile
	vitals    Vitals
	inventory []Interactable
}

// NewPlayer makes a player with full health and mana, not yet in any chunk
func NewPlayer() *Player {
	return &Player{
		facing:    DIRECTIONUP,
		vitals:    PlayerVitals,
		inventory: make([]Interactable, 0),
	}
}

// Chunk the player is in
func (p *Player) Chunk() *Chunk {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chunk
}

// Location of the player inside their chunk
func (p *Player) Location() Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loc
}

// Facing is the direction the player last tried to move
func (p *Player) Facing() Direction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.facing
}

// Vitals is a copy of the player's health and mana
func (p *Player) Vitals() Vitals {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vitals
}

// InventorySize counts what the player carries
func (p *Player) InventorySize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inventory)
}

// AddToInventory gives the player something to carry
func (p *Player) AddToInventory(item Interactable) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory = append(p.inventory, item)
}

func (p *Player) setUnderLight(light int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.under.Light = light
	if p.chunk != nil {
		p.chunk.SetTile(p.loc, Tile{Type: TileAvatar, Light: light})
	}
}

// EnterChunk places the player at a tile of chunk c, leaving wherever they
// were before. Nothing changes if the tile can't be stood on.
func (p *Player) EnterChunk(c *Chunk, at Point) bool {
	c.Lock()
	if !c.Walkable(at) {
		c.Unlock()
		return false
	}

	p.mu.Lock()
	old, oldLoc, oldUnder := p.chunk, p.loc, p.under
	if old == c {
		c.SetTile(oldLoc, oldUnder)
	}
	p.chunk, p.loc, p.under = c, at, c.Tile(at)
	light := p.under.Light
	p.mu.Unlock()

	c.SetTile(at, Tile{Type: TileAvatar, Light: light})
	c.Unlock()

	if old != nil && old != c {
		old.Lock()
		if t := old.Tile(oldLoc).Type; t == TileAvatar || t == TileAvatarHurt {
			old.SetTile(oldLoc, oldUnder)
		}
		old.Unlock()
	}

	return true
}

// Spawn drops the player on the first walkable tile of the chunk, scanning
// columns left to right
func (p *Player) Spawn(c *Chunk) bool {
	for x := 0; x < c.Width(); x++ {
		for y := 0; y < c.Height(); y++ {
			at := Point{x, y}
			c.Lock()
			ok := c.Walkable(at)
			c.Unlock()
			if ok && p.EnterChunk(c, at) {
				return true
			}
		}
	}
	return false
}

// Move turns the player toward d and steps that way if the tile is free
func (p *Player) Move(d Direction) bool {
	c := p.Chunk()
	if c == nil {
		return false
	}
	c.Lock()
	defer c.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.facing = d
	target := p.loc.Add(d, 1)
	if !c.Walkable(target) {
		return false
	}

	c.SetTile(p.loc, p.under)
	p.under = c.Tile(target)
	p.loc = target
	c.SetTile(target, Tile{Type: TileAvatar, Light: p.under.Light})

	return true
}

// Interact uses whatever sits on the tile in front of the player
func (p *Player) Interact(g *Game) {
	c := p.Chunk()
	if c == nil {
		return
	}
	c.Lock()
	defer c.Unlock()

	front := p.Location().Add(p.Facing(), 1)
	for _, item := range c.InteractablesAt(front) {
		item.Act(g)
	}
}

// Attack launches a projectile in the facing direction. It flies over open
// ground, drawn as a flower, and hurts the monster it stops at. Runs with the
// chunk locked for the whole flight.
func (p *Player) Attack(g *Game) {
	c := p.Chunk()
	if c == nil {
		return
	}
	c.Lock()
	defer c.Unlock()

	if c != p.Chunk() {
		return
	}

	p.mu.Lock()
	if !p.vitals.Spend(attackCost) {
		p.mu.Unlock()
		return
	}
	origin, dir, damage := p.loc, p.facing, p.vitals.Damage
	p.mu.Unlock()

	at := origin.Add(dir, 1)
	var prev Point
	var prevTile Tile
	flying := false

	for count := 0; count <= attackRange && c.InBounds(at) && c.Tile(at).AttackPassable(); count++ {
		if flying {
			c.SetTile(prev, prevTile)
		}
		prev, prevTile, flying = at, c.Tile(at), true
		c.SetTile(at, Tile{Type: TileFlower, Light: prevTile.Light})
		g.frame()
		at = at.Add(dir, 1)
	}

	if flying {
		c.SetTile(prev, prevTile)
	}

	if mob := c.MonsterAt(at); mob != nil {
		log.WithFields(log.Fields{"monster": mob.ID, "at": at}).Debug("Ranged hit")
		mob.TakeDamage(g, damage)
	}
}

// TakeDamage hurts the player, flashing the avatar. At zero health the game
// is lost. Called with the player's chunk locked.
func (p *Player) TakeDamage(g *Game, amount int) {
	p.mu.Lock()
	p.vitals.Hurt(amount)
	c, loc, under, alive := p.chunk, p.loc, p.under, p.vitals.Alive()
	p.mu.Unlock()

	c.SetTile(loc, Tile{Type: TileAvatarHurt, Light: under.Light})
	g.Log(MESSAGECOMBAT, "A monster bites you.")
	g.pause()

	if alive {
		c.SetTile(loc, Tile{Type: TileAvatar, Light: under.Light})
		return
	}

	c.SetTile(loc, under)
	g.SetStatus(StatusLost)
}

// Regenerate tops health and mana back up a little
func (p *Player) Regenerate(amount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vitals.Heal(amount)
	p.vitals.Restore(amount)
}
