package unbounded

import (
	"github.com/zyedidia/generic/mapset"
)

// Interactable is something that sits on the map and does something when the
// player uses it. Init binds it to the chunk it lives in and draws it. Act is
// called with the chunk locked.
type Interactable interface {
	Location() Point
	Init(c *Chunk)
	Act(g *Game)
}

// Kinds of interactable, as recorded in saves
const (
	INTERACTABLEDOOR   = "door"
	INTERACTABLEKEY    = "key"
	INTERACTABLETROPHY = "trophy"
	INTERACTABLELAMP   = "lamp"
)

// DoorState is locked or open
type DoorState int

// Door states
const (
	DoorLocked DoorState = iota
	DoorOpen
)

// Door blocks the way into the locked room until someone carrying a key opens it
type Door struct {
	loc   Point
	State DoorState
	chunk *Chunk
}

// NewDoor makes a locked door
func NewDoor(p Point) *Door {
	return &Door{loc: p, State: DoorLocked}
}

// Location of the door
func (d *Door) Location() Point { return d.loc }

// Init draws the door for its current state
func (d *Door) Init(c *Chunk) {
	d.chunk = c
	d.draw()
}

func (d *Door) draw() {
	if d.State == DoorLocked {
		d.chunk.SetTile(d.loc, Tile{Type: TileLockedDoor})
	} else {
		d.chunk.SetTile(d.loc, d.chunk.data.RoleTile(RoleFloor))
	}
}

// Act opens or closes the door if the player carries anything
func (d *Door) Act(g *Game) {
	if g.Player().InventorySize() == 0 {
		g.Log(MESSAGEACTION, "The door is locked.")
		return
	}

	if d.State == DoorLocked {
		d.State = DoorOpen
		g.Log(MESSAGEACTION, "You unlock the door.")
	} else {
		d.State = DoorLocked
		g.Log(MESSAGEACTION, "You lock the door.")
	}
	d.draw()
}

// Key opens doors once it's in the player's inventory
type Key struct {
	loc   Point
	chunk *Chunk
}

// NewKey makes a key lying at p
func NewKey(p Point) *Key {
	return &Key{loc: p}
}

// Location of the key
func (k *Key) Location() Point { return k.loc }

// Init draws the key
func (k *Key) Init(c *Chunk) {
	k.chunk = c
	c.SetTile(k.loc, Tile{Type: TileKey, Light: c.Tile(k.loc).Light})
}

// Act picks the key up
func (k *Key) Act(g *Game) {
	g.Player().AddToInventory(k)
	k.chunk.data.RemoveInteractable(k)
	k.chunk.SetTile(k.loc, Tile{Type: k.chunk.data.RoleTile(RoleFloor).Type, Light: k.chunk.Tile(k.loc).Light})
	g.Log(MESSAGEACTION, "You pick up a key.")
}

// Trophy wins the game
type Trophy struct {
	loc Point
}

// NewTrophy makes a trophy at p
func NewTrophy(p Point) *Trophy {
	return &Trophy{loc: p}
}

// Location of the trophy
func (t *Trophy) Location() Point { return t.loc }

// Init draws the trophy
func (t *Trophy) Init(c *Chunk) {
	c.SetTile(t.loc, Tile{Type: TileTrophy, Light: c.Tile(t.loc).Light})
}

// Act ends the game in victory
func (t *Trophy) Act(g *Game) {
	g.Log(MESSAGEACTION, "You found the trophy!")
	g.SetStatus(StatusWon)
}

// lampStrength is how far a lamp's light reaches
const lampStrength = 5

// Lamp lights up everything it can see when switched on
type Lamp struct {
	loc   Point
	On    bool
	reach mapset.Set[Point]
	chunk *Chunk
}

// NewLamp makes a switched off lamp
func NewLamp(p Point) *Lamp {
	return &Lamp{loc: p}
}

// Location of the lamp
func (l *Lamp) Location() Point { return l.loc }

// Init draws the lamp, works out what it can reach, and relights it if it was on
func (l *Lamp) Init(c *Chunk) {
	l.chunk = c
	c.SetTile(l.loc, Tile{Type: TileLamp})
	l.reach = c.FieldOfView(l.loc, lampStrength)
	if l.On {
		l.apply(nil)
	}
}

// Reaches is true when p is lit by this lamp when on
func (l *Lamp) Reaches(p Point) bool {
	return l.reach.Has(p)
}

// brightness falls off with grid distance from the lamp
func (l *Lamp) brightness(p Point) int {
	return abs(2*lampStrength - p.Manhattan(l.loc))
}

// Act flips the lamp
func (l *Lamp) Act(g *Game) {
	l.Toggle(g.Player())
}

// Toggle switches the lamp, relighting the tiles and movers in reach. Called
// with the chunk locked.
func (l *Lamp) Toggle(player *Player) {
	l.On = !l.On
	l.apply(player)
}

func (l *Lamp) apply(player *Player) {
	l.reach.Each(func(p Point) {
		light := 0
		if l.On {
			if l.chunk.IsRole(p, RoleWall) || l.chunk.IsRole(p, RoleBase) {
				return
			}
			light = l.brightness(p)
		}

		t := l.chunk.Tile(p)
		t.Light = light
		l.chunk.SetTile(p, t)

		if mob := l.chunk.MonsterAt(p); mob != nil {
			mob.under.Light = light
		}
	})

	if player != nil && player.Chunk() == l.chunk {
		if p := player.Location(); l.reach.Has(p) {
			light := 0
			if l.On {
				light = l.brightness(p)
			}
			player.setUnderLight(light)
		}
	}
}
