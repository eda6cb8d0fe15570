package unbounded

import (
	log "github.com/sirupsen/logrus"
)

// Monster wanders toward the player once it notices them and bites when adjacent.
// A monster's fields belong to the chunk it is bound to and are only touched
// with that chunk locked.
type Monster struct {
	ID     string `json:""`
	Vitals `json:""`
	Frozen bool   `json:""`
	loc    Point
	under  Tile
	chunk  *Chunk
}

// NewMonster makes a dormant monster at p
func NewMonster(id string, p Point) *Monster {
	return &Monster{
		ID:     id,
		Vitals: MonsterVitals,
		Frozen: true,
		loc:    p,
	}
}

// Location is where the monster stands
func (m *Monster) Location() Point { return m.loc }

// Chunk the monster is bound to
func (m *Monster) Chunk() *Chunk { return m.chunk }

// Init binds the monster to a chunk and draws it over whatever it stands on
func (m *Monster) Init(c *Chunk) {
	m.chunk = c
	m.under = c.Tile(m.loc)
	m.draw(TileMonster)
}

func (m *Monster) draw(tileType string) {
	m.chunk.SetTile(m.loc, Tile{Type: tileType, Light: m.under.Light})
}

func (m *Monster) moveTo(p Point) {
	m.chunk.SetTile(m.loc, m.under)
	m.under = m.chunk.Tile(p)
	m.loc = p
	m.draw(TileMonster)
}

// Step wakes the monster if the player is close, takes one step along the
// best route to the player, then attacks if the player is next to it.
func (m *Monster) Step(g *Game) {
	c := m.chunk
	if c == nil {
		return
	}

	c.Lock()
	defer c.Unlock()

	if !m.Alive() || g.Status() != StatusInProgress {
		return
	}

	player := g.Player()
	if player.Chunk() != c {
		return
	}
	target := player.Location()

	if m.Frozen {
		if m.loc.Manhattan(target) > g.config.MonsterAggroRange {
			return
		}
		m.Frozen = false
		log.WithFields(log.Fields{"monster": m.ID, "at": m.loc}).Debug("Monster woke up")
	}

	if route, ok := FindPath(m.loc, target, c.Walkable); ok && len(route) > 0 {
		if next := route[0]; next != target && c.Walkable(next) {
			m.moveTo(next)
		}
	}

	m.attack(g)
}

// Attack bites the player if they're standing next to the monster
func (m *Monster) Attack(g *Game) {
	c := m.chunk
	if c == nil {
		return
	}

	c.Lock()
	defer c.Unlock()

	if m.Alive() {
		m.attack(g)
	}
}

func (m *Monster) attack(g *Game) {
	player := g.Player()
	if player.Chunk() != m.chunk {
		return
	}

	target := player.Location()
	for _, d := range Ordinal {
		if m.loc.Add(d, 1) == target {
			player.TakeDamage(g, m.Damage)
			return
		}
	}
}

// TakeDamage hurts the monster, flashing it, and removes it from the chunk if
// it dies. Called with the chunk locked.
func (m *Monster) TakeDamage(g *Game, amount int) {
	m.Hurt(amount)
	m.draw(TileMonsterHit)
	g.pause()

	if m.Alive() {
		m.draw(TileMonster)
		return
	}

	m.chunk.SetTile(m.loc, m.under)
	m.chunk.data.RemoveMob(m)
	g.Log(MESSAGECOMBAT, "The monster dies.")
	log.WithFields(log.Fields{"monster": m.ID, "at": m.loc}).Debug("Monster killed")
}
