package unbounded

import "testing"

func TestMonsterChasesAndBites(t *testing.T) {
	c := floorChunk(10, 1)
	mob := NewMonster("chaser", Point{X: 5, Y: 0})
	c.Data().Mobs = []*Monster{mob}
	c.bind()

	g := testGame(t, c, Point{X: 0, Y: 0})

	for i := 0; i < 3; i++ {
		mob.Step(g)
	}
	if mob.Frozen {
		t.Fatal("monster should wake up with the player nearby")
	}
	if mob.Location() != (Point{X: 2, Y: 0}) {
		t.Fatalf("monster at %v after three steps", mob.Location())
	}
	if c.Tile(Point{X: 5, Y: 0}).Type != TileFloor || c.Tile(Point{X: 2, Y: 0}).Type != TileMonster {
		t.Error("monster not redrawn as it moved")
	}
	if g.Player().Vitals().Health != PlayerVitals.Health {
		t.Fatal("bitten from a distance")
	}

	mob.Step(g)
	if mob.Location() != (Point{X: 1, Y: 0}) {
		t.Fatalf("monster at %v", mob.Location())
	}
	if h := g.Player().Vitals().Health; h != PlayerVitals.Health-MonsterVitals.Damage {
		t.Errorf("player health %d after the first bite", h)
	}

	mob.Step(g)
	if mob.Location() != (Point{X: 1, Y: 0}) {
		t.Error("monster walked onto the player")
	}
	if h := g.Player().Vitals().Health; h != PlayerVitals.Health-2*MonsterVitals.Damage {
		t.Errorf("player health %d after the second bite", h)
	}
}

func TestMonsterStaysAsleep(t *testing.T) {
	c := floorChunk(10, 1)
	mob := NewMonster("sleeper", Point{X: 8, Y: 0})
	c.Data().Mobs = []*Monster{mob}
	c.bind()

	g := testGame(t, c, Point{X: 0, Y: 0})
	g.config.MonsterAggroRange = 3

	mob.Step(g)
	if !mob.Frozen || mob.Location() != (Point{X: 8, Y: 0}) {
		t.Error("monster woke up with the player out of range")
	}
}

func TestMonsterKillsPlayer(t *testing.T) {
	c := floorChunk(3, 1)
	mob := NewMonster("killer", Point{X: 1, Y: 0})
	mob.Damage = PlayerVitals.Health
	c.Data().Mobs = []*Monster{mob}
	c.bind()

	g := testGame(t, c, Point{X: 0, Y: 0})
	mob.Attack(g)

	if g.Status() != StatusLost {
		t.Errorf("status %v", g.Status())
	}
	if c.Tile(Point{X: 0, Y: 0}).Type == TileAvatar {
		t.Error("a dead player is still drawn")
	}

	mob.Step(g)
	if g.Player().Vitals().Health != 0 {
		t.Error("health went below zero")
	}
}

func TestPlayerRangedAttack(t *testing.T) {
	c := floorChunk(10, 1)
	mob := NewMonster("target", Point{X: 4, Y: 0})
	c.Data().Mobs = []*Monster{mob}
	c.bind()

	g := testGame(t, c, Point{X: 0, Y: 0})
	p := g.Player()
	p.Move(DIRECTIONRIGHT)

	p.Attack(g)
	if mob.Health != MonsterVitals.Health-PlayerVitals.Damage {
		t.Fatalf("monster health %d", mob.Health)
	}
	if p.Vitals().Mana != PlayerVitals.Mana-attackCost {
		t.Errorf("mana %d", p.Vitals().Mana)
	}
	for x := 2; x < 4; x++ {
		if c.Tile(Point{X: x, Y: 0}).Type != TileFloor {
			t.Errorf("projectile left a mark at %d", x)
		}
	}

	p.Attack(g)
	p.Attack(g)
	if len(c.Data().Mobs) != 0 {
		t.Fatal("monster survived three hits")
	}
	if c.Tile(Point{X: 4, Y: 0}).Type != TileFloor {
		t.Errorf("dead monster left %s behind", c.Tile(Point{X: 4, Y: 0}).Type)
	}
}

func TestPlayerAttackNeedsMana(t *testing.T) {
	c := floorChunk(5, 1)
	mob := NewMonster("target", Point{X: 2, Y: 0})
	c.Data().Mobs = []*Monster{mob}
	c.bind()

	g := testGame(t, c, Point{X: 0, Y: 0})
	p := g.Player()
	p.Move(DIRECTIONRIGHT)

	p.mu.Lock()
	p.vitals.Mana = 0
	p.mu.Unlock()

	p.Attack(g)
	if mob.Health != MonsterVitals.Health {
		t.Error("attacked with no mana")
	}
}

func TestAttackKeyBitesBack(t *testing.T) {
	c := floorChunk(5, 1)
	mob := NewMonster("neighbor", Point{X: 1, Y: 0})
	c.Data().Mobs = []*Monster{mob}
	c.bind()

	g := testGame(t, c, Point{X: 0, Y: 0})
	g.Player().Move(DIRECTIONRIGHT)
	g.HandleKey('m', NewStringInput(""))

	if mob.Health != MonsterVitals.Health-PlayerVitals.Damage {
		t.Errorf("monster health %d", mob.Health)
	}
	if g.Player().Vitals().Health != PlayerVitals.Health-MonsterVitals.Damage {
		t.Errorf("player health %d", g.Player().Vitals().Health)
	}
}
