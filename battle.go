package unbounded

// Vitals tracks a mover's health and mana
type Vitals struct {
	Health    int `json:""`
	MaxHealth int `json:""`
	Mana      int `json:""`
	MaxMana   int `json:""`
	Damage    int `json:""`
}

// Player and monster starting stats
var (
	PlayerVitals  = Vitals{Health: 100, MaxHealth: 100, Mana: 100, MaxMana: 100, Damage: 20}
	MonsterVitals = Vitals{Health: 50, MaxHealth: 50, Damage: 10}
)

// Alive is true while there's health left
func (v *Vitals) Alive() bool {
	return v.Health > 0
}

// Hurt takes health away, never going below zero
func (v *Vitals) Hurt(amount int) {
	v.Health = max(v.Health-amount, 0)
}

// Heal adds health up to the maximum
func (v *Vitals) Heal(amount int) {
	v.Health = min(v.Health+amount, v.MaxHealth)
}

// Restore adds mana up to the maximum
func (v *Vitals) Restore(amount int) {
	v.Mana = min(v.Mana+amount, v.MaxMana)
}

// Spend uses up mana, reporting false if there was none to spend
func (v *Vitals) Spend(amount int) bool {
	if v.Mana <= 0 {
		return false
	}
	v.Mana = max(v.Mana-amount, 0)
	return true
}
