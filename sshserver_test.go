package unbounded

import "testing"

func TestSaveFileFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SaveFile = "saves/game.db"

	cases := map[string]string{
		"alice":      "saves/game.db.alice",
		"../../etc":  "saves/game.db.______etc",
		"bob smith!": "saves/game.db.bob_smith_",
	}
	for user, want := range cases {
		if got := saveFileFor(cfg, user); got != want {
			t.Errorf("%q: got %q, want %q", user, got, want)
		}
	}
}
