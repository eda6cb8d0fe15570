package unbounded

import "testing"

func TestParseGradient(t *testing.T) {
	bands, err := parseGradient([]string{"low:3", "mid", "high:0"})
	if err != nil {
		t.Fatal(err)
	}
	want := []gradientBand{{"low", 0.75}, {"mid", 1}, {"high", 1}}
	for i := range want {
		if bands[i] != want[i] {
			t.Errorf("band %d is %+v, want %+v", i, bands[i], want[i])
		}
	}

	for _, bad := range [][]string{{"a:x"}, {"a:-1"}, {"a:0"}, nil} {
		if _, err := parseGradient(bad); err == nil {
			t.Errorf("%v should not parse", bad)
		}
	}
}

func TestGradientPicksBand(t *testing.T) {
	pick := MakeGradientTransitionFunction([]string{"low:3", "high"})
	cases := map[float64]string{0: "low", 0.5: "low", 0.75: "high", 1: "high", 7: "high"}
	for value, want := range cases {
		if got := pick(value); got != want {
			t.Errorf("%v gave %s, want %s", value, got, want)
		}
	}
}
