package unbounded

import (
	"math/rand"
	"strings"
	"unicode"
)

var onsets, vowels, nucleae, codae, prefixes, middles, suffixes []string

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}

func randomOnset(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return pick(rng, vowels)
	}
	return pick(rng, onsets)
}

func randomRhyme(rng *rand.Rand, inWord bool) string {
	if inWord && rng.Intn(4) == 0 {
		return pick(rng, nucleae)
	} else if rng.Intn(4) == 0 {
		return pick(rng, vowels) + pick(rng, codae) + pick(rng, vowels)
	}
	return pick(rng, vowels) + pick(rng, codae)
}

func randomName(rng *rand.Rand) string {
	return pick(rng, prefixes) + pick(rng, middles) + pick(rng, suffixes)
}

// titleCase capitalizes the first letter of every word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// RandomPlaceName makes up a name for a region. The same rng state always
// gives the same name.
func RandomPlaceName(rng *rand.Rand) string {
	name := ""
	words := 1 + rng.Intn(2)
	for w := 0; w < words; w++ {
		if len(name) > 0 {
			name += " "
		}
		if rng.Intn(2) == 0 {
			if rng.Intn(2) == 0 {
				name += pick(rng, prefixes)
			}
			syllables := 1 + rng.Intn(2)
			for i := 0; i < syllables; i++ {
				name += randomOnset(rng) + randomRhyme(rng, i > 0)
			}
			name += pick(rng, suffixes)
		} else {
			name += randomName(rng)
		}
	}

	return titleCase(name)
}

func init() {
	onsets = []string{"s", "sp", "spr", "spl", "th", "z", "g", "gr", "n", "m"}
	nucleae = []string{"en", "em", "ul", "er", "il", "po", "to"}
	vowels = []string{"a", "i", "u", "e", "o"}
	codae = []string{"p", "t", "k", "f", "s", "sh", "os", "ers", ""}
	prefixes = []string{"penrhyn", "sir", "newydd", "pant", "new ", "old ", "den", "high", "ast", "black", "white", "green", "castle", "heck", "hell", "button", "glen", "myr", "griffin", "lion", "bear", "pegasus", "corn", "deep", "under", "dun"}
	middles = []string{"helms", "al", "ox", "horse", "tree", "stone", "men", "fond", "muck", "cross", "snake", "", ""}
	suffixes = []string{"fill", "sley", "well", "stone", "wich", "ddych", "thorpe", "den", "ton", "chester", "worth", "land", "hole", "park", " hole", " corner", " bend", " place", " mawr", " keep", " vault"}
}
