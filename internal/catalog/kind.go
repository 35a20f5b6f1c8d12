package catalog

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind identifies an entity kind that can hide in a scene.
type Kind int

const (
	KindCow Kind = iota
	KindDog
	KindCat
	KindPig
	KindRabbit
	KindHorse
	KindMonkey

	kindCount
)

// ReferenceKind is used to size reveal circles when a probe misses.
const ReferenceKind = KindCow

type kindInfo struct {
	name   string
	glyph  string
	source string
	facts  []string
}

var kinds = [kindCount]kindInfo{
	KindCow: {
		name:   "cow",
		glyph:  "🐮",
		source: "Dairy Moos",
		facts: []string{
			"Cows can hear lower and higher frequencies better than humans",
			"The average cow chews at least 50 times per minute",
			"Cows have a single stomach, but four different digestive compartments",
			"The average cow drinks 30 to 50 gallons of water each day",
			"Cows only have teeth on the bottom",
		},
	},
	KindDog: {
		name:   "dog",
		glyph:  "🐶",
		source: "MSPCA",
		facts: []string{
			"Dogs do not sweat by salivating, they sweat through the pads of their feet",
			"Dogs have over 200 million scent receptors in their noses",
			"An adult dog has 42 teeth",
			"Dogs do see in color, just not as vivid as we see",
			"When a puppy is born, he is blind, deaf, and toothless",
		},
	},
	KindCat: {
		name:   "cat",
		glyph:  "🐱",
		source: "Purina",
		facts: []string{
			"Cats can see up to 6 times better than humans in low light thanks to a reflective layer in their eyes",
			"More cats are left-pawed than right",
			"Cats can travel at speeds of up to 18 mph",
			"The collective nouns used for cats and kittens are a clowder of cats and a kindle of kittens",
			"Cats have 32 muscles in their ears",
		},
	},
	KindPig: {
		name:   "pig",
		glyph:  "🐷",
		source: "National Geographic",
		facts: []string{
			"Despite their reputation, pigs are not dirty animals",
			"Pigs eat everything from leaves, roots, and fruit to rodents and small reptiles",
			"Pigs are among the smartest of all domesticated animals and are even smarter than dogs",
			"Fully grown, pigs can grow to between 300 and 700 pounds",
			"Pigs have poor eyesight, but a great sense of smell",
		},
	},
	KindRabbit: {
		name:   "rabbit",
		glyph:  "🐰",
		source: "Blue Cross",
		facts: []string{
			"Rabbits can turn their ears 180 degrees and can pinpoint the exact location of a sound",
			"Baby rabbits are called kittens",
			"Rabbits have almost 360 degree vision but they are born with their eyes shut",
			"Rabbits are social creatures and are happiest in the company of their own species",
			"Rabbits and guinea pigs don't make good pals",
		},
	},
	KindHorse: {
		name:   "horse",
		glyph:  "🐴",
		source: "Double Trailers",
		facts: []string{
			"Horses have the largest eyes of any land mammal",
			"A horse's teeth take up a larger amount of space in their head than their brain",
			"Horses can sleep both lying down and standing up",
			"The fastest recorded sprinting speed of a horse was 55 mph",
			"Horses use their ears, eyes and nostrils to express their mood",
		},
	},
	KindMonkey: {
		name:   "monkey",
		glyph:  "🐵",
		source: "LiveScience",
		facts: []string{
			"If there is a lack of food, female monkeys will stop mating until there are better circumstances for getting pregnant",
			"When a troop of howler monkeys yell, they can be heard for up to three miles",
			"Monkeys express affection and make peace with others by grooming each other",
			"Monkeys are omnivores, so they eat meat and plant-based foods",
			"The world's smallest monkey is the pygmy marmoset, it weighs only around 4 ounces and is only around 5 inches tall",
		},
	},
}

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kinds[k].name
}

// Name is the display name, e.g. "cow".
func (k Kind) Name() string { return k.String() }

// Glyph is the emoji the renderer draws for this kind.
func (k Kind) Glyph() string {
	if !k.Valid() {
		return "?"
	}
	return kinds[k].glyph
}

// FactSource names where the kind's facts come from.
func (k Kind) FactSource() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].source
}

// Facts returns a copy of the kind's trivia strings.
func (k Kind) Facts() []string {
	if !k.Valid() {
		return nil
	}
	return append([]string(nil), kinds[k].facts...)
}

// Asset is the audio asset identifier. Players resolve it to a sound file.
func (k Kind) Asset() string { return k.String() }

// RandomFact samples one of the kind's facts uniformly, lowercased so it can
// be embedded in a sentence.
func (k Kind) RandomFact(rng *rand.Rand) string {
	if !k.Valid() {
		return ""
	}
	facts := kinds[k].facts
	return strings.ToLower(facts[rng.IntN(len(facts))])
}

// ParseKind resolves a kind by name or glyph.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := Kind(0); k < kindCount; k++ {
		if kinds[k].name == s || kinds[k].glyph == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseKinds resolves a comma-separated list of kind names.
func ParseKinds(list string) ([]Kind, error) {
	var out []Kind
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// MarshalJSON serializes Kind as its name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON deserializes Kind from its name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
