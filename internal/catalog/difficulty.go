package catalog

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Difficulty controls how many entities hide and how small they are.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard

	difficultyCount
)

// DefaultShrink is the shrink factor used when no difficulty applies.
const DefaultShrink = 8.0

type difficultyInfo struct {
	name     string
	min, max int
	shrink   float64
}

var difficulties = [difficultyCount]difficultyInfo{
	DifficultyEasy:   {name: "easy", min: 2, max: 3, shrink: 12},
	DifficultyMedium: {name: "medium", min: 4, max: 6, shrink: 14},
	DifficultyHard:   {name: "hard", min: 7, max: 9, shrink: 16},
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d >= 0 && d < difficultyCount
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return difficulties[d].name
}

// CountRange returns the inclusive range of entity counts.
func (d Difficulty) CountRange() (min, max int) {
	if !d.Valid() {
		return 0, 0
	}
	info := difficulties[d]
	return info.min, info.max
}

// Shrink is the factor the smaller viewport dimension is divided by to get
// the glyph size. Larger means smaller entities.
func (d Difficulty) Shrink() float64 {
	if !d.Valid() {
		return DefaultShrink
	}
	return difficulties[d].shrink
}

// RandomCount draws an entity count uniformly from CountRange.
func (d Difficulty) RandomCount(rng *rand.Rand) int {
	lo, hi := d.CountRange()
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// ParseDifficulty resolves a difficulty by name.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := Difficulty(0); d < difficultyCount; d++ {
		if difficulties[d].name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// MarshalJSON serializes Difficulty as its name.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON deserializes Difficulty from its name.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
