package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind       = errors.New("unknown entity kind")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownScene      = errors.New("unknown scene")
	ErrEmptyPool         = errors.New("entity pool is empty")
	ErrDegenerateZone    = errors.New("scene usable zone has no area")
)

// ValidateSelection rejects a scene/difficulty/pool combination a session
// cannot be built from.
func ValidateSelection(scene Scene, difficulty Difficulty, pool []Kind) error {
	if !scene.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownScene, scene)
	}
	if !difficulty.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDifficulty, difficulty)
	}
	if len(pool) == 0 {
		return ErrEmptyPool
	}
	for _, k := range pool {
		if !k.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownKind, k)
		}
	}
	if zone := scene.UsableZone(); zone.Empty() {
		return fmt.Errorf("%w: %s", ErrDegenerateZone, scene)
	}
	return nil
}
