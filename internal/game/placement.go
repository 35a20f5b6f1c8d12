package game

import (
	"math/rand/v2"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/geom"
)

// Placement is the result of scattering entities over a scene.
type Placement struct {
	Entities []*PlacedEntity
	// Overlaps counts entities accepted while still colliding after the
	// retry budget ran out.
	Overlaps int
}

// Place scatters a random number of entities, drawn from level's count
// range, over zone. Kinds are sampled from pool with replacement. Each
// candidate is resampled up to PlacementRetries times while its bounds
// intersect an already placed entity; after that the last candidate is kept
// even if it overlaps. pool must not be empty.
func Place(rng *rand.Rand, zone geom.Rect, level catalog.Difficulty, pool []catalog.Kind, sizes catalog.SizeContext) Placement {
	count := level.RandomCount(rng)
	placed := make([]*PlacedEntity, 0, count)
	var overlaps int

	for i := 0; i < count; i++ {
		kind := pool[rng.IntN(len(pool))]
		size := sizes.Footprint(kind)

		pos, clear := placeOne(rng, zone, size, sizes.Viewport, placed)
		if !clear {
			overlaps++
		}

		e := NewPlacedEntity(kind, pos, size)
		e.Flipped = rng.IntN(2) == 1
		placed = append(placed, e)
	}

	return Placement{Entities: placed, Overlaps: overlaps}
}

// placeOne samples a normalized position for an entity of the given size and
// reports whether it ended up clear of every existing entity.
func placeOne(rng *rand.Rand, zone geom.Rect, size, viewport geom.Size, existing []*PlacedEntity) (geom.Point, bool) {
	pos := zone.RandomPoint(rng)
	for tries := PlacementRetries; tries > 0 && collides(boundsAt(pos, size, viewport), existing, viewport); tries-- {
		pos = zone.RandomPoint(rng)
	}
	return pos, !collides(boundsAt(pos, size, viewport), existing, viewport)
}

// collides reports whether r intersects any existing entity's bounds.
func collides(r geom.Rect, existing []*PlacedEntity, viewport geom.Size) bool {
	for _, e := range existing {
		if e.Bounds(viewport).Intersects(r) {
			return true
		}
	}
	return false
}
