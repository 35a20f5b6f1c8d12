package game

import (
	"github.com/google/uuid"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/geom"
)

// PlacedEntity is one hidden entity in a session.
type PlacedEntity struct {
	ID   string       `json:"id"`
	Kind catalog.Kind `json:"kind"`
	// Position is the top-left corner, normalized to the full viewport.
	Position geom.Point `json:"position"`
	// Size is the absolute footprint in viewport units.
	Size    geom.Size `json:"size"`
	Flipped bool      `json:"flipped"`
	Found   bool      `json:"found"`
}

// NewPlacedEntity creates an unfound entity with a fresh identity.
func NewPlacedEntity(kind catalog.Kind, pos geom.Point, size geom.Size) *PlacedEntity {
	return &PlacedEntity{
		ID:       uuid.New().String(),
		Kind:     kind,
		Position: pos,
		Size:     size,
	}
}

// Bounds returns the absolute bounding rectangle within a viewport.
func (e *PlacedEntity) Bounds(viewport geom.Size) geom.Rect {
	return boundsAt(e.Position, e.Size, viewport)
}

func (e *PlacedEntity) MarkFound() {
	e.Found = true
}

func boundsAt(pos geom.Point, size geom.Size, viewport geom.Size) geom.Rect {
	return geom.Rect{
		X:      pos.X * viewport.Width,
		Y:      pos.Y * viewport.Height,
		Width:  size.Width,
		Height: size.Height,
	}
}

// Unfound returns the entities whose Found flag is false, in order.
func Unfound(entities []*PlacedEntity) []*PlacedEntity {
	out := make([]*PlacedEntity, 0, len(entities))
	for _, e := range entities {
		if !e.Found {
			out = append(out, e)
		}
	}
	return out
}
