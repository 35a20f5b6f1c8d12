package game

import (
	"time"

	"github.com/ugaemi/pawseek/internal/geom"
)

// Reveal is the circular cut-out shown around a probe.
type Reveal struct {
	Center geom.Point `json:"center"`
	Radius float64    `json:"radius"`
}

// RevealGeometry centers the circle on p. A hit entity's width sizes the
// circle, otherwise defaultWidth does.
func RevealGeometry(p geom.Point, hit *PlacedEntity, defaultWidth float64) Reveal {
	width := defaultWidth
	if hit != nil {
		width = hit.Size.Width
	}
	return Reveal{Center: p, Radius: width / RevealRadiusDivisor}
}

// DwellFor returns how long a reveal stays open. Hits close quickly.
func DwellFor(hit bool) time.Duration {
	if hit {
		return HitDwell
	}
	return MissDwell
}
