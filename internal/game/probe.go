package game

import (
	"math"
	"math/rand/v2"

	"github.com/ugaemi/pawseek/internal/geom"
)

// Cue holds the playback parameters for a probe's audio feedback.
type Cue struct {
	Pan    float64 `json:"pan"`    // -1 left .. 1 right
	Volume float64 `json:"volume"` // MinVolume .. 1
	Pitch  float64 `json:"pitch"`  // playback rate jitter, not positional
}

// ProbeResult is the outcome of evaluating a probe.
type ProbeResult struct {
	Point geom.Point
	// Hit is the first entity, in placement order, whose bounds contain the
	// probe. Nil on a miss.
	Hit *PlacedEntity
	// Nearest is the closest entity to the probe. Nil only when no entities
	// were given.
	Nearest  *PlacedEntity
	Distance float64
	Cue      Cue
}

// EvaluateProbe hit-tests p against the unfound entities, finds the nearest
// one and derives the audio cue. Entities already found are skipped. It never
// mutates the entities.
func EvaluateProbe(rng *rand.Rand, p geom.Point, entities []*PlacedEntity, viewport geom.Size) ProbeResult {
	res := ProbeResult{Point: p, Distance: math.Inf(1)}
	var nearestRect geom.Rect

	for _, e := range entities {
		if e.Found {
			continue
		}
		r := e.Bounds(viewport)
		if res.Hit == nil && r.Contains(p) {
			res.Hit = e
		}
		// Strict comparison keeps the earliest entity on ties.
		if d := r.Distance(p); res.Nearest == nil || d < res.Distance {
			res.Nearest = e
			res.Distance = d
			nearestRect = r
		}
	}

	if res.Nearest == nil {
		res.Distance = 0
	}
	res.Cue = cueFor(res.Hit != nil, p, nearestRect, viewport.Width)
	res.Cue.Pitch = RandomPitch(rng)
	return res
}

// cueFor computes pan and volume. A hit plays centered at full volume.
// Otherwise the pan follows the horizontal offset of the nearest entity's
// left edge relative to the room left on screen beside it.
func cueFor(hit bool, p geom.Point, nearest geom.Rect, width float64) Cue {
	if hit {
		return Cue{Pan: 0, Volume: MaxVolume}
	}

	dx := nearest.MinX() - p.X
	span := width - nearest.Width

	var raw float64
	if span != 0 {
		raw = dx / span
	}

	pan := geom.Clamp(raw*PanGain, -1, 1)
	return Cue{
		Pan:    pan,
		Volume: geom.Clamp(1-math.Abs(pan), MinVolume, MaxVolume),
	}
}

// RandomPitch draws a playback rate uniformly from [MinPitch, MaxPitch].
func RandomPitch(rng *rand.Rand) float64 {
	return MinPitch + rng.Float64()*(MaxPitch-MinPitch)
}
