package game

import "time"

// Placement
const (
	PlacementRetries = 5 // resamples per entity before accepting an overlap
)

// Audio cue
const (
	PanGain   = 2.0 // exaggerates the stereo offset relative to screen offset
	MinVolume = 0.3 // cue stays audible at any distance
	MaxVolume = 1.0
	MinPitch  = 0.8
	MaxPitch  = 1.4
)

// Reveal
const (
	RevealRadiusDivisor = 1.5
	RevealDuration      = 300 * time.Millisecond // circle grow/shrink animation
)

// Dwell between showing and hiding a reveal circle.
const (
	HitDwell  = 300 * time.Millisecond
	MissDwell = 1 * time.Second
)

// Presentation timings
const (
	SplashFade    = 500 * time.Millisecond
	OverlayFadeIn = 1 * time.Second
	IntroDuration = SplashFade + OverlayFadeIn
	FoundFadeIn   = 1 * time.Second
	DismissFade   = 500 * time.Millisecond
)
