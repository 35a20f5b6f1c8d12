package catalog

import (
	"math"

	"github.com/ugaemi/pawseek/internal/geom"
)

// Measurer reports the footprint of a kind's glyph rendered at the given
// glyph size. It is supplied by the renderer.
type Measurer interface {
	Measure(k Kind, glyphSize float64) geom.Size
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func(k Kind, glyphSize float64) geom.Size

func (f MeasurerFunc) Measure(k Kind, glyphSize float64) geom.Size {
	return f(k, glyphSize)
}

// GlyphMeasurer approximates an emoji's bounding box as a fixed multiple of
// the glyph size.
type GlyphMeasurer struct {
	WidthRatio  float64
	HeightRatio float64
}

// DefaultMeasurer matches the proportions of a system emoji font.
var DefaultMeasurer = GlyphMeasurer{WidthRatio: 1, HeightRatio: 1.2}

func (g GlyphMeasurer) Measure(_ Kind, glyphSize float64) geom.Size {
	return geom.Size{Width: glyphSize * g.WidthRatio, Height: glyphSize * g.HeightRatio}
}

// SizeContext carries everything a footprint computation depends on. Each
// session owns one; there is no process-wide shrink factor.
type SizeContext struct {
	Viewport geom.Size
	Shrink   float64
	Measurer Measurer
}

// GlyphSize is the smaller viewport dimension divided by the shrink factor.
func (c SizeContext) GlyphSize() float64 {
	shrink := c.Shrink
	if shrink <= 0 {
		shrink = DefaultShrink
	}
	return math.Min(c.Viewport.Width, c.Viewport.Height) / shrink
}

// Footprint returns the absolute size of k in viewport units.
func (c SizeContext) Footprint(k Kind) geom.Size {
	m := c.Measurer
	if m == nil {
		m = DefaultMeasurer
	}
	return m.Measure(k, c.GlyphSize())
}
