package terminal

import (
	"math"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/geom"
)

// A terminal cell is mapped to CellWidth x CellHeight viewport units, so a
// screen of c columns and r rows is a viewport of c*CellWidth x r*CellHeight.
const (
	CellWidth  = 8
	CellHeight = 16
)

// ViewportFor returns the viewport covered by a screen of the given size.
func ViewportFor(cols, rows int) geom.Size {
	return geom.Size{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)}
}

// cellMeasurer snaps the default glyph footprint to whole cells. An emoji is
// at least two columns wide and one row tall.
type cellMeasurer struct{}

func (cellMeasurer) Measure(k catalog.Kind, glyphSize float64) geom.Size {
	base := catalog.DefaultMeasurer.Measure(k, glyphSize)
	cols := math.Max(2, math.Round(base.Width/CellWidth))
	rows := math.Max(1, math.Round(base.Height/CellHeight))
	return geom.Size{Width: cols * CellWidth, Height: rows * CellHeight}
}

// grid maps between screen cells and viewport units.
type grid struct {
	cols, rows int
	viewport   geom.Size
}

func (g grid) scaleX() float64 { return g.viewport.Width / float64(max(g.cols, 1)) }
func (g grid) scaleY() float64 { return g.viewport.Height / float64(max(g.rows, 1)) }

// center returns the viewport point at the middle of cell (x, y).
func (g grid) center(x, y int) geom.Point {
	return geom.Point{
		X: (float64(x) + 0.5) * g.scaleX(),
		Y: (float64(y) + 0.5) * g.scaleY(),
	}
}

// cell returns the cell containing viewport point p.
func (g grid) cell(p geom.Point) (int, int) {
	x := int(math.Floor(p.X / g.scaleX()))
	y := int(math.Floor(p.Y / g.scaleY()))
	return min(max(x, 0), g.cols-1), min(max(y, 0), g.rows-1)
}
