package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/game"
	"github.com/ugaemi/pawseek/internal/geom"
)

var (
	overlayStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	textStyle    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(240, 240, 240))
	dialogStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(250, 246, 232)).Foreground(tcell.NewRGBColor(40, 40, 40))
	fadedStyle   = dialogStyle.Foreground(tcell.NewRGBColor(160, 160, 160))
	bannerStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(255, 204, 0)).Foreground(tcell.ColorBlack).Bold(true)
)

type palette struct {
	sky    tcell.Color
	ground tcell.Color
}

var scenePalettes = map[catalog.Scene]palette{
	catalog.SceneFarm:        {sky: tcell.NewRGBColor(135, 206, 235), ground: tcell.NewRGBColor(106, 168, 79)},
	catalog.SceneSavanna:     {sky: tcell.NewRGBColor(250, 214, 165), ground: tcell.NewRGBColor(204, 170, 102)},
	catalog.SceneForest:      {sky: tcell.NewRGBColor(120, 170, 140), ground: tcell.NewRGBColor(46, 94, 58)},
	catalog.SceneSnowyForest: {sky: tcell.NewRGBColor(200, 215, 230), ground: tcell.NewRGBColor(245, 248, 252)},
}

// draw renders a full frame. It must run on the runner goroutine.
func (g *Game) draw() {
	now := g.now()
	g.advance()

	for y := 0; y < g.grid.rows; y++ {
		for x := 0; x < g.grid.cols; x++ {
			g.screen.SetContent(x, y, ' ', nil, g.cellStyle(x, y))
		}
	}

	for _, e := range g.session.Entities {
		if !g.visible(e) {
			continue
		}
		x, y := g.grid.cell(e.Bounds(g.session.Viewport).Center())
		g.drawGlyph(x, y, e.Kind.Glyph(), g.cellStyle(x, y))
	}

	switch g.phase {
	case phaseSplash:
		g.drawCentered(g.grid.rows/2-1, " PawAndSeek ", bannerStyle)
		g.drawCentered(g.grid.rows/2+1, " click anywhere to start ", textStyle)
	case phaseIntro:
		if progress(now, g.introStart, game.SplashFade) < 1 {
			g.drawCentered(g.grid.rows/2-1, " PawAndSeek ", bannerStyle)
		}
	case phaseWon:
		g.drawCentered(g.grid.rows/2, " You found them all! Press n to play again. ", bannerStyle)
	}

	g.drawDialog()
	g.drawStatus()
	g.screen.Show()
}

// cellStyle returns the background of cell (x, y): scene or overlay.
func (g *Game) cellStyle(x, y int) tcell.Style {
	p := g.grid.center(x, y)
	if g.covered(p, y) {
		return overlayStyle
	}
	pal := scenePalettes[g.session.Scene]
	zone := g.session.Scene.UsableZone().Scale(g.session.Viewport)
	if zone.Contains(p) {
		return tcell.StyleDefault.Background(pal.ground)
	}
	return tcell.StyleDefault.Background(pal.sky)
}

// advance retires finished animations.
func (g *Game) advance() {
	now := g.now()
	if g.phase == phaseIntro && progress(now, g.introStart, g.introDur) >= 1 {
		g.phase = phasePlaying
	}
	if g.reveal != nil && g.reveal.done(now) {
		g.reveal = nil
	}
	if d := g.dialog; d != nil && d.dismissing && progress(now, d.dismissAt, d.dismissDur) >= 1 {
		g.dialog = nil
	}
}

// covered reports whether the dark overlay hides point p on row y.
func (g *Game) covered(p geom.Point, y int) bool {
	switch g.phase {
	case phaseSplash, phaseWon:
		return false
	case phaseIntro:
		// The overlay slides down like a curtain.
		return float64(y) < progress(g.now(), g.introStart, g.introDur)*float64(g.grid.rows)
	}
	return !g.inReveal(p)
}

func (g *Game) inReveal(p geom.Point) bool {
	if g.reveal == nil {
		return false
	}
	r := g.reveal.radius(g.now())
	dx, dy := p.X-g.reveal.center.X, p.Y-g.reveal.center.Y
	return dx*dx+dy*dy <= r*r
}

// visible reports whether an entity is drawn this frame. Found entities stay
// on screen; hidden ones show only through a reveal.
func (g *Game) visible(e *game.PlacedEntity) bool {
	switch g.phase {
	case phaseSplash, phaseIntro:
		return false
	case phaseWon:
		return true
	}
	if e.Found {
		return true
	}
	return g.inReveal(e.Bounds(g.session.Viewport).Center())
}

func (g *Game) drawGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	g.screen.SetContent(x, y, runes[0], runes[1:], style)
}

func (g *Game) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= g.grid.cols {
			return
		}
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (g *Game) drawCentered(y int, s string, style tcell.Style) {
	x := (g.grid.cols - len([]rune(s))) / 2
	g.drawText(max(x, 0), y, s, style)
}

// drawDialog draws the found dialog. Lines appear one by one while it fades
// in and grey out while it is dismissed.
func (g *Game) drawDialog() {
	d := g.dialog
	if d == nil {
		return
	}
	lines := d.content.Lines()

	shown := len(lines)
	style := dialogStyle
	if d.dismissing {
		style = fadedStyle
	} else {
		p := progress(g.now(), d.start, d.content.FadeIn)
		shown = max(1, int(p*float64(len(lines))+0.999))
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 4
	left := max((g.grid.cols-width)/2, 0)
	top := max((g.grid.rows-height)/2, 0)

	for y := top; y < top+height && y < g.grid.rows; y++ {
		for x := left; x < left+width && x < g.grid.cols; x++ {
			g.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if d.content.Entity != nil {
		g.drawGlyph(left+width/2-1, top+1, d.content.Entity.Kind.Glyph(), style)
	}
	for i, l := range lines[:shown] {
		g.drawText(left+2, top+3+i, l, style)
	}
}

func (g *Game) drawStatus() {
	y := g.grid.rows - 1
	if y < 0 {
		return
	}
	s := g.session
	status := fmt.Sprintf(" %s | %s | %d left | n: new game  q: quit ",
		s.Scene, s.Difficulty, s.Unfound())
	g.drawText(0, y, status, textStyle)
}
