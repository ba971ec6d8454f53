package render

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/vi-beaker/parameter"
)

// layout is the beaker outline position on screen
// The interior spans [inLeft, inRight] x [top, inBottom]; the rim row is open
type layout struct {
	left, top, width, height int

	inLeft, inRight, inBottom int
	inWidth, inHeight         int
}

func computeLayout(screenWidth, screenHeight int) layout {
	w := clampInt(screenWidth/2, parameter.BeakerMinWidth, parameter.BeakerMaxWidth)
	h := clampInt(screenHeight-parameter.BottomMargin-parameter.SmokeHeadroom,
		parameter.BeakerMinHeight, parameter.BeakerMaxHeight)

	l := layout{
		left:   (screenWidth - w) / 2,
		top:    screenHeight - parameter.BottomMargin - h,
		width:  w,
		height: h,
	}
	l.inLeft = l.left + 1
	l.inRight = l.left + w - 2
	l.inBottom = l.top + h - 2
	l.inWidth = w - 2
	l.inHeight = h - 1
	return l
}

// TerminalRenderer paints scenes onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
	layout layout
	mono   bool
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	r := &TerminalRenderer{screen: screen}
	r.UpdateDimensions(w, h)
	return r
}

// UpdateDimensions recomputes the layout after a resize
func (r *TerminalRenderer) UpdateDimensions(width, height int) {
	r.width = width
	r.height = height
	r.layout = computeLayout(width, height)
}

// SetMonochrome disables RGB styling for terminals without color
func (r *TerminalRenderer) SetMonochrome(mono bool) {
	r.mono = mono
}

// RenderFrame draws one scene and the status line, then shows the screen
func (r *TerminalRenderer) RenderFrame(scene Scene, status string) {
	r.screen.Clear()
	r.fill(RgbBackground)

	if scene.Glow != nil {
		r.drawGlow(scene.Glow)
	}
	if scene.Smoke != nil {
		r.drawSmoke(scene)
	}
	r.drawOutline()

	liquidRows := 0
	if scene.Liquid != nil {
		liquidRows = r.drawLiquid(scene.Liquid)
	}
	if liquidRows > 0 {
		r.drawBubbles(scene, liquidRows)
	}
	r.drawSparkles(scene)
	if scene.Explosion != nil {
		r.drawExplosion(scene)
	}
	r.drawStatus(status)

	r.screen.Show()
}

// style builds a cell style; monochrome mode drops colors
func (r *TerminalRenderer) style(fg, bg colorful.Color) tcell.Style {
	if r.mono {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
}

func (r *TerminalRenderer) set(x, y int, ch rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, st)
}

// bgAt returns the background already painted at a cell
func (r *TerminalRenderer) bgAt(x, y int) colorful.Color {
	_, _, st, _ := r.screen.GetContent(x, y)
	_, bg, _ := st.Decompose()
	if !bg.Valid() {
		return RgbBackground
	}
	cr, cg, cb := bg.RGB()
	return colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}
}

func (r *TerminalRenderer) fill(bg colorful.Color) {
	st := r.style(RgbStatusText, bg)
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.set(x, y, ' ', st)
		}
	}
}

// drawGlow paints a halo that fades with distance from the glass
func (r *TerminalRenderer) drawGlow(g *Glow) {
	rows := g.Radius * parameter.GlowCellsPerUnit
	if rows <= 0 {
		return
	}
	cols := rows * parameter.CellAspect
	l := r.layout
	color := fromRGB(g.Color)

	x0 := l.left - int(math.Ceil(cols))
	x1 := l.left + l.width - 1 + int(math.Ceil(cols))
	y0 := l.top - int(math.Ceil(rows))
	y1 := l.top + l.height - 1 + int(math.Ceil(rows))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := math.Max(0, math.Max(float64(l.left-x), float64(x-(l.left+l.width-1)))) / parameter.CellAspect
			dy := math.Max(0, math.Max(float64(l.top-y), float64(y-(l.top+l.height-1))))
			d := math.Hypot(dx, dy)
			if d == 0 || d > rows {
				continue
			}
			alpha := parameter.GlowMaxAlpha * (1 - d/rows)
			bg := RgbBackground.BlendLab(color, alpha)
			r.set(x, y, ' ', r.style(RgbStatusText, bg))
		}
	}
}

// drawSmoke draws each plume head and a fainter tail rising from the rim
func (r *TerminalRenderer) drawSmoke(scene Scene) {
	l := r.layout
	headroom := l.top
	if headroom <= 0 {
		return
	}
	s := scene.Smoke

	head := '░'
	switch {
	case s.Opacity > 0.67:
		head = '▓'
	case s.Opacity > 0.34:
		head = '▒'
	}

	for _, p := range s.Plumes {
		h := p.Height(scene.Elapsed)
		y := l.top - 1 - int(h*float64(headroom))
		x := l.inLeft + int(p.Column*float64(l.inWidth-1))

		fade := s.Opacity * (1 - h)
		fg := r.bgAt(x, y).BlendLab(RgbSmoke, fade)
		r.set(x, y, head, r.style(fg, r.bgAt(x, y)))
		r.set(x, y+1, '░', r.style(r.bgAt(x, y+1).BlendLab(RgbSmoke, fade*0.5), r.bgAt(x, y+1)))
	}
}

// drawOutline draws the glass walls, the bottom and the graduation marks
func (r *TerminalRenderer) drawOutline() {
	l := r.layout
	for y := l.top; y <= l.inBottom; y++ {
		r.set(l.left, y, '│', r.style(RgbGlass, r.bgAt(l.left, y)))
		r.set(l.inRight+1, y, '│', r.style(RgbGlass, r.bgAt(l.inRight+1, y)))
	}

	bottom := l.top + l.height - 1
	r.set(l.left, bottom, '╰', r.style(RgbGlass, r.bgAt(l.left, bottom)))
	for x := l.inLeft; x <= l.inRight; x++ {
		r.set(x, bottom, '─', r.style(RgbGlass, r.bgAt(x, bottom)))
	}
	r.set(l.inRight+1, bottom, '╯', r.style(RgbGlass, r.bgAt(l.inRight+1, bottom)))

	for _, ml := range parameter.GraduationMarksMl {
		y := r.rowForFraction(float64(ml) / parameter.BeakerCapacityMl)
		wall := l.inRight + 1
		r.set(wall, y, '┤', r.style(RgbGlass, r.bgAt(wall, y)))
		for i, ch := range strconv.Itoa(ml) {
			r.set(wall+1+i, y, ch, r.style(RgbGraduation, r.bgAt(wall+1+i, y)))
		}
	}
}

// rowForFraction maps an interior height fraction onto a screen row
func (r *TerminalRenderer) rowForFraction(f float64) int {
	l := r.layout
	rows := int(math.Round(f * float64(l.inHeight)))
	return clampInt(l.inBottom-rows+1, l.top, l.inBottom)
}

// drawLiquid fills the interior up to the shape level and returns the rows used
func (r *TerminalRenderer) drawLiquid(liq *Liquid) int {
	l := r.layout
	rows := int(math.Round(liq.Shape.Level * float64(l.inHeight)))
	if liq.Shape.Level > 0 && rows == 0 {
		rows = 1
	}
	if rows <= 0 {
		return 0
	}

	color := fromRGB(liq.Color)
	foam := fromRGB(Blend(liq.Color, surfaceRGB, 0.4))
	body := ' '
	if r.mono {
		body = '▒'
	}
	surface := l.inBottom - rows + 1

	for y := surface; y <= l.inBottom; y++ {
		for x := l.inLeft; x <= l.inRight; x++ {
			if y == surface {
				r.set(x, y, '~', r.style(foam, color))
				continue
			}
			r.set(x, y, body, r.style(color, color))
		}
	}
	return rows
}

func (r *TerminalRenderer) drawBubbles(scene Scene, liquidRows int) {
	l := r.layout
	for _, b := range scene.Bubbles {
		h, ok := b.Height(scene.Elapsed)
		if !ok {
			continue
		}
		y := l.inBottom - int(h*float64(liquidRows))
		x := l.inLeft + int(b.Column*float64(l.inWidth-1))

		ch := '°'
		if b.Radius >= 2.5 {
			ch = 'o'
		}
		r.set(x, y, ch, r.style(RgbBubble, r.bgAt(x, y)))
	}
}

func (r *TerminalRenderer) drawSparkles(scene Scene) {
	l := r.layout
	for _, s := range scene.Sparkles {
		if !s.Lit(scene.Elapsed) {
			continue
		}
		x := l.inLeft + int(s.X*float64(l.inWidth-1))
		y := l.top + int(s.Y*float64(l.inHeight-1))

		ch := '·'
		if s.Size >= 2 {
			ch = '*'
		}
		r.set(x, y, ch, r.style(RgbSparkle, r.bgAt(x, y)))
	}
}

// drawExplosion paints the filled blasts then the shockwave rings, centered on the beaker
func (r *TerminalRenderer) drawExplosion(scene Scene) {
	x := scene.Explosion
	elapsed := scene.Now.Sub(x.Start)
	l := r.layout
	cx := float64(l.left) + float64(l.width-1)/2
	cy := float64(l.top) + float64(l.height-1)/2

	for _, b := range []Blast{x.Main, x.Inner} {
		radius, opacity, ok := b.At(elapsed)
		if !ok {
			continue
		}
		rc := radius * parameter.ExplosionCellScale
		r.eachCell(cx, cy, rc, func(px, py int, d float64) {
			if d > rc {
				return
			}
			core := RgbBlastCore.BlendLab(RgbBlastEdge, d/math.Max(rc, 1))
			bg := r.bgAt(px, py).BlendLab(core, opacity)
			r.set(px, py, ' ', r.style(RgbStatusText, bg))
		})
	}

	for _, ring := range x.Rings {
		radius, opacity, ok := ring.At(elapsed)
		if !ok {
			continue
		}
		rc := radius * parameter.ExplosionCellScale
		r.eachCell(cx, cy, rc+1, func(px, py int, d float64) {
			if math.Abs(d-rc) >= 0.5 {
				return
			}
			bg := r.bgAt(px, py)
			r.set(px, py, '·', r.style(bg.BlendLab(RgbRing, opacity), bg))
		})
	}
}

// eachCell visits cells within reach of (cx, cy), passing the aspect-corrected distance in rows
func (r *TerminalRenderer) eachCell(cx, cy, reach float64, fn func(x, y int, d float64)) {
	cols := reach * parameter.CellAspect
	for y := int(math.Floor(cy - reach)); y <= int(math.Ceil(cy+reach)); y++ {
		for x := int(math.Floor(cx - cols)); x <= int(math.Ceil(cx+cols)); x++ {
			if x < 0 || y < 0 || x >= r.width || y >= r.height {
				continue
			}
			d := math.Hypot((float64(x)-cx)/parameter.CellAspect, float64(y)-cy)
			fn(x, y, d)
		}
	}
}

func (r *TerminalRenderer) drawStatus(status string) {
	y := r.height - 1
	st := r.style(RgbStatusText, RgbBackground)
	x := 0
	for _, ch := range status {
		if x >= r.width {
			break
		}
		r.set(x, y, ch, st)
		x++
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
