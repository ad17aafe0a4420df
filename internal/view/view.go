// Package view draws simulation frames onto a tcell screen.
package view

import (
	"math"

	nbody "github.com/Kolaer/ecs-nbody"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows reserved at the bottom for the status line.
const hudRows = 1

// Renderer maps world positions onto the terminal. The square [0, extent)²
// is drawn centred at a quarter of the usable area, leaving room for bodies
// that drift outward.
type Renderer struct {
	screen     tcell.Screen
	extent     float32
	background tcell.Style
	point      tcell.Style
	heavy      tcell.Style
	hud        tcell.Style
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, extent float32) *Renderer {
	if !(extent > 0) {
		extent = 1
	}
	bg := tcell.StyleDefault.Background(tcell.NewRGBColor(5, 5, 5))
	return &Renderer{
		screen:     screen,
		extent:     extent,
		background: bg,
		point:      bg.Foreground(tcell.NewRGBColor(240, 240, 240)),
		heavy:      bg.Foreground(tcell.ColorYellow).Bold(true),
		hud:        tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// WorldToScreen converts a world position to a cell. visible is false when
// the cell falls outside the drawing area.
func (r *Renderer) WorldToScreen(p nbody.Position) (sx, sy int, visible bool) {
	w, h := r.screen.Size()
	viewH := h - hudRows
	if w <= 0 || viewH <= 0 {
		return 0, 0, false
	}
	// Cells are about twice as tall as they are wide.
	span := float64(min(w, 2*viewH)) / 4
	fx := (float64(p.X/r.extent)-0.5)*span + float64(w)/2
	fy := (float64(p.Y/r.extent)-0.5)*span/2 + float64(viewH)/2
	if math.IsNaN(fx) || math.IsNaN(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		return 0, 0, false
	}
	sx = int(math.Round(fx))
	sy = int(math.Round(fy))
	return sx, sy, sx >= 0 && sx < w && sy >= 0 && sy < viewH
}

// Draw renders every entity and the status line, then shows the frame. It
// returns the number of entities that landed on screen.
func (r *Renderer) Draw(w *nbody.World, status string) int {
	r.screen.SetStyle(r.background)
	r.screen.Clear()
	drawn := 0
	query := nbody.NewFilter(w)
	for query.Next() {
		pos, _, mass := query.Get()
		sx, sy, ok := r.WorldToScreen(pos)
		if !ok {
			continue
		}
		if mass.Value > 1 {
			r.screen.SetContent(sx, sy, '●', nil, r.heavy)
		} else {
			r.screen.SetContent(sx, sy, '•', nil, r.point)
		}
		drawn++
	}
	r.drawStatus(status)
	r.screen.Show()
	return drawn
}

// drawStatus writes text on the bottom row, truncated to the screen width.
func (r *Renderer) drawStatus(text string) {
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	text = runewidth.Truncate(text, w, "…")
	x := 0
	for _, ch := range text {
		r.screen.SetContent(x, h-1, ch, nil, r.hud)
		x += runewidth.RuneWidth(ch)
	}
}
