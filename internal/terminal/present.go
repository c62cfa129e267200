package terminal

import (
	"image"
	"image/color"

	"gridcaster/internal/graphics"
	"gridcaster/internal/render"

	"github.com/gdamore/tcell/v2"
)

// halfBlock draws the upper pixel of a cell in the foreground colour and the
// lower one in the background, doubling vertical resolution.
const halfBlock = '▀'

// Presenter blits frames onto a tcell screen.
type Presenter struct {
	screen tcell.Screen
	scaled *image.RGBA
}

func NewPresenter(screen tcell.Screen) *Presenter {
	return &Presenter{screen: screen}
}

// Present scales f to the screen, two pixel rows per cell, and shows it.
func (p *Presenter) Present(f *render.Frame) {
	w, h := p.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	p.scaled = graphics.ScaleNearest(p.scaled, f.Image(), w, 2*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := p.scaled.RGBAAt(x, 2*y)
			bottom := p.scaled.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			p.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

// DrawText writes s on row y starting at x, white on black.
func (p *Presenter) DrawText(x, y int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range []rune(s) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
