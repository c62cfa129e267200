package game

import (
	"fmt"
	"image/color"

	"gridcaster/internal/mathutil"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	hudText   = color.RGBA{255, 255, 255, 255}
	hudShadow = color.RGBA{0, 0, 0, 200}
)

// hudLines describes the current view state.
func (g *Game) hudLines() []string {
	cam := g.engine.Camera()
	m := g.engine.Metrics()
	stages := g.engine.Pipeline().Stages()
	return []string{
		fmt.Sprintf("FPS %.0f  frame %.1fms  columns %.1fms", ebiten.ActualFPS(),
			float64(m.FrameTime.Microseconds())/1000, float64(m.ColumnPassTime.Microseconds())/1000),
		fmt.Sprintf("pos %.2f,%.2f  angle %.0f", cam.X, cam.Y, mathutil.Degrees(cam.Angle)),
		fmt.Sprintf("[T]ex %s  [F]loor %s  s[P]rites %s  [Tab] map  [M]ouse %s",
			onOff(g.engine.Textured()), onOff(stages.FloorCeiling), onOff(stages.Sprites), onOff(g.input.MouseLook())),
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// drawHUD writes lines bottom-aligned in the screen's lower-left corner.
func drawHUD(screen *ebiten.Image, lines []string) {
	face := basicfont.Face7x13
	x := 8
	y := screen.Bounds().Dy() - 8 - len(lines)*face.Metrics().Height.Round()
	for _, line := range lines {
		baseline := y + face.Ascent
		ebitext.Draw(screen, line, face, x+1, baseline+1, hudShadow)
		ebitext.Draw(screen, line, face, x, baseline, hudText)
		y += face.Metrics().Height.Round()
	}
}
