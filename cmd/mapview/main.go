// Command mapview shows map files from above: walls by material, the start
// position and sprite placements. It is used to check levels before
// walking them.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"sort"

	"gridcaster/internal/config"
	"gridcaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
	padding      = 16
	lineHeight   = 14
)

const (
	tabInfo = iota
	tabLegend
)

type mapInfo struct {
	Name string
	Data *world.MapData
	Err  error
}

type viewer struct {
	maps        []mapInfo
	mapIndex    int
	materials   *world.Materials
	floorColor  color.RGBA
	legendLines []string
	sidebarTab  int
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	pattern := flag.String("maps", "assets/maps/*.map", "glob of map files to show")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	maps, err := loadMaps(*pattern)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	materials := world.NewMaterials(cfg.Materials, cfg.Graphics.SideShade)
	v := &viewer{
		maps:        maps,
		materials:   materials,
		floorColor:  colorFromRGB(cfg.Graphics.FloorColor, 255),
		legendLines: buildLegendLines(cfg.Materials),
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("gridcaster map viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

// loadMaps loads every file matching pattern after the built-in level.
// Files that fail to parse are kept so the error can be shown.
func loadMaps(pattern string) ([]mapInfo, error) {
	maps := []mapInfo{{Name: "built-in", Data: &world.MapData{Map: world.DefaultMap(), StartX: -1, StartY: -1}}}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return maps, fmt.Errorf("bad map pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)
	for _, p := range paths {
		data, err := world.LoadMap(p)
		maps = append(maps, mapInfo{Name: filepath.Base(p), Data: data, Err: err})
	}
	return maps, nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.sidebarTab = 1 - v.sidebarTab
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mapIndex = (v.mapIndex + 1) % len(v.maps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mapIndex = (v.mapIndex - 1 + len(v.maps)) % len(v.maps)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Name, m.Err), padding, padding)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	v.drawMapPanel(screen, m, padding, padding, mapAreaW, mapAreaH)
	v.drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// fitGrid returns the cell size and top-left corner that centre a
// cols x rows grid inside a w x h panel.
func fitGrid(cols, rows, x, y, w, h int) (cell, originX, originY int) {
	cell = max(2, min(w/cols, h/rows))
	return cell, x + (w-cols*cell)/2, y + (h-rows*cell)/2
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	grid := m.Data.Map
	cell, originX, originY := fitGrid(grid.Width(), grid.Height(), x, y, w, h)
	for ty := 0; ty < grid.Height(); ty++ {
		for tx := 0; tx < grid.Width(); tx++ {
			c := v.floorColor
			if t := grid.TileAt(tx, ty); t != world.Empty {
				c = v.materials.Lookup(t).Color
			}
			drawFilledRect(screen, originX+tx*cell, originY+ty*cell, cell, cell, c)
		}
	}

	if m.Data.HasStart() {
		cx := float32(originX) + float32(m.Data.StartX)*float32(cell)
		cy := float32(originY) + float32(m.Data.StartY)*float32(cell)
		r := float32(cell) * 0.35
		vector.DrawFilledCircle(screen, cx, cy, r, color.RGBA{50, 200, 255, 255}, true)
		vector.StrokeCircle(screen, cx, cy, r, 1, color.RGBA{255, 255, 255, 255}, true)
	}
	for _, s := range m.Data.Sprites {
		cx := float32(originX) + float32(s.X)*float32(cell)
		cy := float32(originY) + float32(s.Y)*float32(cell)
		vector.DrawFilledCircle(screen, cx, cy, float32(cell)*0.3, color.RGBA{230, 80, 80, 255}, true)
		if cell >= 8 {
			ebitenutil.DebugPrintAt(screen, string(rune('a'+s.Texture)), int(cx)-3, int(cy)-8)
		}
	}

	ebitenutil.DebugPrintAt(screen, m.Name, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Tab for legend, Esc to quit", x+12, y+24)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	row := y + 12
	lines := v.legendLines
	if v.sidebarTab == tabInfo {
		lines = infoLines(m.Data)
	}
	for _, line := range lines {
		if row > y+h-lineHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += lineHeight
	}
}

func infoLines(data *world.MapData) []string {
	start := "start: from config"
	if data.HasStart() {
		start = fmt.Sprintf("start: %.1f, %.1f", data.StartX, data.StartY)
	}
	return []string{
		fmt.Sprintf("tiles: %dx%d", data.Map.Width(), data.Map.Height()),
		fmt.Sprintf("sprites: %d", len(data.Sprites)),
		start,
		"",
		"cyan: start  red: sprites",
	}
}

// buildLegendLines lists the configured materials by tile id.
func buildLegendLines(materials map[int]config.MaterialConfig) []string {
	lines := []string{"Materials (tile -> name, atlas strip)", "-------------------------------------"}
	ids := make([]int, 0, len(materials))
	for id := range materials {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		mc := materials[id]
		lines = append(lines, fmt.Sprintf("%d -> %s, strip %d", id, mc.Name, mc.AtlasIndex))
	}
	return append(lines,
		"",
		"Notes",
		"-----",
		"+ = start position",
		". or 0 = empty",
		"a-z = sprite, texture = letter index",
	)
}

func colorFromRGB(rgb [3]int, a uint8) color.RGBA {
	return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), a}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}
