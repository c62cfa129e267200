package world

// defaultLayout is the built-in 16x16 level used when no map file is configured.
var defaultLayout = []string{
	"1212112121212121",
	"1000000000000001",
	"1000000000000001",
	"1000444440000001",
	"1000400040000001",
	"1000400040000001",
	"1000404440000001",
	"1000400000000001",
	"1000000000000001",
	"1000003000000101",
	"1000003000000001",
	"1000003300000001",
	"1033300300000001",
	"1030333300000001",
	"1030000000000001",
	"1212112121212121",
}

// DefaultMap returns the built-in level.
func DefaultMap() *Map {
	rows := make([][]Tile, len(defaultLayout))
	for y, line := range defaultLayout {
		rows[y] = make([]Tile, len(line))
		for x, c := range line {
			rows[y][x] = Tile(c - '0')
		}
	}
	m, err := NewMap(rows)
	if err != nil {
		panic("built-in map is invalid: " + err.Error())
	}
	return m
}
