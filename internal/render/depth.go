package render

// DepthBuffer holds the perpendicular wall distance of every column for the
// current frame.
type DepthBuffer []float64

// NewDepthBuffer allocates one slot per column.
func NewDepthBuffer(columns int) DepthBuffer {
	return make(DepthBuffer, columns)
}

// Reset sets every slot to d.
func (db DepthBuffer) Reset(d float64) {
	for i := range db {
		db[i] = d
	}
}

// Visible reports whether something at distance d in column col is in front
// of the wall there. Equal distances lose to the wall.
func (db DepthBuffer) Visible(col int, d float64) bool {
	if col < 0 || col >= len(db) {
		return false
	}
	return d < db[col]
}
