package world

// Sprite is a billboard placed in the world. Texture selects a frame of the
// sprite atlas.
type Sprite struct {
	X, Y    float64
	Texture int
}
