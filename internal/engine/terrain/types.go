// Package terrain builds terrain tiles from heightmap images and answers
// height queries against them.
package terrain

const (
	// VertexCount is the number of vertices along one side of a tile.
	VertexCount = 256
	// Size is the world-space edge length of a tile.
	Size = 800
	// MaxHeight is the height of a fully white heightmap pixel.
	MaxHeight = 40

	maxPixelColour = 255 * 255 * 255
)

// Heights is the fixed height grid of one tile, indexed [x][z].
type Heights [VertexCount][VertexCount]float32

// HeightField is the immutable physics view of a generated tile.
type HeightField struct {
	Heights Heights
	// X and Z are the world-space origin of the tile.
	X, Z float32
}

// Tile pairs a grid position with its height field for multi-tile lookups.
type Tile struct {
	GridX, GridZ int
	Field        *HeightField
}

// Origin returns the world-space corner of the tile.
func (t Tile) Origin() (x, z float32) {
	return float32(t.GridX * Size), float32(t.GridZ * Size)
}

// Contains reports whether (x, z) lies in [origin, origin+Size) on both axes.
func (t Tile) Contains(x, z float32) bool {
	ox, oz := t.Origin()
	return x >= ox && x < ox+Size && z >= oz && z < oz+Size
}
