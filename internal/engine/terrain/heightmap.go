package terrain

import (
	"image"
	"iter"
	gomath "math"

	"github.com/Faultbox/motorino/pkg/math"
)

// sampleHeight reads the heightmap pixel at (x, z) and scales r*g*b/255^3
// to [0, MaxHeight]. Pixels outside the image yield 0. Alpha is ignored.
func sampleHeight(img image.Image, x, z int) float32 {
	b := img.Bounds()
	if x < 0 || z < 0 || x >= b.Dx() || z >= b.Dy() {
		return 0
	}

	r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+z).RGBA()
	// RGBA returns 16-bit channels
	r8, g8, b8 := float32(r>>8), float32(g>>8), float32(bl>>8)

	return r8 * g8 * b8 / maxPixelColour * MaxHeight
}

// sampleNormal estimates the surface normal with a central difference over
// the four neighbours. The left and down neighbours clamp to 0 at the edge.
func sampleNormal(img image.Image, x, z int) math.Vec3 {
	left := max(x-1, 0)
	down := max(z-1, 0)

	hL := sampleHeight(img, left, z)
	hR := sampleHeight(img, x+1, z)
	hD := sampleHeight(img, x, down)
	hU := sampleHeight(img, x, z+1)

	return math.Vec3{X: hL - hR, Y: 2, Z: hD - hU}.Normalize()
}

// HeightAt returns the interpolated terrain height at world (x, z).
//
// Points outside the grid return 0. There is no clamping to the nearest cell.
func (f *HeightField) HeightAt(worldX, worldZ float32) float32 {
	return f.heightLocal(worldX-f.X, worldZ-f.Z)
}

// heightLocal does the cell lookup in tile-local coordinates.
func (f *HeightField) heightLocal(terrainX, terrainZ float32) float32 {
	const cellSize = float32(Size) / (VertexCount - 1)
	tx := terrainX / cellSize
	tz := terrainZ / cellSize
	fx := float32(gomath.Floor(float64(tx)))
	fz := float32(gomath.Floor(float64(tz)))
	gridX, gridZ := int(fx), int(fz)

	if gridX < 0 || gridZ < 0 || gridX >= VertexCount-1 || gridZ >= VertexCount-1 {
		return 0
	}

	// Index and fraction come from the same quotient so they never disagree
	// at a grid line.
	fracX := tx - fx
	fracZ := tz - fz
	pos := math.Vec2{X: fracX, Y: fracZ}

	h := &f.Heights
	if fracX <= 1-fracZ {
		return BarycentricHeight(
			math.Vec3{X: 0, Y: h[gridX][gridZ], Z: 0},
			math.Vec3{X: 1, Y: h[gridX+1][gridZ], Z: 0},
			math.Vec3{X: 0, Y: h[gridX][gridZ+1], Z: 1},
			pos,
		)
	}
	return BarycentricHeight(
		math.Vec3{X: 1, Y: h[gridX+1][gridZ], Z: 0},
		math.Vec3{X: 1, Y: h[gridX+1][gridZ+1], Z: 1},
		math.Vec3{X: 0, Y: h[gridX][gridZ+1], Z: 1},
		pos,
	)
}

// BarycentricHeight interpolates the Y of triangle (p1, p2, p3) at the
// (x, z) position pos, where pos.Y carries z.
func BarycentricHeight(p1, p2, p3 math.Vec3, pos math.Vec2) float32 {
	det := (p2.Z-p3.Z)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Z-p3.Z)
	l1 := ((p2.Z-p3.Z)*(pos.X-p3.X) + (p3.X-p2.X)*(pos.Y-p3.Z)) / det
	l2 := ((p3.Z-p1.Z)*(pos.X-p3.X) + (p1.X-p3.X)*(pos.Y-p3.Z)) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y + l2*p2.Y + l3*p3.Y
}

// HeightForPosition returns the height from the first tile whose bounds
// contain (x, z), or 0 when no tile does. Tiles must not overlap.
func HeightForPosition(tiles iter.Seq[Tile], x, z float32) float32 {
	for tile := range tiles {
		if tile.Field == nil || !tile.Contains(x, z) {
			continue
		}
		ox, oz := tile.Origin()
		return tile.Field.heightLocal(x-ox, z-oz)
	}
	return 0
}

// TilesOf adapts a fixed list of tiles for HeightForPosition.
func TilesOf(tiles ...Tile) iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for _, t := range tiles {
			if !yield(t) {
				return
			}
		}
	}
}
