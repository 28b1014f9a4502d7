package terrain

import (
	"image"

	"github.com/Faultbox/motorino/internal/engine/mesh"
)

// Generate builds the render mesh and the height field for the tile at
// grid position (gridX, gridZ) from a heightmap image.
//
// Rows of the grid run along z and columns along x. The heightmap is read
// with the row index as the pixel x coordinate.
func Generate(heightmap image.Image, gridX, gridZ int) (*mesh.Data, *HeightField) {
	const (
		count = VertexCount * VertexCount
		last  = float32(VertexCount - 1)
	)

	data := &mesh.Data{
		Positions: make([]float32, 0, count*3),
		Normals:   make([]float32, 0, count*3),
		TexCoords: make([]float32, 0, count*2),
		Indices:   make([]uint32, 0, 6*(VertexCount-1)*(VertexCount-1)),
	}
	field := &HeightField{
		X: float32(gridX * Size),
		Z: float32(gridZ * Size),
	}

	for i := range VertexCount {
		for j := range VertexCount {
			h := sampleHeight(heightmap, i, j)
			field.Heights[j][i] = h

			data.Positions = append(data.Positions,
				float32(j)/last*Size,
				h,
				float32(i)/last*Size,
			)

			n := sampleNormal(heightmap, i, j)
			data.Normals = append(data.Normals, n.X, n.Y, n.Z)

			data.TexCoords = append(data.TexCoords, float32(j)/last, float32(i)/last)
		}
	}

	data.Indices = appendGridIndices(data.Indices)

	return data, field
}

// appendGridIndices emits two triangles per grid cell:
// (top-left, bottom-left, top-right) and (top-right, bottom-left, bottom-right).
// The split runs along the same diagonal HeightAt uses.
func appendGridIndices(indices []uint32) []uint32 {
	for gz := range VertexCount - 1 {
		for gx := range VertexCount - 1 {
			topLeft := uint32(gz*VertexCount + gx)
			topRight := topLeft + 1
			bottomLeft := uint32((gz+1)*VertexCount + gx)
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}
	return indices
}
