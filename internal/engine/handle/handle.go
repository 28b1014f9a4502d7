// Package handle defines the GPU handle values shared by the loader, the
// world's components and the render passes. Handles are plain values; the
// loader that created them owns the underlying GL objects.
package handle

// RawModel is a vertex array and the number of vertices (or indices) to draw.
type RawModel struct {
	VAO         uint32
	VertexCount int32
}

// Triangles returns the triangle count of one draw of the model.
func (m RawModel) Triangles() int {
	return int(m.VertexCount) / 3
}

// Texture is a GL texture name.
type Texture struct {
	ID uint32
}

// ModelTexture is a diffuse texture with specular material parameters.
type ModelTexture struct {
	Texture
	Reflectivity float32
	ShineDamper  float32
}

// TerrainTexturePack holds the five layers a terrain tile samples: the
// background, one texture per blend map channel, and the blend map itself.
type TerrainTexturePack struct {
	Background Texture
	R          Texture
	G          Texture
	B          Texture
	BlendMap   Texture
}

// Units returns the layers in texture unit order.
func (p TerrainTexturePack) Units() [5]Texture {
	return [5]Texture{p.Background, p.R, p.G, p.B, p.BlendMap}
}

// SkyboxTexture holds the day and night cube maps.
type SkyboxTexture struct {
	Day   Texture
	Night Texture
}
