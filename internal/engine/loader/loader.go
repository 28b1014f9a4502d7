// Package loader uploads meshes and textures to the GPU and owns every
// object it creates until Destroy.
//
// All methods must be called on the goroutine holding the GL context.
package loader

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/motorino/internal/engine/handle"
	"github.com/Faultbox/motorino/internal/engine/mesh"
	"github.com/Faultbox/motorino/internal/engine/texture"
	"github.com/Faultbox/motorino/internal/logger"
)

// Vertex attribute locations shared with the shaders.
const (
	AttribPosition = 0
	AttribTexCoord = 1
	AttribNormal   = 2
)

// cubeTargets maps face order (+X, -X, +Y, -Y, +Z, -Z) to GL targets.
var cubeTargets = [6]uint32{
	gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
}

// Loader is an arena of GL vertex arrays, buffers and textures.
type Loader struct {
	vaos     []uint32
	vbos     []uint32
	textures []uint32
	log      *zap.Logger
}

// New returns an empty arena.
func New() *Loader {
	return &Loader{log: logger.Named("loader")}
}

// LoadToVAO uploads an indexed mesh. The returned model draws
// len(d.Indices) indices.
func (l *Loader) LoadToVAO(d *mesh.Data) (handle.RawModel, error) {
	if err := d.Validate(); err != nil {
		return handle.RawModel{}, fmt.Errorf("invalid mesh: %w", err)
	}
	if len(d.Indices) == 0 {
		return handle.RawModel{}, errors.New("invalid mesh: no indices")
	}

	vao := l.createVAO()
	l.bindIndices(d.Indices)
	l.storeAttribute(AttribPosition, 3, d.Positions)
	l.storeAttribute(AttribTexCoord, 2, d.TexCoords)
	l.storeAttribute(AttribNormal, 3, d.Normals)
	gl.BindVertexArray(0)

	return handle.RawModel{VAO: vao, VertexCount: int32(len(d.Indices))}, nil
}

// LoadPositionsToVAO uploads a non-indexed position-only mesh with dims
// floats per vertex.
func (l *Loader) LoadPositionsToVAO(positions []float32, dims int) (handle.RawModel, error) {
	if dims < 1 || dims > 4 || len(positions) == 0 || len(positions)%dims != 0 {
		return handle.RawModel{}, fmt.Errorf("invalid positions: %d floats of dimension %d", len(positions), dims)
	}

	vao := l.createVAO()
	l.storeAttribute(AttribPosition, int32(dims), positions)
	gl.BindVertexArray(0)

	return handle.RawModel{VAO: vao, VertexCount: int32(len(positions) / dims)}, nil
}

// LoadTexture uploads a repeating, mipmapped 2D texture.
func (l *Loader) LoadTexture(img image.Image) (handle.Texture, error) {
	rgba := texture.ToRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if w == 0 || h == 0 {
		return handle.Texture{}, errors.New("empty image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	l.textures = append(l.textures, id)

	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return handle.Texture{ID: id}, nil
}

// LoadCubeMap uploads six faces in +X, -X, +Y, -Y, +Z, -Z order.
func (l *Loader) LoadCubeMap(faces [6]image.Image) (handle.Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	l.textures = append(l.textures, id)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, face := range faces {
		if face == nil {
			return handle.Texture{}, fmt.Errorf("cube map face %d missing", i)
		}
		rgba := texture.ToRGBA(face)
		w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
		gl.TexImage2D(cubeTargets[i], 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return handle.Texture{ID: id}, nil
}

// Stats reports how many GL objects the arena owns.
func (l *Loader) Stats() (vaos, vbos, textures int) {
	return len(l.vaos), len(l.vbos), len(l.textures)
}

// Destroy frees every object created by the arena. The loader is empty
// and reusable afterwards.
func (l *Loader) Destroy() {
	l.log.Debug("freeing GPU resources",
		zap.Int("vaos", len(l.vaos)),
		zap.Int("vbos", len(l.vbos)),
		zap.Int("textures", len(l.textures)))

	if len(l.vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(l.vaos)), &l.vaos[0])
	}
	if len(l.vbos) > 0 {
		gl.DeleteBuffers(int32(len(l.vbos)), &l.vbos[0])
	}
	if len(l.textures) > 0 {
		gl.DeleteTextures(int32(len(l.textures)), &l.textures[0])
	}
	l.vaos, l.vbos, l.textures = nil, nil, nil
}

func (l *Loader) createVAO() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	l.vaos = append(l.vaos, vao)
	return vao
}

func (l *Loader) bindIndices(indices []uint32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	l.vbos = append(l.vbos, vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
}

func (l *Loader) storeAttribute(attrib uint32, size int32, data []float32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	l.vbos = append(l.vbos, vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attrib, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(attrib)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}
