// Package mesh decodes pre-baked model files into flat vertex arrays ready
// for upload to a vertex array object.
package mesh

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Data is an indexed triangle mesh with per-vertex attributes.
// Positions and Normals hold 3 floats per vertex, TexCoords holds 2.
type Data struct {
	Indices   []uint32
	Positions []float32
	TexCoords []float32
	Normals   []float32
}

// VertexCount returns the number of unique vertices.
func (d *Data) VertexCount() int {
	return len(d.Positions) / 3
}

// Validate checks that attribute arrays agree with each other and that
// every index references an existing vertex.
func (d *Data) Validate() error {
	if len(d.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(d.Positions))
	}
	n := d.VertexCount()
	if len(d.TexCoords) != n*2 {
		return fmt.Errorf("texcoords length %d, want %d", len(d.TexCoords), n*2)
	}
	if len(d.Normals) != n*3 {
		return fmt.Errorf("normals length %d, want %d", len(d.Normals), n*3)
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(d.Indices))
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d references vertex %d of %d", i, idx, n)
		}
	}
	return nil
}

// Opener resolves a resource path to a reader and to a filesystem path.
// glTF files with external buffers need the real path.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
	RealPath(path string) (string, error)
}

// Load decodes the mesh at path, picking the decoder by extension.
func Load(src Opener, path string) (*Data, error) {
	var (
		data *Data
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		var r io.ReadCloser
		r, err = src.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer r.Close()
		data, err = ParseOBJ(r)
	case ".gltf", ".glb":
		var real string
		real, err = src.RealPath(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		data, err = LoadGLTF(real)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return data, nil
}
