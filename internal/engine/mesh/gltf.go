package mesh

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
)

// LoadGLTF decodes every triangle primitive of a .gltf or .glb file into a
// single mesh. Node transforms are not applied.
func LoadGLTF(path string) (*Data, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return decodeDocument(doc)
}

func decodeDocument(doc *gltf.Document) (*Data, error) {
	out := &Data{}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			if err := appendPrimitive(doc, prim, out); err != nil {
				return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
			}
		}
	}

	if len(out.Indices) == 0 {
		return nil, fmt.Errorf("no triangle primitives")
	}
	return out, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, out *Data) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := readFloats(doc, posIdx, gltf.AccessorVec3)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}
	count := len(positions) / 3

	normals := make([]float32, 0, count*3)
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readFloats(doc, idx, gltf.AccessorVec3); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	} else {
		for range count {
			normals = append(normals, 0, 1, 0)
		}
	}

	uvs := make([]float32, count*2)
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readFloats(doc, idx, gltf.AccessorVec2); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	if len(normals) != count*3 || len(uvs) != count*2 {
		return fmt.Errorf("attribute counts disagree with %d positions", count)
	}

	base := uint32(out.VertexCount())
	out.Positions = append(out.Positions, positions...)
	out.Normals = append(out.Normals, normals...)
	out.TexCoords = append(out.TexCoords, uvs...)

	if prim.Indices == nil {
		for i := range count {
			out.Indices = append(out.Indices, base+uint32(i))
		}
		return nil
	}

	indices, err := readIndices(doc, *prim.Indices)
	if err != nil {
		return fmt.Errorf("read indices: %w", err)
	}
	for _, idx := range indices {
		out.Indices = append(out.Indices, base+idx)
	}
	return nil
}

// accessorBytes returns the backing bytes, start offset and element stride.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if acc.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	if acc.Count > 0 {
		end := start + (acc.Count-1)*stride + elemSize
		if end > len(buf.Data) {
			return nil, 0, 0, fmt.Errorf("accessor overruns buffer (%d > %d)", end, len(buf.Data))
		}
	}
	return buf.Data, start, stride, nil
}

func readFloats(doc *gltf.Document, idx int, want gltf.AccessorType) ([]float32, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != want {
		return nil, fmt.Errorf("expected %v, got %v", want, acc.Type)
	}
	if acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", acc.ComponentType)
	}

	n := 3
	if want == gltf.AccessorVec2 {
		n = 2
	}
	data, start, stride, err := accessorBytes(doc, acc, n*4)
	if err != nil {
		return nil, err
	}

	out := make([]float32, 0, acc.Count*n)
	for i := range acc.Count {
		off := start + i*stride
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[off+j*4:])
			out = append(out, math.Float32frombits(bits))
		}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]uint32, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", acc.Type)
	}

	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index component type %v", acc.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, acc, size)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, acc.Count)
	for i := range acc.Count {
		off := start + i*stride
		switch size {
		case 1:
			out[i] = uint32(data[off])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = binary.LittleEndian.Uint32(data[off:])
		}
	}
	return out, nil
}
