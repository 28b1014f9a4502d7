package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// objVertex is one v/vt/vn reference from a face, 0-based, -1 when absent.
type objVertex struct {
	pos, tex, norm int
}

// ParseOBJ reads a Wavefront OBJ stream. Polygons are fan-triangulated and
// identical v/vt/vn triples share one output vertex. Groups, objects and
// materials are ignored; all faces end up in a single mesh.
func ParseOBJ(r io.Reader) (*Data, error) {
	var (
		positions [][3]float32
		texcoords [][2]float32
		normals   [][3]float32
	)

	out := &Data{}
	seen := make(map[objVertex]uint32)

	emit := func(v objVertex) uint32 {
		if idx, ok := seen[v]; ok {
			return idx
		}
		idx := uint32(len(seen))
		seen[v] = idx

		p := positions[v.pos]
		out.Positions = append(out.Positions, p[0], p[1], p[2])

		if v.tex >= 0 {
			t := texcoords[v.tex]
			out.TexCoords = append(out.TexCoords, t[0], t[1])
		} else {
			out.TexCoords = append(out.TexCoords, 0, 0)
		}

		if v.norm >= 0 {
			n := normals[v.norm]
			out.Normals = append(out.Normals, n[0], n[1], n[2])
		} else {
			out.Normals = append(out.Normals, 0, 1, 0)
		}
		return idx
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, [3]float32{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			texcoords = append(texcoords, [2]float32{v[0], v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, [3]float32{v[0], v[1], v[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with %d vertices", lineNo, len(fields)-1)
			}
			face := make([]objVertex, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				v, err := parseFaceVertex(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, v)
			}
			for i := 1; i+1 < len(face); i++ {
				out.Indices = append(out.Indices, emit(face[0]), emit(face[i]), emit(face[i+1]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out.Indices) == 0 {
		return nil, fmt.Errorf("no faces")
	}

	return out, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", fields[i], err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceVertex handles v, v/vt, v//vn and v/vt/vn with 1-based or
// negative (relative) indices.
func parseFaceVertex(ref string, nPos, nTex, nNorm int) (objVertex, error) {
	parts := strings.Split(ref, "/")
	v := objVertex{pos: -1, tex: -1, norm: -1}

	var err error
	if v.pos, err = resolveIndex(parts[0], nPos); err != nil {
		return v, fmt.Errorf("position in %q: %w", ref, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if v.tex, err = resolveIndex(parts[1], nTex); err != nil {
			return v, fmt.Errorf("texcoord in %q: %w", ref, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if v.norm, err = resolveIndex(parts[2], nNorm); err != nil {
			return v, fmt.Errorf("normal in %q: %w", ref, err)
		}
	}
	return v, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return i, nil
}
