package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/krasin/steel-slicer/math3d"
)

// Load reads an STL file (ASCII or binary, auto-detected) from disk and
// returns a deduplicated (V, F, N) table.
func Load(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: read %q: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadReader reads STL data from r, buffering it fully to detect format.
func LoadReader(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mesh: read stream: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses STL content already in memory.
func LoadBytes(data []byte) (*Mesh, error) {
	var m *Mesh
	var err error
	if isBinarySTL(data) {
		m, err = loadBinary(data)
	} else {
		m, err = loadASCII(data)
	}
	if err != nil {
		return nil, err
	}
	if m.TriangleCount() == 0 {
		return nil, ErrUnsupportedFormat
	}
	return m, nil
}

// isBinarySTL applies the §4.1 detection rule: ASCII files begin with
// "solid", but a binary file may too, so the binary-size formula
// (84 + 50*N) is the tiebreaker. Input starting with "solid" that is
// too short to hold a triangle count is treated as ASCII.
func isBinarySTL(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return true
	}
	if len(data) < 84 {
		return false
	}
	triCount := binary.LittleEndian.Uint32(data[80:84])
	expectedSize := uint64(84) + uint64(triCount)*50
	return uint64(len(data)) == expectedSize
}

// vertexIndexer deduplicates vertices by their 9-decimal-place rounded key.
type vertexIndexer struct {
	m   *Mesh
	idx map[[3]float64]int
}

func newVertexIndexer() *vertexIndexer {
	return &vertexIndexer{m: New(), idx: make(map[[3]float64]int)}
}

func (vi *vertexIndexer) add(p math3d.Vec3) int {
	key := p.Key9()
	if i, ok := vi.idx[key]; ok {
		return i
	}
	i := len(vi.m.V)
	vi.m.V = append(vi.m.V, p)
	vi.idx[key] = i
	return i
}

func loadBinary(data []byte) (*Mesh, error) {
	if len(data) < 84 {
		return nil, fmt.Errorf("%w: binary STL shorter than header (%d bytes)", ErrMalformedFile, len(data))
	}
	triCount := binary.LittleEndian.Uint32(data[80:84])
	expectedSize := uint64(84) + uint64(triCount)*50
	if uint64(len(data)) < expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedFile, expectedSize, len(data))
	}

	vi := newVertexIndexer()
	offset := 84
	for range triCount {
		normal := math3d.V3(
			float64(readFloat32LE(data[offset:])),
			float64(readFloat32LE(data[offset+4:])),
			float64(readFloat32LE(data[offset+8:])),
		)
		offset += 12

		var face Face
		for v := range 3 {
			pos := math3d.V3(
				float64(readFloat32LE(data[offset:])),
				float64(readFloat32LE(data[offset+4:])),
				float64(readFloat32LE(data[offset+8:])),
			)
			offset += 12
			face[v] = vi.add(pos)
		}
		offset += 2 // attribute byte count, ignored

		vi.m.F = append(vi.m.F, face)
		vi.m.N = append(vi.m.N, normal)
	}
	return vi.m, nil
}

func readFloat32LE(data []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data))
}

func loadASCII(data []byte) (*Mesh, error) {
	vi := newVertexIndexer()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0

	var currentNormal math3d.Vec3
	var faceVerts []int
	inFacet, inLoop := false, false

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch strings.ToLower(fields[0]) {
		case "facet":
			if len(fields) >= 5 && strings.EqualFold(fields[1], "normal") {
				nx, err1 := strconv.ParseFloat(fields[2], 64)
				ny, err2 := strconv.ParseFloat(fields[3], 64)
				nz, err3 := strconv.ParseFloat(fields[4], 64)
				if err1 != nil || err2 != nil || err3 != nil {
					return nil, fmt.Errorf("%w: line %d: invalid facet normal", ErrMalformedFile, lineNum)
				}
				currentNormal = math3d.V3(nx, ny, nz)
			}
			inFacet = true
			faceVerts = nil

		case "outer":
			if len(fields) >= 2 && strings.EqualFold(fields[1], "loop") {
				inLoop = true
			}

		case "vertex":
			if !inFacet || !inLoop || len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: malformed vertex", ErrMalformedFile, lineNum)
			}
			x, err1 := strconv.ParseFloat(fields[1], 64)
			y, err2 := strconv.ParseFloat(fields[2], 64)
			z, err3 := strconv.ParseFloat(fields[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("%w: line %d: invalid vertex coordinate", ErrMalformedFile, lineNum)
			}
			faceVerts = append(faceVerts, vi.add(math3d.V3(x, y, z)))

		case "endloop":
			inLoop = false

		case "endfacet":
			if len(faceVerts) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices, want 3", ErrMalformedFile, lineNum, len(faceVerts))
			}
			vi.m.F = append(vi.m.F, Face{faceVerts[0], faceVerts[1], faceVerts[2]})
			vi.m.N = append(vi.m.N, currentNormal)
			inFacet = false
			faceVerts = nil

		default:
			// solid, endsolid, and unrecognized tokens are ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	return vi.m, nil
}

// WriteBinary serializes m as binary STL, recomputing per-triangle
// normals from face winding when m.N is empty.
func WriteBinary(w io.Writer, m *Mesh) error {
	var header [80]byte
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(m.TriangleCount()))
	if _, err := w.Write(countBuf[:]); err != nil {
		return err
	}
	for i, f := range m.F {
		var normal math3d.Vec3
		if len(m.N) > 0 {
			normal = m.N[i]
		} else {
			a, b, c := m.FaceVertices(i)
			normal = b.Sub(a).Cross(c.Sub(a)).Normalize()
		}
		if err := writeVec3(w, normal); err != nil {
			return err
		}
		for _, idx := range f {
			if err := writeVec3(w, m.V[idx]); err != nil {
				return err
			}
		}
		if _, err := w.Write([]byte{0, 0}); err != nil {
			return err
		}
	}
	return nil
}

func writeVec3(w io.Writer, v math3d.Vec3) error {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(float32(v.Z)))
	_, err := w.Write(buf[:])
	return err
}
