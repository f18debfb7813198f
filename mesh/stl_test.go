package mesh

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/krasin/steel-slicer/math3d"
)

func cubeASCII(size float64) string {
	var b strings.Builder
	b.WriteString("solid cube\n")
	// 6 faces, 2 triangles each, CCW when viewed from outside.
	s := size
	faces := [][6][3]float64{
		{{0, 0, 0}, {0, s, 0}, {s, s, 0}, {0, 0, 0}, {s, s, 0}, {s, 0, 0}}, // bottom z=0
		{{0, 0, s}, {s, 0, s}, {s, s, s}, {0, 0, s}, {s, s, s}, {0, s, s}}, // top z=s
		{{0, 0, 0}, {s, 0, 0}, {s, 0, s}, {0, 0, 0}, {s, 0, s}, {0, 0, s}}, // y=0
		{{0, s, 0}, {0, s, s}, {s, s, s}, {0, s, 0}, {s, s, s}, {s, s, 0}}, // y=s
		{{0, 0, 0}, {0, 0, s}, {0, s, s}, {0, 0, 0}, {0, s, s}, {0, s, 0}}, // x=0
		{{s, 0, 0}, {s, s, 0}, {s, s, s}, {s, 0, 0}, {s, s, s}, {s, 0, s}}, // x=s
	}
	for _, f := range faces {
		for t := 0; t < 2; t++ {
			v0, v1, v2 := f[t*3], f[t*3+1], f[t*3+2]
			b.WriteString("facet normal 0 0 0\nouter loop\n")
			for _, v := range [][3]float64{v0, v1, v2} {
				b.WriteString("vertex ")
				b.WriteString(fmtF(v[0]))
				b.WriteByte(' ')
				b.WriteString(fmtF(v[1]))
				b.WriteByte(' ')
				b.WriteString(fmtF(v[2]))
				b.WriteByte('\n')
			}
			b.WriteString("endloop\nendfacet\n")
		}
	}
	b.WriteString("endsolid cube\n")
	return b.String()
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestIsBinarySTL(t *testing.T) {
	ascii := []byte("solid test\nendsolid test\n")
	if isBinarySTL(ascii) {
		t.Errorf("isBinarySTL(ascii) = true, want false")
	}

	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	buf.Write([]byte{0, 0, 0, 0}) // 0 triangles
	if !isBinarySTL(buf.Bytes()) {
		t.Errorf("isBinarySTL(empty binary) = false, want true")
	}
}

func TestLoadASCIICube(t *testing.T) {
	src := cubeASCII(20)
	m, err := LoadBytes([]byte(src))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", m.TriangleCount())
	}
	if m.VertexCount() != 8 {
		t.Errorf("VertexCount() = %d, want 8 (deduplicated)", m.VertexCount())
	}
	min, max := m.Bounds()
	want := math3d.V3(20, 20, 20)
	if min != math3d.Zero3() || max != want {
		t.Errorf("Bounds() = %v,%v want %v,%v", min, max, math3d.Zero3(), want)
	}
}

func TestLoadEmptyMesh(t *testing.T) {
	_, err := LoadBytes([]byte("solid empty\nendsolid empty\n"))
	if err == nil {
		t.Fatal("LoadBytes(empty) succeeded, want ErrUnsupportedFormat")
	}
}

func TestLoadBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	buf.Write([]byte{5, 0, 0, 0}) // claims 5 triangles
	buf.Write(make([]byte, 50))   // only 1 triangle's worth of data
	_, err := LoadBytes(buf.Bytes())
	if err == nil {
		t.Fatal("LoadBytes(truncated) succeeded, want ErrMalformedFile")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	m, err := LoadBytes([]byte(cubeASCII(10)))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteBinary(&buf, m); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	m2, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes(round-trip): %v", err)
	}
	if m2.TriangleCount() != m.TriangleCount() {
		t.Errorf("round-trip TriangleCount = %d, want %d", m2.TriangleCount(), m.TriangleCount())
	}
	if m2.VertexCount() != m.VertexCount() {
		t.Errorf("round-trip VertexCount = %d, want %d", m2.VertexCount(), m.VertexCount())
	}
}
