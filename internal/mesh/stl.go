package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// STL formats.
const (
	FormatBinary = "binary"
	FormatASCII  = "ascii"
)

// Info summarizes an STL file.
type Info struct {
	Format      string     `json:"format"`
	Triangles   int        `json:"triangles"`
	Min         [3]float64 `json:"min"`
	Max         [3]float64 `json:"max"`
	SurfaceArea float64    `json:"surface_area"`
}

// binary STL: 80-byte header, uint32 triangle count, then 50-byte records
// (normal, three vertices as float32 triples, 2 attribute bytes).
const binaryTriangleSize = 12*4 + 2

// ReadInfo reads an STL file in either binary or ASCII format and returns
// its summary. ASCII files are detected by the "solid" magic together with a
// "facet" keyword, since binary files may also start their header with
// "solid".
func ReadInfo(r io.Reader) (*Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading STL: %w", err)
	}
	if looksASCII(data) {
		return readASCII(bytes.NewReader(data))
	}
	return readBinary(bytes.NewReader(data))
}

func looksASCII(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("solid")) &&
		bytes.Contains(head, []byte("facet"))
}

func readBinary(r io.Reader) (*Info, error) {
	var header struct {
		H    [80]byte
		NTri uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("invalid binary STL header: %w", err)
	}

	info := newInfo(FormatBinary)
	buf := make([]byte, binaryTriangleSize)
	for i := 0; i < int(header.NTri); i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("truncated binary STL at triangle %d: %w", i, err)
		}
		var tri [3]r3.Vec
		for v := 0; v < 3; v++ {
			const start = 3 * 4 // skip the normal
			tri[v] = r3.Vec{
				X: float32At(buf, start+12*v),
				Y: float32At(buf, start+12*v+4),
				Z: float32At(buf, start+12*v+8),
			}
		}
		info.addTriangle(tri[0], tri[1], tri[2])
	}
	return info.finish(), nil
}

func float32At(buf []byte, off int) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])))
}

func readASCII(r io.Reader) (*Info, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	info := newInfo(FormatASCII)
	var tri [3]r3.Vec
	n := 0
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 4 || fields[0] != "vertex" {
			continue
		}
		var coords [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid ASCII STL vertex %q: %w", sc.Text(), err)
			}
			coords[i] = v
		}
		tri[n] = r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}
		n++
		if n == 3 {
			info.addTriangle(tri[0], tri[1], tri[2])
			n = 0
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII STL: %w", err)
	}
	if n != 0 {
		return nil, fmt.Errorf("ASCII STL ends mid-facet with %d dangling vertices", n)
	}
	return info.finish(), nil
}

func newInfo(format string) *Info {
	return &Info{
		Format: format,
		Min:    [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max:    [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

func (in *Info) addTriangle(a, b, c r3.Vec) {
	in.Triangles++
	in.SurfaceArea += 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
	for _, v := range []r3.Vec{a, b, c} {
		in.Min[0] = math.Min(in.Min[0], v.X)
		in.Min[1] = math.Min(in.Min[1], v.Y)
		in.Min[2] = math.Min(in.Min[2], v.Z)
		in.Max[0] = math.Max(in.Max[0], v.X)
		in.Max[1] = math.Max(in.Max[1], v.Y)
		in.Max[2] = math.Max(in.Max[2], v.Z)
	}
}

// finish normalizes the bounding box of an empty model to zeros.
func (in *Info) finish() *Info {
	if in.Triangles == 0 {
		in.Min = [3]float64{}
		in.Max = [3]float64{}
	}
	return in
}
