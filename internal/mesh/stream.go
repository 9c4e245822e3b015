package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Apply filters an ASCII mesh vertex stream from r to w, transforming every
// vertex line with t. A vertex line has exactly four whitespace-separated
// fields whose first is "v" (Wavefront OBJ) or "vertex" (ASCII STL); every
// other line passes through unchanged, so faces, normals, comments and
// solid/facet scaffolding survive the filter.
func Apply(t Transformer, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	bw := bufio.NewWriter(w)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) != 4 || (fields[0] != "v" && fields[0] != "vertex") {
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return err
			}
			continue
		}

		var coords [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return fmt.Errorf("line %d: invalid coordinate %q: %w", lineNo, fields[i+1], err)
			}
			coords[i] = v
		}

		out := t.Transform(r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]})
		_, err := fmt.Fprintf(bw, "%s %s %s %s\n",
			fields[0], formatCoord(out.X), formatCoord(out.Y), formatCoord(out.Z))
		if err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading vertex stream: %w", err)
	}
	return bw.Flush()
}

// formatCoord renders a coordinate in the shortest exact representation.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
