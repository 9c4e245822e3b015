package mesh

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ParseVec parses a vector given as three comma-separated coordinates,
// e.g. "1,-2.5,3".
func ParseVec(s string) (r3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("vector %q must have exactly three coordinates", s)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		coords[i] = v
	}
	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// ParseGuideLine parses a line given as two whitespace-separated vectors,
// e.g. "0,0,0 1,0,0" (origin then heading).
func ParseGuideLine(s string) (Line, error) {
	vectors := strings.Fields(s)
	if len(vectors) != 2 {
		return Line{}, fmt.Errorf("line %q must be defined by exactly two vectors", s)
	}
	origin, err := ParseVec(vectors[0])
	if err != nil {
		return Line{}, err
	}
	heading, err := ParseVec(vectors[1])
	if err != nil {
		return Line{}, err
	}
	return Line{Origin: origin, Heading: heading}, nil
}
