package mesh

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Line is an infinite line given by an origin point and a heading point.
type Line struct {
	Origin  r3.Vec
	Heading r3.Vec
}

// direction returns the (unnormalized) direction vector of the line.
func (l Line) direction() r3.Vec {
	return r3.Sub(l.Heading, l.Origin)
}

// ErrTooFewLines is returned when a warp is built from fewer than two lines.
var ErrTooFewLines = errors.New("a minimum of two lines is required")

// Warp is a non-linear transformation guided by a set of lines. The first
// line is the reference: for every other line the rotation aligning its
// direction with the reference direction is precomputed, and each vertex is
// transformed by a blend of those rotations weighted by the vertex's
// perpendicular distance to the corresponding line.
type Warp struct {
	lines     []Line
	rotations []mat3
}

// NewWarp builds a warp from at least two guide lines.
func NewWarp(lines []Line) (*Warp, error) {
	if len(lines) < 2 {
		return nil, ErrTooFewLines
	}
	ref := r3.Unit(lines[0].direction())
	rotations := make([]mat3, len(lines))
	for i, l := range lines {
		rotations[i] = rotationBetween(r3.Unit(l.direction()), ref)
	}
	return &Warp{lines: lines, rotations: rotations}, nil
}

func (w *Warp) Transform(p r3.Vec) r3.Vec {
	var blended mat3
	var sum float64
	for i, l := range w.lines {
		// TODO: weights grow with distance, so far lines dominate the
		// blend; invert them so near lines do.
		weight := perpendicularDistance(p, l)
		blended = blended.addScaled(w.rotations[i], weight)
		sum += weight
	}
	return blended.scale(1 / sum).mulVec(p)
}

// perpendicularDistance is the distance from point p to the line.
func perpendicularDistance(p r3.Vec, l Line) float64 {
	ab := l.direction()
	ap := r3.Sub(p, l.Origin)
	proj := r3.Scale(r3.Dot(ap, ab)/r3.Norm2(ab), ab)
	return r3.Norm(r3.Sub(ap, proj))
}

// rotationBetween returns the rotation matrix taking unit vector from onto
// unit vector to.
func rotationBetween(from, to r3.Vec) mat3 {
	axis := r3.Cross(from, to)
	sin := r3.Norm(axis)
	cos := r3.Dot(from, to)

	const eps = 1e-12
	if sin < eps {
		if cos > 0 {
			return identity()
		}
		// Antiparallel: rotate half a turn about any axis perpendicular
		// to from.
		return rodrigues(anyPerpendicular(from), math.Pi)
	}
	return rodrigues(r3.Scale(1/sin, axis), math.Atan2(sin, cos))
}

// anyPerpendicular picks a unit vector perpendicular to v.
func anyPerpendicular(v r3.Vec) r3.Vec {
	ref := r3.Vec{X: 1}
	if math.Abs(v.X) > math.Abs(v.Y) {
		ref = r3.Vec{Y: 1}
	}
	return r3.Unit(r3.Cross(v, ref))
}

// mat3 is a 3x3 matrix in row-major order. Warp blends rotation matrices by
// weighted elementwise average, which r3.Rotation (a quaternion) cannot
// express, so the blend kernel is kept as a fixed-size local type.
type mat3 [3][3]float64

func identity() mat3 {
	return mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// rodrigues builds the rotation matrix for unit axis u and the given angle:
// R = cos*I + sin*[u]x + (1-cos)*u*uT.
func rodrigues(u r3.Vec, angle float64) mat3 {
	sin, cos := math.Sincos(angle)
	k := 1 - cos
	return mat3{
		{cos + k*u.X*u.X, k*u.X*u.Y - sin*u.Z, k*u.X*u.Z + sin*u.Y},
		{k*u.Y*u.X + sin*u.Z, cos + k*u.Y*u.Y, k*u.Y*u.Z - sin*u.X},
		{k*u.Z*u.X - sin*u.Y, k*u.Z*u.Y + sin*u.X, cos + k*u.Z*u.Z},
	}
}

func (m mat3) addScaled(o mat3, f float64) mat3 {
	for i := range m {
		for j := range m[i] {
			m[i][j] += f * o[i][j]
		}
	}
	return m
}

func (m mat3) scale(f float64) mat3 {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= f
		}
	}
	return m
}

func (m mat3) mulVec(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z,
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z,
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z,
	}
}
