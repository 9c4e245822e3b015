// Package mesh implements geometric vertex transformations and readers for
// triangle-mesh files. Vertices are gonum spatial/r3 vectors throughout.
package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transformer maps one vertex position to another.
type Transformer interface {
	Transform(p r3.Vec) r3.Vec
}

// Translate shifts every vertex by a fixed offset.
type Translate struct {
	Offset r3.Vec
}

func (t Translate) Transform(p r3.Vec) r3.Vec {
	return r3.Add(p, t.Offset)
}

// Scale multiplies every vertex componentwise.
type Scale struct {
	Factors r3.Vec
}

func (t Scale) Transform(p r3.Vec) r3.Vec {
	return r3.Vec{X: p.X * t.Factors.X, Y: p.Y * t.Factors.Y, Z: p.Z * t.Factors.Z}
}

// Rotate rotates every vertex about an axis through the origin by Angle
// radians, using the Rodrigues formula. The axis need not be normalized.
type Rotate struct {
	Axis  r3.Vec
	Angle float64
}

func (t Rotate) Transform(p r3.Vec) r3.Vec {
	u := r3.Unit(t.Axis)
	sin, cos := math.Sincos(t.Angle)

	term1 := r3.Scale(cos, p)
	term2 := r3.Scale(sin, r3.Cross(u, p))
	term3 := r3.Scale(r3.Dot(u, p)*(1-cos), u)

	return r3.Add(term1, r3.Add(term2, term3))
}
