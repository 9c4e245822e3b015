package mesh

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// approx compares vectors with a small absolute tolerance.
var approx = cmpopts.EquateApprox(0, 1e-9)

func TestTranslate(t *testing.T) {
	t.Parallel()
	tr := Translate{Offset: r3.Vec{X: 1, Y: -2, Z: 0.5}}
	got := tr.Transform(r3.Vec{X: 1, Y: 1, Z: 1})
	assert.Empty(t, cmp.Diff(r3.Vec{X: 2, Y: -1, Z: 1.5}, got, approx))
}

func TestScale(t *testing.T) {
	t.Parallel()
	sc := Scale{Factors: r3.Vec{X: 2, Y: 0, Z: -1}}
	got := sc.Transform(r3.Vec{X: 3, Y: 5, Z: 7})
	assert.Empty(t, cmp.Diff(r3.Vec{X: 6, Y: 0, Z: -7}, got, approx))
}

func TestRotate(t *testing.T) {
	t.Parallel()

	t.Run("quarter turn about z maps x onto y", func(t *testing.T) {
		t.Parallel()
		rot := Rotate{Axis: r3.Vec{Z: 1}, Angle: math.Pi / 2}
		got := rot.Transform(r3.Vec{X: 1})
		assert.Empty(t, cmp.Diff(r3.Vec{Y: 1}, got, approx))
	})

	t.Run("axis is normalized before use", func(t *testing.T) {
		t.Parallel()
		short := Rotate{Axis: r3.Vec{Z: 1}, Angle: math.Pi / 3}
		long := Rotate{Axis: r3.Vec{Z: 42}, Angle: math.Pi / 3}
		p := r3.Vec{X: 2, Y: -1, Z: 3}
		assert.Empty(t, cmp.Diff(short.Transform(p), long.Transform(p), approx))
	})

	t.Run("points on the axis are fixed", func(t *testing.T) {
		t.Parallel()
		rot := Rotate{Axis: r3.Vec{X: 1, Y: 1, Z: 1}, Angle: 1.234}
		p := r3.Vec{X: 2, Y: 2, Z: 2}
		assert.Empty(t, cmp.Diff(p, rot.Transform(p), approx))
	})

	t.Run("rotation preserves length", func(t *testing.T) {
		t.Parallel()
		rot := Rotate{Axis: r3.Vec{X: 0.3, Y: -0.7, Z: 1.1}, Angle: 2.5}
		p := r3.Vec{X: 1, Y: 2, Z: 3}
		assert.InDelta(t, r3.Norm(p), r3.Norm(rot.Transform(p)), 1e-9)
	})
}

func TestParseVec(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		v, err := ParseVec("1,-2.5,3e2")
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(r3.Vec{X: 1, Y: -2.5, Z: 300}, v, approx))
	})

	t.Run("wrong arity", func(t *testing.T) {
		t.Parallel()
		_, err := ParseVec("1,2")
		assert.ErrorContains(t, err, "exactly three coordinates")
		_, err = ParseVec("1,2,3,4")
		assert.Error(t, err)
	})

	t.Run("not a number", func(t *testing.T) {
		t.Parallel()
		_, err := ParseVec("1,two,3")
		assert.Error(t, err)
	})
}

func TestParseGuideLine(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		l, err := ParseGuideLine("0,0,0 1,0,0")
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(Line{Heading: r3.Vec{X: 1}}, l, approx))
	})

	t.Run("needs exactly two vectors", func(t *testing.T) {
		t.Parallel()
		_, err := ParseGuideLine("0,0,0")
		assert.ErrorContains(t, err, "exactly two vectors")
		_, err = ParseGuideLine("0,0,0 1,0,0 2,0,0")
		assert.Error(t, err)
	})

	t.Run("bad vector inside line", func(t *testing.T) {
		t.Parallel()
		_, err := ParseGuideLine("0,0 1,0,0")
		assert.Error(t, err)
	})
}
