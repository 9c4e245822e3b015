package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cabbache/meshtransform/internal/mesh"
)

func TestTransformTranslate(t *testing.T) {
	stdin := "# cow\nv 1 2 3\nf 1 2 3\n"
	out, err := executeCommand(t, stdin, "transform", "translate", "1,0,-1")
	require.NoError(t, err)

	assert.Contains(t, out, "v 2 2 2\n")
	assert.Contains(t, out, "# cow\n")
	assert.Contains(t, out, "f 1 2 3\n")
}

func TestTransformScale(t *testing.T) {
	out, err := executeCommand(t, "vertex 1 2 3\n", "transform", "scale", "2,2,2")
	require.NoError(t, err)
	assert.Contains(t, out, "vertex 2 4 6\n")
}

func TestTransformRotate(t *testing.T) {
	t.Run("rejects a malformed angle", func(t *testing.T) {
		_, err := executeCommand(t, "", "transform", "rotate", "0,0,1", "ninety")
		assert.Error(t, err)
	})

	t.Run("rejects a malformed axis", func(t *testing.T) {
		_, err := executeCommand(t, "", "transform", "rotate", "0,0", "1.5")
		assert.ErrorContains(t, err, "exactly three coordinates")
	})

	t.Run("rotates the stream", func(t *testing.T) {
		out, err := executeCommand(t, "v 1 0 0\n", "transform", "rotate", "0,0,1", "3.14159265358979")
		require.NoError(t, err)
		// Half a turn about z: x flips sign (up to float noise).
		assert.Contains(t, out, "v -0.999")
	})
}

func TestTransformWarp(t *testing.T) {
	t.Run("single line is rejected", func(t *testing.T) {
		_, err := executeCommand(t, "", "transform", "warp", "--line", "0,0,0 1,0,0")
		assert.ErrorIs(t, err, mesh.ErrTooFewLines)
	})

	t.Run("no lines fall back to the default pair", func(t *testing.T) {
		out, err := executeCommand(t, "v 1 2 3\nf 1 2 3\n", "transform", "warp")
		require.NoError(t, err)
		assert.Contains(t, out, "f 1 2 3\n")
		// A vertex line comes back as a vertex line.
		assert.True(t, strings.Contains(out, "\nv ") || strings.HasPrefix(out, "v "))
	})

	t.Run("malformed line flag", func(t *testing.T) {
		_, err := executeCommand(t, "", "transform", "warp", "--line", "0,0,0")
		assert.ErrorContains(t, err, "exactly two vectors")
	})
}

func TestTransformArgValidation(t *testing.T) {
	out, err := executeCommand(t, "", "transform", "translate")
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")
}
