package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cabbache/meshtransform/internal/config"
	"github.com/Cabbache/meshtransform/internal/host"
	"github.com/Cabbache/meshtransform/internal/host/memory"
)

// withMemoryHost swaps the host session factory for an in-memory scene and
// restores it afterwards.
func withMemoryHost(t *testing.T, session *memory.Session) {
	t.Helper()
	original := newHostSession
	newHostSession = func(cfg config.HostConfig, logger *zap.Logger) host.Session {
		return session
	}
	t.Cleanup(func() { newHostSession = original })
}

func TestRenderRun(t *testing.T) {
	session := memory.NewSession(
		host.Object{Name: "Cube", Type: host.ObjectMesh},
		host.Object{Name: "Camera", Type: host.ObjectCamera},
	)
	withMemoryHost(t, session)

	out, err := executeCommand(t, "", "render", "cow.stl")
	require.NoError(t, err)

	assert.Contains(t, out, "Render complete: cow.stl.png")
	assert.Equal(t, []string{"cow.stl.png"}, session.Rendered())

	var names []string
	for _, o := range session.Objects() {
		names = append(names, o.Name)
	}
	assert.ElementsMatch(t, []string{"Camera", "cow"}, names)
}

func TestRenderArgValidation(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		session := memory.NewSession()
		withMemoryHost(t, session)

		out, err := executeCommand(t, "", "render")
		require.Error(t, err)
		assert.Contains(t, out, "Usage:")
		// No host calls happen on argument errors.
		assert.Empty(t, session.Rendered())
		assert.Empty(t, session.OutputPath())
	})

	t.Run("too many arguments", func(t *testing.T) {
		session := memory.NewSession()
		withMemoryHost(t, session)

		_, err := executeCommand(t, "", "render", "a.stl", "b.stl")
		require.Error(t, err)
		assert.Empty(t, session.Rendered())
	})
}

func TestRenderImportFailure(t *testing.T) {
	session := memory.NewSession()
	session.ImportErr = assert.AnError
	withMemoryHost(t, session)

	_, err := executeCommand(t, "", "render", "missing.stl")
	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, session.Rendered())
}
