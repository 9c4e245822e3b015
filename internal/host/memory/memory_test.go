package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cabbache/meshtransform/internal/host"
	"github.com/Cabbache/meshtransform/internal/host/memory"
)

func sceneFixture() *memory.Session {
	return memory.NewSession(
		host.Object{Name: "Cube", Type: host.ObjectMesh},
		host.Object{Name: "Cube.001", Type: host.ObjectMesh},
		host.Object{Name: "Suzanne", Type: host.ObjectMesh},
		host.Object{Name: "Camera", Type: host.ObjectCamera},
		host.Object{Name: "Cube Light", Type: host.ObjectLight},
	)
}

func TestSelect(t *testing.T) {
	t.Parallel()
	s := sceneFixture()

	pred := host.Predicate{Type: host.ObjectMesh, NamePrefix: "Cube"}
	require.NoError(t, s.Select(pred))

	// The selection flag must reflect the predicate for every object: both
	// matches set and prior selections cleared.
	for _, o := range s.Objects() {
		assert.Equal(t, pred.Matches(o), o.Selected, "object %s", o.Name)
	}

	// A second Select with a different predicate overwrites the first.
	require.NoError(t, s.Select(host.Predicate{Type: host.ObjectCamera}))
	for _, o := range s.Objects() {
		assert.Equal(t, o.Type == host.ObjectCamera, o.Selected, "object %s", o.Name)
	}
}

func TestDeleteSelected(t *testing.T) {
	t.Parallel()
	s := sceneFixture()

	require.NoError(t, s.Select(host.Predicate{Type: host.ObjectMesh, NamePrefix: "Cube"}))
	require.NoError(t, s.DeleteSelected())

	var names []string
	for _, o := range s.Objects() {
		names = append(names, o.Name)
	}
	// Non-mesh objects survive even when their name carries the prefix, and
	// meshes with other names survive too.
	assert.ElementsMatch(t, []string{"Suzanne", "Camera", "Cube Light"}, names)
}

func TestImportSTL(t *testing.T) {
	t.Parallel()
	s := memory.NewSession()

	require.NoError(t, s.ImportSTL("/models/cow.stl"))
	objects := s.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, host.Object{Name: "cow", Type: host.ObjectMesh}, objects[0])

	// Deterministic naming: a second import of the same file adds an object
	// with the same name.
	require.NoError(t, s.ImportSTL("/models/cow.stl"))
	objects = s.Objects()
	require.Len(t, objects, 2)
	assert.Equal(t, objects[0].Name, objects[1].Name)
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("records the configured output path", func(t *testing.T) {
		t.Parallel()
		s := memory.NewSession()
		require.NoError(t, s.SetOutputPath("cow.stl.png"))
		require.NoError(t, s.Render(context.Background()))
		assert.Equal(t, []string{"cow.stl.png"}, s.Rendered())
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()
		s := memory.NewSession()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Render(ctx), context.Canceled)
		assert.Empty(t, s.Rendered())
	})

	t.Run("propagates injected render failure", func(t *testing.T) {
		t.Parallel()
		s := memory.NewSession()
		s.RenderErr = assert.AnError
		assert.ErrorIs(t, s.Render(context.Background()), assert.AnError)
	})
}
