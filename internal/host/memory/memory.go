// Package memory provides an in-memory host.Session backed by a plain scene
// object list. It stands in for the real host in tests and exercises the
// same selection, deletion and import semantics the Blender session stages.
package memory

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Cabbache/meshtransform/internal/host"
)

// Session holds a mutable scene and records the render-settings mutations
// applied to it.
type Session struct {
	mu         sync.Mutex
	objects    []host.Object
	outputPath string
	rendered   []string

	// ImportErr and RenderErr, when set, are returned by the corresponding
	// call to simulate host-side failures.
	ImportErr error
	RenderErr error
}

var _ host.Session = (*Session)(nil)

// NewSession creates a session whose scene contains the given objects.
func NewSession(objects ...host.Object) *Session {
	return &Session{objects: append([]host.Object(nil), objects...)}
}

// Select sets every object's selection flag to the predicate result.
func (s *Session) Select(pred host.Predicate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.objects {
		s.objects[i].Selected = pred.Matches(s.objects[i])
	}
	return nil
}

// DeleteSelected removes all currently selected objects from the scene.
func (s *Session) DeleteSelected() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.objects[:0]
	for _, o := range s.objects {
		if !o.Selected {
			kept = append(kept, o)
		}
	}
	s.objects = kept
	return nil
}

// ImportSTL adds a mesh object named after the file stem, mirroring the
// host's deterministic import naming.
func (s *Session) ImportSTL(path string) error {
	if s.ImportErr != nil {
		return s.ImportErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	s.objects = append(s.objects, host.Object{Name: name, Type: host.ObjectMesh})
	return nil
}

// SetOutputPath records the render settings' output file path.
func (s *Session) SetOutputPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputPath = path
	return nil
}

// Render records a still render against the configured output path.
func (s *Session) Render(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.RenderErr != nil {
		return s.RenderErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rendered = append(s.rendered, s.outputPath)
	return nil
}

// Objects returns a snapshot of the scene contents.
func (s *Session) Objects() []host.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]host.Object(nil), s.objects...)
}

// OutputPath returns the last value assigned to the render output path.
func (s *Session) OutputPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputPath
}

// Rendered returns the output paths of all triggered renders, in order.
func (s *Session) Rendered() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rendered...)
}
