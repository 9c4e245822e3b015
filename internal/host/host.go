// Package host defines the adapter boundary to the 3D content-creation
// application that owns the scene graph, mesh import and rendering engine.
// The application is an external collaborator: every Session implementation
// performs a bounded sequence of mutations against a live, externally-owned
// scene and delegates all nontrivial behavior to it.
package host

import (
	"context"
	"strings"
)

// ObjectType classifies scene objects. Values follow the host's own type
// identifiers.
type ObjectType string

const (
	ObjectMesh   ObjectType = "MESH"
	ObjectCamera ObjectType = "CAMERA"
	ObjectLight  ObjectType = "LIGHT"
)

// Object is the host-owned scene entity as seen through the adapter. The
// adapter only ever reads Name and Type and toggles Selected.
type Object struct {
	Name     string
	Type     ObjectType
	Selected bool
}

// Predicate describes which objects a Select call marks. An object matches
// when its type equals Type and its name begins with NamePrefix.
type Predicate struct {
	Type       ObjectType
	NamePrefix string
}

// Matches reports whether the object satisfies the predicate.
func (p Predicate) Matches(o Object) bool {
	return o.Type == p.Type && strings.HasPrefix(o.Name, p.NamePrefix)
}

// Session is a live host-application session. Calls must be issued in
// program order; implementations may stage the mutations and flush them when
// Render is invoked, which is the only blocking operation and therefore the
// only one taking a context.
type Session interface {
	// Select sets the selection flag of every object in the active scene to
	// the value of pred.Matches at the moment of the call.
	Select(pred Predicate) error
	// DeleteSelected removes all currently selected objects from the scene.
	DeleteSelected() error
	// ImportSTL loads mesh geometry from an STL file into the scene. The
	// path is handed to the host verbatim; existence and format checks are
	// the host's concern.
	ImportSTL(path string) error
	// SetOutputPath assigns the render settings' output file path.
	SetOutputPath(path string) error
	// Render triggers a still render written to the configured output path.
	Render(ctx context.Context) error
}
