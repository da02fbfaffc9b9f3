// Package mesh defines the artifact shapes exchanged with external mesh and
// point-cloud collaborators: an indexed triangle mesh and an iterable point
// cloud with cached bounds. Parsing, serialization and mesh surgery live
// with those collaborators, not here.
package mesh

import (
	"github.com/golang/geo/r3"
)

// Face is a triangle given as three vertex indices, three optional
// texture-coordinate indices (-1 when absent) and an image/material id.
type Face struct {
	A, B, C    int
	TA, TB, TC int
	Image      int
}

// NewFace creates an untextured face.
func NewFace(a, b, c int) Face {
	return Face{A: a, B: b, C: c, TA: -1, TB: -1, TC: -1, Image: 0}
}

// Mesh is an ordered vertex list plus indexed faces.
type Mesh struct {
	Vertices []r3.Vector
	Faces    []Face
}

// AddFace appends an untextured face over existing vertices.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, NewFace(a, b, c))
}

// AddTexturedFace appends a face with texture-coordinate indices and an
// image id.
func (m *Mesh) AddTexturedFace(a, b, c, ta, tb, tc, image int) {
	m.Faces = append(m.Faces, Face{A: a, B: b, C: c, TA: ta, TB: tb, TC: tc, Image: image})
}

// FaceNormal returns the unnormalized normal of the given face under the
// mesh's winding convention.
func (m *Mesh) FaceNormal(f Face) r3.Vector {
	ab := m.Vertices[f.B].Sub(m.Vertices[f.A])
	bc := m.Vertices[f.C].Sub(m.Vertices[f.B])
	return ab.Cross(bc)
}
