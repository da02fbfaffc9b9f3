package mesh

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestMeshFaces(t *testing.T) {
	m := &Mesh{
		Vertices: []r3.Vector{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
	}
	m.AddFace(0, 1, 2)
	test.That(t, m.Faces, test.ShouldHaveLength, 1)
	test.That(t, m.Faces[0], test.ShouldResemble, Face{A: 0, B: 1, C: 2, TA: -1, TB: -1, TC: -1})

	m.AddTexturedFace(0, 2, 1, 5, 6, 7, 2)
	test.That(t, m.Faces[1].TA, test.ShouldEqual, 5)
	test.That(t, m.Faces[1].Image, test.ShouldEqual, 2)
}

func TestFaceNormal(t *testing.T) {
	m := &Mesh{
		Vertices: []r3.Vector{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
	}
	m.AddFace(0, 1, 2)

	n := m.FaceNormal(m.Faces[0])
	test.That(t, n.X, test.ShouldAlmostEqual, 0)
	test.That(t, n.Y, test.ShouldAlmostEqual, 0)
	test.That(t, n.Z, test.ShouldAlmostEqual, 1)

	// reversing the winding flips the normal
	m.AddFace(0, 2, 1)
	test.That(t, m.FaceNormal(m.Faces[1]).Z, test.ShouldAlmostEqual, -1)
}

func TestBasicPointCloudBounds(t *testing.T) {
	c := NewBasic()
	test.That(t, c.Size(), test.ShouldEqual, 0)

	c.Add(r3.Vector{X: 1, Y: -2, Z: 3})
	c.Add(r3.Vector{X: -4, Y: 5, Z: 0})
	c.Add(r3.Vector{X: 2, Y: 2, Z: 2})

	test.That(t, c.Size(), test.ShouldEqual, 3)
	test.That(t, c.Lower(), test.ShouldResemble, r3.Vector{X: -4, Y: -2, Z: 0})
	test.That(t, c.Upper(), test.ShouldResemble, r3.Vector{X: 2, Y: 5, Z: 3})
}

func TestBasicPointCloudIterate(t *testing.T) {
	c := NewBasic()
	for i := 0; i < 5; i++ {
		c.Add(r3.Vector{X: float64(i)})
	}

	var seen int
	c.Iterate(func(p r3.Vector) bool {
		seen++
		return true
	})
	test.That(t, seen, test.ShouldEqual, 5)

	// early exit stops the walk
	seen = 0
	c.Iterate(func(p r3.Vector) bool {
		seen++
		return seen < 2
	})
	test.That(t, seen, test.ShouldEqual, 2)
}
