package mesh

import (
	"math"

	"github.com/golang/geo/r3"
)

// PointCloud is the consumed shape of an external point sampling: an
// iterable sequence of world-space points with cached bounds.
type PointCloud interface {
	// Size returns the number of points in the cloud.
	Size() int

	// Iterate calls fn for every point until it returns false.
	Iterate(fn func(p r3.Vector) bool)

	// Lower returns the lower corner of the cloud's bounding box.
	Lower() r3.Vector

	// Upper returns the upper corner of the cloud's bounding box.
	Upper() r3.Vector
}

// Basic is a slice-backed PointCloud that merges its bounds as points are
// added.
type Basic struct {
	points []r3.Vector
	lower  r3.Vector
	upper  r3.Vector
}

// NewBasic creates an empty point cloud.
func NewBasic() *Basic {
	return &Basic{
		lower: r3.Vector{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		upper: r3.Vector{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Add appends a point and merges it into the cached bounds.
func (c *Basic) Add(p r3.Vector) {
	c.points = append(c.points, p)
	c.lower.X = math.Min(c.lower.X, p.X)
	c.lower.Y = math.Min(c.lower.Y, p.Y)
	c.lower.Z = math.Min(c.lower.Z, p.Z)
	c.upper.X = math.Max(c.upper.X, p.X)
	c.upper.Y = math.Max(c.upper.Y, p.Y)
	c.upper.Z = math.Max(c.upper.Z, p.Z)
}

// Size returns the number of points in the cloud.
func (c *Basic) Size() int {
	return len(c.points)
}

// Iterate calls fn for every point until it returns false.
func (c *Basic) Iterate(fn func(p r3.Vector) bool) {
	for _, p := range c.points {
		if !fn(p) {
			return
		}
	}
}

// Lower returns the lower corner of the merged bounds.
func (c *Basic) Lower() r3.Vector { return c.lower }

// Upper returns the upper corner of the merged bounds.
func (c *Basic) Upper() r3.Vector { return c.upper }
