// Package volume implements sparse and dense storage for volumetric data on
// integer voxel grids, along with the strided line iterator and separable
// filtering that scanning algorithms are built on.
//
// All containers share clamped boundary semantics: reading outside the
// logical extents yields the construction-time init value and writing
// outside them is a no-op. Scanning algorithms rely on this instead of
// carrying their own bounds checks.
package volume

// Container is the capability shared by volumetric storage backends. It is
// implemented by the sparse octree Volume and the dense Array; algorithms
// such as filtering, iteration and isosurface extraction are written against
// this interface and work with either.
type Container[V comparable] interface {
	// Get returns the value at (i, j, k), or the init value when the
	// position lies outside the logical extents.
	Get(i, j, k int) V

	// Set stores a value at (i, j, k). Out-of-bounds writes are silently
	// dropped.
	Set(i, j, k int, value V)

	SizeX() int
	SizeY() int
	SizeZ() int
}

// Number covers the value kinds scalar fields and filters are defined over.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 |
		~float32 | ~float64
}
