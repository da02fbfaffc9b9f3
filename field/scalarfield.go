package field

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"go.viam.com/voxel/mesh"
	"go.viam.com/voxel/volume"
)

// Orientation selects which side of a threshold crossing the extracted
// surface faces.
const (
	// ToMin orients surfaces toward decreasing field values.
	ToMin = Orientation(iota)
	// ToMax is the mirror-image convention.
	ToMax
)

// Orientation is the facing convention for isosurface extraction.
type Orientation int

// Algorithm selects the isosurface triangulation method.
const (
	// MarchingCubes is the table-driven cube method. Fast and parallel, but
	// ambiguous cube configurations follow the classic lookup convention
	// rather than a topologically guaranteed one.
	MarchingCubes = Algorithm(iota)
	// MarchingTetrahedrons splits each cube into six tetrahedra. Slower but
	// immune to cube configuration ambiguity.
	MarchingTetrahedrons
)

// Algorithm identifies an isosurface extraction algorithm.
type Algorithm int

// ScalarField is a georeferenced volume of scalar values providing surface
// extraction and resolution reduction.
type ScalarField[V volume.Number] struct {
	*GeoVolume[V]
}

// NewScalarField creates a scalar field covering [lower, upper] at the given
// voxel size. A nil alloc backs the field with the sparse octree.
func NewScalarField[V volume.Number](
	lower, upper r3.Vector,
	voxelSize float64,
	initValue V,
	alloc ContainerAlloc[V],
	logger golog.Logger,
) (*ScalarField[V], error) {
	gv, err := NewGeoVolume(lower, upper, voxelSize, initValue, alloc, logger)
	if err != nil {
		return nil, err
	}
	return &ScalarField[V]{GeoVolume: gv}, nil
}

// IsosurfaceAsMesh extracts the threshold isosurface with the chosen
// algorithm and assembles the triangle soup into an indexed mesh,
// deduplicating vertices by exact position and dropping degenerate faces.
func (sf *ScalarField[V]) IsosurfaceAsMesh(
	ctx context.Context,
	threshold V,
	orientation Orientation,
	algorithm Algorithm,
) (*mesh.Mesh, error) {
	var vertices []r3.Vector
	switch algorithm {
	case MarchingTetrahedrons:
		vertices = sf.IsosurfaceTetrahedrons(threshold, orientation)
	case MarchingCubes:
		fallthrough
	default:
		var err error
		vertices, err = sf.IsosurfaceCubes(ctx, threshold, orientation)
		if err != nil {
			return nil, err
		}
	}

	out := &mesh.Mesh{}
	vidMap := make(map[r3.Vector]int)
	for face := 0; face < len(vertices)/3; face++ {
		var indices [3]int
		for vertex := 0; vertex < 3; vertex++ {
			p := vertices[face*3+vertex]
			id, ok := vidMap[p]
			if !ok {
				id = len(out.Vertices)
				vidMap[p] = id
				out.Vertices = append(out.Vertices, p)
			}
			indices[vertex] = id
		}
		if indices[0] == indices[1] || indices[0] == indices[2] || indices[1] == indices[2] {
			continue
		}
		out.AddFace(indices[0], indices[1], indices[2])
	}
	return out, nil
}

// interpolate places the threshold crossing on the segment between two
// sampled corners as a symmetric affine combination; the larger value always
// contributes the directly computed weight so the result does not depend on
// argument order.
func interpolate[V volume.Number](p1 r3.Vector, value1 V, p2 r3.Vector, value2 V, midval V) r3.Vector {
	var alpha1, alpha2 float64
	if value1 > value2 {
		alpha1 = (float64(midval) - float64(value2)) / (float64(value1) - float64(value2))
		alpha2 = 1 - alpha1
	} else {
		alpha2 = (float64(midval) - float64(value1)) / (float64(value2) - float64(value1))
		alpha1 = 1 - alpha2
	}
	return r3.Vector{
		X: p1.X*alpha1 + p2.X*alpha2,
		Y: p1.Y*alpha1 + p2.Y*alpha2,
		Z: p1.Z*alpha1 + p2.Z*alpha2,
	}
}
