package field

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"go.viam.com/voxel/mesh"
)

// Bitfield is a boolean scalar field of occupancy flags. Cells store 0 or 1
// behind a boolean facade, so the quad and isosurface extractors run
// directly on occupancy with a zero threshold.
type Bitfield struct {
	*ScalarField[uint8]
}

// NewBitfield creates an empty bitfield covering [lower, upper] at the given
// voxel size. A nil alloc backs the field with the sparse octree.
func NewBitfield(
	lower, upper r3.Vector,
	voxelSize float64,
	alloc ContainerAlloc[uint8],
	logger golog.Logger,
) (*Bitfield, error) {
	sf, err := NewScalarField[uint8](lower, upper, voxelSize, 0, alloc, logger)
	if err != nil {
		return nil, err
	}
	return &Bitfield{ScalarField: sf}, nil
}

// NewBitfieldFromCloud rasterizes a point cloud into a bitfield sized to the
// cloud's bounds, marking the voxel containing each point.
func NewBitfieldFromCloud(
	cloud mesh.PointCloud,
	voxelSize float64,
	alloc ContainerAlloc[uint8],
	logger golog.Logger,
) (*Bitfield, error) {
	bf, err := NewBitfield(cloud.Lower(), cloud.Upper(), voxelSize, alloc, logger)
	if err != nil {
		return nil, err
	}
	cloud.Iterate(func(p r3.Vector) bool {
		bf.FSet(p.X, p.Y, p.Z, true)
		return true
	})
	return bf, nil
}

// Get reports whether grid cell (i, j, k) is occupied.
func (bf *Bitfield) Get(i, j, k int) bool {
	return bf.ScalarField.Get(i, j, k) != 0
}

// Set marks or clears grid cell (i, j, k).
func (bf *Bitfield) Set(i, j, k int, occupied bool) {
	bf.ScalarField.Set(i, j, k, bitValue(occupied))
}

// FGet reports whether the cell containing the given world position is
// occupied.
func (bf *Bitfield) FGet(x, y, z float64) bool {
	return bf.ScalarField.FGet(x, y, z) != 0
}

// FSet marks or clears the cell containing the given world position.
func (bf *Bitfield) FSet(x, y, z float64, occupied bool) {
	bf.ScalarField.FSet(x, y, z, bitValue(occupied))
}

func bitValue(occupied bool) uint8 {
	if occupied {
		return 1
	}
	return 0
}
