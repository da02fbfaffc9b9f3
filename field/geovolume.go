// Package field implements georeferenced volumes over the voxel containers:
// scalar fields with isosurface extraction and downscaling, boolean
// bitfields, Danielsson 4SED distance maps, and voting-based solid
// reconstruction.
package field

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/voxel/volume"
)

// Rounding selects how a fractional grid coordinate maps to a cell index.
type Rounding int

// Per-axis rounding modes for Geo2Grid.
const (
	RoundFloor   = Rounding(-1)
	RoundNearest = Rounding(0)
	RoundCeiling = Rounding(1)
)

// ContainerAlloc constructs the storage backend for a georeferenced volume.
type ContainerAlloc[V comparable] func(sizeX, sizeY, sizeZ int, initValue V) volume.Container[V]

// OctreeAlloc backs a volume with the sparse octree. This is the default.
func OctreeAlloc[V comparable](sizeX, sizeY, sizeZ int, initValue V) volume.Container[V] {
	return volume.NewVolume(sizeX, sizeY, sizeZ, initValue)
}

// ArrayAlloc backs a volume with the dense array, enabling per-line parallel
// filtering at the cost of memory proportional to the full extent.
func ArrayAlloc[V comparable](sizeX, sizeY, sizeZ int, initValue V) volume.Container[V] {
	return volume.NewArray(sizeX, sizeY, sizeZ, initValue)
}

// GeoVolume maps a continuous world-space bounding box onto an integer voxel
// grid at a fixed voxel size. It owns exactly one container; the container
// is replaced only by Downscale, atomically after the coarse grid is fully
// populated.
type GeoVolume[V comparable] struct {
	logger    golog.Logger
	container volume.Container[V]
	alloc     ContainerAlloc[V]
	lower     r3.Vector
	upper     r3.Vector
	voxelSize float64
}

// NewGeoVolume creates a georeferenced volume covering [lower, upper] at the
// given voxel size, every cell holding initValue. A nil alloc backs the
// volume with the sparse octree.
//
// The upper bound is corrected so that each axis extent is an exact multiple
// of the voxel size; callers observe the corrected value through Upper.
func NewGeoVolume[V comparable](
	lower, upper r3.Vector,
	voxelSize float64,
	initValue V,
	alloc ContainerAlloc[V],
	logger golog.Logger,
) (*GeoVolume[V], error) {
	if voxelSize <= 0 {
		return nil, errors.Errorf("invalid voxel size (%.6f) for geo volume", voxelSize)
	}
	if upper.X < lower.X || upper.Y < lower.Y || upper.Z < lower.Z {
		return nil, errors.New("error upper bound is below lower bound")
	}
	if alloc == nil {
		alloc = OctreeAlloc[V]
	}

	sizeX := int(math.Ceil((upper.X - lower.X) / voxelSize))
	sizeY := int(math.Ceil((upper.Y - lower.Y) / voxelSize))
	sizeZ := int(math.Ceil((upper.Z - lower.Z) / voxelSize))

	gv := &GeoVolume[V]{
		logger:    logger,
		container: alloc(sizeX, sizeY, sizeZ, initValue),
		alloc:     alloc,
		lower:     lower,
		upper:     upper,
		voxelSize: voxelSize,
	}

	// Extents need to be voxelSize divisible.
	gv.upper.X = lower.X + float64(sizeX)*voxelSize
	gv.upper.Y = lower.Y + float64(sizeY)*voxelSize
	gv.upper.Z = lower.Z + float64(sizeZ)*voxelSize

	return gv, nil
}

// Lower returns the lower corner of the world-space bounding box.
func (gv *GeoVolume[V]) Lower() r3.Vector { return gv.lower }

// Upper returns the corrected upper corner of the world-space bounding box.
func (gv *GeoVolume[V]) Upper() r3.Vector { return gv.upper }

// VoxelSize returns the world-space edge length of one voxel.
func (gv *GeoVolume[V]) VoxelSize() float64 { return gv.voxelSize }

// Container exposes the underlying storage for iterator-based scans.
func (gv *GeoVolume[V]) Container() volume.Container[V] { return gv.container }

// SizeX returns the grid X extent.
func (gv *GeoVolume[V]) SizeX() int { return gv.container.SizeX() }

// SizeY returns the grid Y extent.
func (gv *GeoVolume[V]) SizeY() int { return gv.container.SizeY() }

// SizeZ returns the grid Z extent.
func (gv *GeoVolume[V]) SizeZ() int { return gv.container.SizeZ() }

// Get returns the value at grid cell (i, j, k); out of bounds yields the
// init value.
func (gv *GeoVolume[V]) Get(i, j, k int) V {
	return gv.container.Get(i, j, k)
}

// Set stores a value at grid cell (i, j, k); out-of-bounds writes are
// dropped.
func (gv *GeoVolume[V]) Set(i, j, k int, value V) {
	gv.container.Set(i, j, k, value)
}

// FGet returns the value of the cell containing the given world position.
func (gv *GeoVolume[V]) FGet(x, y, z float64) V {
	pos := gv.Geo2Grid(r3.Vector{X: x, Y: y, Z: z}, RoundNearest, RoundNearest, RoundNearest)
	return gv.Get(pos.X, pos.Y, pos.Z)
}

// FSet stores a value into the cell containing the given world position.
func (gv *GeoVolume[V]) FSet(x, y, z float64, value V) {
	pos := gv.Geo2Grid(r3.Vector{X: x, Y: y, Z: z}, RoundNearest, RoundNearest, RoundNearest)
	gv.Set(pos.X, pos.Y, pos.Z, value)
}

// Geo2GridF maps a world position to fractional grid coordinates. Integer
// coordinates land on voxel centers.
func (gv *GeoVolume[V]) Geo2GridF(gpos r3.Vector) r3.Vector {
	return r3.Vector{
		X: (gpos.X-gv.lower.X)/(gv.upper.X-gv.lower.X)*float64(gv.SizeX()) - 0.5,
		Y: (gpos.Y-gv.lower.Y)/(gv.upper.Y-gv.lower.Y)*float64(gv.SizeY()) - 0.5,
		Z: (gpos.Z-gv.lower.Z)/(gv.upper.Z-gv.lower.Z)*float64(gv.SizeZ()) - 0.5,
	}
}

// Geo2Grid maps a world position to a grid cell, rounding each axis
// independently by the given mode.
func (gv *GeoVolume[V]) Geo2Grid(gpos r3.Vector, roundingX, roundingY, roundingZ Rounding) volume.Position {
	fpos := gv.Geo2GridF(gpos)
	return volume.Position{
		X: roundCoord(fpos.X, roundingX),
		Y: roundCoord(fpos.Y, roundingY),
		Z: roundCoord(fpos.Z, roundingZ),
	}
}

// Grid2Geo maps a grid cell to the world position of its voxel center.
func (gv *GeoVolume[V]) Grid2Geo(pos volume.Position) r3.Vector {
	return gv.Grid2GeoF(r3.Vector{X: float64(pos.X), Y: float64(pos.Y), Z: float64(pos.Z)})
}

// Grid2GeoF maps fractional grid coordinates to world space; it is the
// inverse of Geo2GridF.
func (gv *GeoVolume[V]) Grid2GeoF(pos r3.Vector) r3.Vector {
	return r3.Vector{
		X: gv.lower.X + (pos.X+0.5)/float64(gv.SizeX())*(gv.upper.X-gv.lower.X),
		Y: gv.lower.Y + (pos.Y+0.5)/float64(gv.SizeY())*(gv.upper.Y-gv.lower.Y),
		Z: gv.lower.Z + (pos.Z+0.5)/float64(gv.SizeZ())*(gv.upper.Z-gv.lower.Z),
	}
}

func roundCoord(v float64, rounding Rounding) int {
	switch rounding {
	case RoundFloor:
		return int(math.Floor(v))
	case RoundCeiling:
		return int(math.Ceil(v))
	default:
		return int(math.Round(v))
	}
}
