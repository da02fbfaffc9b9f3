package field

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"go.viam.com/voxel/mesh"
	"go.viam.com/voxel/volume"
)

// distVector is the per-cell state of Danielsson's 4SED vector distance
// transform: the componentwise offset, in voxels, to the nearest seed found
// so far.
type distVector struct {
	x, y, z float32
}

func (v distVector) add(o distVector) distVector {
	return distVector{v.x + o.x, v.y + o.y, v.z + o.z}
}

func (v distVector) sqMag() float64 {
	return float64(v.x)*float64(v.x) + float64(v.y)*float64(v.y) + float64(v.z)*float64(v.z)
}

// minVec keeps the shorter of two offset vectors, the first on ties.
func minVec(a, b distVector) distVector {
	if a.sqMag() <= b.sqMag() {
		return a
	}
	return b
}

type scanDir int

const (
	asc scanDir = iota
	desc
)

// DistanceMap holds, per voxel, the euclidean world-space distance to the
// nearest occupied cell of a source bitfield, computed with Danielsson's
// 4SED sweeps. Distances at or beyond the init value stay at the init value,
// which keeps far cells on the octree's default and the map cheap to store;
// the lower the init value, the more compact the representation.
type DistanceMap struct {
	*ScalarField[float64]
}

// NewDistanceMap computes the distance map of a bitfield. initValue is the
// distance cap.
func NewDistanceMap(bf *Bitfield, initValue float64, logger golog.Logger) (*DistanceMap, error) {
	sf, err := NewScalarField[float64](bf.Lower(), bf.Upper(), bf.VoxelSize(), initValue, nil, logger)
	if err != nil {
		return nil, err
	}
	dm := &DistanceMap{ScalarField: sf}

	infty := float32(initValue / bf.VoxelSize())
	dvField := volume.NewArray(sf.SizeX(), sf.SizeY(), sf.SizeZ(), distVector{infty, infty, infty})

	for i := 0; i < dvField.SizeX(); i++ {
		for j := 0; j < dvField.SizeY(); j++ {
			for k := 0; k < dvField.SizeZ(); k++ {
				if bf.Get(i, j, k) {
					dvField.Set(i, j, k, distVector{})
				}
			}
		}
	}

	dm.sweep(dvField)
	dm.collect(dvField, initValue)
	return dm, nil
}

// NewDistanceMapFromCloud computes the distance map of a point cloud on a
// grid sized to the cloud's bounds. Each point seeds the eight cells around
// it with its exact fractional offsets, so distances near the samples are
// subvoxel accurate rather than quantized to cell centers.
func NewDistanceMapFromCloud(
	cloud mesh.PointCloud,
	voxelSize, initValue float64,
	logger golog.Logger,
) (*DistanceMap, error) {
	sf, err := NewScalarField[float64](cloud.Lower(), cloud.Upper(), voxelSize, initValue, nil, logger)
	if err != nil {
		return nil, err
	}
	dm := &DistanceMap{ScalarField: sf}

	logger.Debugf("corrected extents: %v %v", dm.Lower(), dm.Upper())
	logger.Debugf("volume is (%d, %d, %d)", dm.SizeX(), dm.SizeY(), dm.SizeZ())

	infty := float32(initValue / voxelSize)
	dvField := volume.NewArray(sf.SizeX(), sf.SizeY(), sf.SizeZ(), distVector{infty, infty, infty})

	cloud.Iterate(func(p r3.Vector) bool {
		fpos := dm.Geo2GridF(p)
		for i := -1; i <= 1; i += 2 {
			for j := -1; j <= 1; j += 2 {
				for k := -1; k <= 1; k += 2 {
					pos := dm.Geo2Grid(p, Rounding(i), Rounding(j), Rounding(k))
					cur := dvField.Get(pos.X, pos.Y, pos.Z)
					dvField.Set(pos.X, pos.Y, pos.Z, distVector{
						x: float32(math.Min(math.Abs(float64(pos.X)-fpos.X), float64(cur.x))),
						y: float32(math.Min(math.Abs(float64(pos.Y)-fpos.Y), float64(cur.y))),
						z: float32(math.Min(math.Abs(float64(pos.Z)-fpos.Z), float64(cur.z))),
					})
				}
			}
		}
		return true
	})

	dm.sweep(dvField)
	dm.collect(dvField, initValue)
	return dm, nil
}

// sweep propagates offset vectors through the volume, one ascending and one
// descending pass over the Z planes.
func (dm *DistanceMap) sweep(dvField *volume.Array[distVector]) {
	for k := 1; k < dvField.SizeZ(); k++ {
		scanXYPlane(dvField, k, asc)
	}
	for k := dvField.SizeZ() - 2; k >= 0; k-- {
		scanXYPlane(dvField, k, desc)
	}
}

// collect converts the converged offset vectors to world-space distances,
// writing only cells that beat the cap.
func (dm *DistanceMap) collect(dvField *volume.Array[distVector], initValue float64) {
	for i := 0; i < dvField.SizeX(); i++ {
		for j := 0; j < dvField.SizeY(); j++ {
			for k := 0; k < dvField.SizeZ(); k++ {
				dist := dm.VoxelSize() * math.Sqrt(dvField.Get(i, j, k).sqMag())
				if dist < initValue {
					dm.Set(i, j, k, dist)
				}
			}
		}
	}
}

func scanXYPlane(dvField *volume.Array[distVector], k int, dir scanDir) {
	// z propagation
	for i := 0; i < dvField.SizeX(); i++ {
		for j := 0; j < dvField.SizeY(); j++ {
			prev := k - 1
			if dir == desc {
				prev = k + 1
			}
			dvField.Set(i, j, k, minVec(
				dvField.Get(i, j, k),
				dvField.Get(i, j, prev).add(distVector{0, 0, 1}),
			))
		}
	}

	// xy propagation
	for j := 1; j < dvField.SizeY(); j++ {
		scanXLine(dvField, j, k, asc)
	}
	for j := dvField.SizeY() - 2; j >= 0; j-- {
		scanXLine(dvField, j, k, desc)
	}
}

func scanXLine(dvField *volume.Array[distVector], j, k int, dir scanDir) {
	// y propagation
	for i := 0; i < dvField.SizeX(); i++ {
		prev := j - 1
		if dir == desc {
			prev = j + 1
		}
		dvField.Set(i, j, k, minVec(
			dvField.Get(i, j, k),
			dvField.Get(i, prev, k).add(distVector{0, 1, 0}),
		))
	}

	// x propagation, both ways
	for i := 1; i < dvField.SizeX(); i++ {
		dvField.Set(i, j, k, minVec(
			dvField.Get(i, j, k),
			dvField.Get(i-1, j, k).add(distVector{1, 0, 0}),
		))
	}
	for i := dvField.SizeX() - 2; i >= 0; i-- {
		dvField.Set(i, j, k, minVec(
			dvField.Get(i, j, k),
			dvField.Get(i+1, j, k).add(distVector{1, 0, 0}),
		))
	}
}
