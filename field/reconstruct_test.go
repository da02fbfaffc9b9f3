package field

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/voxel/mesh"
)

// shellBitfield samples the boundary of the axis-aligned box spanning cells
// [2,5]^3 of an 8^3 grid, one sample per boundary cell.
func shellBitfield(t *testing.T) *Bitfield {
	t.Helper()
	logger := golog.NewTestLogger(t)
	bf, err := NewBitfield(r3.Vector{}, r3.Vector{X: 8, Y: 8, Z: 8}, 1, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	for i := 2; i <= 5; i++ {
		for j := 2; j <= 5; j++ {
			for k := 2; k <= 5; k++ {
				onFace := i == 2 || i == 5 || j == 2 || j == 5 || k == 2 || k == 5
				if onFace {
					bf.Set(i, j, k, true)
				}
			}
		}
	}
	return bf
}

func TestReconstructionBoxShell(t *testing.T) {
	logger := golog.NewTestLogger(t)
	bf := shellBitfield(t)

	r, err := NewReconstruction(bf, 1.5, DefaultFilterCutoffPeriod, logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, r.VoxelSize(), test.ShouldAlmostEqual, bf.VoxelSize())
	test.That(t, r.Lower(), test.ShouldResemble, bf.Lower())

	// interior fills, exterior stays empty
	test.That(t, r.Get(3, 3, 3), test.ShouldBeGreaterThan, 0.5)
	test.That(t, r.Get(4, 4, 4), test.ShouldBeGreaterThan, 0.5)
	test.That(t, r.Get(0, 0, 0), test.ShouldBeLessThan, 0.5)
	test.That(t, r.Get(7, 7, 7), test.ShouldBeLessThan, 0.5)
	test.That(t, r.Get(0, 4, 4), test.ShouldBeLessThan, 0.5)
}

func TestReconstructionSurfaceExtractable(t *testing.T) {
	logger := golog.NewTestLogger(t)
	bf := shellBitfield(t)

	r, err := NewReconstruction(bf, 1.5, DefaultFilterCutoffPeriod, logger)
	test.That(t, err, test.ShouldBeNil)

	vertices := r.IsosurfaceTetrahedrons(0.5, ToMax)
	test.That(t, len(vertices), test.ShouldBeGreaterThan, 0)

	// the recovered surface stays near the sampled shell
	lo := r.Grid2Geo(volumePos(1, 1, 1))
	hi := r.Grid2Geo(volumePos(6, 6, 6))
	for _, v := range vertices {
		test.That(t, v.X, test.ShouldBeBetweenOrEqual, lo.X, hi.X)
		test.That(t, v.Y, test.ShouldBeBetweenOrEqual, lo.Y, hi.Y)
		test.That(t, v.Z, test.ShouldBeBetweenOrEqual, lo.Z, hi.Z)
	}
}

func TestReconstructionFromCloud(t *testing.T) {
	logger := golog.NewTestLogger(t)

	// sample the surface of the box [1,5]^3 on a half-unit lattice
	cloud := mesh.NewBasic()
	for x := 1.0; x <= 5.0; x += 0.5 {
		for y := 1.0; y <= 5.0; y += 0.5 {
			for z := 1.0; z <= 5.0; z += 0.5 {
				onFace := x == 1 || x == 5 || y == 1 || y == 5 || z == 1 || z == 5
				if onFace {
					cloud.Add(r3.Vector{X: x, Y: y, Z: z})
				}
			}
		}
	}

	r, err := NewReconstructionFromCloud(cloud, 1, 1.5, DefaultFilterCutoffPeriod, logger)
	test.That(t, err, test.ShouldBeNil)

	center := r.Geo2Grid(r3.Vector{X: 3, Y: 3, Z: 3}, RoundNearest, RoundNearest, RoundNearest)
	test.That(t, r.Get(center.X, center.Y, center.Z), test.ShouldBeGreaterThan, 0.5)
}
