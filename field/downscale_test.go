package field

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/voxel/volume"
)

func TestDownscaleRejectsBadFactor(t *testing.T) {
	logger := golog.NewTestLogger(t)
	sf, err := NewScalarField(r3.Vector{}, r3.Vector{X: 4, Y: 4, Z: 4}, 1, 0.0, nil, logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, sf.Downscale(context.Background(), 0), test.ShouldNotBeNil)
	test.That(t, sf.Downscale(context.Background(), -2), test.ShouldNotBeNil)
}

func TestDownscaleFactorOneIsIdentity(t *testing.T) {
	logger := golog.NewTestLogger(t)
	sf, err := NewScalarField(r3.Vector{}, r3.Vector{X: 4, Y: 4, Z: 4}, 1, 0.0, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				sf.Set(i, j, k, float64((i*13+j*5+k)%7))
			}
		}
	}

	test.That(t, sf.Downscale(context.Background(), 1), test.ShouldBeNil)

	test.That(t, sf.VoxelSize(), test.ShouldAlmostEqual, 1)
	test.That(t, sf.Lower(), test.ShouldResemble, r3.Vector{})
	test.That(t, sf.SizeX(), test.ShouldEqual, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				test.That(t, sf.Get(i, j, k), test.ShouldAlmostEqual, float64((i*13+j*5+k)%7), 1e-9)
			}
		}
	}
}

func TestDownscaleConstantField(t *testing.T) {
	logger := golog.NewTestLogger(t)
	sf, err := NewScalarField(r3.Vector{}, r3.Vector{X: 4, Y: 4, Z: 4}, 1, 0.0, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				sf.Set(i, j, k, 5)
			}
		}
	}

	test.That(t, sf.Downscale(context.Background(), 2), test.ShouldBeNil)

	// bounds recenter so coarse voxel centers land on fine block centroids
	test.That(t, sf.VoxelSize(), test.ShouldAlmostEqual, 2)
	test.That(t, sf.Lower().X, test.ShouldAlmostEqual, -0.5)
	test.That(t, sf.SizeX(), test.ShouldEqual, 3)

	// coarse cells fed by the fine grid keep the constant
	test.That(t, sf.Get(0, 0, 0), test.ShouldAlmostEqual, 5, 1e-9)
	test.That(t, sf.Get(1, 1, 1), test.ShouldAlmostEqual, 5, 1e-9)
}

func TestDownscaleKeepsDenseBackend(t *testing.T) {
	logger := golog.NewTestLogger(t)
	sf, err := NewScalarField(r3.Vector{}, r3.Vector{X: 8, Y: 8, Z: 8}, 1, 0.0, ArrayAlloc[float64], logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, sf.Downscale(context.Background(), 2), test.ShouldBeNil)
	_, ok := sf.Container().(*volume.Array[float64])
	test.That(t, ok, test.ShouldBeTrue)
}
