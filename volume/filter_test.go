package volume

import (
	"context"
	"testing"

	"go.viam.com/test"
)

func TestCatmullRomFilterIdentityAtCutoffTwo(t *testing.T) {
	// at cutoff 2 the interpolating kernel is sampled at its knots, so
	// filtering changes nothing
	f := NewCatmullRomFilter(2)
	arr := NewArray(6, 1, 1, 0.0)
	values := []float64{1, 5, 2, 8, 3, 4}
	for i, v := range values {
		arr.Set(i, 0, 0, v)
	}

	err := FilterInplace(f, Displacement{X: 1}, arr)
	test.That(t, err, test.ShouldBeNil)
	for i, v := range values {
		test.That(t, arr.Get(i, 0, 0), test.ShouldAlmostEqual, v, 1e-12)
	}
}

func TestFilterPreservesConstantField(t *testing.T) {
	f := NewCatmullRomFilter(4)
	arr := NewArray(5, 4, 3, 6.5)

	for _, diff := range []Displacement{{X: 1}, {Y: 1}, {Z: 1}} {
		err := FilterInplace(f, diff, arr)
		test.That(t, err, test.ShouldBeNil)
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 3; k++ {
				test.That(t, arr.Get(i, j, k), test.ShouldAlmostEqual, 6.5, 1e-9)
			}
		}
	}
}

func TestFilterSmoothsImpulse(t *testing.T) {
	f := NewCatmullRomFilter(4)
	arr := NewArray(9, 1, 1, 0.0)
	arr.Set(4, 0, 0, 8)

	err := FilterInplace(f, Displacement{X: 1}, arr)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, arr.Get(4, 0, 0), test.ShouldBeLessThan, 8.0)
	test.That(t, arr.Get(3, 0, 0), test.ShouldBeGreaterThan, 0.0)
	test.That(t, arr.Get(5, 0, 0), test.ShouldAlmostEqual, arr.Get(3, 0, 0), 1e-9)
	test.That(t, arr.Get(2, 0, 0), test.ShouldAlmostEqual, arr.Get(6, 0, 0), 1e-9)
}

func TestFilterRejectsZeroDisplacement(t *testing.T) {
	f := NewCatmullRomFilter(2)
	arr := NewArray(4, 4, 4, 0.0)
	err := FilterInplace(f, Displacement{}, arr)
	test.That(t, err, test.ShouldNotBeNil)
	err = FilterInplaceParallel(context.Background(), f, Displacement{}, arr)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFilterParallelMatchesSequential(t *testing.T) {
	f := NewCatmullRomFilter(3)
	seq := NewArray(8, 8, 8, 0.0)
	par := NewArray(8, 8, 8, 0.0)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			for k := 0; k < 8; k++ {
				v := float64((i*31 + j*17 + k*7) % 13)
				seq.Set(i, j, k, v)
				par.Set(i, j, k, v)
			}
		}
	}

	test.That(t, FilterInplace(f, Displacement{Y: 1}, seq), test.ShouldBeNil)
	test.That(t, FilterInplaceParallel(context.Background(), f, Displacement{Y: 1}, par), test.ShouldBeNil)

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			for k := 0; k < 8; k++ {
				test.That(t, par.Get(i, j, k), test.ShouldAlmostEqual, seq.Get(i, j, k), 1e-12)
			}
		}
	}
}

func TestFilterClampsIntegerValues(t *testing.T) {
	// a negative-lobe kernel can push values past the representable range;
	// they clamp instead of wrapping
	f := NewCatmullRomFilter(3)
	arr := NewArray[uint8](7, 1, 1, 0)
	arr.Set(3, 0, 0, 255)
	arr.Set(2, 0, 0, 255)
	arr.Set(4, 0, 0, 255)

	err := FilterInplace(f, Displacement{X: 1}, arr)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < 7; i++ {
		test.That(t, arr.Get(i, 0, 0), test.ShouldBeBetweenOrEqual, 0, 255)
	}
}
