package volume

import (
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func TestVolumeReadWrite(t *testing.T) {
	v := NewVolume(8, 8, 8, 0)
	test.That(t, v.Get(3, 4, 5), test.ShouldEqual, 0)

	v.Set(3, 4, 5, 42)
	test.That(t, v.Get(3, 4, 5), test.ShouldEqual, 42)
	test.That(t, v.Get(3, 4, 6), test.ShouldEqual, 0)
	test.That(t, v.Get(5, 4, 3), test.ShouldEqual, 0)

	v.Set(3, 4, 5, 7)
	test.That(t, v.Get(3, 4, 5), test.ShouldEqual, 7)
}

func TestVolumeNonPowerOfTwoExtents(t *testing.T) {
	v := NewVolume(5, 3, 2, -1)
	test.That(t, v.SizeX(), test.ShouldEqual, 5)
	test.That(t, v.SizeY(), test.ShouldEqual, 3)
	test.That(t, v.SizeZ(), test.ShouldEqual, 2)

	v.Set(4, 2, 1, 9)
	test.That(t, v.Get(4, 2, 1), test.ShouldEqual, 9)
	test.That(t, v.Get(0, 0, 0), test.ShouldEqual, -1)
}

func TestVolumeBounds(t *testing.T) {
	v := NewVolume(4, 4, 4, 7)
	test.That(t, v.Get(-1, 0, 0), test.ShouldEqual, 7)
	test.That(t, v.Get(0, -1, 0), test.ShouldEqual, 7)
	test.That(t, v.Get(0, 0, 4), test.ShouldEqual, 7)
	test.That(t, v.Get(100, 100, 100), test.ShouldEqual, 7)

	// out-of-bounds writes are absorbed without splitting the tree
	v.Set(4, 0, 0, 1)
	v.Set(-1, -1, -1, 1)
	test.That(t, v.NodeCount(), test.ShouldEqual, 1)
	test.That(t, v.Get(0, 0, 0), test.ShouldEqual, 7)
}

func TestVolumeSplitAndCollapse(t *testing.T) {
	v := NewVolume(2, 2, 2, 0)
	test.That(t, v.NodeCount(), test.ShouldEqual, 1)

	// first differing write splits the root into eight solid children
	v.Set(0, 0, 0, 5)
	test.That(t, v.NodeCount(), test.ShouldEqual, 9)
	test.That(t, v.Get(0, 0, 0), test.ShouldEqual, 5)
	test.That(t, v.Get(1, 1, 1), test.ShouldEqual, 0)

	// writing the remaining cells to the same value collapses it back
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				v.Set(i, j, k, 5)
			}
		}
	}
	test.That(t, v.NodeCount(), test.ShouldEqual, 1)
	test.That(t, v.Get(1, 0, 1), test.ShouldEqual, 5)
}

func TestVolumeRedundantWriteKeepsTreeSolid(t *testing.T) {
	v := NewVolume(16, 16, 16, 3)
	v.Set(8, 8, 8, 3)
	test.That(t, v.NodeCount(), test.ShouldEqual, 1)
}

func TestVolumeMemUsage(t *testing.T) {
	logger := golog.NewTestLogger(t)
	v := NewVolume(16, 16, 16, 0)
	solid := v.MemUsed()
	test.That(t, solid, test.ShouldBeGreaterThan, 0)

	v.Set(3, 5, 7, 1)
	test.That(t, v.MemUsed(), test.ShouldBeGreaterThan, solid)
	v.LogMemUsage(logger)
}
