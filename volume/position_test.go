package volume

import (
	"sort"
	"testing"

	"go.viam.com/test"
)

func TestPositionArithmetic(t *testing.T) {
	p := Position{X: 1, Y: 2, Z: 3}
	d := Displacement{X: 2, Y: -1, Z: 0}

	test.That(t, p.Add(d), test.ShouldResemble, Position{X: 3, Y: 1, Z: 3})
	test.That(t, p.Add(d).Diff(p), test.ShouldResemble, d)
	test.That(t, d.Mul(3), test.ShouldResemble, Displacement{X: 6, Y: -3, Z: 0})
	test.That(t, d.IsZero(), test.ShouldBeFalse)
	test.That(t, Displacement{}.IsZero(), test.ShouldBeTrue)
}

func TestPositionOrdering(t *testing.T) {
	ps := []Position{
		{X: 1},
		{Z: 1},
		{Y: 1},
		{},
	}
	sort.Slice(ps, func(a, b int) bool { return ps[a].Less(ps[b]) })

	// lexicographic by (Z, Y, X)
	test.That(t, ps, test.ShouldResemble, []Position{
		{},
		{X: 1},
		{Y: 1},
		{Z: 1},
	})

	p := Position{X: 1, Y: 2, Z: 3}
	test.That(t, p.Less(p), test.ShouldBeFalse)
	test.That(t, p.Less(Position{X: 0, Y: 2, Z: 4}), test.ShouldBeTrue)
	test.That(t, Position{X: 0, Y: 2, Z: 4}.Less(p), test.ShouldBeFalse)
}
