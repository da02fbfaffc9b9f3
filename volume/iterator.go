package volume

import (
	"fmt"
	"math"
	"sort"
)

// Iterator is a strided cursor over a container along a fixed displacement.
// It is not a full iterator in the range sense; read and write the current
// cell through Value and SetValue. The iterator holds a non-owning reference
// to its container and must not outlive it.
type Iterator[V comparable] struct {
	container Container[V]
	Pos       Position
	Diff      Displacement
}

// NewIterator creates an iterator over c starting at pos and advancing by
// diff per step.
func NewIterator[V comparable](c Container[V], pos Position, diff Displacement) Iterator[V] {
	return Iterator[V]{container: c, Pos: pos, Diff: diff}
}

// Value reads the container at the current position.
func (it Iterator[V]) Value() V {
	return it.container.Get(it.Pos.X, it.Pos.Y, it.Pos.Z)
}

// SetValue writes the container at the current position.
func (it Iterator[V]) SetValue(value V) {
	it.container.Set(it.Pos.X, it.Pos.Y, it.Pos.Z, value)
}

// Next advances the cursor by one displacement step.
func (it *Iterator[V]) Next() {
	it.Pos = it.Pos.Add(it.Diff)
}

// Add returns a copy of the iterator advanced by count steps.
func (it Iterator[V]) Add(count int) Iterator[V] {
	return Iterator[V]{container: it.container, Pos: it.Pos.Add(it.Diff.Mul(count)), Diff: it.Diff}
}

// At reads the value i steps ahead of the current position.
func (it Iterator[V]) At(i int) V {
	return it.Add(i).Value()
}

// Sub returns the step count from o to it along the first nonzero axis of
// the displacement. Both iterators must share the same displacement; a
// mismatch is a programmer error and panics.
func (it Iterator[V]) Sub(o Iterator[V]) int {
	it.mustMatch(o)
	d := it.Pos.Diff(o.Pos)
	switch {
	case it.Diff.X != 0:
		return d.X / it.Diff.X
	case it.Diff.Y != 0:
		return d.Y / it.Diff.Y
	case it.Diff.Z != 0:
		return d.Z / it.Diff.Z
	}
	return 0
}

// Equal reports whether two iterators with the same displacement sit at the
// same position.
func (it Iterator[V]) Equal(o Iterator[V]) bool {
	it.mustMatch(o)
	return it.Pos == o.Pos
}

func (it Iterator[V]) mustMatch(o Iterator[V]) {
	if it.Diff != o.Diff {
		panic(fmt.Sprintf("mismatched iterator displacements %+v vs %+v", it.Diff, o.Diff))
	}
}

// End returns the iterator marking the first position along the ray that
// leaves the container's logical extents, found as the minimal positive
// parametric intersection with the clipping planes (high sides at size+0.5,
// low sides at -1.5, one cell beyond the halo used by surface extraction).
func (it Iterator[V]) End() Iterator[V] {
	sizeX := it.container.SizeX()
	sizeY := it.container.SizeY()
	sizeZ := it.container.SizeZ()

	u := float64(sizeX)
	if float64(sizeY) > u {
		u = float64(sizeY)
	}
	if float64(sizeZ) > u {
		u = float64(sizeZ)
	}

	clip := func(diff int, pos int, size int) {
		if diff > 0 {
			if toss := (float64(size) + 0.5 - float64(pos)) / float64(diff); toss < u {
				u = toss
			}
		}
		if diff < 0 {
			if toss := (-1.5 - float64(pos)) / float64(diff); toss < u {
				u = toss
			}
		}
	}
	clip(it.Diff.X, it.Pos.X, sizeX)
	clip(it.Diff.Y, it.Pos.Y, sizeY)
	clip(it.Diff.Z, it.Pos.Z, sizeZ)

	steps := int(math.Floor(u))
	return Iterator[V]{
		container: it.container,
		Pos: Position{
			X: it.Pos.X + steps*it.Diff.X,
			Y: it.Pos.Y + steps*it.Diff.Y,
			Z: it.Pos.Z + steps*it.Diff.Z,
		},
		Diff: it.Diff,
	}
}

// IteratorPositions enumerates, for a given displacement, the start positions
// whose rays cover the container: one seed per (row, column) pair on the
// entry face of each nonzero axis of the displacement. Seeds are returned in
// (Z, Y, X) lexicographic order.
func IteratorPositions[V comparable](c Container[V], diff Displacement) []Position {
	var positions []Position

	if diff.X != 0 {
		x := 0
		if diff.X < 0 {
			x = c.SizeX() - 1
		}
		for i := 0; i < c.SizeY(); i++ {
			for j := 0; j < c.SizeZ(); j++ {
				positions = append(positions, Position{x, i, j})
			}
		}
	}

	if diff.Y != 0 {
		y := 0
		if diff.Y < 0 {
			y = c.SizeY() - 1
		}
		for i := 0; i < c.SizeX(); i++ {
			for j := 0; j < c.SizeZ(); j++ {
				positions = append(positions, Position{i, y, j})
			}
		}
	}

	if diff.Z != 0 {
		z := 0
		if diff.Z < 0 {
			z = c.SizeZ() - 1
		}
		for i := 0; i < c.SizeX(); i++ {
			for j := 0; j < c.SizeY(); j++ {
				positions = append(positions, Position{i, j, z})
			}
		}
	}

	sort.Slice(positions, func(a, b int) bool { return positions[a].Less(positions[b]) })
	return positions
}
