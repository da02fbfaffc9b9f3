package volume

// Position is an integer cell location in a voxel grid.
type Position struct {
	X, Y, Z int
}

// Displacement is an integer offset between two grid positions.
type Displacement struct {
	X, Y, Z int
}

// Add returns the position offset by d.
func (p Position) Add(d Displacement) Position {
	return Position{p.X + d.X, p.Y + d.Y, p.Z + d.Z}
}

// Diff returns the displacement from o to p.
func (p Position) Diff(o Position) Displacement {
	return Displacement{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Less orders positions lexicographically by (Z, Y, X) so they can be used
// as stable sort/map keys.
func (p Position) Less(o Position) bool {
	if p.Z != o.Z {
		return p.Z < o.Z
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Mul scales the displacement by an integer factor.
func (d Displacement) Mul(f int) Displacement {
	return Displacement{f * d.X, f * d.Y, f * d.Z}
}

// IsZero reports whether the displacement is the zero offset.
func (d Displacement) IsZero() bool {
	return d.X == 0 && d.Y == 0 && d.Z == 0
}
