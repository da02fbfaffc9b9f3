package field

import (
	"github.com/golang/geo/r3"

	"go.viam.com/voxel/volume"
)

// tetCornerOffsets orders a cell's corners with x as the low bit, y the
// middle bit and z the high bit of the corner index.
var tetCornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// tetDecomposition splits a cell into six tetrahedra sharing the 0-7
// diagonal, so neighboring cells triangulate their shared faces identically.
var tetDecomposition = [6][4]int{
	{0, 5, 7, 4},
	{0, 1, 7, 5},
	{0, 1, 3, 7},
	{0, 7, 6, 4},
	{0, 7, 2, 6},
	{0, 3, 2, 7},
}

// tetTriangles[mask] lists the tetrahedron corner pairs whose crossing points
// form the emitted triangles, three pairs per triangle. Bit c of the mask is
// set when corner c lies strictly above the threshold; masks 0 and 15 emit
// nothing. Winding faces toward decreasing values; the ToMax convention reads
// the table through the complement mask, which mirrors the winding.
var tetTriangles = [16][][2]int{
	0b0001: {{1, 0}, {2, 0}, {3, 0}},
	0b0010: {{2, 1}, {0, 1}, {3, 1}},
	0b0011: {{1, 2}, {0, 2}, {1, 3}, {1, 3}, {0, 2}, {0, 3}},
	0b0100: {{1, 2}, {3, 2}, {0, 2}},
	0b0101: {{0, 1}, {1, 2}, {2, 3}, {2, 3}, {0, 3}, {0, 1}},
	0b0110: {{0, 2}, {0, 1}, {1, 3}, {0, 2}, {1, 3}, {2, 3}},
	0b0111: {{2, 3}, {0, 3}, {1, 3}},
	0b1000: {{2, 3}, {1, 3}, {0, 3}},
	0b1001: {{0, 1}, {0, 2}, {1, 3}, {1, 3}, {0, 2}, {2, 3}},
	0b1010: {{1, 2}, {0, 1}, {2, 3}, {0, 3}, {2, 3}, {0, 1}},
	0b1011: {{3, 2}, {1, 2}, {0, 2}},
	0b1100: {{0, 2}, {1, 2}, {1, 3}, {0, 2}, {1, 3}, {0, 3}},
	0b1101: {{0, 1}, {2, 1}, {3, 1}},
	0b1110: {{2, 0}, {1, 0}, {3, 0}},
}

// IsosurfaceTetrahedrons extracts the threshold isosurface by splitting each
// cell into six tetrahedra and returns a triangle soup, three world-space
// vertices per triangle. Cells extend one voxel past the grid on every side
// so surfaces reaching the boundary close. Unlike the cube method this never
// hits an ambiguous configuration, at the cost of more triangles and a
// sequential scan.
func (sf *ScalarField[V]) IsosurfaceTetrahedrons(threshold V, orientation Orientation) []r3.Vector {
	var out []r3.Vector
	var corners [8]r3.Vector
	var values [8]V
	for i := -1; i < sf.SizeX(); i++ {
		for j := -1; j < sf.SizeY(); j++ {
			for k := -1; k < sf.SizeZ(); k++ {
				for c, off := range tetCornerOffsets {
					ci, cj, ck := i+off[0], j+off[1], k+off[2]
					corners[c] = sf.Grid2Geo(volume.Position{X: ci, Y: cj, Z: ck})
					values[c] = sf.Get(ci, cj, ck)
				}
				for _, tet := range tetDecomposition {
					sf.isoFromTetrahedron(&out, &corners, &values, tet, threshold, orientation)
				}
			}
		}
	}
	return out
}

func (sf *ScalarField[V]) isoFromTetrahedron(
	out *[]r3.Vector,
	corners *[8]r3.Vector,
	values *[8]V,
	tet [4]int,
	threshold V,
	orientation Orientation,
) {
	mask := 0
	for c, corner := range tet {
		if values[corner] > threshold {
			mask |= 1 << c
		}
	}
	if orientation == ToMax {
		mask ^= 0xF
	}

	for _, pair := range tetTriangles[mask] {
		a, b := tet[pair[0]], tet[pair[1]]
		*out = append(*out, interpolate(corners[a], values[a], corners[b], values[b], threshold))
	}
}
