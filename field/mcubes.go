package field

import (
	"context"

	"github.com/golang/geo/r3"

	"go.viam.com/voxel/utils"
	"go.viam.com/voxel/volume"
)

// mcCornerOffsets orders a cell's corners counterclockwise around the k face
// and then the k+1 face, matching the lookup tables.
var mcCornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// IsosurfaceCubes extracts the threshold isosurface with marching cubes and
// returns a triangle soup, three world-space vertices per triangle. Cells
// extend one voxel past the grid on every side so surfaces reaching the
// boundary close; the out-of-bounds corners read as the init value. Cell rows
// along X run in parallel with per-worker buffers merged in worker order, so
// output order is deterministic.
func (sf *ScalarField[V]) IsosurfaceCubes(
	ctx context.Context,
	threshold V,
	orientation Orientation,
) ([]r3.Vector, error) {
	rows := sf.SizeX() + 1

	var buffers [][]r3.Vector
	if err := utils.GroupWorkParallel(
		ctx,
		rows,
		func(numGroups int) {
			buffers = make([][]r3.Vector, numGroups)
		},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			buf := &buffers[groupNum]
			return func(memberNum, workNum int) {
				i := workNum - 1
				var corners [8]r3.Vector
				var values [8]V
				for j := -1; j < sf.SizeY(); j++ {
					for k := -1; k < sf.SizeZ(); k++ {
						sf.cubeCell(i, j, k, &corners, &values)
						sf.isoFromCube(buf, &corners, &values, threshold, orientation)
					}
				}
			}, nil
		},
	); err != nil {
		return nil, err
	}

	var out []r3.Vector
	for _, buf := range buffers {
		out = append(out, buf...)
	}
	return out, nil
}

func (sf *ScalarField[V]) cubeCell(i, j, k int, corners *[8]r3.Vector, values *[8]V) {
	for c, off := range mcCornerOffsets {
		ci, cj, ck := i+off[0], j+off[1], k+off[2]
		corners[c] = sf.Grid2Geo(volume.Position{X: ci, Y: cj, Z: ck})
		values[c] = sf.Get(ci, cj, ck)
	}
}

// isoFromCube appends the triangles the lookup tables dictate for one cell.
func (sf *ScalarField[V]) isoFromCube(
	out *[]r3.Vector,
	corners *[8]r3.Vector,
	values *[8]V,
	threshold V,
	orientation Orientation,
) {
	cubeIndex := 0
	for c := 0; c < 8; c++ {
		inside := values[c] < threshold
		if orientation == ToMax {
			inside = values[c] > threshold
		}
		if inside {
			cubeIndex |= 1 << c
		}
	}

	edges := mcEdgeTable[cubeIndex]
	if edges == 0 {
		return
	}

	var vertexList [12]r3.Vector
	for e := 0; e < 12; e++ {
		if edges&(1<<e) == 0 {
			continue
		}
		c1, c2 := mcEdgeCorners[e][0], mcEdgeCorners[e][1]
		vertexList[e] = interpolate(corners[c1], values[c1], corners[c2], values[c2], threshold)
	}

	for _, e := range mcTriTable[cubeIndex] {
		*out = append(*out, vertexList[e])
	}
}
