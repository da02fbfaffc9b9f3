package field

import (
	"github.com/golang/geo/r3"

	"go.viam.com/voxel/mesh"
)

// GetQuads visualizes the isosurface as axis-aligned quads separating voxels
// on opposite sides of the threshold. Each consecutive quadruple of returned
// world-space points is one quad, wound to face per the orientation.
func (sf *ScalarField[V]) GetQuads(threshold V, orientation Orientation) []r3.Vector {
	var out []r3.Vector

	crosses := func(a, b V) bool {
		if orientation == ToMin {
			return a > threshold && b <= threshold
		}
		return a < threshold && b >= threshold
	}
	quad := func(corners [4][3]float64) {
		for _, c := range corners {
			out = append(out, sf.Grid2GeoF(r3.Vector{X: c[0], Y: c[1], Z: c[2]}))
		}
	}

	for i := 0; i < sf.SizeX(); i++ {
		for j := 0; j < sf.SizeY(); j++ {
			for k := 0; k < sf.SizeZ(); k++ {
				v := sf.Get(i, j, k)
				fi, fj, fk := float64(i), float64(j), float64(k)

				// left
				if crosses(v, sf.Get(i-1, j, k)) {
					quad([4][3]float64{
						{fi - 0.5, fj - 0.5, fk - 0.5},
						{fi - 0.5, fj - 0.5, fk + 0.5},
						{fi - 0.5, fj + 0.5, fk + 0.5},
						{fi - 0.5, fj + 0.5, fk - 0.5},
					})
				}

				// right
				if crosses(v, sf.Get(i+1, j, k)) {
					quad([4][3]float64{
						{fi + 0.5, fj + 0.5, fk - 0.5},
						{fi + 0.5, fj + 0.5, fk + 0.5},
						{fi + 0.5, fj - 0.5, fk + 0.5},
						{fi + 0.5, fj - 0.5, fk - 0.5},
					})
				}

				// bottom
				if crosses(v, sf.Get(i, j-1, k)) {
					quad([4][3]float64{
						{fi - 0.5, fj - 0.5, fk - 0.5},
						{fi + 0.5, fj - 0.5, fk - 0.5},
						{fi + 0.5, fj - 0.5, fk + 0.5},
						{fi - 0.5, fj - 0.5, fk + 0.5},
					})
				}

				// top
				if crosses(v, sf.Get(i, j+1, k)) {
					quad([4][3]float64{
						{fi - 0.5, fj + 0.5, fk + 0.5},
						{fi + 0.5, fj + 0.5, fk + 0.5},
						{fi + 0.5, fj + 0.5, fk - 0.5},
						{fi - 0.5, fj + 0.5, fk - 0.5},
					})
				}

				// back
				if crosses(v, sf.Get(i, j, k-1)) {
					quad([4][3]float64{
						{fi - 0.5, fj - 0.5, fk - 0.5},
						{fi - 0.5, fj + 0.5, fk - 0.5},
						{fi + 0.5, fj + 0.5, fk - 0.5},
						{fi + 0.5, fj - 0.5, fk - 0.5},
					})
				}

				// front
				if crosses(v, sf.Get(i, j, k+1)) {
					quad([4][3]float64{
						{fi + 0.5, fj - 0.5, fk + 0.5},
						{fi + 0.5, fj + 0.5, fk + 0.5},
						{fi - 0.5, fj + 0.5, fk + 0.5},
						{fi - 0.5, fj - 0.5, fk + 0.5},
					})
				}
			}
		}
	}
	return out
}

// GetQuadsAsMesh returns the separating quads as an indexed mesh with each
// quad split into two triangles. Vertices are not deduplicated; adjacent
// quads repeat shared corners.
func (sf *ScalarField[V]) GetQuadsAsMesh(threshold V, orientation Orientation) *mesh.Mesh {
	vertices := sf.GetQuads(threshold, orientation)

	out := &mesh.Mesh{Vertices: vertices}
	for quad := 0; quad < len(vertices)/4; quad++ {
		out.AddFace(quad*4, quad*4+1, quad*4+3)
		out.AddFace(quad*4+1, quad*4+2, quad*4+3)
	}
	return out
}
