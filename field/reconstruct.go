package field

import (
	"math"

	"github.com/edaniels/golog"

	"go.viam.com/voxel/mesh"
	"go.viam.com/voxel/volume"
)

// DefaultFilterCutoffPeriod is the smoothing cutoff for reconstruction,
// in voxels.
const DefaultFilterCutoffPeriod = 3.0

// poll accumulates inside and outside votes for one voxel. Counts saturate
// rather than wrap; with seven scan directions saturation is unreachable on
// any practical grid, but a poll must never overflow into the opposite
// verdict.
type poll struct {
	positives, negatives uint8
}

func (p *poll) vote(inside bool) {
	if inside {
		if p.positives < math.MaxUint8 {
			p.positives++
		}
		return
	}
	if p.negatives < math.MaxUint8 {
		p.negatives++
	}
}

// reconScanDirections are the rays the parity count walks: the three axes
// plus the four space diagonals.
var reconScanDirections = []volume.Displacement{
	{X: 1}, {Y: 1}, {Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
}

// Reconstruction is a solid recovered from a point sampling of its boundary
// by the Nooruddin/Turk voting method: interior cells hold 1, exterior cells
// 0, smoothed so the 0.5 isosurface approximates the sampled boundary.
//
// Each scan ray walks a delta-capped distance map of the samples and flips
// an inside/outside parity wherever the distance reaches a local minimum
// closer than delta/2, that is, wherever the ray pierces the sampled
// boundary. Every cell of every ray casts a vote and simple majority over
// the seven directions decides, which tolerates the parity errors isolated
// rays suffer near tangential crossings and sampling holes.
type Reconstruction struct {
	*ScalarField[float64]
}

// NewReconstruction reconstructs a solid from a bitfield sampling its
// boundary. delta is the inverse of the sampling's linear density: the
// expected boundary distance between neighboring samples.
func NewReconstruction(
	bf *Bitfield,
	delta, filterCutoffPeriod float64,
	logger golog.Logger,
) (*Reconstruction, error) {
	dmap, err := NewDistanceMap(bf, delta, logger)
	if err != nil {
		return nil, err
	}
	return reconstruct(dmap, delta, filterCutoffPeriod, logger)
}

// NewReconstructionFromCloud reconstructs a solid directly from a boundary
// point cloud rasterized at the given voxel size.
func NewReconstructionFromCloud(
	cloud mesh.PointCloud,
	voxelSize, delta, filterCutoffPeriod float64,
	logger golog.Logger,
) (*Reconstruction, error) {
	dmap, err := NewDistanceMapFromCloud(cloud, voxelSize, delta, logger)
	if err != nil {
		return nil, err
	}
	return reconstruct(dmap, delta, filterCutoffPeriod, logger)
}

func reconstruct(
	dmap *DistanceMap,
	delta, filterCutoffPeriod float64,
	logger golog.Logger,
) (*Reconstruction, error) {
	sf, err := NewScalarField[float64](dmap.Lower(), dmap.Upper(), dmap.VoxelSize(), 0, nil, logger)
	if err != nil {
		return nil, err
	}
	r := &Reconstruction{ScalarField: sf}

	logger.Debugf("voting on (%d, %d, %d) cells in %d directions",
		r.SizeX(), r.SizeY(), r.SizeZ(), len(reconScanDirections))

	vfield := volume.NewArray(r.SizeX(), r.SizeY(), r.SizeZ(), poll{})
	for _, dir := range reconScanDirections {
		for _, pos := range volume.IteratorPositions(dmap.Container(), dir) {
			scanline(volume.NewIterator(dmap.Container(), pos, dir), vfield, delta)
		}
	}

	for i := 0; i < r.SizeX(); i++ {
		for j := 0; j < r.SizeY(); j++ {
			for k := 0; k < r.SizeZ(); k++ {
				if pollResult(vfield.Get(i, j, k)) > 0 {
					r.Set(i, j, k, 1)
				}
			}
		}
	}

	logger.Debugf("smoothing reconstruction at cutoff %.2f", filterCutoffPeriod)
	filter := volume.NewCatmullRomFilter(filterCutoffPeriod)
	for _, dir := range []volume.Displacement{{X: 1}, {Y: 1}, {Z: 1}} {
		if err := volume.FilterInplace(filter, dir, r.Container()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// pollResult decides a single poll; simple majority wins.
func pollResult(p poll) float64 {
	if p.positives > p.negatives {
		return 1
	}
	return 0
}

// scanline walks one ray of the distance map and updates the voting field
// with a modified parity count: parity flips at each local minimum of the
// distance closer than delta/2 to the sampled boundary.
func scanline(begin volume.Iterator[float64], vfield *volume.Array[poll], delta float64) {
	n := begin.End().Sub(begin)
	if n <= 0 {
		return
	}
	row := make([]float64, n)
	it := begin
	for x := range row {
		row[x] = it.Value()
		it.Next()
	}

	inside := false
	it = begin
	for x := 0; x < n; x++ {
		if row[x] < delta/2 && isLocalMin(row, x) {
			inside = !inside
		}
		p := vfield.Get(it.Pos.X, it.Pos.Y, it.Pos.Z)
		p.vote(inside)
		vfield.Set(it.Pos.X, it.Pos.Y, it.Pos.Z, p)
		it.Next()
	}
}

// isLocalMin reports whether x starts a strict local minimum of the row,
// counting the first cell of a plateau exactly once.
func isLocalMin(row []float64, x int) bool {
	prev := math.Inf(1)
	if x > 0 {
		prev = row[x-1]
	}
	if row[x] >= prev {
		return false
	}
	y := x + 1
	for y < len(row) && row[y] == row[x] {
		y++
	}
	if y == len(row) {
		return false
	}
	return row[y] > row[x]
}
